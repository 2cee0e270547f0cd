package client

import (
	"net/url"
	"strconv"
)

// pageQuery adds the offset/limit cursor parameters to a query.
func pageQuery(query url.Values, limit, offset uint32) url.Values {
	if query == nil {
		query = url.Values{}
	}

	query.Set("page[limit]", strconv.FormatUint(uint64(limit), 10))
	query.Set("page[offset]", strconv.FormatUint(uint64(offset), 10))

	return query
}
