package polaris

import (
	"context"
)

// PageFunc fetches one page of a collection at the given offset with at most
// limit items. Implementations are expected to translate these into the
// page[offset]/page[limit] query parameters of the endpoint they wrap.
type PageFunc[T any] func(ctx context.Context, offset, limit uint32) (*PageEnvelope[T], error)

// FetchAllPages drains a paginated collection endpoint to completion and
// merges the pages into a single envelope. Data is concatenated in page
// arrival order; Included is the union of every page's Included, duplicates
// permitted.
//
// Fetches are strictly sequential: page N+1 is not requested until page N has
// been merged. Traversal stops when a page returns fewer than pageSize items,
// or when the most recently observed meta total says the next offset would be
// past the end. A later page's total overwrites the tracked value, since the
// server's latest word is more authoritative than leftover state from earlier
// pages of the same run.
//
// The merged envelope's meta is a summary of the whole collection, not any
// single page: offset is reset to 0, limit is dropped, and total is the
// tracked value (nil if no page ever reported one). Callers that need a page
// limit after a full fetch will observe none; downstream consumers tolerate
// this.
//
// A page fetch error aborts the whole run and is returned unchanged with no
// partial results.
func FetchAllPages[T any](ctx context.Context, fetch PageFunc[T], pageSize uint32) (*PageEnvelope[T], error) {
	if pageSize == 0 {
		return nil, ErrInvalidPageSize
	}

	var (
		data     []T
		included []Resource
		total    *uint64
		offset   uint32
	)

	for {
		page, err := fetch(ctx, offset, pageSize)
		if err != nil {
			return nil, err
		}

		if page.Meta != nil && page.Meta.Total != nil {
			total = page.Meta.Total
		}

		count := len(page.Data)
		data = append(data, page.Data...)
		included = append(included, page.Included...)

		// A short page is the end of the collection even when no total
		// was ever reported.
		if uint32(count) < pageSize {
			break
		}

		offset += pageSize
		if total != nil && uint64(offset) >= *total {
			break
		}
	}

	origin := uint64(0)

	return &PageEnvelope[T]{
		Data:     data,
		Included: included,
		Meta:     &PaginationMeta{Offset: &origin, Total: total},
	}, nil
}
