package polaris_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fivetwenty-io/polaris/pkg/polaris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errPageFetch = errors.New("page fetch failed")

// pageServer simulates a paginated collection endpoint and records the
// offsets it was asked for.
type pageServer struct {
	items   []string
	total   *uint64
	offsets []uint32
}

func uint64Ptr(v uint64) *uint64 {
	return &v
}

func (s *pageServer) fetch(_ context.Context, offset, limit uint32) (*polaris.PageEnvelope[string], error) {
	s.offsets = append(s.offsets, offset)

	end := int(offset) + int(limit)
	if end > len(s.items) {
		end = len(s.items)
	}

	start := int(offset)
	if start > len(s.items) {
		start = len(s.items)
	}

	var meta *polaris.PaginationMeta
	if s.total != nil {
		meta = &polaris.PaginationMeta{Total: s.total}
	}

	return &polaris.PageEnvelope[string]{
		Data: s.items[start:end],
		Meta: meta,
	}, nil
}

func makeItems(n int) []string {
	items := make([]string, n)
	for i := range items {
		items[i] = string(rune('a' + i%26))
	}

	return items
}

func TestFetchAllPages_ZeroPageSize(t *testing.T) {
	t.Parallel()

	_, err := polaris.FetchAllPages(context.Background(), func(context.Context, uint32, uint32) (*polaris.PageEnvelope[string], error) {
		t.Fatal("fetch should not be called")

		return nil, nil
	}, 0)

	require.ErrorIs(t, err, polaris.ErrInvalidPageSize)
}

func TestFetchAllPages_ShortPageTerminates(t *testing.T) {
	t.Parallel()

	// 40 items, no total reported: the 15-item page at offset 25 ends it.
	server := &pageServer{items: makeItems(40)}

	result, err := polaris.FetchAllPages(context.Background(), server.fetch, 25)
	require.NoError(t, err)
	assert.Len(t, result.Data, 40)
	assert.Equal(t, []uint32{0, 25}, server.offsets)
}

func TestFetchAllPages_TotalTerminates(t *testing.T) {
	t.Parallel()

	// 50 items with total 50 and pageSize 25: both pages are full, so the
	// tracked total must stop the walk before a third fetch.
	server := &pageServer{items: makeItems(50), total: uint64Ptr(50)}

	result, err := polaris.FetchAllPages(context.Background(), server.fetch, 25)
	require.NoError(t, err)
	assert.Len(t, result.Data, 50)
	assert.Equal(t, []uint32{0, 25}, server.offsets)
}

func TestFetchAllPages_TotalWithShortLastPage(t *testing.T) {
	t.Parallel()

	server := &pageServer{items: makeItems(40), total: uint64Ptr(40)}

	result, err := polaris.FetchAllPages(context.Background(), server.fetch, 25)
	require.NoError(t, err)
	assert.Len(t, result.Data, 40)
	assert.Equal(t, []uint32{0, 25}, server.offsets)
}

func TestFetchAllPages_SinglePage(t *testing.T) {
	t.Parallel()

	server := &pageServer{items: makeItems(10), total: uint64Ptr(10)}

	result, err := polaris.FetchAllPages(context.Background(), server.fetch, 25)
	require.NoError(t, err)
	assert.Len(t, result.Data, 10)
	assert.Equal(t, []uint32{0}, server.offsets)
}

func TestFetchAllPages_EmptyCollection(t *testing.T) {
	t.Parallel()

	server := &pageServer{}

	result, err := polaris.FetchAllPages(context.Background(), server.fetch, 25)
	require.NoError(t, err)
	assert.Empty(t, result.Data)
	assert.Equal(t, []uint32{0}, server.offsets)
}

func TestFetchAllPages_MergedMeta(t *testing.T) {
	t.Parallel()

	server := &pageServer{items: makeItems(40), total: uint64Ptr(40)}

	result, err := polaris.FetchAllPages(context.Background(), server.fetch, 25)
	require.NoError(t, err)

	// The merged meta summarizes the whole collection: offset back at the
	// origin, no page limit, total as last reported.
	require.NotNil(t, result.Meta)
	require.NotNil(t, result.Meta.Offset)
	assert.Equal(t, uint64(0), *result.Meta.Offset)
	assert.Nil(t, result.Meta.Limit)
	require.NotNil(t, result.Meta.Total)
	assert.Equal(t, uint64(40), *result.Meta.Total)
}

func TestFetchAllPages_NoTotalReported(t *testing.T) {
	t.Parallel()

	server := &pageServer{items: makeItems(10)}

	result, err := polaris.FetchAllPages(context.Background(), server.fetch, 25)
	require.NoError(t, err)
	require.NotNil(t, result.Meta)
	assert.Nil(t, result.Meta.Total)
}

func TestFetchAllPages_LaterTotalOverwrites(t *testing.T) {
	t.Parallel()

	// The second page reports a smaller total than the first, as happens
	// when items vanish mid-walk. The later value wins.
	totals := []*uint64{uint64Ptr(100), uint64Ptr(50)}
	call := 0

	fetch := func(_ context.Context, offset, limit uint32) (*polaris.PageEnvelope[string], error) {
		total := totals[call]
		call++

		return &polaris.PageEnvelope[string]{
			Data: makeItems(int(limit)),
			Meta: &polaris.PaginationMeta{Total: total},
		}, nil
	}

	result, err := polaris.FetchAllPages(context.Background(), fetch, 25)
	require.NoError(t, err)
	assert.Len(t, result.Data, 50)
	require.NotNil(t, result.Meta.Total)
	assert.Equal(t, uint64(50), *result.Meta.Total)
}

func TestFetchAllPages_MergesIncluded(t *testing.T) {
	t.Parallel()

	pages := [][]polaris.Resource{
		{{Type: "taxon", ID: "1", Attributes: map[string]any{"name": "High"}}},
		{{Type: "taxon", ID: "1", Attributes: map[string]any{"name": "High"}}},
	}
	call := 0

	fetch := func(_ context.Context, offset, limit uint32) (*polaris.PageEnvelope[string], error) {
		included := pages[call]
		call++

		data := makeItems(int(limit))
		if call == len(pages) {
			data = data[:1]
		}

		return &polaris.PageEnvelope[string]{Data: data, Included: included}, nil
	}

	result, err := polaris.FetchAllPages(context.Background(), fetch, 25)
	require.NoError(t, err)

	// Duplicates across pages are kept; the index built on top handles
	// them.
	assert.Len(t, result.Included, 2)
}

func TestFetchAllPages_Idempotent(t *testing.T) {
	t.Parallel()

	first := &pageServer{items: makeItems(40), total: uint64Ptr(40)}
	second := &pageServer{items: makeItems(40), total: uint64Ptr(40)}

	resultOne, err := polaris.FetchAllPages(context.Background(), first.fetch, 25)
	require.NoError(t, err)

	resultTwo, err := polaris.FetchAllPages(context.Background(), second.fetch, 25)
	require.NoError(t, err)

	assert.Equal(t, resultOne, resultTwo)
}

func TestFetchAllPages_ErrorAborts(t *testing.T) {
	t.Parallel()

	call := 0

	fetch := func(_ context.Context, offset, limit uint32) (*polaris.PageEnvelope[string], error) {
		call++
		if call == 2 {
			return nil, errPageFetch
		}

		return &polaris.PageEnvelope[string]{Data: makeItems(int(limit))}, nil
	}

	result, err := polaris.FetchAllPages(context.Background(), fetch, 25)
	require.ErrorIs(t, err, errPageFetch)
	assert.Nil(t, result)
}
