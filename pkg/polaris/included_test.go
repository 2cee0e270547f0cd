package polaris_test

import (
	"testing"

	"github.com/fivetwenty-io/polaris/pkg/polaris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildIncludedIndex(t *testing.T) {
	t.Parallel()

	included := []polaris.Resource{
		{Type: "taxon", ID: "5", Attributes: map[string]any{"name": "Medium"}},
		{Type: "issue-type", ID: "5", Attributes: map[string]any{"name": "Buffer Overflow"}},
		// Same key again: the later entry wins.
		{Type: "taxon", ID: "5", Attributes: map[string]any{"name": "High"}},
		// Entries without both type and id are unaddressable and skipped.
		{Type: "", ID: "9"},
		{Type: "path", ID: ""},
	}

	index := polaris.BuildIncludedIndex(included)
	require.Len(t, index, 2)

	taxon, ok := index[polaris.IncludedKey("taxon", "5")]
	require.True(t, ok)
	assert.Equal(t, "High", taxon.Attributes["name"])

	issueType, ok := index[polaris.IncludedKey("issue-type", "5")]
	require.True(t, ok)
	assert.Equal(t, "Buffer Overflow", issueType.Attributes["name"])
}

func TestResolveIncluded(t *testing.T) {
	t.Parallel()

	index := polaris.BuildIncludedIndex([]polaris.Resource{
		{Type: "taxon", ID: "sev-1", Attributes: map[string]any{"name": "High"}},
		{Type: "taxon", ID: "sev-2", Attributes: map[string]any{"name": 42}},
		{Type: "taxon", ID: "sev-3", Attributes: map[string]any{}},
	})

	relationships := func(id any) map[string]any {
		return map[string]any{
			"severity": map[string]any{
				"data": map[string]any{"id": id},
			},
		}
	}

	tests := []struct {
		name          string
		relationships map[string]any
		expected      string
	}{
		{
			name:          "resolves name",
			relationships: relationships("sev-1"),
			expected:      "High",
		},
		{
			name:          "absent relationship",
			relationships: map[string]any{},
			expected:      "-",
		},
		{
			name:          "nil relationships",
			relationships: nil,
			expected:      "-",
		},
		{
			name:          "id not in index",
			relationships: relationships("missing"),
			expected:      "-",
		},
		{
			name:          "non-string id",
			relationships: relationships(7),
			expected:      "-",
		},
		{
			name:          "non-string name",
			relationships: relationships("sev-2"),
			expected:      "-",
		},
		{
			name:          "missing name attribute",
			relationships: relationships("sev-3"),
			expected:      "-",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result := polaris.ResolveIncluded(tt.relationships, "/severity/data/id", "taxon", index)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestResolveIncluded_WrongTypePrefix(t *testing.T) {
	t.Parallel()

	// The same id exists under another type; resolution is type-scoped.
	index := polaris.BuildIncludedIndex([]polaris.Resource{
		{Type: "issue-type", ID: "x", Attributes: map[string]any{"name": "Overflow"}},
	})

	relationships := map[string]any{
		"severity": map[string]any{"data": map[string]any{"id": "x"}},
	}

	assert.Equal(t, "-", polaris.ResolveIncluded(relationships, "/severity/data/id", "taxon", index))
}

func TestLookupPath(t *testing.T) {
	t.Parallel()

	tree := map[string]any{
		"severity": map[string]any{
			"data": map[string]any{"id": "sev-1"},
		},
		"runs": []any{
			map[string]any{"id": "run-0"},
			map[string]any{"id": "run-1"},
		},
	}

	value, ok := polaris.LookupPath(tree, "/severity/data/id")
	require.True(t, ok)
	assert.Equal(t, "sev-1", value)

	value, ok = polaris.LookupPath(tree, "runs/1/id")
	require.True(t, ok)
	assert.Equal(t, "run-1", value)

	_, ok = polaris.LookupPath(tree, "/severity/data/missing")
	assert.False(t, ok)

	_, ok = polaris.LookupPath(tree, "/runs/5/id")
	assert.False(t, ok)

	_, ok = polaris.LookupPath(tree, "/runs/notanumber/id")
	assert.False(t, ok)

	_, ok = polaris.LookupPath(tree, "/severity/data/id/too/deep")
	assert.False(t, ok)

	// Empty path returns the tree itself.
	value, ok = polaris.LookupPath(tree, "")
	require.True(t, ok)
	assert.Equal(t, tree, value)
}
