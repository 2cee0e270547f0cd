package polaris

import (
	"strconv"
	"strings"
)

// DisplayAttribute is the attribute read from an included resource when
// resolving a relationship for display.
const DisplayAttribute = "name"

// MissingValue is the placeholder returned when a relationship cannot be
// resolved. Relationships are frequently absent by design, so resolution
// degrades to this value instead of failing.
const MissingValue = "-"

// IncludedKey forms the index key for an included resource. IDs are only
// unique per type, so the type is part of the key.
func IncludedKey(resourceType, id string) string {
	return resourceType + ":" + id
}

// BuildIncludedIndex indexes side-loaded resources by type and id. Included
// sets are not deduplicated across pages; when the same (type, id) appears
// more than once the last entry wins, which is fine because included copies
// of one resource are attribute-identical.
func BuildIncludedIndex(included []Resource) map[string]Resource {
	index := make(map[string]Resource, len(included))

	for _, res := range included {
		if res.Type == "" || res.ID == "" {
			continue
		}

		index[IncludedKey(res.Type, res.ID)] = res
	}

	return index
}

// ResolveIncluded looks up a relationship reference (a slash-separated path
// into the relationship block, e.g. "/severity/data/id") and returns the name
// attribute of the referenced included resource. Every failure mode (absent
// relationship, id missing from the index, missing or non-string name)
// returns MissingValue.
func ResolveIncluded(relationships map[string]any, relPath, typePrefix string, index map[string]Resource) string {
	value, ok := LookupPath(relationships, relPath)
	if !ok {
		return MissingValue
	}

	id, ok := value.(string)
	if !ok {
		return MissingValue
	}

	res, ok := index[IncludedKey(typePrefix, id)]
	if !ok {
		return MissingValue
	}

	name, ok := res.Attributes[DisplayAttribute].(string)
	if !ok {
		return MissingValue
	}

	return name
}

// LookupPath walks a slash-separated path through a tree of decoded JSON
// values (maps, slices, scalars). Path segments index maps by key and slices
// by decimal position. A leading slash is optional; the empty path returns
// the value itself.
func LookupPath(value any, path string) (any, bool) {
	current := value

	for _, segment := range strings.Split(strings.TrimPrefix(path, "/"), "/") {
		if segment == "" {
			continue
		}

		switch node := current.(type) {
		case map[string]any:
			next, ok := node[segment]
			if !ok {
				return nil, false
			}

			current = next
		case []any:
			i, err := strconv.Atoi(segment)
			if err != nil || i < 0 || i >= len(node) {
				return nil, false
			}

			current = node[i]
		default:
			return nil, false
		}
	}

	if current == nil {
		return nil, false
	}

	return current, true
}
