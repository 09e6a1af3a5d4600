// Package merge implements the recursive merge primitive underlying theme
// resolution. Values carry one of a closed set of tags (scalar, sequence,
// mapping, func) and merge rules are defined per tag: mappings merge
// recursively, sequences and scalars replace, functions compose.
package merge

import "fmt"

// PathError reports a merge between incompatible kinds, identifying the
// offending path inside the merged structure.
type PathError struct {
	Path     string
	Earlier  Kind
	Later    Kind
}

func (e *PathError) Error() string {
	path := e.Path
	if path == "" {
		path = "(root)"
	}
	return fmt.Sprintf("merge error at %s: cannot merge %s into %s", path, e.Later, e.Earlier)
}

// Merge merges values strictly left to right; the earliest argument has the
// lowest precedence. Nil values and empty-string scalars are skipped as no-op
// layers. Functions meeting at the same path compose: the result invokes the
// earlier function, then the later one, and merges their outputs with the
// later winning.
func Merge(values ...*Value) (*Value, error) {
	return mergeAll(values, true)
}

// MergeReplace behaves like Merge except that function values replace rather
// than compose, for callers that want a shallow override of a function entry.
func MergeReplace(values ...*Value) (*Value, error) {
	return mergeAll(values, false)
}

func mergeAll(values []*Value, composeFns bool) (*Value, error) {
	result := Nil()
	for _, v := range values {
		if v.IsNil() {
			continue
		}
		merged, err := mergeTwo("", result, v, composeFns)
		if err != nil {
			return nil, err
		}
		result = merged
	}
	return result, nil
}

func mergeTwo(path string, earlier, later *Value, composeFns bool) (*Value, error) {
	if earlier.IsNil() {
		return later, nil
	}
	if later.IsNil() {
		return earlier, nil
	}

	if earlier.Kind() == KindMapping && later.Kind() == KindMapping {
		return mergeMappings(path, earlier, later, composeFns)
	}
	if earlier.Kind() == KindFunc && later.Kind() == KindFunc {
		if !composeFns {
			return later, nil
		}
		return FuncOf(composeFuncs(earlier.fn, later.fn)), nil
	}

	// A mapping on exactly one side is a shape mismatch, not an override.
	if earlier.Kind() == KindMapping || later.Kind() == KindMapping {
		return nil, &PathError{Path: path, Earlier: earlier.Kind(), Later: later.Kind()}
	}

	// Scalars and sequences: the later value replaces the earlier outright.
	return later, nil
}

func mergeMappings(path string, earlier, later *Value, composeFns bool) (*Value, error) {
	entries := make(map[string]*Value, len(earlier.mapping)+len(later.mapping))
	for k, v := range earlier.mapping {
		entries[k] = v
	}
	for k, v := range later.mapping {
		existing, ok := entries[k]
		if !ok || existing.IsNil() {
			if !v.IsNil() {
				entries[k] = v
			}
			continue
		}
		if v.IsNil() {
			continue
		}
		merged, err := mergeTwo(childPath(path, k), existing, v, composeFns)
		if err != nil {
			return nil, err
		}
		entries[k] = merged
	}
	return &Value{kind: KindMapping, mapping: entries}, nil
}

// composeFuncs chains two function entries: the earlier result is computed
// first and the later result is merged over it.
func composeFuncs(earlier, later Func) Func {
	return func(args ...any) (*Value, error) {
		first, err := earlier(args...)
		if err != nil {
			return nil, err
		}
		second, err := later(args...)
		if err != nil {
			return nil, err
		}
		return Merge(first, second)
	}
}

func childPath(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + "." + key
}
