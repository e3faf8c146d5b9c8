// Package attribution resolves free-text speaker labels to roster rows.
package attribution

// KeyFunc extracts one name key from a row.
type KeyFunc[T any] func(T) string

// Picker chooses among the rows matching a key. Returning false makes the resolver
// fall through to the next key tier.
type Picker[T any] func(matches []T) (T, bool)

// First picks the first match.
func First[T any](matches []T) (T, bool) {
	return matches[0], true
}

// Index holds one key → rows map per tier, rows in table order.
type Index[T any] struct {
	tiers []map[string][]T
}

// NewIndex builds the per-tier maps. Empty keys are not indexed.
func NewIndex[T any](rows []T, keys []KeyFunc[T]) *Index[T] {
	idx := &Index[T]{tiers: make([]map[string][]T, len(keys))}
	for i, key := range keys {
		m := make(map[string][]T, len(rows))
		for _, r := range rows {
			if k := key(r); k != "" {
				m[k] = append(m[k], r)
			}
		}
		idx.tiers[i] = m
	}
	return idx
}

// Resolve tries each key tier in order. Rows whose key equals label are passed to
// pick; the first successful pick wins. Pass First when any match will do. An
// empty label never matches.
func (idx *Index[T]) Resolve(label string, pick Picker[T]) (T, bool) {
	for _, m := range idx.tiers {
		matches := m[label]
		if len(matches) == 0 {
			continue
		}
		if v, ok := pick(matches); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}
