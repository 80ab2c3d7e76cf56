// Package sliceutil provides generic slice manipulation utilities.
package sliceutil

// Deduplicate returns items with duplicate keys removed, keeping the first
// occurrence of each key and the original order. keyFunc derives the
// comparison key, for example a university ID from a seed row.
func Deduplicate[T any, K comparable](items []T, keyFunc func(T) K) []T {
	if len(items) == 0 {
		return items
	}

	seen := make(map[K]struct{}, len(items))
	out := items[:0:0]
	for _, item := range items {
		k := keyFunc(item)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, item)
	}
	return out
}
