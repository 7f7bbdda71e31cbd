// Package views derives what each page shows from the in-memory collections:
// role scoping, search and filters, filter choices and row selection.
package views

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// CountLabel renders the "ทั้งหมด N <unit>" caption, marking filtered lists.
func CountLabel(n int, unit string, filtered bool) string {
	label := fmt.Sprintf("ทั้งหมด %d %s", n, unit)
	if filtered {
		label += " (กรองแล้ว)"
	}
	return label
}

func containsFold(s, query string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(query))
}

// uniqueInOrder keeps the first occurrence of every non-zero value.
func uniqueInOrder[T any, K comparable](items []T, key func(T) K) []K {
	var zero K
	seen := make(map[K]struct{})
	var out []K
	for _, item := range items {
		k := key(item)
		if k == zero {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}

func uniqueSorted[T any, K cmp.Ordered](items []T, key func(T) K, descending bool) []K {
	out := uniqueInOrder(items, key)
	slices.Sort(out)
	if descending {
		slices.Reverse(out)
	}
	return out
}

func filter[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}
