package blog

import (
	"cmp"
	"slices"
)

// Reconcile computes the minimal change turning current into desired.
// Desired values absent from valid are dropped, duplicates are ignored.
// Both results are sorted ascending and contain no duplicates; values present
// in current and in the filtered desired set appear in neither.
func Reconcile[T cmp.Ordered](current, desired, valid []T) (toAdd, toRemove []T) {
	validSet := setOf(valid)
	currentSet := setOf(current)

	wanted := make(map[T]struct{}, len(desired))
	for _, v := range desired {
		if _, ok := validSet[v]; ok {
			wanted[v] = struct{}{}
		}
	}

	toAdd = []T{}
	for v := range wanted {
		if _, ok := currentSet[v]; !ok {
			toAdd = append(toAdd, v)
		}
	}

	toRemove = []T{}
	for v := range currentSet {
		if _, ok := wanted[v]; !ok {
			toRemove = append(toRemove, v)
		}
	}

	slices.Sort(toAdd)
	slices.Sort(toRemove)

	return toAdd, toRemove
}

func setOf[T comparable](values []T) map[T]struct{} {
	set := make(map[T]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
