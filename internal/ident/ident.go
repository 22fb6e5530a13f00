// Package ident assigns positive integer identifiers to entities that lack one.
package ident

// Identifiable is an entity with an optional positive identifier. Zero means unassigned.
type Identifiable interface {
	Identifier() int
	SetIdentifier(id int)
}

// Assign gives every unassigned item an identifier above the current maximum, in order.
// Existing identifiers are left untouched, so the result is unique as long as the
// existing identifiers were.
func Assign[T Identifiable](items []T) {
	next := 1
	for _, it := range items {
		if id := it.Identifier(); id >= next {
			next = id + 1
		}
	}
	for _, it := range items {
		if it.Identifier() == 0 {
			it.SetIdentifier(next)
			next++
		}
	}
}

// Duplicates returns the assigned identifiers that occur more than once, in first-seen order.
func Duplicates[T Identifiable](items []T) []int {
	seen := make(map[int]int, len(items))
	var dups []int
	for _, it := range items {
		id := it.Identifier()
		if id == 0 {
			continue
		}
		seen[id]++
		if seen[id] == 2 {
			dups = append(dups, id)
		}
	}
	return dups
}
