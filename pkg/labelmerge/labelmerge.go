// Package labelmerge implements the Global-Label Merger (C11): after a
// regeneration cycle, every GeneratedCode row for a project must agree on
// the same globalLabels list. Merge(existing, new) computes the union;
// the engine (C14) is responsible for writing it back to every row.
package labelmerge

import "github.com/plcforge/plcforge/internal/domain"

// Merge returns the union of existing and new, deduplicated by identity
// key (device if set, else name), preserving first-seen order. Existing
// labels always win ties over same-identity labels from new.
func Merge(existing, next []domain.Label) []domain.Label {
	seen := make(map[string]bool, len(existing)+len(next))
	merged := make([]domain.Label, 0, len(existing)+len(next))

	for _, label := range existing {
		key := label.IdentityKey()
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		merged = append(merged, label)
	}
	for _, label := range next {
		key := label.IdentityKey()
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		merged = append(merged, label)
	}

	return merged
}

// MergeAll folds Merge across every stage's freshly generated global
// label set, in stage order, producing the single unified list the
// engine writes back to every GeneratedCode row.
func MergeAll(perStage [][]domain.Label) []domain.Label {
	var unified []domain.Label
	for _, labels := range perStage {
		unified = Merge(unified, labels)
	}
	return unified
}
