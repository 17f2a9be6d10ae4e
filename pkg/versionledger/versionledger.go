// Package versionledger implements the Version Ledger (C13): an
// append-only audit trail of every mutating action taken against a
// stage, keyed by a monotone per-stage semver.
package versionledger

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/plcforge/plcforge/internal/domain"
)

// ErrVersionNotFound is returned by VersionByNumber when no entry in a
// stage's history carries the requested version number.
var ErrVersionNotFound = errors.New("versionledger: version not found")

// Store is the narrow append/list contract a repository implementation
// must satisfy. Entries are immutable once appended.
type Store interface {
	Append(ctx context.Context, entry domain.VersionHistoryEntry) error
	ListByStage(ctx context.Context, stageID string) ([]domain.VersionHistoryEntry, error)
}

// Ledger is the version-history service: it owns version-number
// derivation and diff computation, and delegates durable storage to a
// Store.
type Ledger struct {
	store Store
}

func New(store Store) *Ledger {
	return &Ledger{store: store}
}

// RecordParams carries the fields needed to append one history entry.
// OldText/NewText feed diff computation for edit_logic and generate_code
// actions only, matching the original service's field selection by
// action type; every other action records OldCode/NewCode as nil.
// CurrentVersion seeds the bump when the stage has no prior ledger
// entries yet — every stage starts at "1.0.0" (spec.md §6), not the
// zero semver, so the caller must pass the stage's own VersionNumber.
type RecordParams struct {
	StageID        string
	UserID         string
	Action         domain.Action
	OldText        string
	NewText        string
	Metadata       map[string]interface{}
	Now            time.Time
	CurrentVersion string
}

// Record increments the stage's version per the bump table, computes a
// unified diff when the action carries one, and appends the resulting
// entry to the store.
func (l *Ledger) Record(ctx context.Context, params RecordParams) (domain.VersionHistoryEntry, error) {
	history, err := l.store.ListByStage(ctx, params.StageID)
	if err != nil {
		return domain.VersionHistoryEntry{}, err
	}
	sorted := append([]domain.VersionHistoryEntry(nil), history...)
	sortByTimestampAsc(sorted)

	current := domain.ParseSemver(params.CurrentVersion)
	if len(sorted) > 0 {
		current = domain.ParseSemver(sorted[len(sorted)-1].VersionNumber)
	}
	next := current.Bump(params.Action)

	entry := domain.VersionHistoryEntry{
		ID:            newEntryID(params.StageID, next),
		StageID:       params.StageID,
		UserID:        params.UserID,
		Level:         domain.VersionEvent,
		Action:        params.Action,
		VersionNumber: next.String(),
		Timestamp:     params.Now,
		Metadata:      params.Metadata,
	}

	switch params.Action {
	case domain.ActionEditLogic, domain.ActionGenerateCode:
		oldText, newText := params.OldText, params.NewText
		entry.OldCode = &oldText
		entry.NewCode = &newText
		diff := UnifiedDiff(oldText, newText)
		entry.Diff = &diff
	}

	if err := l.store.Append(ctx, entry); err != nil {
		return domain.VersionHistoryEntry{}, err
	}
	return entry, nil
}

// History returns a stage's entries ordered newest-first, matching the
// original service's descending-by-timestamp read contract.
func (l *Ledger) History(ctx context.Context, stageID string) ([]domain.VersionHistoryEntry, error) {
	entries, err := l.store.ListByStage(ctx, stageID)
	if err != nil {
		return nil, err
	}
	sorted := append([]domain.VersionHistoryEntry(nil), entries...)
	sortByTimestampAsc(sorted)
	reverse(sorted)
	return sorted, nil
}

// VersionByNumber returns the unique entry recorded at the given version.
func (l *Ledger) VersionByNumber(ctx context.Context, stageID string, version domain.Semver) (domain.VersionHistoryEntry, error) {
	entries, err := l.store.ListByStage(ctx, stageID)
	if err != nil {
		return domain.VersionHistoryEntry{}, err
	}
	want := version.String()
	for _, e := range entries {
		if e.VersionNumber == want {
			return e, nil
		}
	}
	return domain.VersionHistoryEntry{}, ErrVersionNotFound
}

// Summary builds the stage's VersionSummary from its full history.
func (l *Ledger) Summary(ctx context.Context, stageID string) (domain.VersionSummary, error) {
	entries, err := l.store.ListByStage(ctx, stageID)
	if err != nil {
		return domain.VersionSummary{}, err
	}
	sorted := append([]domain.VersionHistoryEntry(nil), entries...)
	sortByTimestampAsc(sorted)
	return domain.SummarizeVersions(stageID, sorted), nil
}

func sortByTimestampAsc(entries []domain.VersionHistoryEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.Before(entries[j].Timestamp)
	})
}

func reverse(entries []domain.VersionHistoryEntry) {
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
}

func newEntryID(stageID string, v domain.Semver) string {
	return fmt.Sprintf("%s@%s", stageID, v.String())
}
