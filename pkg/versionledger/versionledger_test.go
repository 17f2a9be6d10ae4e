package versionledger

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plcforge/plcforge/internal/domain"
)

type memStore struct {
	mu      sync.Mutex
	entries []domain.VersionHistoryEntry
}

func (m *memStore) Append(_ context.Context, entry domain.VersionHistoryEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entry)
	return nil
}

func (m *memStore) ListByStage(_ context.Context, stageID string) ([]domain.VersionHistoryEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.VersionHistoryEntry
	for _, e := range m.entries {
		if e.StageID == stageID {
			out = append(out, e)
		}
	}
	return out, nil
}

func TestRecord_FirstGenerateCodeBumpsMinorFromBaseline(t *testing.T) {
	store := &memStore{}
	ledger := New(store)

	entry, err := ledger.Record(context.Background(), RecordParams{
		StageID:        "s1",
		UserID:         "u1",
		Action:         domain.ActionGenerateCode,
		OldText:        "",
		NewText:        "PROGRAM\nEND_PROGRAM",
		Now:            time.Unix(1000, 0),
		CurrentVersion: "1.0.0",
	})

	require.NoError(t, err)
	assert.Equal(t, "1.1.0", entry.VersionNumber)
	require.NotNil(t, entry.Diff)
	assert.Contains(t, *entry.Diff, "+PROGRAM")
}

func TestRecord_EditLogicBumpsPatchOnly(t *testing.T) {
	store := &memStore{}
	ledger := New(store)
	ctx := context.Background()

	_, err := ledger.Record(ctx, RecordParams{
		StageID: "s1", Action: domain.ActionGenerateCode,
		NewText: "A", Now: time.Unix(1000, 0), CurrentVersion: "1.0.0",
	})
	require.NoError(t, err)

	entry, err := ledger.Record(ctx, RecordParams{
		StageID: "s1", Action: domain.ActionEditLogic,
		OldText: "A", NewText: "B", Now: time.Unix(1001, 0), CurrentVersion: "1.0.0",
	})
	require.NoError(t, err)
	assert.Equal(t, "1.1.1", entry.VersionNumber)
}

func TestRecord_ValidateAndSafetyCheckDoNotCarryDiff(t *testing.T) {
	store := &memStore{}
	ledger := New(store)
	ctx := context.Background()

	entry, err := ledger.Record(ctx, RecordParams{
		StageID: "s1", Action: domain.ActionValidate, Now: time.Unix(1000, 0), CurrentVersion: "1.0.0",
	})
	require.NoError(t, err)
	assert.Equal(t, "1.1.0", entry.VersionNumber)
	assert.Nil(t, entry.Diff)
	assert.Nil(t, entry.OldCode)
	assert.Nil(t, entry.NewCode)

	entry2, err := ledger.Record(ctx, RecordParams{
		StageID: "s1", Action: domain.ActionSafetyCheck, Now: time.Unix(1001, 0), CurrentVersion: "1.0.0",
	})
	require.NoError(t, err)
	assert.Equal(t, "1.1.1", entry2.VersionNumber)
	assert.Nil(t, entry2.Diff)
}

func TestHistory_OrderedNewestFirst(t *testing.T) {
	store := &memStore{}
	ledger := New(store)
	ctx := context.Background()

	for i, action := range []domain.Action{domain.ActionGenerateCode, domain.ActionEditLogic, domain.ActionEditLogic} {
		_, err := ledger.Record(ctx, RecordParams{
			StageID: "s1", Action: action, Now: time.Unix(int64(1000+i), 0), CurrentVersion: "1.0.0",
		})
		require.NoError(t, err)
	}

	history, err := ledger.History(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, "1.1.2", history[0].VersionNumber)
	assert.Equal(t, "1.1.1", history[1].VersionNumber)
	assert.Equal(t, "1.1.0", history[2].VersionNumber)
}

func TestVersionByNumber_ReturnsMatchingEntry(t *testing.T) {
	store := &memStore{}
	ledger := New(store)
	ctx := context.Background()

	_, err := ledger.Record(ctx, RecordParams{StageID: "s1", Action: domain.ActionGenerateCode, Now: time.Unix(1000, 0), CurrentVersion: "1.0.0"})
	require.NoError(t, err)

	entry, err := ledger.VersionByNumber(ctx, "s1", domain.Semver{Major: 1, Minor: 1})
	require.NoError(t, err)
	assert.Equal(t, domain.ActionGenerateCode, entry.Action)
}

func TestVersionByNumber_UnknownVersionIsError(t *testing.T) {
	store := &memStore{}
	ledger := New(store)
	_, err := ledger.VersionByNumber(context.Background(), "s1", domain.Semver{Minor: 9})
	require.ErrorIs(t, err, ErrVersionNotFound)
}

func TestSummary_ReflectsLatestEntry(t *testing.T) {
	store := &memStore{}
	ledger := New(store)
	ctx := context.Background()

	_, err := ledger.Record(ctx, RecordParams{StageID: "s1", Action: domain.ActionGenerateCode, Now: time.Unix(1000, 0), CurrentVersion: "1.0.0"})
	require.NoError(t, err)
	_, err = ledger.Record(ctx, RecordParams{StageID: "s1", Action: domain.ActionEditLogic, Now: time.Unix(1001, 0), CurrentVersion: "1.0.0"})
	require.NoError(t, err)

	summary, err := ledger.Summary(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "1.1.1", summary.CurrentVersion)
	assert.Equal(t, 2, summary.EntryCount)
	require.NotNil(t, summary.LastAction)
	assert.Equal(t, domain.ActionEditLogic, *summary.LastAction)
}
