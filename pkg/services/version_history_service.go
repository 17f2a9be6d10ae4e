package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/plcforge/plcforge/ent"
	"github.com/plcforge/plcforge/ent/versionhistoryentry"
	"github.com/plcforge/plcforge/internal/domain"
)

// VersionHistoryService is the ent-backed implementation of
// versionledger.Store, persisting the append-only audit trail the
// version ledger (C13) computes.
type VersionHistoryService struct {
	client *ent.Client
}

// NewVersionHistoryService wraps an ent client.
func NewVersionHistoryService(client *ent.Client) *VersionHistoryService {
	return &VersionHistoryService{client: client}
}

// Append inserts one immutable history entry. Entries are never updated
// once written, matching the field.Immutable() annotations on every
// column of ent/schema/version_history_entry.go.
func (s *VersionHistoryService) Append(ctx context.Context, entry domain.VersionHistoryEntry) error {
	id := entry.ID
	if id == "" {
		id = uuid.New().String()
	}

	builder := s.client.VersionHistoryEntry.Create().
		SetID(id).
		SetStageID(entry.StageID).
		SetUserID(entry.UserID).
		SetLevel(versionhistoryentry.Level(entry.Level)).
		SetAction(versionhistoryentry.Action(entry.Action)).
		SetVersionNumber(entry.VersionNumber).
		SetTimestamp(entry.Timestamp)
	if entry.CodeID != nil {
		builder = builder.SetCodeID(*entry.CodeID)
	}
	if entry.OldCode != nil {
		builder = builder.SetOldCode(*entry.OldCode)
	}
	if entry.NewCode != nil {
		builder = builder.SetNewCode(*entry.NewCode)
	}
	if entry.Diff != nil {
		builder = builder.SetDiff(*entry.Diff)
	}
	if entry.SessionID != nil {
		builder = builder.SetSessionID(*entry.SessionID)
	}
	if entry.Metadata != nil {
		builder = builder.SetMetadata(entry.Metadata)
	}

	if _, err := builder.Save(ctx); err != nil {
		return fmt.Errorf("services: append version history entry: %w", err)
	}
	return nil
}

// ListByStage returns every history entry recorded against a stage, in
// no particular order; the ledger itself sorts by timestamp.
func (s *VersionHistoryService) ListByStage(ctx context.Context, stageID string) ([]domain.VersionHistoryEntry, error) {
	rows, err := s.client.VersionHistoryEntry.Query().
		Where(versionhistoryentry.StageIDEQ(stageID)).
		All(ctx)
	if err != nil {
		return nil, fmt.Errorf("services: list version history for stage %s: %w", stageID, err)
	}
	out := make([]domain.VersionHistoryEntry, len(rows))
	for i, row := range rows {
		out[i] = versionHistoryFromEnt(row)
	}
	return out, nil
}

func versionHistoryFromEnt(row *ent.VersionHistoryEntry) domain.VersionHistoryEntry {
	return domain.VersionHistoryEntry{
		ID:            row.ID,
		CodeID:        row.CodeID,
		StageID:       row.StageID,
		UserID:        row.UserID,
		Level:         domain.VersionLevel(row.Level),
		Action:        domain.Action(row.Action),
		VersionNumber: row.VersionNumber,
		OldCode:       row.OldCode,
		NewCode:       row.NewCode,
		Diff:          row.Diff,
		SessionID:     row.SessionID,
		Timestamp:     row.Timestamp,
		Metadata:      row.Metadata,
	}
}
