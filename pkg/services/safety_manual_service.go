package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/plcforge/plcforge/ent"
	"github.com/plcforge/plcforge/ent/safetymanual"
	"github.com/plcforge/plcforge/internal/domain"
)

// SafetyManualService is the ent-backed implementation of
// SafetyManualRepo (spec.md §6: "identical pattern" to CodeRepo),
// tracking documents ingested into a safety corpus. A nil ProjectID
// marks a manual as belonging to the shared default corpus.
type SafetyManualService struct {
	client *ent.Client
}

// NewSafetyManualService wraps an ent client.
func NewSafetyManualService(client *ent.Client) *SafetyManualService {
	return &SafetyManualService{client: client}
}

// Create inserts a SafetyManual row.
func (s *SafetyManualService) Create(ctx context.Context, manual domain.SafetyManual) (domain.SafetyManual, error) {
	if manual.ID == "" {
		manual.ID = uuid.New().String()
	}
	builder := s.client.SafetyManual.Create().
		SetID(manual.ID).
		SetCorpusID(manual.CorpusID).
		SetFileName(manual.FileName)
	if manual.ProjectID != nil {
		builder = builder.SetProjectID(*manual.ProjectID)
	}

	row, err := builder.Save(ctx)
	if err != nil {
		return domain.SafetyManual{}, fmt.Errorf("services: create safety manual: %w", err)
	}
	return safetyManualFromEnt(row), nil
}

// GetByID returns the manual by id, or a domain.NotFoundError.
func (s *SafetyManualService) GetByID(ctx context.Context, id string) (domain.SafetyManual, error) {
	row, err := s.client.SafetyManual.Get(ctx, id)
	if err != nil {
		if ent.IsNotFound(err) {
			return domain.SafetyManual{}, domain.NewNotFound("SafetyManual", id)
		}
		return domain.SafetyManual{}, fmt.Errorf("services: get safety manual %s: %w", id, err)
	}
	return safetyManualFromEnt(row), nil
}

// ListByProject returns the manuals uploaded to a project's own corpus.
// It does not include the shared default corpus; ListDefault returns
// those. safety.Check likewise retrieves from the single corpus its
// CorpusPreference selects and does not fall back from one to the other.
func (s *SafetyManualService) ListByProject(ctx context.Context, projectID string) ([]domain.SafetyManual, error) {
	rows, err := s.client.SafetyManual.Query().
		Where(safetymanual.ProjectIDEQ(projectID)).
		All(ctx)
	if err != nil {
		return nil, fmt.Errorf("services: list safety manuals for project %s: %w", projectID, err)
	}
	return safetyManualsFromEnt(rows), nil
}

// ListDefault returns the manuals uploaded to the shared default corpus
// (those with no owning project).
func (s *SafetyManualService) ListDefault(ctx context.Context) ([]domain.SafetyManual, error) {
	rows, err := s.client.SafetyManual.Query().
		Where(safetymanual.ProjectIDIsNil()).
		All(ctx)
	if err != nil {
		return nil, fmt.Errorf("services: list default safety manuals: %w", err)
	}
	return safetyManualsFromEnt(rows), nil
}

func safetyManualFromEnt(row *ent.SafetyManual) domain.SafetyManual {
	return domain.SafetyManual{
		ID:        row.ID,
		ProjectID: row.ProjectID,
		CorpusID:  row.CorpusID,
		FileName:  row.FileName,
		CreatedAt: row.CreatedAt,
	}
}

func safetyManualsFromEnt(rows []*ent.SafetyManual) []domain.SafetyManual {
	out := make([]domain.SafetyManual, len(rows))
	for i, row := range rows {
		out[i] = safetyManualFromEnt(row)
	}
	return out
}
