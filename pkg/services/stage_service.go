package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/plcforge/plcforge/ent"
	"github.com/plcforge/plcforge/ent/stage"
	"github.com/plcforge/plcforge/internal/domain"
)

// StageService is the ent-backed implementation of engine.StageRepo.
type StageService struct {
	client *ent.Client
}

// NewStageService wraps an ent client.
func NewStageService(client *ent.Client) *StageService {
	return &StageService{client: client}
}

// Create inserts a new stage row, assigning a uuid when the caller did
// not supply one (matching the segregator's convention of leaving ID
// empty for the repository to fill in).
func (s *StageService) Create(ctx context.Context, st domain.Stage) (domain.Stage, error) {
	if st.ID == "" {
		st.ID = uuid.New().String()
	}
	version := st.VersionNumber
	if version == "" {
		version = "1.0.0"
	}

	builder := s.client.Stage.Create().
		SetID(st.ID).
		SetProjectID(st.ProjectID).
		SetStageNumber(st.StageNumber).
		SetStageName(st.StageName).
		SetStageType(string(st.StageType)).
		SetDescription(st.Description).
		SetOriginalLogic(st.OriginalLogic).
		SetIsValidated(st.IsValidated).
		SetIsFinalized(st.IsFinalized).
		SetVersionNumber(version)
	if st.EditedLogic != nil {
		builder = builder.SetEditedLogic(*st.EditedLogic)
	}
	if st.LastAction != nil {
		builder = builder.SetLastAction(*st.LastAction)
	}
	if st.LastActionTimestamp != nil {
		builder = builder.SetLastActionTimestamp(*st.LastActionTimestamp)
	}

	row, err := builder.Save(ctx)
	if err != nil {
		return domain.Stage{}, fmt.Errorf("services: create stage: %w", err)
	}
	return stageFromEnt(row), nil
}

// GetByID returns the stage by id, or a domain.NotFoundError.
func (s *StageService) GetByID(ctx context.Context, id string) (domain.Stage, error) {
	row, err := s.client.Stage.Get(ctx, id)
	if err != nil {
		if ent.IsNotFound(err) {
			return domain.Stage{}, domain.NewNotFound("Stage", id)
		}
		return domain.Stage{}, fmt.Errorf("services: get stage %s: %w", id, err)
	}
	return stageFromEnt(row), nil
}

// ListByProject returns a project's stages ordered by stage_number.
func (s *StageService) ListByProject(ctx context.Context, projectID string) ([]domain.Stage, error) {
	rows, err := s.client.Stage.Query().
		Where(stage.ProjectIDEQ(projectID)).
		Order(ent.Asc(stage.FieldStageNumber)).
		All(ctx)
	if err != nil {
		return nil, fmt.Errorf("services: list stages for project %s: %w", projectID, err)
	}
	out := make([]domain.Stage, len(rows))
	for i, row := range rows {
		out[i] = stageFromEnt(row)
	}
	return out, nil
}

// UpdateLogic overwrites a stage's editedLogic column. originalLogic is
// immutable after creation (spec.md §3) and has no update path here.
func (s *StageService) UpdateLogic(ctx context.Context, stageID, editedLogic string) error {
	err := s.client.Stage.UpdateOneID(stageID).
		SetEditedLogic(editedLogic).
		Exec(ctx)
	if err != nil {
		if ent.IsNotFound(err) {
			return domain.NewNotFound("Stage", stageID)
		}
		return fmt.Errorf("services: update stage logic %s: %w", stageID, err)
	}
	return nil
}

// MarkValidated flips isValidated true.
func (s *StageService) MarkValidated(ctx context.Context, stageID string) error {
	err := s.client.Stage.UpdateOneID(stageID).
		SetIsValidated(true).
		Exec(ctx)
	if err != nil {
		if ent.IsNotFound(err) {
			return domain.NewNotFound("Stage", stageID)
		}
		return fmt.Errorf("services: mark stage validated %s: %w", stageID, err)
	}
	return nil
}

// MarkFinalized flips isFinalized true. The precondition that the stage
// is already validated is enforced by the engine (spec.md §4.14), not
// here.
func (s *StageService) MarkFinalized(ctx context.Context, stageID string) error {
	err := s.client.Stage.UpdateOneID(stageID).
		SetIsFinalized(true).
		Exec(ctx)
	if err != nil {
		if ent.IsNotFound(err) {
			return domain.NewNotFound("Stage", stageID)
		}
		return fmt.Errorf("services: mark stage finalized %s: %w", stageID, err)
	}
	return nil
}

// DeleteProjectStages removes every stage belonging to projectID,
// preparing for a fresh ingestLogic pass (spec.md §4.6 postcondition).
func (s *StageService) DeleteProjectStages(ctx context.Context, projectID string) error {
	_, err := s.client.Stage.Delete().
		Where(stage.ProjectIDEQ(projectID)).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("services: delete stages for project %s: %w", projectID, err)
	}
	return nil
}

// UpdateVersionMetadata propagates the version ledger's freshly-recorded
// semver and action label back onto the stage row (spec.md §4.13/§4.14's
// recordAndStamp step).
func (s *StageService) UpdateVersionMetadata(ctx context.Context, stageID, versionNumber, lastAction string) error {
	err := s.client.Stage.UpdateOneID(stageID).
		SetVersionNumber(versionNumber).
		SetLastAction(lastAction).
		SetLastActionTimestamp(time.Now()).
		Exec(ctx)
	if err != nil {
		if ent.IsNotFound(err) {
			return domain.NewNotFound("Stage", stageID)
		}
		return fmt.Errorf("services: update version metadata %s: %w", stageID, err)
	}
	return nil
}

func stageFromEnt(row *ent.Stage) domain.Stage {
	st := domain.Stage{
		ID:            row.ID,
		ProjectID:     row.ProjectID,
		StageNumber:   row.StageNumber,
		StageName:     row.StageName,
		StageType:     domain.StageType(row.StageType),
		Description:   row.Description,
		OriginalLogic: row.OriginalLogic,
		IsValidated:   row.IsValidated,
		IsFinalized:   row.IsFinalized,
		VersionNumber: row.VersionNumber,
	}
	if row.EditedLogic != nil {
		st.EditedLogic = row.EditedLogic
	}
	if row.LastAction != nil {
		st.LastAction = row.LastAction
	}
	if row.LastActionTimestamp != nil {
		st.LastActionTimestamp = row.LastActionTimestamp
	}
	return st
}
