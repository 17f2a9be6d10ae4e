package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/plcforge/plcforge/ent"
	"github.com/plcforge/plcforge/ent/stagedependency"
	"github.com/plcforge/plcforge/internal/domain"
)

// DependencyService is the ent-backed implementation of
// engine.DependencyRepo, persisting the StageDependency rows C6 (Stage
// Segregator) produces alongside a project's stages.
type DependencyService struct {
	client *ent.Client
}

// NewDependencyService wraps an ent client.
func NewDependencyService(client *ent.Client) *DependencyService {
	return &DependencyService{client: client}
}

// ReplaceForProject deletes a project's current dependency set and
// inserts the supplied one, mirroring the stage-replacement step of
// ingestLogic (spec.md §4.6 postcondition: "caller deletes any prior
// stages for the project and persists the returned list").
func (s *DependencyService) ReplaceForProject(ctx context.Context, projectID string, dependencies []domain.StageDependency) ([]domain.StageDependency, error) {
	_, err := s.client.StageDependency.Delete().
		Where(stagedependency.ProjectIDEQ(projectID)).
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("services: delete dependencies for project %s: %w", projectID, err)
	}

	out := make([]domain.StageDependency, 0, len(dependencies))
	for _, dep := range dependencies {
		id := dep.ID
		if id == "" {
			id = uuid.New().String()
		}
		row, err := s.client.StageDependency.Create().
			SetID(id).
			SetProjectID(projectID).
			SetFromStage(dep.FromStage).
			SetToStage(dep.ToStage).
			SetCondition(dep.Condition).
			Save(ctx)
		if err != nil {
			return nil, fmt.Errorf("services: create dependency %d->%d: %w", dep.FromStage, dep.ToStage, err)
		}
		out = append(out, dependencyFromEnt(row))
	}
	return out, nil
}

// ListByProject returns a project's current dependency set.
func (s *DependencyService) ListByProject(ctx context.Context, projectID string) ([]domain.StageDependency, error) {
	rows, err := s.client.StageDependency.Query().
		Where(stagedependency.ProjectIDEQ(projectID)).
		All(ctx)
	if err != nil {
		return nil, fmt.Errorf("services: list dependencies for project %s: %w", projectID, err)
	}
	out := make([]domain.StageDependency, len(rows))
	for i, row := range rows {
		out[i] = dependencyFromEnt(row)
	}
	return out, nil
}

func dependencyFromEnt(row *ent.StageDependency) domain.StageDependency {
	return domain.StageDependency{
		ID:        row.ID,
		ProjectID: row.ProjectID,
		FromStage: row.FromStage,
		ToStage:   row.ToStage,
		Condition: row.Condition,
	}
}
