package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/plcforge/plcforge/ent"
	"github.com/plcforge/plcforge/ent/project"
	"github.com/plcforge/plcforge/internal/domain"
)

// ProjectService is the ent-backed implementation of engine.ProjectRepo
// (spec.md §6's ProjectRepo contract).
type ProjectService struct {
	client *ent.Client
}

// NewProjectService wraps an ent client.
func NewProjectService(client *ent.Client) *ProjectService {
	return &ProjectService{client: client}
}

// Create inserts a new project row, assigning a uuid when the caller did
// not supply one.
func (s *ProjectService) Create(ctx context.Context, p domain.Project) (domain.Project, error) {
	if p.Name == "" {
		return domain.Project{}, NewValidationError("name", "required")
	}
	if p.OwnerID == "" {
		return domain.Project{}, NewValidationError("owner_id", "required")
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	status := p.Status
	if status == "" {
		status = domain.ProjectActive
	}

	row, err := s.client.Project.Create().
		SetID(p.ID).
		SetName(p.Name).
		SetDescription(p.Description).
		SetOwnerID(p.OwnerID).
		SetStatus(project.Status(status)).
		Save(ctx)
	if err != nil {
		return domain.Project{}, fmt.Errorf("services: create project: %w", err)
	}
	return projectFromEnt(row), nil
}

// GetByID returns the project by id, or a domain.NotFoundError.
func (s *ProjectService) GetByID(ctx context.Context, id string) (domain.Project, error) {
	row, err := s.client.Project.Get(ctx, id)
	if err != nil {
		if ent.IsNotFound(err) {
			return domain.Project{}, domain.NewNotFound("Project", id)
		}
		return domain.Project{}, fmt.Errorf("services: get project %s: %w", id, err)
	}
	return projectFromEnt(row), nil
}

// ListForUser returns every non-deleted project owned by ownerID.
func (s *ProjectService) ListForUser(ctx context.Context, ownerID string) ([]domain.Project, error) {
	rows, err := s.client.Project.Query().
		Where(project.OwnerIDEQ(ownerID), project.StatusNEQ(project.StatusDeleted)).
		Order(ent.Desc(project.FieldCreatedAt)).
		All(ctx)
	if err != nil {
		return nil, fmt.Errorf("services: list projects for %s: %w", ownerID, err)
	}
	return projectsFromEnt(rows), nil
}

// ListAll returns every non-deleted project, for admin surfaces.
func (s *ProjectService) ListAll(ctx context.Context) ([]domain.Project, error) {
	rows, err := s.client.Project.Query().
		Where(project.StatusNEQ(project.StatusDeleted)).
		Order(ent.Desc(project.FieldCreatedAt)).
		All(ctx)
	if err != nil {
		return nil, fmt.Errorf("services: list all projects: %w", err)
	}
	return projectsFromEnt(rows), nil
}

// HardDelete removes the project row; ent's cascading edge annotations
// (ent/schema/project.go) take its stages, dependencies, files, safety
// manuals, and messages with it.
func (s *ProjectService) HardDelete(ctx context.Context, id string) error {
	if err := s.client.Project.DeleteOneID(id).Exec(ctx); err != nil {
		if ent.IsNotFound(err) {
			return domain.NewNotFound("Project", id)
		}
		return fmt.Errorf("services: delete project %s: %w", id, err)
	}
	return nil
}

func projectFromEnt(row *ent.Project) domain.Project {
	return domain.Project{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
		OwnerID:     row.OwnerID,
		Status:      domain.ProjectStatus(row.Status),
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}

func projectsFromEnt(rows []*ent.Project) []domain.Project {
	out := make([]domain.Project, len(rows))
	for i, row := range rows {
		out[i] = projectFromEnt(row)
	}
	return out
}
