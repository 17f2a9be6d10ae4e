package engine

import (
	"context"

	"github.com/plcforge/plcforge/internal/domain"
)

// ProjectRepo is the persistence contract for Project rows (spec.md §6).
type ProjectRepo interface {
	GetByID(ctx context.Context, id string) (domain.Project, error)
	Create(ctx context.Context, project domain.Project) (domain.Project, error)
	ListForUser(ctx context.Context, ownerID string) ([]domain.Project, error)
	ListAll(ctx context.Context) ([]domain.Project, error)
	HardDelete(ctx context.Context, id string) error
}

// StageRepo is the persistence contract for Stage rows.
type StageRepo interface {
	Create(ctx context.Context, stage domain.Stage) (domain.Stage, error)
	GetByID(ctx context.Context, id string) (domain.Stage, error)
	ListByProject(ctx context.Context, projectID string) ([]domain.Stage, error)
	UpdateLogic(ctx context.Context, stageID, editedLogic string) error
	MarkValidated(ctx context.Context, stageID string) error
	MarkFinalized(ctx context.Context, stageID string) error
	DeleteProjectStages(ctx context.Context, projectID string) error
	UpdateVersionMetadata(ctx context.Context, stageID, versionNumber, lastAction string) error
}

// CodeRepo is the persistence contract for GeneratedCode rows.
type CodeRepo interface {
	Create(ctx context.Context, code domain.GeneratedCode) (domain.GeneratedCode, error)
	GetByStage(ctx context.Context, stageID string) (domain.GeneratedCode, error)
	ListByProject(ctx context.Context, projectID string) ([]domain.GeneratedCode, error)
	DeleteByStage(ctx context.Context, stageID string) error
}

// DependencyRepo is the persistence contract for StageDependency rows
// (spec.md §3's StageDependency entity; not named as a distinct repo in
// §6's list, but persisted the same way the other project-owned
// aggregates are).
type DependencyRepo interface {
	ReplaceForProject(ctx context.Context, projectID string, dependencies []domain.StageDependency) ([]domain.StageDependency, error)
	ListByProject(ctx context.Context, projectID string) ([]domain.StageDependency, error)
}

// Retriever is the narrow manual-context dependency shared by every
// LLM-driven component (C1).
type Retriever interface {
	Retrieve(ctx context.Context, corpusID, query string, topK int) ([]domain.RetrievalResult, error)
}
