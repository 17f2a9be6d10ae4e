package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/plcforge/plcforge/ent"
	"github.com/plcforge/plcforge/ent/generatedcode"
	"github.com/plcforge/plcforge/internal/domain"
)

// CodeService is the ent-backed implementation of engine.CodeRepo.
type CodeService struct {
	client *ent.Client
}

// NewCodeService wraps an ent client.
func NewCodeService(client *ent.Client) *CodeService {
	return &CodeService{client: client}
}

// Create inserts a GeneratedCode row. The global_labels/local_labels/
// program_blocks/functions/function_blocks columns are JSON (ent/schema's
// field.JSON("global_labels", []map[string]interface{}{}) etc.), so
// typed label/block slices round-trip through toMaps before the Set call.
func (s *CodeService) Create(ctx context.Context, code domain.GeneratedCode) (domain.GeneratedCode, error) {
	if code.ID == "" {
		code.ID = uuid.New().String()
	}
	builder := s.client.GeneratedCode.Create().
		SetID(code.ID).
		SetProjectID(code.ProjectID).
		SetStageID(code.StageID).
		SetGlobalLabels(toMaps(code.GlobalLabels)).
		SetLocalLabels(toMaps(code.LocalLabels)).
		SetProgramBody(code.ProgramBody).
		SetProgramBlocks(toMaps(code.ProgramBlocks)).
		SetFunctions(toMaps(code.Functions)).
		SetFunctionBlocks(toMaps(code.FunctionBlocks)).
		SetProgramName(code.ProgramName).
		SetExecutionType(string(code.ExecutionType))
	if code.CodeMetadata != nil {
		builder = builder.SetCodeMetadata(code.CodeMetadata)
	}

	row, err := builder.Save(ctx)
	if err != nil {
		return domain.GeneratedCode{}, fmt.Errorf("services: create generated code: %w", err)
	}
	return codeFromEnt(row), nil
}

// GetByStage returns the current GeneratedCode row for a stage (spec.md
// §3's "at most one current row per stageId" invariant).
func (s *CodeService) GetByStage(ctx context.Context, stageID string) (domain.GeneratedCode, error) {
	row, err := s.client.GeneratedCode.Query().
		Where(generatedcode.StageIDEQ(stageID)).
		Only(ctx)
	if err != nil {
		if ent.IsNotFound(err) {
			return domain.GeneratedCode{}, domain.NewNotFound("GeneratedCode", stageID)
		}
		return domain.GeneratedCode{}, fmt.Errorf("services: get generated code for stage %s: %w", stageID, err)
	}
	return codeFromEnt(row), nil
}

// ListByProject returns every stage's current GeneratedCode row for a
// project.
func (s *CodeService) ListByProject(ctx context.Context, projectID string) ([]domain.GeneratedCode, error) {
	rows, err := s.client.GeneratedCode.Query().
		Where(generatedcode.ProjectIDEQ(projectID)).
		All(ctx)
	if err != nil {
		return nil, fmt.Errorf("services: list generated code for project %s: %w", projectID, err)
	}
	out := make([]domain.GeneratedCode, len(rows))
	for i, row := range rows {
		out[i] = codeFromEnt(row)
	}
	return out, nil
}

// DeleteByStage removes the current GeneratedCode row for a stage, ahead
// of a regeneration (spec.md §4.14: "delete prior GeneratedCode per
// stage; persist new rows").
func (s *CodeService) DeleteByStage(ctx context.Context, stageID string) error {
	_, err := s.client.GeneratedCode.Delete().
		Where(generatedcode.StageIDEQ(stageID)).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("services: delete generated code for stage %s: %w", stageID, err)
	}
	return nil
}

func codeFromEnt(row *ent.GeneratedCode) domain.GeneratedCode {
	return domain.GeneratedCode{
		ID:             row.ID,
		ProjectID:      row.ProjectID,
		StageID:        row.StageID,
		GlobalLabels:   fromMaps[domain.Label](row.GlobalLabels),
		LocalLabels:    fromMaps[domain.Label](row.LocalLabels),
		ProgramBody:    row.ProgramBody,
		ProgramBlocks:  fromMaps[domain.ProgramBlock](row.ProgramBlocks),
		Functions:      fromMaps[domain.Function](row.Functions),
		FunctionBlocks: fromMaps[domain.FunctionBlock](row.FunctionBlocks),
		ProgramName:    row.ProgramName,
		ExecutionType:  domain.ExecutionType(row.ExecutionType),
		CodeMetadata:   row.CodeMetadata,
		CreatedAt:      row.CreatedAt,
	}
}
