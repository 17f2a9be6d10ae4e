// Package engine implements the Pipeline Orchestrator (C14): the public
// operation surface binding the Input Validator, Flow Analyzer, Stage
// Segregator, Dependency Validator, Stage Validator, Code Generator, Code
// Parser, Global-Label Merger, Safety Interrogator, and Version Ledger
// into the project lifecycle described in spec.md §4.14.
package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/plcforge/plcforge/internal/domain"
	"github.com/plcforge/plcforge/pkg/codegen"
	"github.com/plcforge/plcforge/pkg/codeparser"
	"github.com/plcforge/plcforge/pkg/depgraph"
	"github.com/plcforge/plcforge/pkg/flowanalysis"
	"github.com/plcforge/plcforge/pkg/inputvalidation"
	"github.com/plcforge/plcforge/pkg/labelmerge"
	"github.com/plcforge/plcforge/pkg/llmgateway"
	"github.com/plcforge/plcforge/pkg/safety"
	"github.com/plcforge/plcforge/pkg/segregator"
	"github.com/plcforge/plcforge/pkg/stagevalidator"
	"github.com/plcforge/plcforge/pkg/versionledger"
)

// Clock decouples the engine from time.Now so tests can inject a fixed
// time; production wiring passes time.Now.
type Clock func() time.Time

// Engine is the orchestrator. Every mutating method holds the per-project
// lock for the rest of the operation once it knows the project id;
// methods keyed by a stage id read that stage before taking the lock,
// and StageVersionHistory reads without it.
type Engine struct {
	projects     ProjectRepo
	stages       StageRepo
	codes        CodeRepo
	dependencies DependencyRepo
	versions     *versionledger.Ledger
	retriever    Retriever
	llm          llmgateway.Client
	safetyPref   safety.CorpusPreference
	now          Clock
	locks        projectLocks
	logger       *slog.Logger
}

// New builds an Engine. now supplies the write timestamp for every
// ledger entry; production wiring passes time.Now. dependencies may be
// nil, in which case IngestLogic skips persisting the transition graph
// and returns it to the caller uncommitted (tests exercising only the
// segregation/validation pass do not need a DependencyRepo fake). logger
// is used for entry/exit Info logging and failure Error logging on every
// public operation; a nil logger falls back to slog.Default(), matching
// pkg/mcp/client.go's newClient convention in the teacher.
func New(projects ProjectRepo, stages StageRepo, codes CodeRepo, dependencies DependencyRepo, versions *versionledger.Ledger, retriever Retriever, llm llmgateway.Client, safetyPref safety.CorpusPreference, now Clock, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		projects:     projects,
		stages:       stages,
		codes:        codes,
		dependencies: dependencies,
		versions:     versions,
		retriever:    retriever,
		llm:          llm,
		safetyPref:   safetyPref,
		now:          now,
		logger:       logger,
	}
}

// IngestLogic runs C4→C5→C6→C7 over raw process text and, on success,
// replaces all stages for the project.
func (e *Engine) IngestLogic(ctx context.Context, projectID, text string) (result domain.PlanResult, err error) {
	e.logger.Info("engine: ingestLogic start", "projectId", projectID)
	defer func() { e.logExit("ingestLogic", "projectId", projectID, err) }()

	unlock := e.locks.lock(projectID)
	defer unlock()

	v := inputvalidation.Validate(text)
	if !v.Valid {
		if v.Reason == "empty" {
			return domain.PlanResult{}, domain.NewInputInvalid("empty")
		}
		return domain.PlanResult{}, domain.NewInputInvalidWordCount(v.WordCount, inputvalidation.MinWords, inputvalidation.MaxWords)
	}

	features := flowanalysis.Analyze(text)
	stages, dependencies := segregator.Segregate(ctx, e.retriever, e.llm, projectID, text, features)
	validation := depgraph.Validate(stages, dependencies)

	if err := e.stages.DeleteProjectStages(ctx, projectID); err != nil {
		return domain.PlanResult{}, err
	}
	persisted := make([]domain.Stage, 0, len(stages))
	for _, s := range stages {
		created, err := e.stages.Create(ctx, s)
		if err != nil {
			return domain.PlanResult{}, err
		}
		persisted = append(persisted, created)
	}

	persistedDeps := dependencies
	if e.dependencies != nil {
		replaced, err := e.dependencies.ReplaceForProject(ctx, projectID, dependencies)
		if err != nil {
			return domain.PlanResult{}, err
		}
		persistedDeps = replaced
	}

	return domain.PlanResult{Stages: persisted, Dependencies: persistedDeps, Validation: validation}, nil
}

// EditStageLogic overwrites a stage's edited logic and records an
// edit_logic ledger entry carrying the before/after diff.
func (e *Engine) EditStageLogic(ctx context.Context, stageID, text string) (err error) {
	e.logger.Info("engine: editStageLogic start", "stageId", stageID)
	defer func() { e.logExit("editStageLogic", "stageId", stageID, err) }()

	stage, err := e.stages.GetByID(ctx, stageID)
	if err != nil {
		return err
	}
	unlock := e.locks.lock(stage.ProjectID)
	defer unlock()

	oldText := stage.EffectiveLogic()
	if err := e.stages.UpdateLogic(ctx, stageID, text); err != nil {
		return err
	}
	return e.recordAndStamp(ctx, &stage, versionledger.RecordParams{
		StageID: stageID,
		Action:  domain.ActionEditLogic,
		OldText: oldText,
		NewText: text,
	})
}

// ValidateStage runs C8 and, on a valid outcome, flips isValidated.
func (e *Engine) ValidateStage(ctx context.Context, stageID string) (result domain.ValidationResult, err error) {
	e.logger.Info("engine: validateStage start", "stageId", stageID)
	defer func() { e.logExit("validateStage", "stageId", stageID, err) }()

	stage, err := e.stages.GetByID(ctx, stageID)
	if err != nil {
		return domain.ValidationResult{}, err
	}
	unlock := e.locks.lock(stage.ProjectID)
	defer unlock()

	result, err = stagevalidator.Validate(ctx, e.retriever, e.llm, stage)
	if err != nil {
		return domain.ValidationResult{}, err
	}

	if result.Valid {
		if err := e.stages.MarkValidated(ctx, stageID); err != nil {
			return domain.ValidationResult{}, err
		}
	}

	metadata := map[string]interface{}{
		"validation_status": result.Status,
		"passed":            result.Valid,
		"issue_count":       len(result.CategorizedIssues),
	}
	if err := e.recordAndStamp(ctx, &stage, versionledger.RecordParams{
		StageID:  stageID,
		Action:   domain.ActionValidate,
		Metadata: metadata,
	}); err != nil {
		return domain.ValidationResult{}, err
	}
	return result, nil
}

// FinalizeStage flips isFinalized, requiring a prior successful
// validation.
func (e *Engine) FinalizeStage(ctx context.Context, stageID string) (err error) {
	e.logger.Info("engine: finalizeStage start", "stageId", stageID)
	defer func() { e.logExit("finalizeStage", "stageId", stageID, err) }()

	stage, err := e.stages.GetByID(ctx, stageID)
	if err != nil {
		return err
	}
	unlock := e.locks.lock(stage.ProjectID)
	defer unlock()

	if !stage.IsValidated {
		return domain.NewNotValidated(stageID)
	}
	return e.stages.MarkFinalized(ctx, stageID)
}

// GenerateProjectCode requires every stage in the project to be
// validated, then runs C9→C10 per stage, unifies globals via C11, and
// persists the result. The whole operation is all-or-nothing: if any
// stage's generation fails, no repository write for this project occurs.
func (e *Engine) GenerateProjectCode(ctx context.Context, requestedStageID string) (result domain.GeneratedCode, err error) {
	e.logger.Info("engine: generateProjectCode start", "stageId", requestedStageID)
	defer func() { e.logExit("generateProjectCode", "stageId", requestedStageID, err) }()

	stage, err := e.stages.GetByID(ctx, requestedStageID)
	if err != nil {
		return domain.GeneratedCode{}, err
	}
	projectID := stage.ProjectID

	unlock := e.locks.lock(projectID)
	defer unlock()

	allStages, err := e.stages.ListByProject(ctx, projectID)
	if err != nil {
		return domain.GeneratedCode{}, err
	}

	var unvalidated []string
	for _, s := range allStages {
		if !s.IsValidated {
			unvalidated = append(unvalidated, s.ID)
		}
	}
	if len(unvalidated) > 0 {
		return domain.GeneratedCode{}, domain.NewStagesNotValidated(unvalidated)
	}

	generated := make([]domain.GeneratedCode, 0, len(allStages))
	previous := make(map[string]domain.GeneratedCode, len(allStages))
	for _, s := range allStages {
		if prior, err := e.codes.GetByStage(ctx, s.ID); err == nil {
			previous[s.ID] = prior
		}

		raw, err := codegen.Generate(ctx, e.retriever, e.llm, s)
		if err != nil {
			return domain.GeneratedCode{}, domain.NewGenerationFailed(s.ID, err.Error())
		}
		code := codeparser.Parse(raw, s.StageNumber)
		if len(code.ProgramBlocks) == 0 {
			return domain.GeneratedCode{}, domain.NewGenerationFailed(s.ID, "no program blocks parsed")
		}
		code.ProjectID = projectID
		code.StageID = s.ID
		generated = append(generated, code)
	}

	perStageGlobals := make([][]domain.Label, len(generated))
	for i, code := range generated {
		perStageGlobals[i] = code.GlobalLabels
	}
	unified := labelmerge.MergeAll(perStageGlobals)
	for i := range generated {
		generated[i].GlobalLabels = unified
	}

	for i, code := range generated {
		s := allStages[i]
		if err := e.codes.DeleteByStage(ctx, s.ID); err != nil {
			return domain.GeneratedCode{}, err
		}
		saved, err := e.codes.Create(ctx, code)
		if err != nil {
			return domain.GeneratedCode{}, err
		}
		if s.ID == requestedStageID {
			result = saved
		}

		oldBody := ""
		if prior, ok := previous[s.ID]; ok {
			oldBody = prior.ProgramBody
		}
		stageCopy := s
		if err := e.recordAndStamp(ctx, &stageCopy, versionledger.RecordParams{
			StageID: s.ID,
			Action:  domain.ActionGenerateCode,
			OldText: oldBody,
			NewText: saved.ProgramBody,
		}); err != nil {
			return domain.GeneratedCode{}, err
		}
	}

	return result, nil
}

// UpdateGeneratedCode overwrites a stage's code row with caller-supplied
// text, optionally replacing its label tables, and records an edit_code
// ledger entry.
func (e *Engine) UpdateGeneratedCode(ctx context.Context, stageID, body string, globals, locals []domain.Label) (saved domain.GeneratedCode, err error) {
	e.logger.Info("engine: updateGeneratedCode start", "stageId", stageID)
	defer func() { e.logExit("updateGeneratedCode", "stageId", stageID, err) }()

	stage, err := e.stages.GetByID(ctx, stageID)
	if err != nil {
		return domain.GeneratedCode{}, err
	}
	unlock := e.locks.lock(stage.ProjectID)
	defer unlock()

	existing, err := e.codes.GetByStage(ctx, stageID)
	if err != nil {
		return domain.GeneratedCode{}, err
	}

	updated := existing
	updated.ProgramBody = body
	if globals != nil {
		updated.GlobalLabels = globals
	}
	if locals != nil {
		updated.LocalLabels = locals
	}

	if err := e.codes.DeleteByStage(ctx, stageID); err != nil {
		return domain.GeneratedCode{}, err
	}
	saved, err = e.codes.Create(ctx, updated)
	if err != nil {
		return domain.GeneratedCode{}, err
	}

	if err := e.recordAndStamp(ctx, &stage, versionledger.RecordParams{
		StageID: stageID,
		Action:  domain.ActionEditCode,
		OldText: existing.ProgramBody,
		NewText: body,
	}); err != nil {
		return domain.GeneratedCode{}, err
	}
	return saved, nil
}

// SafetyCheck runs C12 over a stage's current generated code.
func (e *Engine) SafetyCheck(ctx context.Context, stageID string) (result domain.SafetyResult, err error) {
	e.logger.Info("engine: safetyCheck start", "stageId", stageID)
	defer func() { e.logExit("safetyCheck", "stageId", stageID, err) }()

	stage, err := e.stages.GetByID(ctx, stageID)
	if err != nil {
		return domain.SafetyResult{}, err
	}
	unlock := e.locks.lock(stage.ProjectID)
	defer unlock()

	code, err := e.codes.GetByStage(ctx, stageID)
	if err != nil {
		return domain.SafetyResult{}, err
	}

	result, err = safety.Check(ctx, e.retriever, e.llm, stage.ProjectID, e.safetyPref, code)
	if err != nil {
		return domain.SafetyResult{}, err
	}

	metadata := map[string]interface{}{
		"overall_status": result.OverallStatus,
		"risk_level":     result.RiskLevel,
	}
	if err := e.recordAndStamp(ctx, &stage, versionledger.RecordParams{
		StageID:  stageID,
		Action:   domain.ActionSafetyCheck,
		Metadata: metadata,
	}); err != nil {
		return domain.SafetyResult{}, err
	}
	return result, nil
}

// StageVersionHistory returns a stage's ledger, newest entry first.
func (e *Engine) StageVersionHistory(ctx context.Context, stageID string) (history []domain.VersionHistoryEntry, err error) {
	e.logger.Info("engine: stageVersionHistory start", "stageId", stageID)
	defer func() { e.logExit("stageVersionHistory", "stageId", stageID, err) }()

	history, err = e.versions.History(ctx, stageID)
	return history, err
}

// logExit logs the outcome of a public operation: Info on success, Error
// with the typed error's Kind on failure. attrKey/attrValue carry
// whichever of projectId/stageId identifies the operation's target.
func (e *Engine) logExit(op, attrKey string, attrValue any, err error) {
	if err != nil {
		e.logger.Error("engine: "+op+" failed", attrKey, attrValue, "kind", domain.Kind(err), "error", err)
		return
	}
	e.logger.Info("engine: "+op+" done", attrKey, attrValue)
}

// recordAndStamp appends a ledger entry for stage and propagates the
// resulting version number and last-action label back onto the stage
// row, all within the caller's already-held per-project lock.
func (e *Engine) recordAndStamp(ctx context.Context, stage *domain.Stage, params versionledger.RecordParams) error {
	params.UserID = stage.ProjectID
	params.Now = e.now()
	params.CurrentVersion = stage.VersionNumber
	entry, err := e.versions.Record(ctx, params)
	if err != nil {
		return err
	}
	return e.stages.UpdateVersionMetadata(ctx, stage.ID, entry.VersionNumber, string(entry.Action))
}
