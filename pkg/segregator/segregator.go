// Package segregator implements the Stage Segregator (C6): an LLM-driven
// partition of raw process logic into ordered stages and their
// transitions, with a deterministic fallback when the model's JSON
// cannot be recovered.
package segregator

import (
	"context"
	"encoding/json"
	"regexp"

	"github.com/plcforge/plcforge/internal/domain"
	"github.com/plcforge/plcforge/pkg/llmgateway"
	"github.com/plcforge/plcforge/pkg/retrieval"
)

const (
	temperature = 0.2
	maxTokens   = 3000
)

// Retriever is the narrow manual-context dependency this package needs
// from C1.
type Retriever interface {
	Retrieve(ctx context.Context, corpusID, query string, topK int) ([]domain.RetrievalResult, error)
}

// jsonBlock matches greedily from the first '{' to the last '}' in the
// model's response, mirroring the reference's re.search(r'\{.*\}', DOTALL).
var jsonBlock = regexp.MustCompile(`(?s)\{.*\}`)

type stagePayload struct {
	StageNumber   int    `json:"stage_number"`
	StageName     string `json:"stage_name"`
	StageType     string `json:"stage_type"`
	Description   string `json:"description"`
	OriginalLogic string `json:"original_logic"`
}

type dependencyPayload struct {
	FromStage int    `json:"from_stage"`
	ToStage   int    `json:"to_stage"`
	Condition string `json:"condition"`
}

type planPayload struct {
	Stages       []stagePayload      `json:"stages"`
	Dependencies []dependencyPayload `json:"dependencies"`
}

// Segregate partitions validated logic text into stages and dependencies.
// It never returns an error: a malformed or failed LLM call falls back to
// the two-mandatory-stage plan (spec.md §4.6 step 5).
func Segregate(ctx context.Context, retriever Retriever, client llmgateway.Client, projectID string, logic string, features domain.FlowFeatures) ([]domain.Stage, []domain.StageDependency) {
	manualContext := ""
	if results, err := retriever.Retrieve(ctx, retrieval.CorpusPrimaryManuals, retrievalQuery, retrievalTopK); err == nil {
		manualContext = retrieval.FormatContext(results)
	}

	messages := []llmgateway.Message{
		{Role: llmgateway.RoleSystem, Content: buildSystemMessage(manualContext)},
		{Role: llmgateway.RoleUser, Content: buildUserMessage(logic, features)},
	}

	text, err := client.Chat(ctx, messages, temperature, maxTokens)
	if err == nil {
		if stages, deps, ok := parsePlan(text, projectID); ok {
			return stages, deps
		}
	}

	return fallbackPlan(projectID)
}

func parsePlan(text, projectID string) ([]domain.Stage, []domain.StageDependency, bool) {
	match := jsonBlock.FindString(text)
	if match == "" {
		return nil, nil, false
	}

	var payload planPayload
	if err := json.Unmarshal([]byte(match), &payload); err != nil {
		return nil, nil, false
	}
	if len(payload.Stages) == 0 {
		return nil, nil, false
	}

	stages := make([]domain.Stage, len(payload.Stages))
	for i, s := range payload.Stages {
		stages[i] = domain.Stage{
			ProjectID:     projectID,
			StageNumber:   s.StageNumber,
			StageName:     s.StageName,
			StageType:     domain.StageType(s.StageType),
			Description:   s.Description,
			OriginalLogic: s.OriginalLogic,
			VersionNumber: "1.0.0",
		}
	}

	deps := make([]domain.StageDependency, len(payload.Dependencies))
	for i, d := range payload.Dependencies {
		deps[i] = domain.StageDependency{
			ProjectID: projectID,
			FromStage: d.FromStage,
			ToStage:   d.ToStage,
			Condition: d.Condition,
		}
	}

	return stages, deps, true
}

// fallbackPlan emits exactly the two mandatory stages with a single
// transition, matching the reference's fallback structure verbatim.
func fallbackPlan(projectID string) ([]domain.Stage, []domain.StageDependency) {
	stages := []domain.Stage{
		{
			ProjectID:     projectID,
			StageNumber:   0,
			StageName:     "Idle Stage",
			StageType:     domain.StageIdle,
			Description:   "System idle state with all outputs safe",
			OriginalLogic: "Initial safe state",
			VersionNumber: "1.0.0",
		},
		{
			ProjectID:     projectID,
			StageNumber:   1,
			StageName:     "Safety Check Stage",
			StageType:     domain.StageSafety,
			Description:   "Verify safety conditions and interlocks",
			OriginalLogic: "Safety validation",
			VersionNumber: "1.0.0",
		},
	}
	deps := []domain.StageDependency{
		{ProjectID: projectID, FromStage: 0, ToStage: 1, Condition: "System ready and no faults"},
	}
	return stages, deps
}
