// Package stagevalidator implements the Stage Validator (C8): an
// LLM-driven per-stage semantic/logical/safety check that returns a
// structured triage, parsed by an explicit state machine rather than a
// general-purpose grammar (spec.md §9).
package stagevalidator

import (
	"context"
	"strings"

	"github.com/plcforge/plcforge/internal/domain"
	"github.com/plcforge/plcforge/pkg/llmgateway"
	"github.com/plcforge/plcforge/pkg/retrieval"
)

const (
	temperature = 0.1
	maxTokens   = 2000
)

// Retriever is the narrow manual-context dependency this package needs
// from C1.
type Retriever interface {
	Retrieve(ctx context.Context, corpusID, query string, topK int) ([]domain.RetrievalResult, error)
}

// Validate runs the three fixed retrieval queries, calls the gateway, and
// parses the structured response into a ValidationResult. An LLM-gateway
// error is returned as-is; spec.md §7 does not call for a rule-based
// fallback here (unlike C6) since code generation/validation calls are
// never retried automatically.
func Validate(ctx context.Context, retriever Retriever, client llmgateway.Client, stage domain.Stage) (domain.ValidationResult, error) {
	manualContext := buildManualContext(ctx, retriever)

	messages := []llmgateway.Message{
		{Role: llmgateway.RoleSystem, Content: buildSystemMessage(manualContext)},
		{Role: llmgateway.RoleUser, Content: buildUserMessage(stage.StageNumber, stage.StageName, string(stage.StageType), stage.EffectiveLogic())},
	}

	text, err := client.Chat(ctx, messages, temperature, maxTokens)
	if err != nil {
		return domain.ValidationResult{}, err
	}

	return Parse(text), nil
}

func buildManualContext(ctx context.Context, retriever Retriever) string {
	var contexts []string
	for _, query := range contextQueries {
		results, err := retriever.Retrieve(ctx, retrieval.CorpusPrimaryManuals, query, chunksPerQuery)
		if err != nil || len(results) == 0 {
			continue
		}
		contexts = append(contexts, retrieval.FormatContext(results))
	}
	return strings.Join(contexts, "\n\n")
}
