// Package codegen implements the Code Generator (C9): composes the
// per-stage ST generation prompt, retrieves manual context, and calls the
// codegen LLM client. The raw text it returns is handed to pkg/codeparser
// for structural parsing.
package codegen

import (
	"context"
	"strings"

	"github.com/plcforge/plcforge/internal/domain"
	"github.com/plcforge/plcforge/pkg/llmgateway"
	"github.com/plcforge/plcforge/pkg/retrieval"
)

const (
	temperature = 0.1
	maxTokens   = 8000
)

// Retriever is the narrow manual-context dependency this package needs
// from C1.
type Retriever interface {
	Retrieve(ctx context.Context, corpusID, query string, topK int) ([]domain.RetrievalResult, error)
}

// Generate issues the three fixed retrieval queries, composes the system
// and user prompts, and calls the gateway. It returns the raw LLM text;
// callers pass it to codeparser.Parse.
func Generate(ctx context.Context, retriever Retriever, client llmgateway.Client, stage domain.Stage) (string, error) {
	manualContext := buildManualContext(ctx, retriever)

	messages := []llmgateway.Message{
		{Role: llmgateway.RoleSystem, Content: buildSystemMessage(manualContext)},
		{Role: llmgateway.RoleUser, Content: buildUserMessage(stage.StageNumber, stage.StageName, string(stage.StageType), stage.Description, stage.EffectiveLogic())},
	}

	return client.Chat(ctx, messages, temperature, maxTokens)
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
