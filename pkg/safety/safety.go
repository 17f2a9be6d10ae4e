// Package safety implements the Safety Interrogator (C12): an optional
// post-generation compliance check of a stage's generated code against a
// project's safety manual corpus.
package safety

import (
	"context"

	"github.com/plcforge/plcforge/internal/domain"
	"github.com/plcforge/plcforge/pkg/llmgateway"
	"github.com/plcforge/plcforge/pkg/retrieval"
)

const (
	temperature = 0.1
	maxTokens   = 2500
)

// CorpusPreference selects which safety corpus to retrieve from: the
// project's own uploaded manual, or the shared default set (spec.md §9
// Open Question, decided in DESIGN.md to keep both paths caller-selectable).
type CorpusPreference int

const (
	PerProject CorpusPreference = iota
	DefaultSafetyManuals
)

// Retriever is the narrow manual-context dependency this package needs
// from C1.
type Retriever interface {
	Retrieve(ctx context.Context, corpusID, query string, topK int) ([]domain.RetrievalResult, error)
}

// Check retrieves the top-5 safety chunks keyed by the generated program
// body, composes the interrogation prompt, calls the gateway, and parses
// the structured response.
func Check(ctx context.Context, retriever Retriever, client llmgateway.Client, projectID string, pref CorpusPreference, code domain.GeneratedCode) (domain.SafetyResult, error) {
	corpusID := retrieval.PerProjectSafetyCorpus(projectID)
	if pref == DefaultSafetyManuals {
		corpusID = retrieval.CorpusDefaultSafetyManuals
	}

	results, err := retriever.Retrieve(ctx, corpusID, code.ProgramBody, chunksPerQuery)
	if err != nil {
		return domain.SafetyResult{}, err
	}
	safetyContext := retrieval.FormatContext(results)

	userMessage := buildUserMessage(
		code.ProgramName,
		string(code.ExecutionType),
		formatLabels(code.GlobalLabels),
		formatLabels(code.LocalLabels),
		code.ProgramBody,
		safetyContext,
	)

	messages := []llmgateway.Message{
		{Role: llmgateway.RoleSystem, Content: systemPrompt},
		{Role: llmgateway.RoleUser, Content: userMessage},
	}

	text, err := client.Chat(ctx, messages, temperature, maxTokens)
	if err != nil {
		return domain.SafetyResult{}, err
	}

	return Parse(text), nil
}
