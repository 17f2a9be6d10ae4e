package safety

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plcforge/plcforge/internal/domain"
	"github.com/plcforge/plcforge/pkg/llmgateway"
)

type fakeRetriever struct {
	corpusID string
	query    string
	topK     int
}

func (f *fakeRetriever) Retrieve(_ context.Context, corpusID, query string, topK int) ([]domain.RetrievalResult, error) {
	f.corpusID, f.query, f.topK = corpusID, query, topK
	return []domain.RetrievalResult{{Rank: 0, Text: "keep E-stop wired direct", SourceDoc: "safety.pdf"}}, nil
}

const sampleSafetyResponse = `==============================
SAFETY ASSESSMENT
==============================
Overall Status: WARNING
Risk Level: MEDIUM

==============================
COMPLIANCE ANALYSIS
==============================
The logic mostly follows safety practice but lacks a documented interlock check.

==============================
MISSING CHECKS
==============================
- Missing Check 1: No documented E-stop verification step

==============================
HAZARDS
==============================
- Hazard 1: Unexpected restart after power loss

==============================
VIOLATIONS
==============================

==============================
REQUIRED CORRECTIONS
==============================
- Correction 1: Add a latched restart-inhibit flag

==============================
RECOMMENDATIONS
==============================
- Recommendation 1: Document interlock behavior in comments
`

func TestCheck_RetrievesFromPerProjectCorpusByDefault(t *testing.T) {
	retriever := &fakeRetriever{}
	client := &llmgateway.FakeClient{Response: sampleSafetyResponse}
	code := domain.GeneratedCode{ProgramName: "STAGE_1", ProgramBody: "IF X THEN Y := TRUE; END_IF;"}

	result, err := Check(context.Background(), retriever, client, "proj-1", PerProject, code)

	require.NoError(t, err)
	assert.Equal(t, "per_project_safety_manual_proj-1", retriever.corpusID)
	assert.Equal(t, code.ProgramBody, retriever.query)
	assert.Equal(t, 5, retriever.topK)
	assert.Equal(t, "WARNING", result.OverallStatus)
	assert.Equal(t, "MEDIUM", result.RiskLevel)
	assert.Contains(t, result.ComplianceAnalysis, "lacks a documented interlock")
	require.Len(t, result.MissingChecks, 1)
	require.Len(t, result.Hazards, 1)
	assert.Empty(t, result.Violations)
	require.Len(t, result.RequiredCorrections, 1)
	require.Len(t, result.Recommendations, 1)
}

func TestCheck_DefaultCorpusPreferenceUsesSharedCorpus(t *testing.T) {
	retriever := &fakeRetriever{}
	client := &llmgateway.FakeClient{Response: sampleSafetyResponse}

	_, err := Check(context.Background(), retriever, client, "proj-1", DefaultSafetyManuals, domain.GeneratedCode{})
	require.NoError(t, err)
	assert.Equal(t, "default_safety_manuals", retriever.corpusID)
}

func TestCheck_PropagatesRetrievalError(t *testing.T) {
	client := &llmgateway.FakeClient{Response: sampleSafetyResponse}
	_, err := Check(context.Background(), erroringRetriever{}, client, "p", PerProject, domain.GeneratedCode{})
	require.Error(t, err)
}

type erroringRetriever struct{}

func (erroringRetriever) Retrieve(context.Context, string, string, int) ([]domain.RetrievalResult, error) {
	return nil, assertErr{}
}

type assertErr struct{}

func (assertErr) Error() string { return "boom" }
