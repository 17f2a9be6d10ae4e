package segregator

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plcforge/plcforge/internal/domain"
	"github.com/plcforge/plcforge/pkg/llmgateway"
)

type fakeRetriever struct {
	results []domain.RetrievalResult
	err     error
}

func (f *fakeRetriever) Retrieve(_ context.Context, _, _ string, _ int) ([]domain.RetrievalResult, error) {
	return f.results, f.err
}

func TestSegregate_ParsesWellFormedJSON(t *testing.T) {
	client := &llmgateway.FakeClient{Response: `Here you go:
{
  "stages": [
    {"stage_number": 0, "stage_name": "Idle Stage", "stage_type": "idle", "description": "d0", "original_logic": "l0"},
    {"stage_number": 1, "stage_name": "Safety Check Stage", "stage_type": "safety", "description": "d1", "original_logic": "l1"},
    {"stage_number": 2, "stage_name": "Conveyor Operation", "stage_type": "operation", "description": "d2", "original_logic": "l2"}
  ],
  "dependencies": [
    {"from_stage": 0, "to_stage": 1, "condition": "c01"},
    {"from_stage": 1, "to_stage": 2, "condition": "c12"}
  ]
}`}

	stages, deps := Segregate(context.Background(), &fakeRetriever{}, client, "proj-1", "some logic", domain.FlowFeatures{})

	require.Len(t, stages, 3)
	assert.Equal(t, domain.StageIdle, stages[0].StageType)
	assert.Equal(t, domain.StageSafety, stages[1].StageType)
	require.Len(t, deps, 2)
	assert.Equal(t, 0, deps[0].FromStage)
	assert.Equal(t, 1, deps[0].ToStage)
}

func TestSegregate_FallsBackOnUnparsableJSON(t *testing.T) {
	client := &llmgateway.FakeClient{Response: "not json at all"}

	stages, deps := Segregate(context.Background(), &fakeRetriever{}, client, "proj-1", "logic", domain.FlowFeatures{})

	require.Len(t, stages, 2)
	assert.Equal(t, domain.StageIdle, stages[0].StageType)
	assert.Equal(t, domain.StageSafety, stages[1].StageType)
	require.Len(t, deps, 1)
	assert.Equal(t, "System ready and no faults", deps[0].Condition)
}

func TestSegregate_FallsBackOnLLMError(t *testing.T) {
	client := &llmgateway.FakeClient{Err: errors.New("transport down")}

	stages, _ := Segregate(context.Background(), &fakeRetriever{}, client, "proj-1", "logic", domain.FlowFeatures{})

	require.Len(t, stages, 2)
}
