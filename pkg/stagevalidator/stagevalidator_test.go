package stagevalidator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plcforge/plcforge/internal/domain"
	"github.com/plcforge/plcforge/pkg/llmgateway"
)

type fakeRetriever struct{ calls int }

func (f *fakeRetriever) Retrieve(_ context.Context, _, _ string, _ int) ([]domain.RetrievalResult, error) {
	f.calls++
	return []domain.RetrievalResult{{Rank: 0, Text: "ctx"}}, nil
}

func TestValidate_IssuesThreeRetrievalQueries(t *testing.T) {
	retriever := &fakeRetriever{}
	client := &llmgateway.FakeClient{Response: "Status: PASS\n"}

	stage := domain.Stage{StageNumber: 2, StageName: "Conveyor", StageType: domain.StageOperation, OriginalLogic: "run the conveyor"}
	result, err := Validate(context.Background(), retriever, client, stage)

	require.NoError(t, err)
	assert.Equal(t, 3, retriever.calls)
	assert.True(t, result.Valid)
	require.Len(t, client.Calls, 1)
	assert.Equal(t, 0.1, client.Calls[0].Temperature)
	assert.Equal(t, 2000, client.Calls[0].MaxTokens)
}

func TestValidate_PropagatesGatewayError(t *testing.T) {
	retriever := &fakeRetriever{}
	client := &llmgateway.FakeClient{Err: assertError{}}

	_, err := Validate(context.Background(), retriever, client, domain.Stage{})
	require.Error(t, err)
}

type assertError struct{}

func (assertError) Error() string { return "boom" }
