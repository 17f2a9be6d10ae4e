package llmgateway

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/plcforge/plcforge/internal/domain"
)

func TestNormalize_FoldsSystemMessage(t *testing.T) {
	msgs := []Message{
		{Role: RoleSystem, Content: "be terse"},
		{Role: RoleUser, Content: "hello"},
		{Role: RoleSystem, Content: "also this"},
		{Role: RoleAssistant, Content: "hi"},
	}
	sys, rest := normalize(msgs)
	assert.Equal(t, "be terse\n\nalso this", sys)
	assert.Equal(t, []Message{{Role: RoleUser, Content: "hello"}, {Role: RoleAssistant, Content: "hi"}}, rest)
}

func TestNormalize_NoSystemMessage(t *testing.T) {
	msgs := []Message{{Role: RoleUser, Content: "hi"}}
	sys, rest := normalize(msgs)
	assert.Empty(t, sys)
	assert.Equal(t, msgs, rest)
}

func TestClassifyErr(t *testing.T) {
	cases := []struct {
		name string
		err  error
		kind domain.LLMErrorKind
	}{
		{"unauthenticated", status.Error(codes.Unauthenticated, "no"), domain.LLMUnauthorized},
		{"resource exhausted", status.Error(codes.ResourceExhausted, "slow down"), domain.LLMRateLimited},
		{"unavailable", status.Error(codes.Unavailable, "down"), domain.LLMTransport},
		{"deadline exceeded", status.Error(codes.DeadlineExceeded, "timeout"), domain.LLMTransport},
		{"unknown", status.Error(codes.Internal, "oops"), domain.LLMBadResponse},
		{"non-grpc error", errors.New("plain"), domain.LLMTransport},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := classifyErr(tc.err)
			var llmErr *domain.LLMErrorValue
			assert.ErrorAs(t, err, &llmErr)
			assert.Equal(t, tc.kind, llmErr.Kind)
		})
	}
}

func TestFakeClient_RecordsCalls(t *testing.T) {
	f := &FakeClient{Response: "ok"}
	text, err := f.Chat(nil, []Message{{Role: RoleUser, Content: "x"}}, 0.2, 100)
	assert.NoError(t, err)
	assert.Equal(t, "ok", text)
	assert.Len(t, f.Calls, 1)
	assert.Equal(t, 0.2, f.Calls[0].Temperature)
}
