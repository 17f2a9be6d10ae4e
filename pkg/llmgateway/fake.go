package llmgateway

import "context"

// FakeClient is an in-memory Client double for tests of components that
// depend on the gateway without a real LLM sidecar.
type FakeClient struct {
	// Response is returned verbatim from Chat unless Err is set.
	Response string
	Err      error

	// Calls records every Chat invocation for assertions.
	Calls []FakeCall
}

// FakeCall is one recorded invocation against a FakeClient.
type FakeCall struct {
	Messages    []Message
	Temperature float64
	MaxTokens   int
}

// Chat implements Client.
func (f *FakeClient) Chat(_ context.Context, messages []Message, temperature float64, maxTokens int) (string, error) {
	f.Calls = append(f.Calls, FakeCall{Messages: messages, Temperature: temperature, MaxTokens: maxTokens})
	if f.Err != nil {
		return "", f.Err
	}
	return f.Response, nil
}
