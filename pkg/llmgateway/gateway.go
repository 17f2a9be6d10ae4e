// Package llmgateway is the provider-agnostic LLM chat contract (C3): a
// single synchronous chat(messages, temperature, maxTokens) → text
// operation, with message normalization, a hard 60-second deadline, and
// no automatic retry. Two named clients share the contract with
// independent credentials: "conversational" and "codegen" (spec.md §4.3).
package llmgateway

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/plcforge/plcforge/pkg/config"
)

// CallTimeout is the hard per-call deadline, independent of any deadline
// the caller's context already carries (spec.md §4.3, §5).
const CallTimeout = 60 * time.Second

// Client is the chat contract every LLM-driven component (C6, C8, C9,
// C12) depends on. Implementations never retry; callers own retry policy.
type Client interface {
	Chat(ctx context.Context, messages []Message, temperature float64, maxTokens int) (string, error)
}

// GRPCClient implements Client over a gRPC connection to an LLM sidecar,
// using a json-encoded wire format (see codec.go) rather than compiled
// protobuf messages, since the sidecar's schema is intentionally
// provider-agnostic rather than a fixed contract worth generating stubs
// for.
type GRPCClient struct {
	conn   *grpc.ClientConn
	model  string
	logger *slog.Logger
}

// NewGRPCClient dials addr with insecure (plaintext) transport, matching
// the teacher's sidecar deployment assumption (localhost or private
// network only).
func NewGRPCClient(addr, model string, logger *slog.Logger) (*GRPCClient, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("llmgateway: dial %s: %w", addr, err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &GRPCClient{conn: conn, model: model, logger: logger}, nil
}

// Close releases the underlying gRPC connection.
func (c *GRPCClient) Close() error {
	return c.conn.Close()
}

// Chat issues one synchronous request under a 60-second deadline. On
// partial or failed extraction it returns empty text and no error
// (spec.md §4.3 point 4); transport/auth/quota failures return a typed
// domain.LLMErrorValue.
func (c *GRPCClient) Chat(ctx context.Context, messages []Message, temperature float64, maxTokens int) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, CallTimeout)
	defer cancel()

	systemInstruction, rest := normalize(messages)
	req := &chatRequest{
		SystemInstruction: systemInstruction,
		Messages:          rest,
		Temperature:       temperature,
		MaxTokens:         maxTokens,
		Model:             c.model,
	}

	var resp chatResponse
	err := c.conn.Invoke(ctx, "/llm.v1.LLMService/Chat", req, &resp, grpc.CallContentSubtype(jsonCodecName))
	if err != nil {
		c.logger.Error("llmgateway chat failed", "error", err, "model", c.model)
		return "", classifyErr(err)
	}

	if len(resp.Candidates) == 0 {
		c.logger.Warn("llmgateway chat returned no candidates", "model", c.model)
		return "", nil
	}
	return resp.Candidates[0].Text, nil
}

// Gateway resolves the two named clients the rest of the engine depends
// on. Constructed once at startup from config.LLMProviderRegistry and
// threaded down as a constructor dependency (spec.md §9 "Singletons →
// injected collaborators").
type Gateway struct {
	conversational Client
	codegen        Client
}

// NewGateway wires the conversational and codegen clients from the
// resolved provider configs.
func NewGateway(conversational, codegen Client) *Gateway {
	return &Gateway{conversational: conversational, codegen: codegen}
}

// Conversational returns the client used by conversational agents.
func (g *Gateway) Conversational() Client { return g.conversational }

// Codegen returns the higher-quota client used for stage validation and
// code generation.
func (g *Gateway) Codegen() Client { return g.codegen }

// NewGRPCClientFromConfig builds a GRPCClient from a provider config's
// BaseURL (used as the gRPC dial target).
func NewGRPCClientFromConfig(cfg *config.LLMProviderConfig, logger *slog.Logger) (*GRPCClient, error) {
	return NewGRPCClient(cfg.BaseURL, cfg.Model, logger)
}
