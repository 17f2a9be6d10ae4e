// Package embedder implements the Retrieval Index's Embedder boundary
// (pkg/retrieval.Embedder) against an Ollama embeddings endpoint.
package embedder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// OllamaClient computes text embeddings via Ollama's HTTP
// /api/embeddings endpoint, one request per text (Ollama's embeddings
// API is not itself batched).
type OllamaClient struct {
	baseURL string
	model   string
	dim     int
	client  *http.Client
}

// NewOllamaClient returns a client targeting baseURL with the given
// model. dim must match the model's output dimensionality (384 for the
// default all-MiniLM-L6-v2-equivalent embedder, spec.md §4.1) since the
// retrieval index's Qdrant collection is created with this fixed size.
func NewOllamaClient(baseURL, model string, dim int) *OllamaClient {
	return &OllamaClient{baseURL: baseURL, model: model, dim: dim, client: &http.Client{}}
}

// Dim returns the configured embedding dimensionality.
func (c *OllamaClient) Dim() int { return c.dim }

type ollamaEmbedRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type ollamaEmbedResponse struct {
	Embedding []float64 `json:"embedding"`
}

// Embed computes one embedding per text, sequentially. Suitable for the
// chunk batch sizes the retrieval index's chunker produces (spec.md §4.1:
// 300-word chunks, 50-word overlap).
func (c *OllamaClient) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		vec, err := c.embedOne(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("embedder: embed text %d: %w", i, err)
		}
		out[i] = vec
	}
	return out, nil
}

func (c *OllamaClient) embedOne(ctx context.Context, text string) ([]float32, error) {
	body, err := json.Marshal(ollamaEmbedRequest{Model: c.model, Prompt: text})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/embeddings", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ollama embed request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ollama embed: status %d", resp.StatusCode)
	}

	var result ollamaEmbedResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("ollama embed decode: %w", err)
	}

	vec := make([]float32, len(result.Embedding))
	for i, v := range result.Embedding {
		vec[i] = float32(v)
	}
	return vec, nil
}
