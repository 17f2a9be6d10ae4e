package retrieval

import "context"

// Embedder computes dense vector embeddings for a batch of texts. The
// reference embedder is a 384-dimension model; any substitute producing
// comparable retrieval quality is interchangeable, since embedding
// computation is one of the engine's suspension points, not a contract.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	Dim() int
}
