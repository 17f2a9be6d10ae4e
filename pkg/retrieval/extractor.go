package retrieval

import "context"

// Extractor converts a source document on disk into plain text. PDF is
// page-wise concatenated, DOCX paragraph-wise, TXT read as UTF-8 with a
// Latin-1 fallback, and WAV routed through ASR — the engine only depends
// on this contract, never a concrete format library.
type Extractor interface {
	Extract(ctx context.Context, path string) (string, error)
}

// ExtractorFunc adapts a plain function to the Extractor interface.
type ExtractorFunc func(ctx context.Context, path string) (string, error)

// Extract calls f(ctx, path).
func (f ExtractorFunc) Extract(ctx context.Context, path string) (string, error) {
	return f(ctx, path)
}
