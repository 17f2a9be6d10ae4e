package retrieval

import (
	"strings"
	"testing"

	"github.com/plcforge/plcforge/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkTextWindowsAndOverlap(t *testing.T) {
	words := make([]string, 0, 700)
	for i := 0; i < 700; i++ {
		words = append(words, "word")
	}
	text := strings.Join(words, " ")

	spans := chunkText("manual.pdf", text, 300, 50)
	require.NotEmpty(t, spans)

	for i, s := range spans {
		assert.Equal(t, "manual.pdf", s.sourceDoc)
		assert.Equal(t, i, s.offsetID)
	}
	// 700 words, 300-word windows, 50-word overlap: windows start at
	// 0, 250, 500 (each advances by chunkWords-overlapWords=250).
	assert.Len(t, spans, 3)
}

func TestChunkTextEmpty(t *testing.T) {
	assert.Empty(t, chunkText("doc", "   ", 300, 50))
}

func TestChunkTextOverlapClampedWhenUnreasonable(t *testing.T) {
	spans := chunkText("doc", "a b c d e", 3, 10)
	require.NotEmpty(t, spans)
}

func TestFormatContextWithAndWithoutSource(t *testing.T) {
	results := []domain.RetrievalResult{
		{Rank: 0, Text: "first chunk", Score: 0.1, SourceDoc: "manual.pdf"},
		{Rank: 1, Text: "second chunk", Score: 0.2},
	}
	out := FormatContext(results)
	assert.Contains(t, out, "[Source: manual.pdf]\nfirst chunk")
	assert.Contains(t, out, "\n\n---\n\n")
	assert.Contains(t, out, "second chunk")
	assert.NotContains(t, out, "[Source: ]")
}
