// Package retrieval implements the semantic chunk store every LLM-driven
// component retrieves manual context from: per-corpus nearest-neighbor
// search over a Qdrant collection, lazily loaded and built from source
// documents.
package retrieval

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/plcforge/plcforge/internal/domain"
)

// BuildResult summarizes what build ingested into a corpus.
type BuildResult struct {
	ChunkCount int
	WordCount  int
	Sources    []string
}

// corpusState tracks whether a corpus's collection has been confirmed to
// exist this process, so ensureLoaded only pays the round-trip once.
type corpusState struct {
	mu     sync.Mutex // serializes builds/loads for this corpus
	loaded bool
}

// Index is the engine's Retrieval Index (C1): one Qdrant-backed
// nearest-neighbor store shared across all corpora, keyed by corpus id.
type Index struct {
	store     *vectorStore
	extractor Extractor
	embedder  Embedder
	chunkWords, overlapWords int

	mu      sync.Mutex
	corpora map[string]*corpusState
}

// New opens a connection to Qdrant at addr and returns an Index ready to
// build and query corpora. chunkWords/overlapWords default to 300/50 when
// zero, matching the reference chunking parameters.
func New(addr string, extractor Extractor, embedder Embedder, chunkWords, overlapWords int) (*Index, error) {
	store, err := newVectorStore(addr)
	if err != nil {
		return nil, err
	}
	if chunkWords <= 0 {
		chunkWords = 300
	}
	if overlapWords <= 0 {
		overlapWords = 50
	}
	return &Index{
		store:        store,
		extractor:    extractor,
		embedder:     embedder,
		chunkWords:   chunkWords,
		overlapWords: overlapWords,
		corpora:      make(map[string]*corpusState),
	}, nil
}

// Close releases the underlying Qdrant connection.
func (idx *Index) Close() error {
	return idx.store.Close()
}

func (idx *Index) stateFor(corpusID string) *corpusState {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	cs, ok := idx.corpora[corpusID]
	if !ok {
		cs = &corpusState{}
		idx.corpora[corpusID] = cs
	}
	return cs
}

// Build extracts text from each document path, chunks it, embeds the
// chunks, and persists them into the corpus's collection. Builds for a
// single corpus are serialized; concurrent builds of different corpora
// proceed independently.
func (idx *Index) Build(ctx context.Context, corpusID string, documentPaths []string) (BuildResult, error) {
	cs := idx.stateFor(corpusID)
	cs.mu.Lock()
	defer cs.mu.Unlock()

	var spans []chunkSpan
	var sources []string
	totalWords := 0

	for _, path := range documentPaths {
		text, err := idx.extractor.Extract(ctx, path)
		if err != nil {
			return BuildResult{}, fmt.Errorf("retrieval: extract %s: %w", path, err)
		}
		docSpans := chunkText(path, text, idx.chunkWords, idx.overlapWords)
		for _, s := range docSpans {
			totalWords += len(strings.Fields(s.text))
		}
		spans = append(spans, docSpans...)
		sources = append(sources, path)
	}

	if len(spans) == 0 {
		return BuildResult{}, ErrEmptyContent
	}

	if err := idx.store.ensureCollection(ctx, corpusID, idx.embedder.Dim()); err != nil {
		return BuildResult{}, err
	}

	texts := make([]string, len(spans))
	for i, s := range spans {
		texts[i] = s.text
	}
	embeddings, err := idx.embedder.Embed(ctx, texts)
	if err != nil {
		return BuildResult{}, fmt.Errorf("retrieval: embed corpus %s: %w", corpusID, err)
	}

	points := make([]storedPoint, len(spans))
	for i, s := range spans {
		points[i] = storedPoint{
			id:        uuid.NewSHA1(uuid.NameSpaceURL, []byte(fmt.Sprintf("%s-%s-%d", corpusID, s.sourceDoc, s.offsetID))).String(),
			embedding: embeddings[i],
			text:      s.text,
			sourceDoc: s.sourceDoc,
			offsetID:  s.offsetID,
		}
	}
	if err := idx.store.upsert(ctx, corpusID, points); err != nil {
		return BuildResult{}, err
	}

	cs.loaded = true
	return BuildResult{ChunkCount: len(spans), WordCount: totalWords, Sources: sources}, nil
}

// EnsureLoaded confirms the corpus's collection exists, creating bookkeeping
// state for it. A corpus with no collection at all is not ready.
func (idx *Index) EnsureLoaded(ctx context.Context, corpusID string) error {
	cs := idx.stateFor(corpusID)
	cs.mu.Lock()
	defer cs.mu.Unlock()
	if cs.loaded {
		return nil
	}

	exists, err := idx.store.collectionExists(ctx, corpusID)
	if err != nil {
		return err
	}
	if !exists {
		return domain.NewRetrievalNotReady(corpusID)
	}
	cs.loaded = true
	return nil
}

// Retrieve encodes query and returns the topK nearest chunks in the
// corpus by ascending distance, tie-broken deterministically by stored
// offset order.
func (idx *Index) Retrieve(ctx context.Context, corpusID, query string, topK int) ([]domain.RetrievalResult, error) {
	if err := idx.EnsureLoaded(ctx, corpusID); err != nil {
		return nil, err
	}

	embeddings, err := idx.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("retrieval: embed query: %w", err)
	}

	hits, err := idx.store.search(ctx, corpusID, embeddings[0], topK)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].score != hits[j].score {
			return hits[i].score < hits[j].score
		}
		return hits[i].offsetID < hits[j].offsetID
	})

	results := make([]domain.RetrievalResult, len(hits))
	for i, h := range hits {
		results[i] = domain.RetrievalResult{Rank: i, Text: h.text, Score: h.score, SourceDoc: h.sourceDoc}
	}
	return results, nil
}

// FormatContext joins retrieval results into the text block LLM prompts
// embed, separating entries with "\n\n---\n\n" and prefixing a
// "[Source: <doc>]" header wherever a source label is known.
func FormatContext(results []domain.RetrievalResult) string {
	parts := make([]string, len(results))
	for i, r := range results {
		if r.SourceDoc != "" {
			parts[i] = fmt.Sprintf("[Source: %s]\n%s", r.SourceDoc, r.Text)
		} else {
			parts[i] = r.Text
		}
	}
	return strings.Join(parts, "\n\n---\n\n")
}
