package config

// DatabaseConfig configures the postgres connection backing the ent client.
type DatabaseConfig struct {
	Host     string `yaml:"host" validate:"required"`
	Port     int    `yaml:"port" validate:"required"`
	User     string `yaml:"user" validate:"required"`
	Password string `yaml:"password,omitempty"`
	DBName   string `yaml:"dbname" validate:"required"`
	SSLMode  string `yaml:"ssl_mode,omitempty"`
	MaxConns int    `yaml:"max_conns,omitempty"`
}

// ServerConfig configures the thin HTTP transport layer (out of core budget,
// spec.md §1, still part of the ambient stack).
type ServerConfig struct {
	Host string `yaml:"host,omitempty"`
	Port int    `yaml:"port" validate:"required"`
}

// RetrievalConfig configures the C1 retrieval index's qdrant-backed corpora.
type RetrievalConfig struct {
	// QdrantAddr is the host:port of the qdrant gRPC endpoint.
	QdrantAddr string `yaml:"qdrant_addr" validate:"required"`

	// EmbeddingDim is the dimensionality of the configured embedder's output
	// (384 for the default all-MiniLM-L6-v2-equivalent embedder, spec.md §4.1).
	EmbeddingDim int `yaml:"embedding_dim" validate:"required,min=1"`

	// ChunkWords and ChunkOverlapWords control the document-to-chunk split
	// performed by build() (spec.md §4.1: 300 words, 50-word overlap).
	ChunkWords        int `yaml:"chunk_words,omitempty"`
	ChunkOverlapWords int `yaml:"chunk_overlap_words,omitempty"`

	// DefaultSafetyCorpusID names the process-wide default safety manual
	// corpus (spec.md §4.12, §9). The engine does not read this value:
	// safety.Check uses retrieval.CorpusDefaultSafetyManuals when its
	// CorpusPreference is DefaultSafetyManuals, and a project without
	// manuals of its own does not fall back to the default corpus.
	DefaultSafetyCorpusID string `yaml:"default_safety_corpus_id,omitempty"`

	// EmbedderAddr is the base URL of the Ollama-compatible embeddings
	// endpoint the retrieval index computes chunk/query vectors against.
	EmbedderAddr string `yaml:"embedder_addr" validate:"required"`

	// EmbedderModel names the embedding model to request.
	EmbedderModel string `yaml:"embedder_model,omitempty"`
}

// PromptCatalogConfig configures where C2 resolves named prompt text from.
type PromptCatalogConfig struct {
	Dir string `yaml:"dir" validate:"required"`
}
