package config

// Defaults holds the fallback values applied when a loaded configuration
// file omits an optional field.
type Defaults struct {
	ChunkWords            int
	ChunkOverlapWords     int
	EmbeddingDim          int
	DefaultSafetyCorpusID string
	ServerPort            int
	LLMTimeoutSeconds     int
	EmbedderModel         string
}

// NewDefaults returns the system-wide defaults used when Initialize loads a
// configuration file that omits optional fields.
func NewDefaults() *Defaults {
	return &Defaults{
		ChunkWords:            300,
		ChunkOverlapWords:     50,
		EmbeddingDim:          384,
		DefaultSafetyCorpusID: "default_safety_manuals",
		ServerPort:            8080,
		LLMTimeoutSeconds:     60,
		EmbedderModel:         "all-minilm",
	}
}

func (d *Defaults) apply(rc *RetrievalConfig) {
	if rc.ChunkWords == 0 {
		rc.ChunkWords = d.ChunkWords
	}
	if rc.ChunkOverlapWords == 0 {
		rc.ChunkOverlapWords = d.ChunkOverlapWords
	}
	if rc.EmbeddingDim == 0 {
		rc.EmbeddingDim = d.EmbeddingDim
	}
	if rc.DefaultSafetyCorpusID == "" {
		rc.DefaultSafetyCorpusID = d.DefaultSafetyCorpusID
	}
	if rc.EmbedderModel == "" {
		rc.EmbedderModel = d.EmbedderModel
	}
}
