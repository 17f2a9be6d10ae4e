// Package config loads and validates the layered configuration the engine
// and its ambient stack depend on: database connection, the two named LLM
// providers (conversational, codegen) behind the gateway (C3), the retrieval
// index's qdrant endpoint (C1), the prompt catalog directory (C2), and the
// thin HTTP transport.
package config

// Config is the umbrella configuration object returned by Initialize and
// threaded through cmd/plcforge/main.go to every constructor.
type Config struct {
	configDir string

	Defaults      *Defaults
	Database      *DatabaseConfig
	Server        *ServerConfig
	Retrieval     *RetrievalConfig
	PromptCatalog *PromptCatalogConfig
	LLMProviders  *LLMProviderRegistry
}

// ConfigDir returns the directory the configuration was loaded from.
func (c *Config) ConfigDir() string {
	return c.configDir
}

// ConversationalProvider returns the LLM provider configuration for the
// conversational agents (spec.md §4.3: "one for conversational agents").
func (c *Config) ConversationalProvider() (*LLMProviderConfig, error) {
	return c.LLMProviders.Get("conversational")
}

// CodegenProvider returns the LLM provider configuration for code
// generation and stage validation (spec.md §4.3: "higher quota").
func (c *Config) CodegenProvider() (*LLMProviderConfig, error) {
	return c.LLMProviders.Get("codegen")
}

// ConfigStats summarizes loaded configuration for startup logging.
type ConfigStats struct {
	LLMProviders int
}

// Stats returns configuration statistics for logging/monitoring.
func (c *Config) Stats() ConfigStats {
	return ConfigStats{LLMProviders: c.LLMProviders.Len()}
}
