package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validYAML = `
database:
  host: localhost
  port: 5432
  user: plcforge
  dbname: plcforge
server:
  port: 8080
retrieval:
  qdrant_addr: localhost:6334
  embedding_dim: 384
  embedder_addr: localhost:11434
prompt_catalog:
  dir: ./prompts
llm_providers:
  conversational:
    type: grpc
    model: gpt-conversational
    api_key_env: CONVO_API_KEY
  codegen:
    type: grpc
    model: gpt-codegen
    api_key_env: CODEGEN_API_KEY
`

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestInitializeValid(t *testing.T) {
	path := writeTempConfig(t, validYAML)

	cfg, err := Initialize(path)
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 300, cfg.Retrieval.ChunkWords)
	assert.Equal(t, 50, cfg.Retrieval.ChunkOverlapWords)
	assert.Equal(t, "default_safety_manuals", cfg.Retrieval.DefaultSafetyCorpusID)
	assert.Equal(t, 2, cfg.Stats().LLMProviders)

	convo, err := cfg.ConversationalProvider()
	require.NoError(t, err)
	assert.Equal(t, "gpt-conversational", convo.Model)
	assert.Equal(t, 60, convo.TimeoutSeconds)

	codegen, err := cfg.CodegenProvider()
	require.NoError(t, err)
	assert.Equal(t, "gpt-codegen", codegen.Model)
}

func TestInitializeMissingFile(t *testing.T) {
	_, err := Initialize("/nonexistent/config.yaml")
	assert.ErrorIs(t, err, ErrConfigNotFound)
}

func TestInitializeMissingProvider(t *testing.T) {
	missing := `
database:
  host: localhost
  port: 5432
  user: plcforge
  dbname: plcforge
server:
  port: 8080
retrieval:
  qdrant_addr: localhost:6334
  embedding_dim: 384
  embedder_addr: localhost:11434
prompt_catalog:
  dir: ./prompts
llm_providers:
  conversational:
    type: grpc
    model: gpt-conversational
    api_key_env: CONVO_API_KEY
`
	path := writeTempConfig(t, missing)
	_, err := Initialize(path)
	assert.Error(t, err)
}

func TestInitializeEnvExpansion(t *testing.T) {
	t.Setenv("PLCFORGE_DB_HOST", "db.internal")
	withEnv := `
database:
  host: ${PLCFORGE_DB_HOST}
  port: 5432
  user: plcforge
  dbname: plcforge
server:
  port: 8080
retrieval:
  qdrant_addr: localhost:6334
  embedding_dim: 384
  embedder_addr: localhost:11434
prompt_catalog:
  dir: ./prompts
llm_providers:
  conversational:
    type: grpc
    model: gpt-conversational
    api_key_env: CONVO_API_KEY
  codegen:
    type: grpc
    model: gpt-codegen
    api_key_env: CODEGEN_API_KEY
`
	path := writeTempConfig(t, withEnv)
	cfg, err := Initialize(path)
	require.NoError(t, err)
	assert.Equal(t, "db.internal", cfg.Database.Host)
}
