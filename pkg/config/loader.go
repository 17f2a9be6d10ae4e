package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// rawConfig mirrors the on-disk YAML shape before defaults are applied and
// env vars substituted into provider fields.
type rawConfig struct {
	Database      DatabaseConfig               `yaml:"database" validate:"required"`
	Server        ServerConfig                 `yaml:"server" validate:"required"`
	Retrieval     RetrievalConfig              `yaml:"retrieval" validate:"required"`
	PromptCatalog PromptCatalogConfig          `yaml:"prompt_catalog" validate:"required"`
	LLMProviders  map[string]LLMProviderConfig `yaml:"llm_providers" validate:"required"`
}

var validate = validator.New()

// Initialize reads, env-expands, validates, and defaults the configuration
// file at path, following the teacher's "layered Config with per-concern
// sub-structs" shape.
func Initialize(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, NewLoadError(path, err)
	}

	data = ExpandEnv(data)

	var raw rawConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidYAML, err)
	}

	defaults := NewDefaults()
	defaults.apply(&raw.Retrieval)
	if raw.Server.Port == 0 {
		raw.Server.Port = defaults.ServerPort
	}
	for name, provider := range raw.LLMProviders {
		if provider.TimeoutSeconds == 0 {
			provider.TimeoutSeconds = defaults.LLMTimeoutSeconds
			raw.LLMProviders[name] = provider
		}
	}

	if err := validate.Struct(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}
	for _, required := range []string{"conversational", "codegen"} {
		if _, ok := raw.LLMProviders[required]; !ok {
			return nil, NewValidationError("llm_providers", required,
				fmt.Errorf("%w: missing provider %q", ErrMissingRequiredField, required))
		}
	}

	providers := make(map[string]*LLMProviderConfig, len(raw.LLMProviders))
	for name, p := range raw.LLMProviders {
		p := p
		providers[name] = &p
	}

	return &Config{
		configDir:     filepathDir(path),
		Defaults:      defaults,
		Database:      &raw.Database,
		Server:        &raw.Server,
		Retrieval:     &raw.Retrieval,
		PromptCatalog: &raw.PromptCatalog,
		LLMProviders:  NewLLMProviderRegistry(providers),
	}, nil
}

func filepathDir(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			return path[:i]
		}
	}
	return "."
}
