package factory

import (
	"fmt"

	"re-ad-be/pkg/llm"
	"re-ad-be/pkg/llm/ollama"
)

const defaultOllamaURL = "http://localhost:11434"

func NewLLMProvider(providerType, modelName, baseURL string) (llm.LLMProvider, error) {
	switch providerType {
	case "ollama":
		if baseURL == "" {
			baseURL = defaultOllamaURL
		}
		return ollama.NewOllamaProvider(baseURL, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
