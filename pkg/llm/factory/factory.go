package factory

import (
	"ai-homework-helper-be/pkg/llm"
	"ai-homework-helper-be/pkg/llm/ollama"
	"ai-homework-helper-be/pkg/llm/openai"
	"fmt"
)

func NewLLMProvider(providerType, modelName, baseURL, openAIKey string) (llm.LLMProvider, error) {
	switch providerType {
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, modelName), nil
	case "openai":
		if openAIKey == "" {
			return nil, fmt.Errorf("openai provider requires an API key")
		}
		return openai.NewOpenAIProvider(openAIKey, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
