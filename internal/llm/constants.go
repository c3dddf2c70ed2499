package llm

import "time"

// Provider identifies a supported chat model backend.
type Provider string

const (
	ProviderOpenAI    Provider = "openai"
	ProviderOllama    Provider = "ollama"
	ProviderAnthropic Provider = "anthropic"
	ProviderGemini    Provider = "gemini"
)

const (
	DefaultProvider = ProviderOpenAI

	DefaultOpenAIModel    = "gpt-5-mini-2025-08-07"
	DefaultOllamaModel    = "llama3.2"
	DefaultAnthropicModel = "claude-sonnet-4-20250514"
	DefaultGeminiModel    = "gemini-2.0-flash"

	DefaultOllamaURL = "http://localhost:11434"

	// DefaultTimeout bounds a single model call, including retries inside
	// the provider SDK but not our own retry.
	DefaultTimeout = 120 * time.Second
)

// DefaultModelForProvider returns the default model name for a provider.
func DefaultModelForProvider(p Provider) string {
	switch p {
	case ProviderOllama:
		return DefaultOllamaModel
	case ProviderAnthropic:
		return DefaultAnthropicModel
	case ProviderGemini:
		return DefaultGeminiModel
	default:
		return DefaultOpenAIModel
	}
}
