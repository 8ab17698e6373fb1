package ai

import (
	"context"
	"strings"
)

// Runtime is implemented by chat backends such as OpenRouter and Ollama.
type Runtime interface {
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)
}

// Provider identifiers accepted in configuration.
const (
	ProviderOpenRouter = "openrouter"
	ProviderOpenAI     = "openai"
	ProviderOllama     = "ollama"
	ProviderLocal      = "local"
)

// NormalizeProvider maps aliases onto a registered runtime name. Empty
// selects OpenRouter.
func NormalizeProvider(name string) string {
	switch p := strings.ToLower(strings.TrimSpace(name)); p {
	case "":
		return ProviderOpenRouter
	case ProviderLocal:
		return ProviderOllama
	default:
		return p
	}
}
