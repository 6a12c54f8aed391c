package provider

import (
	"context"
	"errors"
	"time"

	"github.com/minjae-dev/webreader/config"
	"github.com/minjae-dev/webreader/models"
	openai_provider "github.com/minjae-dev/webreader/provider/openai"
)

// Client represents different LLM providers
type Client string

const (
	OpenAI Client = "openai"
)

// Provider is the interface that all LLM implementations must satisfy
type Provider interface {
	// AnswerFromDocument answers a query strictly from the supplied document
	// text. When the answer is not in the document the reply contains
	// NotInDocumentMarker and offers a follow-up lookup.
	AnswerFromDocument(ctx context.Context, document, query string) (string, error)
	// ClassifyQuery labels a query as a term or article lookup and extracts a
	// search keyword. Returns models.ErrClassificationParse when the reply is
	// not the expected two-field JSON.
	ClassifyQuery(ctx context.Context, query, contextText string) (models.Classification, error)
	// GenerateArticles asks the model for up to count plausible news articles
	// about keyword. An empty list is a valid outcome.
	GenerateArticles(ctx context.Context, keyword string, count int) ([]models.Article, error)
	// SummarizeText summarizes text in the given language.
	SummarizeText(ctx context.Context, text, language string) (string, error)
}

// NewProvider creates a new LLM client based on the provided configuration
func NewProvider(client Client, cfg config.OpenAIConfig) (Provider, error) {
	switch client {
	case OpenAI:
		if cfg.APIKey == "" {
			return nil, errors.New("openai api key not set")
		}
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = 30 * time.Second
		}
		return openai_provider.NewOpenAIClient(
			cfg.APIKey,
			cfg.CompletionModel,
			cfg.ClassifyModel,
			cfg.Temperature,
			cfg.MaxTokens,
			timeout,
		), nil
	default:
		return nil, errors.New("unsupported LLM provider")
	}
}
