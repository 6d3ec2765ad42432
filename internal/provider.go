package internal

import (
	"context"
	"fmt"
	"reflect"

	"charm.land/fantasy"
	"charm.land/fantasy/providers/anthropic"
	"charm.land/fantasy/providers/openai"
	"charm.land/fantasy/providers/openrouter"
	"charm.land/fantasy/schema"
)

// Provider is the LLM used for memory-side operations: summarizing
// retrieved context and distilling raw reports before storage.
type Provider interface {
	Complete(ctx context.Context, prompt string) (string, error)
	GenerateObject(ctx context.Context, prompt string, target any) error
}

// ContextSummary is the structured output of context summarization.
type ContextSummary struct {
	Overview  string   `json:"overview"`
	KeyFacts  []string `json:"key_facts"`
	OpenItems []string `json:"open_items"`
}

var _ Provider = (*FantasyProvider)(nil)

type FantasyProvider struct {
	model fantasy.LanguageModel
	name  string
}

// NewProvider builds the provider selected by cfg.LLM. Ollama is reached
// through the OpenAI-compatible endpoint, with cfg.LLM.Key as base URL.
func NewProvider(ctx context.Context, cfg LLMConfig) (*FantasyProvider, error) {
	var provider fantasy.Provider
	var err error

	switch cfg.Provider {
	case "openai":
		provider, err = openai.New(openai.WithAPIKey(cfg.Key))

	case "anthropic":
		provider, err = anthropic.New(anthropic.WithAPIKey(cfg.Key))

	case "openrouter":
		provider, err = openrouter.New(openrouter.WithAPIKey(cfg.Key))

	case "ollama":
		provider, err = openai.New(openai.WithBaseURL(cfg.Key))

	default:
		return nil, fmt.Errorf("unsupported provider: %s", cfg.Provider)
	}

	if err != nil {
		return nil, fmt.Errorf("create provider: %w", err)
	}

	model, err := provider.LanguageModel(ctx, cfg.Model)
	if err != nil {
		return nil, fmt.Errorf("get language model: %w", err)
	}

	return &FantasyProvider{
		model: model,
		name:  cfg.Provider,
	}, nil
}

func (p *FantasyProvider) Complete(ctx context.Context, prompt string) (string, error) {
	agent := fantasy.NewAgent(p.model)

	result, err := agent.Generate(ctx, fantasy.AgentCall{
		Prompt: prompt,
	})
	if err != nil {
		return "", fmt.Errorf("generate: %w", err)
	}

	return result.Response.Content.Text(), nil
}

func (p *FantasyProvider) GenerateObject(ctx context.Context, prompt string, target any) error {
	t := reflect.TypeOf(target)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	s := schema.Generate(t)

	call := fantasy.ObjectCall{
		Prompt: fantasy.Prompt{fantasy.NewUserMessage(prompt)},
		Schema: s,
	}

	resp, err := p.model.GenerateObject(ctx, call)
	if err != nil {
		return fmt.Errorf("generate object: %w", err)
	}

	targetVal := reflect.ValueOf(target)
	if targetVal.Kind() != reflect.Ptr {
		return fmt.Errorf("target must be a pointer")
	}

	objVal := reflect.ValueOf(resp.Object)
	if objVal.IsValid() && objVal.Type().AssignableTo(targetVal.Elem().Type()) {
		targetVal.Elem().Set(objVal)
	}

	return nil
}
