package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/million-dollar-projects/mumskids-sub000/internal/store"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestConfig_ApplyEnv(t *testing.T) {
	tests := []struct {
		name     string
		base     Config
		env      map[string]string
		provider string
		key      string
	}{
		{"explicit provider and own key", Config{}, map[string]string{
			"MUMSKIDS_LLM_PROVIDER": "openai", "MUMSKIDS_OPENAI_API_KEY": "a", "OPENAI_API_KEY": "b",
		}, "openai", "a"},
		{"vendor key fallback", Config{Provider: "anthropic"}, map[string]string{
			"ANTHROPIC_API_KEY": "c",
		}, "anthropic", "c"},
		{"discovery order prefers gemini", Config{}, map[string]string{
			"OPENAI_API_KEY": "o", "GEMINI_API_KEY": "g",
		}, "gemini", "g"},
		{"nothing set", Config{}, nil, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.base.ApplyEnv(envMap(tt.env))
			assert.Equal(t, tt.provider, got.Provider)
			assert.Equal(t, tt.key, got.APIKey)
			assert.Equal(t, tt.provider != "", got.Enabled())
		})
	}
}

func TestConfig_WithDefaultsAndValidate(t *testing.T) {
	cfg := Config{Provider: " OpenRouter ", APIKey: "k"}.WithDefaults()
	assert.Equal(t, ProviderOpenRouter, cfg.Provider)
	assert.Equal(t, defaultOpenRouterBaseURL, cfg.BaseURL)
	assert.NotEmpty(t, cfg.Model)
	assert.Equal(t, 3, cfg.Retry.MaxAttempts)
	assert.NoError(t, cfg.Validate())

	assert.Error(t, Config{Provider: "gemini"}.Validate())
	assert.Error(t, Config{Provider: "llama"}.Validate())
	assert.NoError(t, Config{Provider: "mock"}.Validate())
}

type llmEventRepo struct {
	store.EventRepo
	events []store.LLMRequestEventData
	err    error
}

func (r *llmEventRepo) AppendLLMRequest(_ context.Context, d store.LLMRequestEventData) error {
	r.events = append(r.events, d)
	return r.err
}

func TestRecordingProvider(t *testing.T) {
	repo := &llmEventRepo{}
	mock := NewMockProvider(
		MockResponse{Content: []byte(`{"story":"x"}`), Usage: Usage{InputTokens: 5, OutputTokens: 7}},
		MockResponse{Err: errors.New("boom")},
	)
	p := WithRecording(mock, "mock", repo)
	ctx := WithPurpose(context.Background(), "story")

	_, err := p.Generate(ctx, UserPrompt("", "a"))
	require.NoError(t, err)
	_, err = p.Generate(ctx, UserPrompt("", "b"))
	require.Error(t, err)

	require.Len(t, repo.events, 2)
	assert.Equal(t, "story", repo.events[0].Purpose)
	assert.True(t, repo.events[0].Success)
	assert.Equal(t, 7, repo.events[0].OutputTokens)
	assert.False(t, repo.events[1].Success)
	assert.Equal(t, "boom", repo.events[1].ErrorMessage)
}

func TestRecordingProvider_StoreFailureIgnored(t *testing.T) {
	repo := &llmEventRepo{err: errors.New("disk full")}
	p := WithRecording(NewMockProvider(MockResponse{Content: []byte(`1`)}), "mock", repo)
	_, err := p.Generate(context.Background(), UserPrompt("", "a"))
	assert.NoError(t, err)
	assert.Equal(t, "unknown", repo.events[0].Purpose)
}

func TestMockProvider_Fallback(t *testing.T) {
	m := NewMockProvider()
	m.MockJSON(map[string]string{"story": "first"})
	m.Fallback = func(req Request) (json.RawMessage, error) {
		return json.RawMessage(`{"story":"again"}`), nil
	}

	req := UserPrompt("", "x")
	req.Schema = storySchema
	first, err := m.Generate(context.Background(), req)
	require.NoError(t, err)
	second, err := m.Generate(context.Background(), req)
	require.NoError(t, err)

	assert.JSONEq(t, `{"story":"first"}`, string(first.Content))
	assert.JSONEq(t, `{"story":"again"}`, string(second.Content))
	assert.Len(t, m.Calls(), 2)
}
