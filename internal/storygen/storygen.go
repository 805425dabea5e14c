// Package storygen rewords arithmetic questions as short themed story
// problems. The numbers always come from problemgen; the model only
// supplies the words.
package storygen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/million-dollar-projects/mumskids-sub000/internal/llm"
	"github.com/million-dollar-projects/mumskids-sub000/internal/problemgen"
	"github.com/million-dollar-projects/mumskids-sub000/internal/rewards"
)

// Config tunes story requests.
type Config struct {
	MaxTokens   int
	Temperature float64

	// MaxPriorStories caps how many earlier stories are sent to avoid
	// repeats within one batch.
	MaxPriorStories int

	Validators []Validator
}

// DefaultConfig returns the settings used by the CLI.
func DefaultConfig() Config {
	return Config{
		MaxTokens:       256,
		Temperature:     0.8,
		MaxPriorStories: 5,
		Validators:      DefaultValidators(),
	}
}

// Generator turns questions into stories.
type Generator struct {
	provider llm.Provider
	catalog  *rewards.Catalog
	config   Config
}

// New creates a Generator. A nil catalog uses rewards.DefaultCatalog.
func New(provider llm.Provider, catalog *rewards.Catalog, cfg Config) *Generator {
	if catalog == nil {
		catalog = rewards.DefaultCatalog()
	}
	return &Generator{provider: provider, catalog: catalog, config: cfg}
}

type storyOutput struct {
	Story string `json:"story"`
}

// Story words q as a story in theme and locale. The returned text
// mentions both operands and never states the answer.
func (g *Generator) Story(ctx context.Context, q *problemgen.Question, theme, locale string) (string, error) {
	return g.story(ctx, q, theme, locale, nil)
}

func (g *Generator) story(ctx context.Context, q *problemgen.Question, theme, locale string, prior []string) (string, error) {
	ctx = llm.WithPurpose(ctx, "story")

	req := llm.UserPrompt(systemPrompt, g.buildPrompt(q, theme, locale, prior))
	req.Schema = StorySchema
	req.MaxTokens = g.config.MaxTokens
	req.Temperature = g.config.Temperature

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return "", fmt.Errorf("generate story for %s: %w", q.Text(), err)
	}
	var out storyOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return "", fmt.Errorf("parse story: %w", err)
	}

	text := strings.TrimSpace(out.Story)
	for _, v := range g.config.Validators {
		if verr := v.Validate(text, q); verr != nil {
			return "", verr
		}
	}
	return text, nil
}

// Stories words every question, feeding earlier stories back into the
// prompt so the batch does not repeat itself. A question whose story
// fails keeps its bare prompt; the first error is returned alongside the
// complete result.
func (g *Generator) Stories(ctx context.Context, qs problemgen.QuestionSet, theme, locale string) ([]string, error) {
	out := make([]string, len(qs))
	var (
		prior    []string
		firstErr error
	)
	for i := range qs {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		s, err := g.story(ctx, &qs[i], theme, locale, prior)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			out[i] = qs[i].Prompt()
			continue
		}
		out[i] = s
		prior = append(prior, s)
	}
	return out, firstErr
}
