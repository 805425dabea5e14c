package storygen

import (
	"fmt"
	"strings"

	"golang.org/x/text/language/display"

	"github.com/million-dollar-projects/mumskids-sub000/internal/llm"
	"github.com/million-dollar-projects/mumskids-sub000/internal/problemgen"
)

const systemPrompt = `You write one-sentence to three-sentence math story problems for children aged 5 to 8.

Rules:
- Use exactly the two numbers you are given, written as digits.
- Do not use any other numbers.
- Never state or hint at the result. End with a question.
- Keep sentences short and friendly. No names of real people or brands.
- Write in the requested language only.`

// StorySchema is the structured output for one story.
var StorySchema = &llm.Schema{
	Name:        "story-problem",
	Description: "A short story problem for one addition or subtraction question",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"story": map[string]any{
				"type":        "string",
				"description": "The story problem text, ending with a question",
			},
		},
		"required":             []any{"story"},
		"additionalProperties": false,
	},
}

func (g *Generator) buildPrompt(q *problemgen.Question, theme, locale string, prior []string) string {
	var b strings.Builder

	verb := "adding"
	if q.Operator == problemgen.OpSub {
		verb = "taking away"
	}
	fmt.Fprintf(&b, "Numbers: %d and %d\n", q.Operand1, q.Operand2)
	fmt.Fprintf(&b, "Operation: %s (%s)\n", verb, q.Text())

	if info, ok := g.catalog.Resolve(theme, "en"); ok {
		fmt.Fprintf(&b, "Theme: %s\n", info.Name)
	} else if theme != "" {
		fmt.Fprintf(&b, "Theme: %s\n", theme)
	}

	tag := g.catalog.Tag(locale)
	fmt.Fprintf(&b, "Language: %s\n", display.English.Tags().Name(tag))

	if n := g.config.MaxPriorStories; n > 0 && len(prior) > n {
		prior = prior[len(prior)-n:]
	}
	if len(prior) > 0 {
		b.WriteString("\nAvoid repeating these stories:\n")
		for i, s := range prior {
			fmt.Fprintf(&b, "%d. %s\n", i+1, s)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
