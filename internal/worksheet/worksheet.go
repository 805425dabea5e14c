// Package worksheet builds printable arithmetic worksheets with an answer
// key. Questions come from the same generator the quiz uses.
package worksheet

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/million-dollar-projects/mumskids-sub000/internal/practice"
	"github.com/million-dollar-projects/mumskids-sub000/internal/problemgen"
)

// Count limits for one worksheet.
const (
	DefaultCount = 30
	MaxCount     = 200
)

// Options describes a worksheet.
type Options struct {
	problemgen.SetRequest

	Title string
	Name  string // learner's name, printed in the header when set

	// Columns is the number of questions per row. Story worksheets use one.
	Columns int
	Locale  string
	Theme   string
}

// FromPractice copies a practice's generator settings into Options.
// Timed practices have no count, so DefaultCount is used.
func FromPractice(p *practice.Practice, count int) Options {
	if count <= 0 {
		count = p.QuestionCount
	}
	if count <= 0 {
		count = DefaultCount
	}
	return Options{
		SetRequest: p.SetRequest(count),
		Title:      p.Title,
		Theme:      p.Theme,
	}
}

// Validate checks Options before generation.
func (o Options) Validate() error {
	if !o.Tier.Valid() {
		return fmt.Errorf("%w: unknown tier %q", practice.ErrInvalidConfig, o.Tier)
	}
	if !o.Mode.Valid() {
		return fmt.Errorf("%w: unknown calculation mode %q", practice.ErrInvalidConfig, o.Mode)
	}
	if o.Count < 1 || o.Count > MaxCount {
		return fmt.Errorf("%w: worksheet needs 1 to %d questions, got %d", practice.ErrInvalidConfig, MaxCount, o.Count)
	}
	if o.Columns < 0 || o.Columns > 6 {
		return fmt.Errorf("%w: columns must be 1 to 6", practice.ErrInvalidConfig)
	}
	return nil
}

// Sheet is a generated worksheet ready to render.
type Sheet struct {
	Title     string
	Name      string
	Subtitle  string
	Locale    string
	Theme     string
	Columns   int
	Questions problemgen.QuestionSet

	// Stories is parallel to Questions when story problems were added.
	Stories []string

	CreatedAt time.Time
}

// Build generates the questions for opts.
func Build(gen *problemgen.Generator, opts Options, now time.Time) (*Sheet, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	title := strings.TrimSpace(opts.Title)
	if title == "" {
		title = opts.Mode.DisplayName() + " practice"
	}
	cols := opts.Columns
	if cols == 0 {
		cols = 3
	}
	return &Sheet{
		Title:     title,
		Name:      opts.Name,
		Subtitle:  subtitle(opts.SetRequest),
		Locale:    opts.Locale,
		Theme:     opts.Theme,
		Columns:   cols,
		Questions: gen.GenerateSet(opts.SetRequest),
		CreatedAt: now,
	}, nil
}

func subtitle(req problemgen.SetRequest) string {
	parts := []string{req.Tier.DisplayName(), req.Mode.DisplayName()}
	switch {
	case req.Relaxed && !req.Carry && !req.Borrow:
		parts = append(parts, "mixed")
	default:
		if req.Carry && req.Mode != problemgen.ModeSub {
			parts = append(parts, "carry")
		}
		if req.Borrow && req.Mode != problemgen.ModeAdd {
			parts = append(parts, "borrow")
		}
	}
	parts = append(parts, fmt.Sprintf("%d questions", req.Count))
	return strings.Join(parts, " · ")
}

// StoryWriter rewords a question set as story problems.
type StoryWriter interface {
	Stories(ctx context.Context, qs problemgen.QuestionSet, theme, locale string) ([]string, error)
}

// AddStories attaches story problems. Partial results are kept: a
// question whose story failed reads as its bare expression.
func (s *Sheet) AddStories(ctx context.Context, w StoryWriter) error {
	stories, err := w.Stories(ctx, s.Questions, s.Theme, s.Locale)
	if len(stories) == len(s.Questions) {
		s.Stories = stories
	}
	return err
}

// HasStories reports whether story problems are attached.
func (s *Sheet) HasStories() bool {
	return len(s.Stories) == len(s.Questions) && len(s.Stories) > 0
}

// WriteText writes a plain-text rendering, questions then answers.
func (s *Sheet) WriteText(w io.Writer) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n%s\n\n", s.Title, s.Subtitle)
	for i, q := range s.Questions {
		if s.HasStories() {
			fmt.Fprintf(&b, "%d. %s\n   Answer: ____\n", q.Index, s.Stories[i])
			continue
		}
		fmt.Fprintf(&b, "%d. %s = ____\n", q.Index, q.Text())
	}
	b.WriteString("\nAnswer key\n")
	for _, q := range s.Questions {
		fmt.Fprintf(&b, "%d. %d\n", q.Index, q.Answer)
	}
	_, err := io.WriteString(w, b.String())
	return err
}
