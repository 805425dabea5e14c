package storygen

import (
	"fmt"
	"regexp"
	"strconv"
	"unicode/utf8"

	"github.com/million-dollar-projects/mumskids-sub000/internal/problemgen"
)

// MaxStoryRunes bounds the story length.
const MaxStoryRunes = 300

// Validator checks a generated story against its question.
type Validator interface {
	Name() string
	Validate(story string, q *problemgen.Question) *problemgen.ValidationError
}

// DefaultValidators returns the checks applied to every story.
func DefaultValidators() []Validator {
	return []Validator{
		&LengthValidator{},
		&NumbersValidator{},
	}
}

// LengthValidator rejects empty and overlong stories.
type LengthValidator struct{}

func (v *LengthValidator) Name() string { return "length" }

func (v *LengthValidator) Validate(story string, _ *problemgen.Question) *problemgen.ValidationError {
	n := utf8.RuneCountInString(story)
	switch {
	case n == 0:
		return &problemgen.ValidationError{Validator: v.Name(), Message: "story is empty"}
	case n > MaxStoryRunes:
		return &problemgen.ValidationError{Validator: v.Name(), Message: fmt.Sprintf("story has %d characters, max %d", n, MaxStoryRunes)}
	}
	return nil
}

var numberPattern = regexp.MustCompile(`\d+`)

// NumbersValidator requires both operands to appear and forbids any other
// number, which also keeps the answer out of the text.
type NumbersValidator struct{}

func (v *NumbersValidator) Name() string { return "numbers" }

func (v *NumbersValidator) Validate(story string, q *problemgen.Question) *problemgen.ValidationError {
	seen := map[int]bool{}
	for _, m := range numberPattern.FindAllString(story, -1) {
		n, err := strconv.Atoi(m)
		if err != nil {
			continue
		}
		if n != q.Operand1 && n != q.Operand2 {
			msg := fmt.Sprintf("story contains %d, which is not an operand", n)
			if n == q.Answer {
				msg = "story reveals the answer"
			}
			return &problemgen.ValidationError{Validator: v.Name(), Message: msg}
		}
		seen[n] = true
	}
	for _, want := range []int{q.Operand1, q.Operand2} {
		if !seen[want] {
			return &problemgen.ValidationError{Validator: v.Name(), Message: fmt.Sprintf("story does not mention %d", want)}
		}
	}
	return nil
}
