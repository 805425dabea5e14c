package problemgen

import (
	"fmt"
	"strconv"
	"strings"
)

// CheckAnswer compares the learner's input against the correct answer.
//
// Normalization rules:
// - Whitespace is trimmed
// - Leading zeros and a leading '+' are ignored ("007" matches "7")
// - For multiple choice the input is read as a value first; a number
//   in 1..len(Choices) counts as an option number only when no option
//   carries that value
func CheckAnswer(input string, q *Question) bool {
	n, err := ParseAnswer(input)
	if err != nil {
		return false
	}
	return q.ResolveChoice(n) == q.Answer
}

// ResolveChoice maps learner input n to the value it stands for.
// Free-input questions return n unchanged.
func (q *Question) ResolveChoice(n int) int {
	if !q.HasChoices() {
		return n
	}
	for _, c := range q.Choices {
		if c == n {
			return n
		}
	}
	if n >= 1 && n <= len(q.Choices) {
		return q.Choices[n-1]
	}
	return n
}

// ParseAnswer parses learner input into an integer.
func ParseAnswer(input string) (int, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return 0, fmt.Errorf("empty answer")
	}
	n, err := strconv.Atoi(input)
	if err != nil {
		return 0, fmt.Errorf("invalid integer: %w", err)
	}
	return n, nil
}
