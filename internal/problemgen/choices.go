package problemgen

// ChoiceCount is the number of options in a multiple-choice question.
const ChoiceCount = 4

const (
	distractorAttempts = 50
	distractorWidening = 3
)

// SynthesizeChoices returns ChoiceCount distinct non-negative options in
// random order, exactly one of which is answer, and the index of answer.
//
// Distractors are drawn near the answer: ±5 for addition, ±4 for
// subtraction, capped at max(2*answer, 2*tierMax). If a draw keeps colliding
// the range is doubled a few times, and after that the nearest free values
// above the answer are used, so the call always terminates.
func (g *Generator) SynthesizeChoices(answer int, op Operator, tierMax int) ([]int, int) {
	spread := 4
	if op == OpAdd {
		spread = 5
	}
	limit := max(2*answer, 2*tierMax)

	choices := make([]int, 0, ChoiceCount)
	choices = append(choices, answer)
	seen := map[int]bool{answer: true}

	for len(choices) < ChoiceCount {
		v, ok := g.distractor(answer, spread, limit, seen)
		if !ok {
			break
		}
		seen[v] = true
		choices = append(choices, v)
	}
	for k := 1; len(choices) < ChoiceCount; k++ {
		if v := answer + k; !seen[v] {
			seen[v] = true
			choices = append(choices, v)
		}
	}

	g.rng.Shuffle(len(choices), func(i, j int) {
		choices[i], choices[j] = choices[j], choices[i]
	})
	for i, c := range choices {
		if c == answer {
			return choices, i
		}
	}
	return choices, 0
}

func (g *Generator) distractor(answer, spread, limit int, seen map[int]bool) (int, bool) {
	for round := 0; round <= distractorWidening; round++ {
		r := spread << round
		for range distractorAttempts {
			v := answer + g.between(-r, r)
			if v >= 0 && v <= limit && !seen[v] {
				return v, true
			}
		}
	}
	return 0, false
}

// WithChoices attaches multiple-choice options to q.
func (g *Generator) WithChoices(q Question, tierMax int) Question {
	q.Choices, q.CorrectIndex = g.SynthesizeChoices(q.Answer, q.Operator, tierMax)
	return q
}
