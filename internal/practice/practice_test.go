package practice

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/million-dollar-projects/mumskids-sub000/internal/problemgen"
)

func validPractice() *Practice {
	p := New("Carry practice")
	p.Tier = problemgen.TierWithin20
	p.Carry = true
	p.Rewards = []Reward{
		{ID: "icecream", Text: "Ice cream", Emoji: "🍦"},
		{ID: "park", Text: "Trip to the park"},
	}
	return p
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *Practice)
		ok     bool
	}{
		{"valid", func(p *Practice) {}, true},
		{"missing title", func(p *Practice) { p.Title = " " }, false},
		{"unknown tier", func(p *Practice) { p.Tier = "within30" }, false},
		{"unknown mode", func(p *Practice) { p.Mode = "mul" }, false},
		{"zero questions", func(p *Practice) { p.QuestionCount = 0 }, false},
		{"too many questions", func(p *Practice) { p.QuestionCount = 101 }, false},
		{"one question", func(p *Practice) { p.QuestionCount = 1 }, true},
		{"timed without limit", func(p *Practice) { p.TestMode = TestTimed }, false},
		{"timed with limit", func(p *Practice) { p.TestMode = TestTimed; p.TimeLimitMinutes = 5 }, true},
		{"timed over an hour", func(p *Practice) { p.TestMode = TestTimed; p.TimeLimitMinutes = 61 }, false},
		{"duplicate reward", func(p *Practice) { p.Rewards[1].ID = "icecream" }, false},
		{"empty reward id", func(p *Practice) { p.Rewards[0].ID = "" }, false},
		{"empty reward text", func(p *Practice) { p.Rewards[0].Text = "" }, false},
		{"bad distribution", func(p *Practice) { p.Distribution = "lottery" }, false},
		{"no rewards ignores distribution", func(p *Practice) { p.Rewards = nil; p.Distribution = "" }, true},
		{"condition mode mismatch", func(p *Practice) {
			p.Condition = &Condition{Mode: TestTimed, MinCorrect: 5, MaxErrorRatePercent: 20}
		}, false},
		{"condition matches", func(p *Practice) {
			p.Condition = &Condition{Mode: TestNormal, TargetCorrect: 8, MaxTimeMinutes: 3}
		}, true},
		{"negative target", func(p *Practice) {
			p.Condition = &Condition{Mode: TestNormal, TargetCorrect: -1}
		}, false},
		{"error rate over 100", func(p *Practice) {
			p.TestMode = TestTimed
			p.TimeLimitMinutes = 3
			p.Condition = &Condition{Mode: TestTimed, MinCorrect: 5, MaxErrorRatePercent: 150}
		}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validPractice()
			tt.mutate(p)
			err := p.Validate()
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidConfig), "error should wrap ErrInvalidConfig: %v", err)
		})
	}
}

func TestValidateForUI_MinimumQuestions(t *testing.T) {
	p := validPractice()
	p.QuestionCount = 4
	assert.NoError(t, p.Validate())
	assert.ErrorIs(t, p.ValidateForUI(), ErrInvalidConfig)
	p.QuestionCount = 5
	assert.NoError(t, p.ValidateForUI())
}

func TestDefaultCondition(t *testing.T) {
	tests := []struct {
		name  string
		mode  TestMode
		count int
		mins  int
		want  Condition
	}{
		{"normal 10", TestNormal, 10, 0, Condition{Mode: TestNormal, TargetCorrect: 8, MaxTimeMinutes: 5}},
		{"normal 7", TestNormal, 7, 0, Condition{Mode: TestNormal, TargetCorrect: 6, MaxTimeMinutes: 4}},
		{"normal 1", TestNormal, 1, 0, Condition{Mode: TestNormal, TargetCorrect: 1, MaxTimeMinutes: 1}},
		{"normal 0 clamps to 1", TestNormal, 0, 0, Condition{Mode: TestNormal, TargetCorrect: 1, MaxTimeMinutes: 1}},
		{"timed 1 min floors at 5", TestTimed, 0, 1, Condition{Mode: TestTimed, MinCorrect: 5, MaxErrorRatePercent: 20}},
		{"timed 5 min", TestTimed, 0, 5, Condition{Mode: TestTimed, MinCorrect: 11, MaxErrorRatePercent: 20}},
		{"timed 10 min", TestTimed, 0, 10, Condition{Mode: TestTimed, MinCorrect: 21, MaxErrorRatePercent: 20}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DefaultCondition(tt.mode, tt.count, tt.mins))
		})
	}
}

func TestEffectiveCondition(t *testing.T) {
	p := validPractice()
	assert.Equal(t, DefaultCondition(TestNormal, 10, 0), p.EffectiveCondition())

	explicit := &Condition{Mode: TestNormal, TargetCorrect: 9, MaxTimeMinutes: 2}
	p.Condition = explicit
	assert.Equal(t, *explicit, p.EffectiveCondition())
}

func TestConditionDescribe(t *testing.T) {
	assert.Equal(t, "Get 8 right in 5 minutes or less", DefaultCondition(TestNormal, 10, 0).Describe())
	assert.Equal(t, "Get at least 11 right with no more than 20% wrong", DefaultCondition(TestTimed, 0, 5).Describe())

	c := Condition{Mode: TestTimed, MinCorrect: 3, MaxErrorRatePercent: 12.5}
	assert.Equal(t, "Get at least 3 right with no more than 12.5% wrong", c.Describe())
}

func TestRewardByID(t *testing.T) {
	p := validPractice()
	r, ok := p.RewardByID("park")
	require.True(t, ok)
	assert.Equal(t, "Trip to the park", r.Label())

	_, ok = p.RewardByID("zoo")
	assert.False(t, ok)
}

func TestSummary(t *testing.T) {
	p := validPractice()
	assert.Equal(t, "Within 20 · Addition · carry · 10 questions", p.Summary())

	p.TestMode = TestTimed
	p.TimeLimitMinutes = 3
	p.Mode = problemgen.ModeAddSub
	p.Borrow = true
	assert.Equal(t, "Within 20 · Addition & Subtraction · carry · borrow · 3 min", p.Summary())
}

func TestFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "p.toml")
	p := validPractice()
	p.Condition = &Condition{Mode: TestNormal, TargetCorrect: 8, MaxTimeMinutes: 3}
	require.NoError(t, p.WriteFile(path))

	got, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, p.Title, got.Title)
	assert.Equal(t, p.Tier, got.Tier)
	assert.Equal(t, p.Rewards, got.Rewards)
	assert.Equal(t, p.Condition, got.Condition)
}

func TestLoadFile_Defaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "p.toml")
	require.NoError(t, os.WriteFile(path, []byte(`title = "Quick"
tier = "within50"
mode = "sub"
borrow = true
`), 0o644))

	p, err := LoadFile(path)
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, TestNormal, p.TestMode)
	assert.Equal(t, 10, p.QuestionCount)
	assert.Equal(t, problemgen.ModeSub, p.Mode)
}

func TestLoadFile_RejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "p.toml")
	require.NoError(t, os.WriteFile(path, []byte(`title = "Quick"
colour = "red"
`), 0o644))

	_, err := LoadFile(path)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoadFile_CrossModeCondition(t *testing.T) {
	path := filepath.Join(t.TempDir(), "p.toml")
	require.NoError(t, os.WriteFile(path, []byte(`title = "Mixed up"
test_mode = "normal"
question_count = 10

[condition]
mode = "timed"
min_correct = 5
max_error_rate_percent = 20.0
`), 0o644))

	_, err := LoadFile(path)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
