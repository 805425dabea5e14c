package session

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/million-dollar-projects/mumskids-sub000/internal/practice"
	"github.com/million-dollar-projects/mumskids-sub000/internal/problemgen"
	"github.com/million-dollar-projects/mumskids-sub000/internal/store"
)

var t0 = time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

func normalPractice(n int) *practice.Practice {
	p := practice.New("Test")
	p.Tier = problemgen.TierWithin20
	p.Mode = problemgen.ModeAddSub
	p.Carry = true
	p.QuestionCount = n
	return p
}

func timedPractice(mins int) *practice.Practice {
	p := practice.New("Timed")
	p.TestMode = practice.TestTimed
	p.TimeLimitMinutes = mins
	p.QuestionCount = 0
	return p
}

func testState(p *practice.Practice) *SessionState {
	return NewSessionState(p, problemgen.NewSeeded(99), "test-session-id", t0)
}

func answer(q *problemgen.Question, correct bool) string {
	if correct {
		return strconv.Itoa(q.Answer)
	}
	return strconv.Itoa(q.Answer + 1)
}

func TestNext_IndexesAndOperators(t *testing.T) {
	state := testState(normalPractice(40))
	ops := map[problemgen.Operator]int{}
	for i := 1; i <= 40; i++ {
		q := Next(state, t0)
		if q.Index != i {
			t.Fatalf("question %d has index %d", i, q.Index)
		}
		if q.HasChoices() {
			t.Fatal("free-input practice should not get choices")
		}
		if q.Operator == problemgen.OpAdd && !problemgen.HasCarry(q.Operand1, q.Operand2) {
			t.Errorf("%s should carry", q.Text())
		}
		if q.Operator == problemgen.OpSub && problemgen.NeedsBorrow(q.Operand1, q.Operand2) {
			t.Errorf("%s should not borrow", q.Text())
		}
		ops[q.Operator]++
		HandleAnswer(state, answer(q, true), t0)
	}
	if ops[problemgen.OpAdd] == 0 || ops[problemgen.OpSub] == 0 {
		t.Errorf("expected both operators in addsub mode, got %v", ops)
	}
}

func TestNext_MultipleChoice(t *testing.T) {
	p := normalPractice(5)
	p.MultipleChoice = true
	state := testState(p)

	q := Next(state, t0)
	if len(q.Choices) != problemgen.ChoiceCount {
		t.Fatalf("expected %d choices, got %d", problemgen.ChoiceCount, len(q.Choices))
	}
	rec := HandleAnswer(state, strconv.Itoa(q.Answer), t0)
	if rec == nil || !rec.Correct {
		t.Error("typing the correct value should be correct")
	}
	if got, want := rec.Given(), strconv.Itoa(q.Answer); got != want {
		t.Errorf("Given() = %q, want %q", got, want)
	}
}

func TestAnswerRecord_Given(t *testing.T) {
	q := problemgen.Question{
		Operand1: 5, Operator: problemgen.OpSub, Operand2: 3, Answer: 2,
		Choices:      []int{2, 4, 1, 3},
		CorrectIndex: 0,
	}
	tests := []struct {
		input string
		want  string
	}{
		{"2", "2"},
		{"1", "1"}, // a value, not option 1
		{" 3 ", "3"},
		{"abc", "abc"},
	}
	for _, tt := range tests {
		rec := AnswerRecord{Question: q, Input: tt.input}
		if got := rec.Given(); got != tt.want {
			t.Errorf("Given(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}

	q.Choices = []int{7, 9, 6, 8}
	q.Answer, q.CorrectIndex = 8, 3
	if got := (AnswerRecord{Question: q, Input: "4"}).Given(); got != "8" {
		t.Errorf("option number 4 should map to 8, got %q", got)
	}
}

func TestHandleAnswer_Counters(t *testing.T) {
	state := testState(normalPractice(3))

	q := Next(state, t0)
	rec := HandleAnswer(state, answer(q, true), t0.Add(4*time.Second))
	if rec == nil || !rec.Correct {
		t.Fatal("expected correct record")
	}
	if rec.Duration != 4*time.Second {
		t.Errorf("duration = %v, want 4s", rec.Duration)
	}
	if state.Phase != PhaseFeedback {
		t.Errorf("phase = %v, want feedback", state.Phase)
	}

	// A second submit during feedback is ignored.
	if HandleAnswer(state, answer(q, true), t0) != nil {
		t.Error("expected answer during feedback to be ignored")
	}

	q = Next(state, t0.Add(5*time.Second))
	if HandleAnswer(state, "   ", t0) != nil {
		t.Error("expected blank input to be ignored")
	}
	HandleAnswer(state, answer(q, false), t0.Add(9*time.Second))

	if state.TotalAnswered != 2 || state.TotalCorrect != 1 {
		t.Errorf("answered=%d correct=%d, want 2/1", state.TotalAnswered, state.TotalCorrect)
	}
	if state.LastAnswerCorrect {
		t.Error("last answer should be wrong")
	}
	if len(state.Answers) != 2 {
		t.Errorf("expected 2 answer records, got %d", len(state.Answers))
	}
}

func TestShouldEnd_Normal(t *testing.T) {
	state := testState(normalPractice(2))
	for i := 0; i < 2; i++ {
		if ShouldEnd(state, t0) {
			t.Fatalf("ended after %d answers", i)
		}
		q := Next(state, t0)
		HandleAnswer(state, answer(q, true), t0)
	}
	if !ShouldEnd(state, t0) {
		t.Error("expected end after 2 answers")
	}
	if RemainingQuestions(state) != 0 {
		t.Errorf("remaining = %d", RemainingQuestions(state))
	}
}

func TestShouldEnd_TimedWithInFlightQuestion(t *testing.T) {
	state := testState(timedPractice(1))

	q := Next(state, t0)
	HandleAnswer(state, answer(q, true), t0.Add(20*time.Second))
	Next(state, t0.Add(50*time.Second))

	if ShouldEnd(state, t0.Add(59*time.Second)) {
		t.Fatal("ended before the limit")
	}
	if RemainingTime(state, t0.Add(45*time.Second)) != 15*time.Second {
		t.Errorf("remaining = %v", RemainingTime(state, t0.Add(45*time.Second)))
	}

	// Time is up but a question is on screen: it may still be answered.
	if ShouldEnd(state, t0.Add(61*time.Second)) {
		t.Fatal("in-flight question should get its grace period")
	}
	if !state.TimeExpired {
		t.Error("expected TimeExpired")
	}
	HandleAnswer(state, answer(state.CurrentQuestion, false), t0.Add(65*time.Second))
	if !ShouldEnd(state, t0.Add(65*time.Second)) {
		t.Error("expected end once the in-flight question is answered")
	}
	if state.TotalAnswered != 2 {
		t.Errorf("answered = %d, want 2", state.TotalAnswered)
	}
}

func TestShouldEnd_TimedGraceRunsOut(t *testing.T) {
	state := testState(timedPractice(1))
	Next(state, t0)
	if !ShouldEnd(state, t0.Add(time.Minute+InFlightGrace)) {
		t.Error("expected end after the grace period")
	}
}

func TestEnd_StopsQuestions(t *testing.T) {
	state := testState(normalPractice(5))
	Next(state, t0)
	End(state, t0.Add(time.Minute))

	if state.Phase != PhaseEnded {
		t.Fatal("expected ended phase")
	}
	if state.Elapsed != time.Minute {
		t.Errorf("elapsed = %v", state.Elapsed)
	}
	if Next(state, t0) != nil {
		t.Error("Next after End should return nil")
	}
	Tick(state, t0.Add(time.Hour))
	if state.Elapsed != time.Minute {
		t.Error("elapsed must be frozen after End")
	}
}

func TestBuildSummary(t *testing.T) {
	state := testState(normalPractice(4))
	for i := 0; i < 4; i++ {
		q := Next(state, t0)
		HandleAnswer(state, answer(q, i != 2), t0)
	}
	End(state, t0.Add(2*time.Minute))

	s := BuildSummary(state)
	if s.TotalAnswered != 4 || s.TotalCorrect != 3 {
		t.Errorf("got %d/%d", s.TotalCorrect, s.TotalAnswered)
	}
	if s.Accuracy != 0.75 || s.ErrorRatePercent != 25 {
		t.Errorf("accuracy=%v error=%v", s.Accuracy, s.ErrorRatePercent)
	}
	if s.Stars != 2 {
		t.Errorf("stars = %d, want 2", s.Stars)
	}
	if len(s.Mistakes) != 1 || s.Mistakes[0].Question.Index != 3 {
		t.Errorf("unexpected mistakes %+v", s.Mistakes)
	}
	if r := Result(state); r.Elapsed != 2*time.Minute {
		t.Errorf("result elapsed = %v", r.Elapsed)
	}
}

// mockEventRepo implements store.EventRepo for session tests.
type mockEventRepo struct {
	sessions []store.SessionEventData
	answers  []store.AnswerEventData
}

func (m *mockEventRepo) AppendSessionEvent(_ context.Context, d store.SessionEventData) error {
	m.sessions = append(m.sessions, d)
	return nil
}
func (m *mockEventRepo) AppendAnswerEvent(_ context.Context, d store.AnswerEventData) error {
	m.answers = append(m.answers, d)
	return nil
}
func (m *mockEventRepo) AppendRewardEvent(_ context.Context, _ store.RewardEventData) error {
	return nil
}
func (m *mockEventRepo) AppendLLMRequest(_ context.Context, _ store.LLMRequestEventData) error {
	return nil
}
func (m *mockEventRepo) QueryRewardEvents(_ context.Context, _ store.QueryOpts) ([]store.RewardEventRecord, error) {
	return nil, nil
}
func (m *mockEventRepo) RewardCounts(_ context.Context) (map[string]int, int, error) {
	return nil, 0, nil
}
func (m *mockEventRepo) QuerySessionSummaries(_ context.Context, _ store.QueryOpts) ([]store.SessionSummaryRecord, error) {
	return nil, nil
}

func TestRecorder(t *testing.T) {
	repo := &mockEventRepo{}
	rec := NewRecorder(repo)
	ctx := context.Background()
	state := testState(normalPractice(1))

	if err := rec.Start(ctx, state); err != nil {
		t.Fatal(err)
	}
	q := Next(state, t0)
	ar := HandleAnswer(state, answer(q, true), t0.Add(3*time.Second))
	if err := rec.Answer(ctx, state, ar); err != nil {
		t.Fatal(err)
	}
	End(state, t0.Add(10*time.Second))
	if err := rec.End(ctx, state, true); err != nil {
		t.Fatal(err)
	}

	if len(repo.sessions) != 2 || repo.sessions[0].Action != "start" || repo.sessions[1].Action != "end" {
		t.Fatalf("unexpected session events %+v", repo.sessions)
	}
	if repo.sessions[1].DurationSecs != 10 || !repo.sessions[1].RewardEligible {
		t.Errorf("unexpected end event %+v", repo.sessions[1])
	}
	if len(repo.answers) != 1 || repo.answers[0].TimeMs != 3000 || repo.answers[0].QuestionText != q.Text() {
		t.Errorf("unexpected answer events %+v", repo.answers)
	}

	var nilRec *Recorder
	if err := nilRec.Start(ctx, state); err != nil {
		t.Error("nil recorder should be a no-op")
	}
}
