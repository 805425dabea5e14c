package problemgen

import (
	"math/rand/v2"
	"testing"
)

func TestGenerate_CarryAddition(t *testing.T) {
	for _, tier := range AllTiers() {
		t.Run(string(tier), func(t *testing.T) {
			g := NewSeeded(1)
			cfg := tier.Config()
			for i := 0; i < 500; i++ {
				q := g.Generate(Request{Tier: tier, Operator: OpAdd, Carry: true})
				if q.Fallback {
					t.Fatalf("unexpected fallback for %s", q.Text())
				}
				if q.Answer != q.Operand1+q.Operand2 {
					t.Fatalf("%s: answer %d", q.Text(), q.Answer)
				}
				if q.Answer > cfg.Max {
					t.Fatalf("%s = %d exceeds %d", q.Text(), q.Answer, cfg.Max)
				}
				if !HasCarry(q.Operand1, q.Operand2) {
					t.Fatalf("%s should carry", q.Text())
				}
				if q.Operand1 < cfg.MinOperand1 || q.Operand2 < cfg.MinOperand2 {
					t.Fatalf("%s: operand below minimum", q.Text())
				}
			}
		})
	}
}

func TestGenerate_NoCarryAddition(t *testing.T) {
	for _, tier := range AllTiers() {
		t.Run(string(tier), func(t *testing.T) {
			g := NewSeeded(2)
			cfg := tier.Config()
			for i := 0; i < 500; i++ {
				q := g.Generate(Request{Tier: tier, Operator: OpAdd})
				if q.Fallback {
					t.Fatalf("unexpected fallback for %s", q.Text())
				}
				if HasCarry(q.Operand1, q.Operand2) {
					t.Fatalf("%s should not carry", q.Text())
				}
				if q.Answer > cfg.Max || q.Answer < cfg.MinSum {
					t.Fatalf("%s = %d out of range", q.Text(), q.Answer)
				}
			}
		})
	}
}

func TestGenerate_BorrowSubtraction(t *testing.T) {
	for _, tier := range AllTiers() {
		t.Run(string(tier), func(t *testing.T) {
			g := NewSeeded(3)
			cfg := tier.Config()
			for i := 0; i < 500; i++ {
				q := g.Generate(Request{Tier: tier, Operator: OpSub, Borrow: true})
				if q.Fallback {
					t.Fatalf("unexpected fallback for %s", q.Text())
				}
				if q.Operand1 < q.Operand2 || q.Answer != q.Operand1-q.Operand2 {
					t.Fatalf("%s: bad difference %d", q.Text(), q.Answer)
				}
				if !NeedsBorrow(q.Operand1, q.Operand2) {
					t.Fatalf("%s should borrow", q.Text())
				}
				if q.Operand1 > cfg.Max {
					t.Fatalf("%s: minuend exceeds %d", q.Text(), cfg.Max)
				}
				if q.Answer < max(1, cfg.MinDifference) {
					t.Fatalf("%s = %d below minimum difference", q.Text(), q.Answer)
				}
			}
		})
	}
}

func TestGenerate_NoBorrowSubtraction(t *testing.T) {
	for _, tier := range AllTiers() {
		t.Run(string(tier), func(t *testing.T) {
			g := NewSeeded(4)
			for i := 0; i < 500; i++ {
				q := g.Generate(Request{Tier: tier, Operator: OpSub})
				if q.Fallback {
					t.Fatalf("unexpected fallback for %s", q.Text())
				}
				if NeedsBorrow(q.Operand1, q.Operand2) {
					t.Fatalf("%s should not borrow", q.Text())
				}
				if q.Answer < 1 {
					t.Fatalf("%s = %d not positive", q.Text(), q.Answer)
				}
			}
		})
	}
}

func TestGenerate_RelaxedAllowsRegrouping(t *testing.T) {
	g := NewSeeded(5)
	sawCarry := false
	for i := 0; i < 500 && !sawCarry; i++ {
		q := g.Generate(Request{Tier: TierWithin20, Operator: OpAdd, Relaxed: true})
		if q.Answer > 20 {
			t.Fatalf("%s exceeds 20", q.Text())
		}
		sawCarry = HasCarry(q.Operand1, q.Operand2)
	}
	if !sawCarry {
		t.Error("relaxed request never produced a carry question")
	}
}

func TestGenerate_FallbackWhenValidatorsRejectEverything(t *testing.T) {
	g := NewSeeded(6)
	g.validators = []Validator{rejectAll{}}

	for _, op := range []Operator{OpAdd, OpSub} {
		q := g.Generate(Request{Tier: TierWithin10, Operator: op, Carry: true, Borrow: true})
		if !q.Fallback {
			t.Fatalf("expected fallback question for %s", op)
		}
		if q.Answer < 0 || q.Answer > 10 {
			t.Errorf("fallback %s = %d out of range", q.Text(), q.Answer)
		}
		if op == OpSub && q.Operand1 < q.Operand2 {
			t.Errorf("fallback %s has negative difference", q.Text())
		}
	}
}

func TestFallback_InconsistentBoundsDoNotPanic(t *testing.T) {
	g := NewSeeded(7)
	cfg := TierConfig{Max: 3, MinOperand1: 10, MinOperand2: 10}
	for _, op := range []Operator{OpAdd, OpSub} {
		q := g.fallback(op, cfg)
		if q.Answer < 0 {
			t.Errorf("fallback %s = %d", q.Text(), q.Answer)
		}
	}
}

func TestGenerate_UnknownOperatorIsAddition(t *testing.T) {
	g := NewSeeded(8)
	q := g.Generate(Request{Tier: TierWithin10, Operator: "*"})
	if q.Operator != OpAdd {
		t.Errorf("expected +, got %q", q.Operator)
	}
}

func TestGenerateSet_Within10Carry(t *testing.T) {
	g := NewSeeded(9)
	set := g.GenerateSet(SetRequest{Tier: TierWithin10, Mode: ModeAdd, Count: 20, Carry: true})
	if len(set) != 20 {
		t.Fatalf("expected 20 questions, got %d", len(set))
	}
	for i, q := range set {
		if q.Index != i+1 {
			t.Errorf("question %d has index %d", i, q.Index)
		}
		if q.Answer != 10 {
			t.Errorf("%s = %d, want 10", q.Text(), q.Answer)
		}
		if q.Operand1 < 1 || q.Operand1 > 9 || q.Operand2 < 1 || q.Operand2 > 9 {
			t.Errorf("%s: operands must be single digits", q.Text())
		}
	}
}

func TestGenerateSet_AddSubMixesOperators(t *testing.T) {
	g := NewSeeded(10)
	set := g.GenerateSet(SetRequest{Tier: TierWithin50, Mode: ModeAddSub, Count: 100})
	counts := map[Operator]int{}
	for _, q := range set {
		counts[q.Operator]++
	}
	if counts[OpAdd] == 0 || counts[OpSub] == 0 {
		t.Errorf("expected both operators, got %v", counts)
	}
}

func TestGenerateSet_NonPositiveCount(t *testing.T) {
	g := NewSeeded(11)
	for _, n := range []int{0, -3} {
		if set := g.GenerateSet(SetRequest{Tier: TierWithin10, Mode: ModeAdd, Count: n}); len(set) != 0 {
			t.Errorf("count %d: expected empty set, got %d", n, len(set))
		}
	}
}

func TestNewSeeded_Deterministic(t *testing.T) {
	req := SetRequest{Tier: TierWithin100, Mode: ModeAddSub, Count: 30, Carry: true}
	a := NewSeeded(42).GenerateSet(req)
	b := NewSeeded(42).GenerateSet(req)
	for i := range a {
		if a[i].Text() != b[i].Text() {
			t.Fatalf("question %d differs: %s vs %s", i, a[i].Text(), b[i].Text())
		}
	}
}

func TestBetween_EmptyRange(t *testing.T) {
	g := New(rand.NewPCG(1, 2))
	if got := g.between(5, 5); got != 5 {
		t.Errorf("between(5,5) = %d", got)
	}
	if got := g.between(7, 3); got != 7 {
		t.Errorf("between(7,3) = %d", got)
	}
}

type rejectAll struct{}

func (rejectAll) Name() string { return "reject-all" }

func (rejectAll) Validate(*Question, Request) *ValidationError {
	return &ValidationError{Validator: "reject-all", Message: "no"}
}
