package problemgen

import "math/rand/v2"

// Request describes a single question to generate.
type Request struct {
	Tier     Tier
	Operator Operator

	// Carry requires addition questions to carry into the tens column.
	Carry bool

	// Borrow requires subtraction questions to borrow from the tens column.
	Borrow bool

	// Relaxed lets a false Carry/Borrow preference produce regrouping
	// questions too. A true preference is always enforced.
	Relaxed bool
}

// SetRequest describes a whole question set.
type SetRequest struct {
	Tier    Tier
	Mode    Mode
	Count   int
	Carry   bool
	Borrow  bool
	Relaxed bool
}

// Generator synthesizes arithmetic questions by rejection sampling.
// A Generator owns its random source and is not safe for concurrent use;
// give each session its own.
type Generator struct {
	rng        *rand.Rand
	validators []Validator
}

// New creates a Generator drawing from src.
func New(src rand.Source) *Generator {
	return &Generator{
		rng:        rand.New(src),
		validators: DefaultValidators(),
	}
}

// NewSeeded creates a deterministic Generator.
func NewSeeded(seed uint64) *Generator {
	return New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewRandom creates a Generator with an independent random seed.
func NewRandom() *Generator {
	return NewSeeded(rand.Uint64())
}

// Rand exposes the generator's random source for callers that need to
// make related draws (reward selection, shuffles) from the same stream.
func (g *Generator) Rand() *rand.Rand {
	return g.rng
}

// Generate returns a question satisfying the request. If no candidate
// passes the validators within MaxAttempts, it falls back to a tier-bounded
// question that ignores the carry/borrow preference. It never fails.
func (g *Generator) Generate(req Request) Question {
	if req.Operator != OpSub {
		req.Operator = OpAdd
	}
	cfg := req.Tier.Config()

	for range MaxAttempts {
		q, ok := g.candidate(req, cfg)
		if !ok {
			continue
		}
		if g.accept(&q, req) {
			return q
		}
	}

	q := g.fallback(req.Operator, cfg)
	q.Fallback = true
	return q
}

// GenerateSet produces Count questions indexed 1..Count. In addsub mode each
// question flips a fair coin for its operator. Duplicates are allowed.
func (g *Generator) GenerateSet(req SetRequest) QuestionSet {
	if req.Count <= 0 {
		return QuestionSet{}
	}
	set := make(QuestionSet, 0, req.Count)
	for i := 1; i <= req.Count; i++ {
		q := g.Generate(Request{
			Tier:     req.Tier,
			Operator: g.ResolveOperator(req.Mode),
			Carry:    req.Carry,
			Borrow:   req.Borrow,
			Relaxed:  req.Relaxed,
		})
		q.Index = i
		set = append(set, q)
	}
	return set
}

// ResolveOperator picks the operator for one question of the given mode.
func (g *Generator) ResolveOperator(mode Mode) Operator {
	switch mode {
	case ModeSub:
		return OpSub
	case ModeAddSub:
		if g.rng.IntN(2) == 0 {
			return OpAdd
		}
		return OpSub
	default:
		return OpAdd
	}
}

func (g *Generator) accept(q *Question, req Request) bool {
	for _, v := range g.validators {
		if v.Validate(q, req) != nil {
			return false
		}
	}
	return true
}

func (g *Generator) candidate(req Request, cfg TierConfig) (Question, bool) {
	switch {
	case req.Operator == OpAdd && req.Carry:
		return g.carryAddition(cfg)
	case req.Operator == OpAdd && !req.Relaxed:
		return g.noCarryAddition(cfg)
	case req.Operator == OpAdd:
		return g.freeAddition(cfg), true
	case req.Borrow:
		return g.borrowSubtraction(cfg)
	case !req.Relaxed:
		return g.noBorrowSubtraction(cfg)
	default:
		return g.freeSubtraction(cfg), true
	}
}

// carryAddition builds the ones digits so they sum to at least 10, then
// shares the remaining tens between the operands.
func (g *Generator) carryAddition(cfg TierConfig) (Question, bool) {
	ones1 := g.between(1, 9)
	ones2 := g.between(10-ones1, min(9, cfg.Max-ones1))
	onesSum := ones1 + ones2
	if onesSum < 10 || onesSum > cfg.Max {
		return Question{}, false
	}

	tensBudget := (cfg.Max - onesSum) / 10
	tens1 := g.between(0, tensBudget)
	tens2 := g.between(0, tensBudget-tens1)
	if g.rng.IntN(2) == 0 {
		tens1, tens2 = tens2, tens1
	}

	a := tens1*10 + ones1
	b := tens2*10 + ones2
	return Question{Operand1: a, Operator: OpAdd, Operand2: b, Answer: a + b}, true
}

// noCarryAddition draws the sum first and splits it 30/70 at most.
func (g *Generator) noCarryAddition(cfg TierConfig) (Question, bool) {
	lo := max(cfg.MinSum, cfg.MinOperand1+cfg.MinOperand2)
	hi := min(cfg.Max, noCarrySumCap)
	if lo > hi {
		return Question{}, false
	}
	sum := g.between(lo, hi)

	op1Lo := max(cfg.MinOperand1, (3*sum+9)/10)
	op1Hi := min(sum-cfg.MinOperand2, 7*sum/10)
	if op1Lo > op1Hi {
		return Question{}, false
	}
	a := g.between(op1Lo, op1Hi)
	return Question{Operand1: a, Operator: OpAdd, Operand2: sum - a, Answer: sum}, true
}

// borrowSubtraction makes the minuend's ones digit smaller than the
// subtrahend's and gives the minuend at least one more ten.
func (g *Generator) borrowSubtraction(cfg TierConfig) (Question, bool) {
	ones2 := g.between(1, 9)
	onesHi := min(ones2-1, cfg.Max-10)
	if onesHi < 0 {
		return Question{}, false
	}
	ones1 := g.between(0, onesHi)

	tens1 := g.between(1, (cfg.Max-ones1)/10)
	tens2 := g.between(0, tens1-1)

	a := tens1*10 + ones1
	b := tens2*10 + ones2
	return Question{Operand1: a, Operator: OpSub, Operand2: b, Answer: a - b}, true
}

// noBorrowSubtraction keeps the minuend's ones digit at least as large as
// the subtrahend's and its tens no smaller.
func (g *Generator) noBorrowSubtraction(cfg TierConfig) (Question, bool) {
	ones2 := g.between(0, 9)
	ones1 := g.between(ones2, 9)
	if ones1 > cfg.Max {
		return Question{}, false
	}

	tens1 := g.between(0, (cfg.Max-ones1)/10)
	tens2 := g.between(0, tens1)

	a := tens1*10 + ones1
	b := tens2*10 + ones2
	return Question{Operand1: a, Operator: OpSub, Operand2: b, Answer: a - b}, true
}

func (g *Generator) freeAddition(cfg TierConfig) Question {
	a := g.between(cfg.MinOperand1, cfg.Max-cfg.MinOperand2)
	b := g.between(cfg.MinOperand2, cfg.Max-a)
	return Question{Operand1: a, Operator: OpAdd, Operand2: b, Answer: a + b}
}

func (g *Generator) freeSubtraction(cfg TierConfig) Question {
	a := g.between(cfg.MinOperand1, cfg.Max)
	b := g.between(cfg.MinOperand2, a-max(1, cfg.MinDifference))
	return Question{Operand1: a, Operator: OpSub, Operand2: b, Answer: a - b}
}

// fallback builds a structurally valid question from the tier bounds alone.
// It clamps every range so that even inconsistent bounds cannot panic.
func (g *Generator) fallback(op Operator, cfg TierConfig) Question {
	if op == OpSub {
		a := g.between(min(cfg.MinOperand1, cfg.Max), cfg.Max)
		b := g.between(min(cfg.MinOperand2, a), a)
		return Question{Operand1: a, Operator: OpSub, Operand2: b, Answer: a - b}
	}
	lo := min(cfg.MinOperand1, cfg.Max)
	a := g.between(lo, max(lo, cfg.Max-cfg.MinOperand2))
	b := g.between(min(cfg.MinOperand2, cfg.Max-a), cfg.Max-a)
	return Question{Operand1: a, Operator: OpAdd, Operand2: b, Answer: a + b}
}

// between returns a uniform integer in [lo, hi], or lo when the range is empty.
func (g *Generator) between(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + g.rng.IntN(hi-lo+1)
}
