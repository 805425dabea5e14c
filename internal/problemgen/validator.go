package problemgen

import "fmt"

// Validator checks a candidate question against one class of constraints.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier for this validator, e.g. "bounds".
	Name() string

	// Validate returns nil if the question passes.
	Validate(q *Question, req Request) *ValidationError
}

// ValidationError describes why a candidate was rejected.
type ValidationError struct {
	Validator string // Name of the validator that failed
	Message   string // Human-readable description of the failure
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

// DefaultValidators returns the chain every generated candidate must pass.
func DefaultValidators() []Validator {
	return []Validator{
		&BoundsValidator{},
		&RegroupingValidator{},
	}
}

// BoundsValidator enforces the tier's numeric range and minimum constants.
type BoundsValidator struct{}

func (v *BoundsValidator) Name() string { return "bounds" }

func (v *BoundsValidator) Validate(q *Question, req Request) *ValidationError {
	cfg := req.Tier.Config()

	if q.Operand1 > cfg.Max || q.Operand2 > cfg.Max || q.Answer > cfg.Max {
		return v.fail("%s exceeds tier max %d", q.Text(), cfg.Max)
	}
	if q.Operand1 < cfg.MinOperand1 {
		return v.fail("operand1 %d below minimum %d", q.Operand1, cfg.MinOperand1)
	}
	if q.Operand2 < cfg.MinOperand2 {
		return v.fail("operand2 %d below minimum %d", q.Operand2, cfg.MinOperand2)
	}

	switch q.Operator {
	case OpAdd:
		if q.Answer != q.Operand1+q.Operand2 {
			return v.fail("answer %d does not match %s", q.Answer, q.Text())
		}
		if q.Answer < cfg.MinSum {
			return v.fail("sum %d below minimum %d", q.Answer, cfg.MinSum)
		}
	case OpSub:
		if q.Answer != q.Operand1-q.Operand2 {
			return v.fail("answer %d does not match %s", q.Answer, q.Text())
		}
		if q.Answer < max(1, cfg.MinDifference) {
			return v.fail("difference %d below minimum %d", q.Answer, max(1, cfg.MinDifference))
		}
	default:
		return v.fail("unknown operator %q", q.Operator)
	}
	return nil
}

func (v *BoundsValidator) fail(format string, args ...any) *ValidationError {
	return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf(format, args...)}
}

// RegroupingValidator enforces the carry/borrow preference of the request.
// A true preference requires regrouping; a false one forbids it unless the
// request is relaxed.
type RegroupingValidator struct{}

func (v *RegroupingValidator) Name() string { return "regrouping" }

func (v *RegroupingValidator) Validate(q *Question, req Request) *ValidationError {
	switch q.Operator {
	case OpAdd:
		carry := HasCarry(q.Operand1, q.Operand2)
		if req.Carry && !carry {
			return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("%s needs no carry", q.Text())}
		}
		if !req.Carry && !req.Relaxed && carry {
			return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("%s needs a carry", q.Text())}
		}
	case OpSub:
		borrow := NeedsBorrow(q.Operand1, q.Operand2)
		if req.Borrow && !borrow {
			return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("%s needs no borrow", q.Text())}
		}
		if !req.Borrow && !req.Relaxed && borrow {
			return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("%s needs a borrow", q.Text())}
		}
	}
	return nil
}

// HasCarry reports whether a + b carries out of the ones column.
func HasCarry(a, b int) bool {
	return a%10+b%10 >= 10
}

// NeedsBorrow reports whether a - b borrows into the ones column.
func NeedsBorrow(a, b int) bool {
	return a%10 < b%10
}
