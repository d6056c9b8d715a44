package vector

import (
	"fmt"
	"math"
)

// Build-time capacity policy. When a vector of capacity x is full it is
// reallocated to ceil(A*x + B) slots; when it is over-provisioned it shrinks
// to floor((x - B) / A). A >= 1 and B >= 1 guarantee growth from zero.
const (
	GrowthFactor = 1.3 // A
	MinIncrement = 1   // B
)

// DefaultPolicy is the policy every Vector uses.
var DefaultPolicy = Policy{A: GrowthFactor, B: MinIncrement}

// tolerance absorbs binary rounding in A*x before ceil/floor,
// e.g. 1.3*10 evaluates to 13.000000000000002.
const tolerance = 1e-9

// Policy holds the growth multiplier A and minimum increment B.
type Policy struct {
	A float64 `yaml:"growth"`
	B int     `yaml:"increment"`
}

// Validate reports whether the policy can always make progress.
func (p Policy) Validate() error {
	if math.IsNaN(p.A) || math.IsInf(p.A, 0) || p.A < 1 {
		return fmt.Errorf("%w: growth factor %v must be a finite number >= 1", ErrInvalid, p.A)
	}
	if p.B < 1 {
		return fmt.Errorf("%w: minimum increment %d must be >= 1", ErrInvalid, p.B)
	}
	return nil
}

// Grow returns the capacity that follows a full capacity c.
func (p Policy) Grow(c int) int {
	return int(math.Ceil(p.A*float64(c) + float64(p.B) - tolerance))
}

// ShrinkTarget returns floor((c - B) / A). It may be negative for c < B.
func (p Policy) ShrinkTarget(c int) int {
	return int(math.Floor(float64(c-p.B)/p.A + tolerance))
}

// Action is the outcome of one policy evaluation.
type Action int

const (
	Keep Action = iota
	Grow
	Shrink
)

func (a Action) String() string {
	switch a {
	case Grow:
		return "grow"
	case Shrink:
		return "shrink"
	}
	return "keep"
}

// Decide evaluates the policy for the given state. With allowGrow false only
// the shrink branch can fire. Shrink targets are clamped to length, and
// pinned capacities never shrink.
func (p Policy) Decide(length, capacity int, pinned, allowGrow bool) (Action, int) {
	if length == capacity {
		if !allowGrow {
			return Keep, capacity
		}
		return Grow, p.Grow(capacity)
	}
	if pinned {
		return Keep, capacity
	}
	if target := p.ShrinkTarget(capacity); length < target {
		return Shrink, max(target, length)
	}
	return Keep, capacity
}

// Op is one step of a simulated workload.
type Op int

const (
	OpPush Op = iota
	OpPop
)

func (o Op) String() string {
	if o == OpPop {
		return "pop"
	}
	return "push"
}

// Step records the state after one simulated operation.
type Step struct {
	Op       Op
	Action   Action
	Len      int
	Cap      int
	Previous int
}

// Simulate replays ops against an empty vector (or one pinned at reserve
// when reserve > 0) using p, assuming every allocation succeeds. Pops on an
// empty vector are recorded as no-ops.
func (p Policy) Simulate(reserve int, ops []Op) []Step {
	length, capacity, pinned := 0, 0, false
	if reserve > 0 {
		capacity, pinned = reserve, true
	}

	steps := make([]Step, 0, len(ops))
	for _, op := range ops {
		prev := capacity
		if op == OpPop && length == 0 {
			steps = append(steps, Step{Op: op, Action: Keep, Len: 0, Cap: capacity, Previous: prev})
			continue
		}
		action, next := p.Decide(length, capacity, pinned, op == OpPush)
		capacity = next
		if op == OpPush {
			length++
		} else {
			length--
		}
		steps = append(steps, Step{Op: op, Action: action, Len: length, Cap: capacity, Previous: prev})
	}
	return steps
}
