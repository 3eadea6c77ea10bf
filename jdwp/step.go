package jdwp

import "fmt"

// StepSize is the granularity of a step event request.
type StepSize int32

const (
	StepMin  StepSize = 0 // step by the minimum possible amount (usually a bytecode instruction).
	StepLine StepSize = 1 // step to the next source line, unless no line info is available.
)

func (s StepSize) String() string {
	switch s {
	case StepMin:
		return "Min"
	case StepLine:
		return "Line"
	default:
		return fmt.Sprintf("StepSize(%d)", int32(s))
	}
}

// StepDepth controls whether a step event request follows calls into and
// out of the stepped frame.
type StepDepth int32

const (
	StepInto StepDepth = 0 // step into any method calls that occur before the next step contract is satisfied.
	StepOver StepDepth = 1 // step over any method calls that occur before the next step contract is satisfied.
	StepOut  StepDepth = 2 // step out of the current method.
)

func (d StepDepth) String() string {
	switch d {
	case StepInto:
		return "Into"
	case StepOver:
		return "Over"
	case StepOut:
		return "Out"
	default:
		return fmt.Sprintf("StepDepth(%d)", int32(d))
	}
}
