package jdwp

import "fmt"

// SuspendPolicy controls which threads an event request suspends when it
// fires, and is reported back on the composite event that delivers it. A
// nominal type rather than a bare integer, matching
// original_source/src/spec/constants.rs exactly.
type SuspendPolicy uint8

const (
	SuspendNone        SuspendPolicy = 0
	SuspendEventThread SuspendPolicy = 1
	SuspendAll         SuspendPolicy = 2
)

func (p SuspendPolicy) String() string {
	switch p {
	case SuspendNone:
		return "None"
	case SuspendEventThread:
		return "EventThread"
	case SuspendAll:
		return "All"
	default:
		return fmt.Sprintf("SuspendPolicy(%d)", uint8(p))
	}
}
