package runstate

import (
	"fmt"
	"strings"
)

// RunState is the coarse lifecycle state of the process.
//
// Only Online and Offline are touched by reconciliation; Initializing and
// ShuttingDown belong to process startup and teardown.
type RunState string

const (
	Initializing RunState = "initializing"
	Online       RunState = "online"
	Offline      RunState = "offline"
	ShuttingDown RunState = "shutting_down"
)

// String implements fmt.Stringer.
func (s RunState) String() string { return string(s) }

// Parse converts text to a RunState.
func Parse(s string) (RunState, error) {
	switch RunState(strings.ToLower(strings.TrimSpace(s))) {
	case Initializing:
		return Initializing, nil
	case Online:
		return Online, nil
	case Offline:
		return Offline, nil
	case ShuttingDown:
		return ShuttingDown, nil
	default:
		return "", fmt.Errorf("runstate: unknown state %q", s)
	}
}
