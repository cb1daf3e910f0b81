package submission

import "fmt"

// State is the lifecycle of one submission attempt.
type State int

const (
	StateIdle State = iota
	StateValidating
	StateValidationFailed
	StateSubmitting
	StateDelivered
	StateDeliveryFailed
)

var stateNames = map[State]string{
	StateIdle:             "idle",
	StateValidating:       "validating",
	StateValidationFailed: "validation_failed",
	StateSubmitting:       "submitting",
	StateDelivered:        "delivered",
	StateDeliveryFailed:   "delivery_failed",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("state(%d)", int(s))
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Terminal reports whether no further transition is possible.
func (s State) Terminal() bool {
	return s == StateValidationFailed || s == StateDelivered || s == StateDeliveryFailed
}

var transitions = map[State][]State{
	StateIdle:       {StateValidating},
	StateValidating: {StateValidationFailed, StateSubmitting},
	StateSubmitting: {StateDelivered, StateDeliveryFailed},
}

// CanTransition reports whether from -> to is a legal step.
func CanTransition(from, to State) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// attempt tracks the state of a single submission.
type attempt struct {
	state State
}

// advance moves to the next state. An illegal step is a programming error.
func (a *attempt) advance(to State) {
	if !CanTransition(a.state, to) {
		panic(fmt.Sprintf("submission: illegal transition %s -> %s", a.state, to))
	}
	a.state = to
}
