package order

import (
	"fmt"

	"ordering/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with an explicit transition table so that
// adding states later (cancelled, delivered) is a table edit, not a rewrite.
//
// State transitions:
//
//	Draft ──> Confirmed ──> Ready
//	  └────────────────────┘
//	   (privileged skip allowed)
//
// Transitions are monotonic: once an order leaves Draft it never moves
// backwards. Who may request a transition is an ownership/role decision and
// lives on the aggregate, not here.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Draft is the initial status when an order is first created.
	// Item mutation is only legal while the order is in Draft.
	Draft

	// Confirmed indicates the order has been accepted for fulfillment,
	// either by a completed payment or by an explicit caller transition.
	Confirmed

	// Ready indicates the order is ready for pickup or delivery.
	// This is the terminal state of the core lifecycle.
	Ready
)

// getStatusStrings returns a map of Status values to their wire labels.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Draft:     "draft",
		Confirmed: "confirmed",
		Ready:     "ready",
	}
}

// getValidStatusStrings returns only valid Status values to support validation.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Draft:     "draft",
		Confirmed: "confirmed",
		Ready:     "ready",
	}
}

// getAllowedTransitions is the transition table of the state machine:
// for each state, the set of states it may move to. Role conditions are
// layered on top by Order.ChangeStatus.
func getAllowedTransitions() map[Status][]Status {
	return map[Status][]Status{
		Draft:     {Confirmed, Ready},
		Confirmed: {Ready},
		Ready:     {},
	}
}

// StatusFromString decodes a wire label into a Status.
// Returns an error for any label outside the closed enumeration.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid",
		fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is valid.
// Valid statuses are: Draft, Confirmed, Ready.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire label of the status, or "unknown" for invalid values.
// This method implements the fmt.Stringer interface and is safe to call on any
// Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// CanTransitionTo reports whether the transition table allows moving from s
// to target. A same-state "transition" is not in the table; callers treat it
// as a no-op.
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range getAllowedTransitions()[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are possible from s.
func (s Status) IsTerminal() bool {
	return len(getAllowedTransitions()[s]) == 0 && s.Validate() == nil
}
