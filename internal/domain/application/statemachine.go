package application

import "fmt"

// Event names a workflow action that moves an application between statuses.
type Event string

const (
	EventSubmit      Event = "submit"
	EventStartReview Event = "start-review"
	EventRequestInfo Event = "request-info"
	EventApprove     Event = "approve"
	EventReject      Event = "reject"
	EventCancel      Event = "cancel"
	EventDisburse    Event = "disburse"
)

// TransitionError reports an attempt to fire an event from a status that does
// not permit it. It unwraps to ErrInvalidTransition so callers can branch with
// errors.Is while still seeing the offending pair.
type TransitionError struct {
	From  Status
	Event Event
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("illegal status transition: cannot %s from %s", e.Event, e.From)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }

// transitions is the single source of truth for the lifecycle. Every workflow
// operation must pass through Guard before mutating status.
var transitions = map[Event]struct {
	from map[Status]bool
	to   Status
}{
	EventSubmit: {
		from: set(StatusDraft),
		to:   StatusSubmitted,
	},
	EventStartReview: {
		from: set(StatusSubmitted, StatusPending, StatusPendingInfo),
		to:   StatusUnderReview,
	},
	EventRequestInfo: {
		from: set(StatusSubmitted, StatusPending, StatusUnderReview, StatusPendingInfo),
		to:   StatusPendingInfo,
	},
	EventApprove: {
		from: set(StatusSubmitted, StatusUnderReview, StatusPending, StatusPendingInfo),
		to:   StatusApproved,
	},
	EventReject: {
		from: set(StatusSubmitted, StatusPending, StatusUnderReview, StatusPendingInfo),
		to:   StatusRejected,
	},
	EventCancel: {
		from: set(StatusDraft, StatusSubmitted, StatusPending, StatusUnderReview, StatusPendingInfo, StatusApproved),
		to:   StatusCancelled,
	},
	EventDisburse: {
		from: set(StatusApproved),
		to:   StatusDisbursed,
	},
}

func set(ss ...Status) map[Status]bool {
	m := make(map[Status]bool, len(ss))
	for _, s := range ss {
		m[s] = true
	}
	return m
}

// CanTransition reports whether ev may fire from status from.
func CanTransition(from Status, ev Event) bool {
	t, ok := transitions[ev]
	return ok && t.from[from]
}

// Guard returns nil when the transition is legal and a *TransitionError
// otherwise.
func Guard(from Status, ev Event) error {
	if !CanTransition(from, ev) {
		return &TransitionError{From: from, Event: ev}
	}
	return nil
}

// Target returns the status an event lands in. Calling it for an unknown
// event returns the empty status; callers always Guard first.
func Target(ev Event) Status { return transitions[ev].to }

// IsTerminal reports whether no further transitions exist from s.
func IsTerminal(s Status) bool {
	return s == StatusRejected || s == StatusCancelled || s == StatusDisbursed
}

// IsEditable reports whether requested fields may still be changed. Only a
// draft or an application sent back for more information is editable.
func IsEditable(s Status) bool {
	return s == StatusDraft || s == StatusPendingInfo
}
