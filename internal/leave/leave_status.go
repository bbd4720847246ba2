package leave

import leaveerrors "leavedesk/internal/leave/errors"

// Status is the lifecycle state of a leave request. All transitions go
// through the table below; there is exactly one place that answers whether
// a transition is legal.
type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

// transitions is the complete state machine: pending is the only state with
// outgoing edges. Approved and rejected are terminal; cancelled removes the
// request entirely.
var transitions = map[Status]map[Status]bool{
	StatusPending: {
		StatusApproved:  true,
		StatusRejected:  true,
		StatusCancelled: true,
	},
}

func (s Status) String() string {
	return string(s)
}

// CanTransitionTo reports whether the move from s to target is legal.
func (s Status) CanTransitionTo(target Status) bool {
	return transitions[s][target]
}

// Terminal reports whether no transition leads out of s.
func (s Status) Terminal() bool {
	return len(transitions[s]) == 0
}

// ParseStatus validates a status filter supplied by a client.
func ParseStatus(v string) (Status, error) {
	switch Status(v) {
	case StatusPending, StatusApproved, StatusRejected:
		return Status(v), nil
	default:
		return "", leaveerrors.ErrInvalidStatusFilter
	}
}
