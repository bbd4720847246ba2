package events

import "time"

const LeaveLifecycleTopic = "leave.request.lifecycle.v1"

const (
	TypeLeaveSubmitted = "leave_submitted"
	TypeLeaveApproved  = "leave_approved"
	TypeLeaveRejected  = "leave_rejected"
)

// LeaveSubmittedEvent fans out to the requesting employee and every manager.
type LeaveSubmittedEvent struct {
	EventType     string    `json:"event_type"`
	RequestID     string    `json:"request_id"`
	LeaveID       string    `json:"leave_id"`
	EmployeeID    string    `json:"employee_id"`
	EmployeeName  string    `json:"employee_name"`
	EmployeeEmail string    `json:"employee_email"`
	Category      string    `json:"category"`
	StartDate     string    `json:"start_date"`
	EndDate       string    `json:"end_date"`
	TotalDays     int       `json:"total_days"`
	Reason        string    `json:"reason"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// LeaveDecidedEvent notifies the requesting employee of a decision.
// EventType distinguishes approval from rejection.
type LeaveDecidedEvent struct {
	EventType      string    `json:"event_type"`
	RequestID      string    `json:"request_id"`
	LeaveID        string    `json:"leave_id"`
	EmployeeID     string    `json:"employee_id"`
	EmployeeName   string    `json:"employee_name"`
	EmployeeEmail  string    `json:"employee_email"`
	Category       string    `json:"category"`
	StartDate      string    `json:"start_date"`
	EndDate        string    `json:"end_date"`
	TotalDays      int       `json:"total_days"`
	Reason         string    `json:"reason"`
	ManagerName    string    `json:"manager_name"`
	ManagerComment string    `json:"manager_comment"`
	OccurredAt     time.Time `json:"occurred_at"`
}
