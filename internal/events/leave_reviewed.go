package events

import "time"

const LeaveReviewedTopic = "hr.leave.decision.v1"

// LeaveReviewedEvent is published when an admin approves or rejects a
// leave request. Consumers drive notifications from it.
type LeaveReviewedEvent struct {
	EventType  string    `json:"event_type"`
	LeaveID    string    `json:"leave_id"`
	EmployeeID string    `json:"employee_id"`
	LeaveType  string    `json:"leave_type"`
	TotalDays  int       `json:"total_days"`
	Status     string    `json:"status"`
	ReviewedBy string    `json:"reviewed_by"`
	OccurredAt time.Time `json:"occurred_at"`
}
