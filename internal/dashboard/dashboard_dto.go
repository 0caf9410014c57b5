package dashboard

import "github.com/karanprajapat824/hr-system/internal/leave"

type OverviewResponse struct {
	TotalEmployees  int64                 `json:"total_employees"`
	PendingRequests int                   `json:"pending_requests"`
	PresentToday    int64                 `json:"present_today"`
	PendingLeaves   []leave.LeaveResponse `json:"pending_leaves"`
}
