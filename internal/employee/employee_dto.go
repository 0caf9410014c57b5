package employee

type LeaveBalanceResponse struct {
	Casual int `json:"casual"`
	Sick   int `json:"sick"`
	Paid   int `json:"paid"`
}

type EmployeeResponse struct {
	ID            string               `json:"id"`
	Name          string               `json:"name"`
	Email         string               `json:"email"`
	Phone         string               `json:"phone,omitempty"`
	Department    string               `json:"department,omitempty"`
	Role          string               `json:"role"`
	DateOfJoining string               `json:"date_of_joining"`
	LeaveBalance  LeaveBalanceResponse `json:"leave_balance"`
}

func MapToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:            e.ID.String(),
		Name:          e.Name,
		Email:         e.Email,
		Phone:         e.Phone,
		Department:    e.Department,
		Role:          e.Role,
		DateOfJoining: e.DateOfJoining.Format("2006-01-02"),
		LeaveBalance: LeaveBalanceResponse{
			Casual: e.CasualBalance,
			Sick:   e.SickBalance,
			Paid:   e.PaidBalance,
		},
	}
}

func MapToListResponse(rows []Employee) []EmployeeResponse {
	resp := make([]EmployeeResponse, len(rows))
	for i, e := range rows {
		resp[i] = MapToResponse(e)
	}
	return resp
}
