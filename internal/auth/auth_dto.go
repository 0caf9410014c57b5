package auth

import (
	"github.com/karanprajapat824/hr-system/internal/attendance"
	"github.com/karanprajapat824/hr-system/internal/employee"
	"github.com/karanprajapat824/hr-system/internal/leave"
)

type SignUpRequest struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=6"`
	Department string `json:"department" binding:"required"`
	Phone      string `json:"phone" binding:"required"`
}

type SignInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// UserInfoResponse is the employee home-screen aggregate: remaining
// balance, today's attendance and the most recent leave requests.
type UserInfoResponse struct {
	LeaveBalance employee.LeaveBalanceResponse  `json:"leave_balance"`
	Attendance   *attendance.AttendanceResponse `json:"attendance"`
	Leaves       []leave.LeaveResponse          `json:"leaves"`
}
