package attendance

import "time"

type EmployeeInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type AttendanceResponse struct {
	ID             string        `json:"id"`
	EmployeeID     string        `json:"employee_id"`
	AttendanceDate string        `json:"date"`
	CheckIn        *string       `json:"checkin,omitempty"`
	CheckOut       *string       `json:"checkout,omitempty"`
	Status         string        `json:"status"`
	Employee       *EmployeeInfo `json:"employee,omitempty"`
}

func mapToResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:             a.ID.String(),
		EmployeeID:     a.EmployeeID.String(),
		AttendanceDate: a.AttendanceDate.Format("2006-01-02"),
		Status:         a.Status,
	}
	if a.CheckIn != nil {
		v := a.CheckIn.Format(time.RFC3339)
		resp.CheckIn = &v
	}
	if a.CheckOut != nil {
		v := a.CheckOut.Format(time.RFC3339)
		resp.CheckOut = &v
	}
	if a.Employee != nil {
		resp.Employee = &EmployeeInfo{
			Name:  a.Employee.Name,
			Email: a.Employee.Email,
		}
	}
	return resp
}

func mapToListResponse(rows []Attendance) []AttendanceResponse {
	resp := make([]AttendanceResponse, len(rows))
	for i, a := range rows {
		resp[i] = mapToResponse(a)
	}
	return resp
}
