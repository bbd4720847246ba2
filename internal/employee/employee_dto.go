package employee

type LeaveBalance struct {
	SickLeave     int `json:"sickLeave"`
	CasualLeave   int `json:"casualLeave"`
	VacationLeave int `json:"vacationLeave"`
}

type EmployeeResponse struct {
	ID           string       `json:"id"`
	FullName     string       `json:"full_name"`
	Email        string       `json:"email"`
	Role         string       `json:"role"`
	LeaveBalance LeaveBalance `json:"leave_balance"`
}

type EmployeeOption struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}
