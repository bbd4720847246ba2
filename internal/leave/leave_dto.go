package leave

type CreateLeaveRequest struct {
	Category  string `json:"leave_type" binding:"required,oneof=sickLeave casualLeave vacationLeave"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	Reason    string `json:"reason" binding:"required"`
}

type DecideLeaveRequest struct {
	ManagerComment string `json:"manager_comment"`
}

type LeaveResponse struct {
	ID             string  `json:"id"`
	EmployeeID     string  `json:"employee_id"`
	EmployeeName   string  `json:"employee_name,omitempty"`
	Category       string  `json:"leave_type"`
	StartDate      string  `json:"start_date"`
	EndDate        string  `json:"end_date"`
	TotalDays      int     `json:"total_days"`
	Reason         string  `json:"reason"`
	Status         string  `json:"status"`
	ManagerComment *string `json:"manager_comment,omitempty"`
	DecidedBy      *string `json:"decided_by,omitempty"`
	DecidedAt      *string `json:"decided_at,omitempty"`
	CreatedAt      string  `json:"created_at"`
}

type BalanceResponse struct {
	SickLeave     int `json:"sickLeave"`
	CasualLeave   int `json:"casualLeave"`
	VacationLeave int `json:"vacationLeave"`
}
