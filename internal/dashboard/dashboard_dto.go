package dashboard

type StatusCounts struct {
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
}

type RecentLeave struct {
	ID        string `json:"id"`
	Category  string `json:"leave_type"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	TotalDays int    `json:"total_days"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

type BalanceSummary struct {
	SickLeave     int `json:"sickLeave"`
	CasualLeave   int `json:"casualLeave"`
	VacationLeave int `json:"vacationLeave"`
}

type EmployeeStats struct {
	Balances BalanceSummary `json:"balances"`
	Requests StatusCounts   `json:"requests"`
	Recent   []RecentLeave  `json:"recent"`
}

type ManagerStats struct {
	TotalEmployees   int64        `json:"total_employees"`
	TotalManagers    int64        `json:"total_managers"`
	Requests         StatusCounts `json:"requests"`
	PendingApprovals int64        `json:"pending_approvals"`
}
