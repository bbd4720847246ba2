package dashboard

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"leavedesk/internal/balance"
	"leavedesk/internal/employee"
	employeeerrors "leavedesk/internal/employee/errors"
	"leavedesk/internal/leave"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const recentLimit = 5

//go:generate mockgen -source=dashboard_service.go -destination=mock/dashboard_service_mock.go -package=mock
type Service interface {
	GetEmployeeStats(ctx context.Context, employeeID string) (EmployeeStats, error)
	GetManagerStats(ctx context.Context) (ManagerStats, error)
}

type service struct {
	leaves    leave.Repository
	balances  balance.Repository
	employees employee.Repository
	logger    *zap.Logger
}

func NewService(
	leaves leave.Repository,
	balances balance.Repository,
	employees employee.Repository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("dashboard.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("dashboard.service")
	}
	return &service{leaves: leaves, balances: balances, employees: employees, logger: l}
}

func (s *service) GetEmployeeStats(ctx context.Context, employeeID string) (EmployeeStats, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return EmployeeStats{}, employeeerrors.ErrInvalidEmployeeID
	}

	balances, err := s.balances.GetAll(ctx, employeeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return EmployeeStats{}, employeeerrors.ErrEmployeeNotFound
		}
		return EmployeeStats{}, err
	}

	counts, err := s.countByEmployee(ctx, employeeID)
	if err != nil {
		return EmployeeStats{}, err
	}

	recent, err := s.leaves.FindRecent(ctx, employeeID, recentLimit)
	if err != nil {
		return EmployeeStats{}, err
	}

	return EmployeeStats{
		Balances: BalanceSummary{
			SickLeave:     balances.SickLeave,
			CasualLeave:   balances.CasualLeave,
			VacationLeave: balances.VacationLeave,
		},
		Requests: counts,
		Recent:   mapRecent(recent),
	}, nil
}

func (s *service) GetManagerStats(ctx context.Context) (ManagerStats, error) {
	totalEmployees, err := s.employees.CountByRole(ctx, employee.RoleEmployee)
	if err != nil {
		return ManagerStats{}, err
	}

	totalManagers, err := s.employees.CountByRole(ctx, employee.RoleManager)
	if err != nil {
		return ManagerStats{}, err
	}

	counts, err := s.countAll(ctx)
	if err != nil {
		return ManagerStats{}, err
	}

	return ManagerStats{
		TotalEmployees:   totalEmployees,
		TotalManagers:    totalManagers,
		Requests:         counts,
		PendingApprovals: counts.Pending,
	}, nil
}

func (s *service) countByEmployee(ctx context.Context, employeeID string) (StatusCounts, error) {
	var counts StatusCounts

	for _, row := range []struct {
		status leave.Status
		dest   *int64
	}{
		{leave.StatusPending, &counts.Pending},
		{leave.StatusApproved, &counts.Approved},
		{leave.StatusRejected, &counts.Rejected},
	} {
		st := row.status
		n, err := s.leaves.CountByEmployeeAndStatus(ctx, employeeID, &st)
		if err != nil {
			return StatusCounts{}, err
		}
		*row.dest = n
	}

	return counts, nil
}

func (s *service) countAll(ctx context.Context) (StatusCounts, error) {
	var counts StatusCounts

	for _, row := range []struct {
		status leave.Status
		dest   *int64
	}{
		{leave.StatusPending, &counts.Pending},
		{leave.StatusApproved, &counts.Approved},
		{leave.StatusRejected, &counts.Rejected},
	} {
		st := row.status
		n, err := s.leaves.CountByStatus(ctx, &st)
		if err != nil {
			return StatusCounts{}, err
		}
		*row.dest = n
	}

	return counts, nil
}

func mapRecent(requests []leave.LeaveRequest) []RecentLeave {
	recent := make([]RecentLeave, 0, len(requests))
	for _, l := range requests {
		recent = append(recent, RecentLeave{
			ID:        l.ID.String(),
			Category:  string(l.Category),
			StartDate: l.StartDate.Format("2006-01-02"),
			EndDate:   l.EndDate.Format("2006-01-02"),
			TotalDays: l.TotalDays,
			Status:    string(l.Status),
			CreatedAt: l.CreatedAt.Format(time.RFC3339),
		})
	}
	return recent
}
