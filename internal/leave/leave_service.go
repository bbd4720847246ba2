package leave

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"leavedesk/internal/balance"
	"leavedesk/internal/employee"
	employeeerrors "leavedesk/internal/employee/errors"
	"leavedesk/internal/events"
	leaveerrors "leavedesk/internal/leave/errors"
	"leavedesk/internal/messaging/kafka"
	"leavedesk/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Submit(ctx context.Context, employeeID string, req CreateLeaveRequest) (LeaveResponse, error)
	Approve(ctx context.Context, managerID, id, comment string) (LeaveResponse, error)
	Reject(ctx context.Context, managerID, id, comment string) (LeaveResponse, error)
	Cancel(ctx context.Context, employeeID, id string) error
	GetMine(ctx context.Context, employeeID, statusFilter string) ([]LeaveResponse, error)
	GetAll(ctx context.Context, statusFilter string) ([]LeaveResponse, error)
	GetPending(ctx context.Context) ([]LeaveResponse, error)
	GetByID(ctx context.Context, id string) (LeaveResponse, error)
	GetBalance(ctx context.Context, employeeID string) (BalanceResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	balances  balance.Repository
	employees employee.Repository
	outbox    kafka.OutboxRepository
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	balances balance.Repository,
	employees employee.Repository,
	outbox kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		balances:  balances,
		employees: employees,
		outbox:    outbox,
		logger:    l,
	}
}

func (s *service) Submit(ctx context.Context, employeeID string, req CreateLeaveRequest) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("submit leave requested",
		zap.String("request_id", rid),
		zap.String("employee_id", employeeID),
		zap.String("leave_type", req.Category),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidEmployeeID
	}

	category := balance.Category(req.Category)
	if !category.Valid() {
		return LeaveResponse{}, leaveerrors.ErrInvalidCategory
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return LeaveResponse{}, err
	}

	days, err := ComputeSpan(startDate, endDate)
	if err != nil {
		s.logger.Warn("submit leave invalid range",
			zap.String("start_date", req.StartDate),
			zap.String("end_date", req.EndDate),
		)
		return LeaveResponse{}, err
	}

	emp, err := s.employees.FindByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		s.logger.Error("submit leave employee lookup failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("submit leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	qbal := s.balances.WithTx(tx)

	sufficient, err := qbal.HasSufficient(ctx, employeeID, category, days)
	if err != nil {
		s.logger.Error("submit leave balance check failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if !sufficient {
		s.logger.Warn("submit leave insufficient balance",
			zap.String("employee_id", employeeID),
			zap.String("leave_type", req.Category),
			zap.Int("requested_days", days),
		)
		return LeaveResponse{}, leaveerrors.ErrInsufficientBalance
	}

	l := &LeaveRequest{
		ID:         uuid.New(),
		EmployeeID: employeeUUID,
		Category:   category,
		StartDate:  startDate,
		EndDate:    endDate,
		TotalDays:  days,
		Reason:     req.Reason,
		Status:     StatusPending,
	}

	if err := qtx.Create(ctx, l); err != nil {
		s.logger.Error("submit leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	event := events.LeaveSubmittedEvent{
		EventType:     events.TypeLeaveSubmitted,
		RequestID:     rid,
		LeaveID:       l.ID.String(),
		EmployeeID:    emp.ID.String(),
		EmployeeName:  emp.FullName,
		EmployeeEmail: emp.Email,
		Category:      category.String(),
		StartDate:     l.StartDate.Format("2006-01-02"),
		EndDate:       l.EndDate.Format("2006-01-02"),
		TotalDays:     l.TotalDays,
		Reason:        l.Reason,
		OccurredAt:    time.Now().UTC(),
	}
	if err := s.enqueueEvent(ctx, tx, rid, l.ID.String(), event.EventType, event); err != nil {
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("submit leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	s.logger.Info("submit leave success",
		zap.String("request_id", rid),
		zap.String("leave_id", l.ID.String()),
		zap.String("employee_id", employeeID),
		zap.Int("total_days", days),
	)

	l.Employee = emp
	l.CreatedAt = time.Now().UTC()
	return mapToResponse(*l), nil
}

func (s *service) Approve(ctx context.Context, managerID, id, comment string) (LeaveResponse, error) {
	return s.decide(ctx, managerID, id, StatusApproved, comment)
}

func (s *service) Reject(ctx context.Context, managerID, id, comment string) (LeaveResponse, error) {
	return s.decide(ctx, managerID, id, StatusRejected, comment)
}

// decide performs the single pending→terminal transition. The status write
// is a conditional update and the balance deduction joins its transaction,
// so a lost race can never deduct and two decisions can never both land.
func (s *service) decide(ctx context.Context, managerID, id string, outcome Status, comment string) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("decide leave requested",
		zap.String("request_id", rid),
		zap.String("leave_id", id),
		zap.String("manager_id", managerID),
		zap.String("outcome", outcome.String()),
	)

	managerUUID, err := uuid.Parse(managerID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidManagerID
	}
	if _, err := uuid.Parse(id); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}

	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		s.logger.Error("decide leave load failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if !l.Status.CanTransitionTo(outcome) {
		s.logger.Warn("decide leave invalid transition",
			zap.String("leave_id", id),
			zap.String("from_status", l.Status.String()),
			zap.String("to_status", outcome.String()),
		)
		return LeaveResponse{}, leaveerrors.ErrInvalidStatusTransition
	}

	manager, err := s.employees.FindByID(ctx, managerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return LeaveResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("decide leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	won, err := qtx.MarkDecided(ctx, id, outcome, comment, managerID)
	if err != nil {
		s.logger.Error("decide leave status write failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if !won {
		// Another decision landed between our read and this write. First
		// writer wins; this caller is told the request is no longer pending.
		s.logger.Warn("decide leave lost compare-and-set",
			zap.String("leave_id", id),
			zap.String("outcome", outcome.String()),
		)
		return LeaveResponse{}, leaveerrors.ErrInvalidStatusTransition
	}

	if outcome == StatusApproved {
		remaining, err := s.balances.WithTx(tx).Deduct(ctx, l.EmployeeID.String(), l.Category, l.TotalDays)
		if err != nil {
			s.logger.Error("decide leave balance deduct failed",
				zap.String("leave_id", id),
				zap.Error(err),
			)
			return LeaveResponse{}, err
		}
		s.logger.Debug("decide leave balance deducted",
			zap.String("employee_id", l.EmployeeID.String()),
			zap.String("leave_type", l.Category.String()),
			zap.Int("deducted_days", l.TotalDays),
			zap.Int("remaining", remaining),
		)
	}

	eventType := events.TypeLeaveRejected
	if outcome == StatusApproved {
		eventType = events.TypeLeaveApproved
	}
	event := events.LeaveDecidedEvent{
		EventType:      eventType,
		RequestID:      rid,
		LeaveID:        l.ID.String(),
		EmployeeID:     l.EmployeeID.String(),
		Category:       l.Category.String(),
		StartDate:      l.StartDate.Format("2006-01-02"),
		EndDate:        l.EndDate.Format("2006-01-02"),
		TotalDays:      l.TotalDays,
		Reason:         l.Reason,
		ManagerName:    manager.FullName,
		ManagerComment: comment,
		OccurredAt:     time.Now().UTC(),
	}
	if l.Employee != nil {
		event.EmployeeName = l.Employee.FullName
		event.EmployeeEmail = l.Employee.Email
	}
	if err := s.enqueueEvent(ctx, tx, rid, l.ID.String(), eventType, event); err != nil {
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("decide leave commit failed",
			zap.String("leave_id", id),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}
	s.logger.Info("decide leave success",
		zap.String("request_id", rid),
		zap.String("leave_id", id),
		zap.String("status", outcome.String()),
	)

	now := time.Now().UTC()
	l.Status = outcome
	l.ManagerComment = &comment
	l.DecidedBy = &managerUUID
	l.DecidedAt = &now
	return mapToResponse(*l), nil
}

func (s *service) Cancel(ctx context.Context, employeeID, id string) error {
	s.logger.Debug("cancel leave requested",
		zap.String("leave_id", id),
		zap.String("employee_id", employeeID),
	)

	if _, err := uuid.Parse(employeeID); err != nil {
		return leaveerrors.ErrInvalidEmployeeID
	}
	if _, err := uuid.Parse(id); err != nil {
		return leaveerrors.ErrInvalidLeaveID
	}

	// Scoped load: a request owned by someone else is indistinguishable
	// from a missing one.
	l, err := s.repo.FindByIDAndEmployee(ctx, id, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return leaveerrors.ErrLeaveNotFound
		}
		s.logger.Error("cancel leave load failed", zap.Error(err))
		return err
	}

	if !l.Status.CanTransitionTo(StatusCancelled) {
		return leaveerrors.ErrInvalidStatusTransition
	}

	won, err := s.repo.CancelPending(ctx, id, employeeID)
	if err != nil {
		s.logger.Error("cancel leave delete failed", zap.Error(err))
		return err
	}
	if !won {
		return leaveerrors.ErrInvalidStatusTransition
	}

	s.logger.Info("cancel leave success",
		zap.String("leave_id", id),
		zap.String("employee_id", employeeID),
	)
	return nil
}

func (s *service) GetMine(ctx context.Context, employeeID, statusFilter string) ([]LeaveResponse, error) {
	status, err := parseStatusFilter(statusFilter)
	if err != nil {
		return nil, err
	}

	leaves, err := s.repo.FindAllByEmployee(ctx, employeeID, status)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) GetAll(ctx context.Context, statusFilter string) ([]LeaveResponse, error) {
	status, err := parseStatusFilter(statusFilter)
	if err != nil {
		return nil, err
	}

	leaves, err := s.repo.FindAll(ctx, status)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) GetPending(ctx context.Context) ([]LeaveResponse, error) {
	pending := StatusPending
	leaves, err := s.repo.FindAll(ctx, &pending)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) GetByID(ctx context.Context, id string) (LeaveResponse, error) {
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	return mapToResponse(*l), nil
}

func (s *service) GetBalance(ctx context.Context, employeeID string) (BalanceResponse, error) {
	balances, err := s.balances.GetAll(ctx, employeeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return BalanceResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		s.logger.Error("get balance failed", zap.Error(err))
		return BalanceResponse{}, err
	}

	return BalanceResponse{
		SickLeave:     balances.SickLeave,
		CasualLeave:   balances.CasualLeave,
		VacationLeave: balances.VacationLeave,
	}, nil
}

// enqueueEvent stores the lifecycle event in the outbox within the business
// transaction. Delivery happens asynchronously in the producer worker, so
// broker failures never surface to the lifecycle caller.
func (s *service) enqueueEvent(ctx context.Context, tx *sql.Tx, rid, leaveID, eventType string, payload any) error {
	if s.outbox == nil {
		return nil
	}

	body, err := json.Marshal(payload)
	if err != nil {
		s.logger.Error("marshal lifecycle event failed", zap.String("request_id", rid), zap.Error(err))
		return err
	}

	if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: "leave_request",
		AggregateID:   leaveID,
		EventType:     eventType,
		Topic:         events.LeaveLifecycleTopic,
		Payload:       body,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		s.logger.Error("lifecycle event outbox persist failed",
			zap.String("leave_id", leaveID),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func parseStatusFilter(v string) (*Status, error) {
	if v == "" {
		return nil, nil
	}
	status, err := ParseStatus(v)
	if err != nil {
		return nil, err
	}
	return &status, nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapToResponse(l LeaveRequest) LeaveResponse {
	resp := LeaveResponse{
		ID:         l.ID.String(),
		EmployeeID: l.EmployeeID.String(),
		Category:   l.Category.String(),
		StartDate:  l.StartDate.Format("2006-01-02"),
		EndDate:    l.EndDate.Format("2006-01-02"),
		TotalDays:  l.TotalDays,
		Reason:     l.Reason,
		Status:     l.Status.String(),
		CreatedAt:  l.CreatedAt.Format(time.RFC3339),
	}
	if l.Employee != nil {
		resp.EmployeeName = l.Employee.FullName
	}
	resp.ManagerComment = l.ManagerComment
	if l.DecidedBy != nil {
		v := l.DecidedBy.String()
		resp.DecidedBy = &v
	}
	if l.DecidedAt != nil {
		v := l.DecidedAt.Format(time.RFC3339)
		resp.DecidedAt = &v
	}
	return resp
}

func mapToListResponse(leaves []LeaveRequest) []LeaveResponse {
	resp := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		resp[i] = mapToResponse(l)
	}
	return resp
}
