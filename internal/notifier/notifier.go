package notifier

import (
	"context"

	"leavedesk/internal/employee"
	"leavedesk/internal/events"

	"go.uber.org/zap"
)

// Service is the notification gateway. Every method absorbs its own
// failures: a missed email is logged and dropped, never retried into the
// lifecycle path.
type Service interface {
	HandleSubmitted(ctx context.Context, ev events.LeaveSubmittedEvent)
	HandleDecided(ctx context.Context, ev events.LeaveDecidedEvent)
}

type service struct {
	mailer    Mailer
	employees employee.Repository
	logger    *zap.Logger
}

func NewService(mailer Mailer, employees employee.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("notifier.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notifier.service")
	}
	return &service{mailer: mailer, employees: employees, logger: l}
}

// HandleSubmitted confirms to the employee and fans out to every manager.
func (s *service) HandleSubmitted(ctx context.Context, ev events.LeaveSubmittedEvent) {
	subject, body := submittedEmployeeEmail(ev)
	if err := s.mailer.Send([]string{ev.EmployeeEmail}, subject, body); err != nil {
		s.logger.Error("send submission email to employee failed",
			zap.String("leave_id", ev.LeaveID),
			zap.String("employee_email", ev.EmployeeEmail),
			zap.Error(err),
		)
	}

	managers, err := s.employees.FindManagers(ctx)
	if err != nil {
		s.logger.Error("load managers for fan-out failed",
			zap.String("leave_id", ev.LeaveID),
			zap.Error(err),
		)
		return
	}

	subject, body = submittedManagerEmail(ev)
	for _, m := range managers {
		if err := s.mailer.Send([]string{m.Email}, subject, body); err != nil {
			s.logger.Error("send submission email to manager failed",
				zap.String("leave_id", ev.LeaveID),
				zap.String("manager_email", m.Email),
				zap.Error(err),
			)
		}
	}
}

func (s *service) HandleDecided(ctx context.Context, ev events.LeaveDecidedEvent) {
	subject, body := decidedEmployeeEmail(ev)
	if err := s.mailer.Send([]string{ev.EmployeeEmail}, subject, body); err != nil {
		s.logger.Error("send decision email failed",
			zap.String("leave_id", ev.LeaveID),
			zap.String("event_type", ev.EventType),
			zap.String("employee_email", ev.EmployeeEmail),
			zap.Error(err),
		)
	}
}
