package rbac

import (
	"context"
	"sync"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	Enforce(ctx context.Context, employeeID, resource, action string) (bool, error)
}

type service struct {
	repo     Repository
	enforcer *casbin.Enforcer
	logger   *zap.Logger
	mu       sync.Mutex
}

func NewService(repo Repository, enforcer *casbin.Enforcer, logger ...*zap.Logger) (Service, error) {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}

	s := &service{
		repo:     repo,
		enforcer: enforcer,
		logger:   l,
	}

	if err := s.loadBasePolicy(); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *service) loadBasePolicy() error {
	for role, perms := range rolePermissions {
		for _, p := range perms {
			if _, err := s.enforcer.AddPolicy(role, p.Resource, p.Action); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *service) Enforce(ctx context.Context, employeeID, resource, action string) (bool, error) {
	role, err := s.repo.GetEmployeeRole(ctx, employeeID)
	if err != nil {
		return false, err
	}
	if role == "" {
		s.logger.Warn("enforce for unknown employee",
			zap.String("employee_id", employeeID),
			zap.String("resource", resource),
			zap.String("action", action),
		)
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// AddGroupingPolicy is a no-op when the pair already exists.
	if _, err := s.enforcer.AddGroupingPolicy(employeeID, role); err != nil {
		return false, err
	}

	allowed, err := s.enforcer.Enforce(employeeID, resource, action)
	if err != nil {
		return false, err
	}

	s.logger.Debug("enforce result",
		zap.String("employee_id", employeeID),
		zap.String("role", role),
		zap.String("resource", resource),
		zap.String("action", action),
		zap.Bool("allowed", allowed),
	)

	return allowed, nil
}
