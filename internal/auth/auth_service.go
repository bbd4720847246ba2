package auth

import (
	"context"
	"os"
	"time"

	autherrors "leavedesk/internal/auth/errors"
	"leavedesk/internal/employee"
	employeeerrors "leavedesk/internal/employee/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (AuthResponse, error)

	Login(ctx context.Context, email, password string) (accessToken, refreshToken string, resp AuthResponse, err error)

	RefreshToken(ctx context.Context, refreshToken string) (newAccessToken, newRefreshToken string, resp AuthResponse, err error)

	GetMe(ctx context.Context, employeeID string) (*AuthResponse, error)
}

type service struct {
	employees employee.Repository
	rdb       *redis.Client
	logger    *zap.Logger
}

func NewService(employees employee.Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{employees: employees, rdb: rdb, logger: l}
}

// Register creates the employee row with its starting leave allotments.
func (s *service) Register(ctx context.Context, req RegisterRequest) (AuthResponse, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResponse{}, err
	}

	role := req.Role
	if role == "" {
		role = employee.RoleEmployee
	}

	e := &employee.Employee{
		ID:           uuid.New(),
		FullName:     req.Name,
		Email:        req.Email,
		PasswordHash: string(hashed),
		Role:         role,

		SickLeave:     employee.DefaultSickLeave,
		CasualLeave:   employee.DefaultCasualLeave,
		VacationLeave: employee.DefaultVacationLeave,
	}

	if err := s.employees.Create(ctx, e); err != nil {
		return AuthResponse{}, mapRegisterError(err)
	}

	employee.InvalidateOptionsCache(ctx, s.rdb, s.logger)

	s.logger.Info("employee registered",
		zap.String("employee_id", e.ID.String()),
		zap.String("role", e.Role),
	)

	return AuthResponse{
		ID:    e.ID.String(),
		Email: e.Email,
		Name:  e.FullName,
		Role:  e.Role,
	}, nil
}

func (s *service) Login(ctx context.Context, email, password string) (string, string, AuthResponse, error) {
	e, err := s.employees.FindByEmail(ctx, email)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(e.PasswordHash), []byte(password)); err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	accessToken, err := s.generateToken(e.ID.String(), e.Role, accessTokenTTL)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}
	refreshToken, err := s.generateToken(e.ID.String(), e.Role, refreshTokenTTL)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	return accessToken, refreshToken, AuthResponse{
		ID:    e.ID.String(),
		Email: e.Email,
		Name:  e.FullName,
		Role:  e.Role,
	}, nil
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (string, string, AuthResponse, error) {
	token, err := jwt.Parse(refreshToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidToken
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})

	if err != nil || !token.Valid {
		return "", "", AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", AuthResponse{}, autherrors.ErrInvalidToken
	}

	employeeIDStr, ok := claims["employee_id"].(string)
	if !ok {
		return "", "", AuthResponse{}, autherrors.ErrInvalidToken
	}

	employeeID, err := uuid.Parse(employeeIDStr)
	if err != nil {
		return "", "", AuthResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	e, err := s.employees.FindByID(ctx, employeeID.String())
	if err != nil {
		return "", "", AuthResponse{}, employeeerrors.ErrEmployeeNotFound
	}

	newAccessToken, err := s.generateToken(e.ID.String(), e.Role, accessTokenTTL)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	newRefreshToken, err := s.generateToken(e.ID.String(), e.Role, refreshTokenTTL)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	return newAccessToken, newRefreshToken, AuthResponse{
		ID:    e.ID.String(),
		Email: e.Email,
		Name:  e.FullName,
		Role:  e.Role,
	}, nil
}

func (s *service) GetMe(ctx context.Context, employeeID string) (*AuthResponse, error) {
	id, err := uuid.Parse(employeeID)
	if err != nil {
		return nil, employeeerrors.ErrInvalidEmployeeID
	}

	e, err := s.employees.FindByID(ctx, id.String())
	if err != nil {
		return nil, employeeerrors.ErrEmployeeNotFound
	}

	return &AuthResponse{
		ID:    e.ID.String(),
		Email: e.Email,
		Name:  e.FullName,
		Role:  e.Role,
	}, nil
}

func (s *service) generateToken(employeeID, role string, expiry time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"employee_id": employeeID,
		"role":        role,
		"exp":         time.Now().Add(expiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}
