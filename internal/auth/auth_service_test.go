package auth_test

import (
	"context"
	"testing"

	"leavedesk/internal/auth"
	autherrors "leavedesk/internal/auth/errors"
	"leavedesk/internal/employee"
	employeeerrors "leavedesk/internal/employee/errors"
	employeeMock "leavedesk/internal/employee/mock"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

func setupAuthServiceTest(t *testing.T) (auth.Service, *employeeMock.MockRepository) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := employeeMock.NewMockRepository(ctrl)

	return auth.NewService(repo, nil), repo
}

func registeredEmployee(t *testing.T, password string) *employee.Employee {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	return &employee.Employee{
		ID:           uuid.New(),
		FullName:     "Raka Pratama",
		Email:        "raka@example.com",
		PasswordHash: string(hashed),
		Role:         employee.RoleEmployee,

		SickLeave:     employee.DefaultSickLeave,
		CasualLeave:   employee.DefaultCasualLeave,
		VacationLeave: employee.DefaultVacationLeave,
	}
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("success with default role and allotments", func(t *testing.T) {
		svc, repo := setupAuthServiceTest(t)

		var created *employee.Employee
		repo.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, e *employee.Employee) error {
				created = e
				return nil
			})

		resp, err := svc.Register(ctx, auth.RegisterRequest{
			Name:     "Raka Pratama",
			Email:    "raka@example.com",
			Password: "s3cret-pass",
		})

		assert.NoError(t, err)
		assert.Equal(t, employee.RoleEmployee, resp.Role)
		assert.Equal(t, created.ID.String(), resp.ID)

		assert.Equal(t, employee.DefaultSickLeave, created.SickLeave)
		assert.Equal(t, employee.DefaultCasualLeave, created.CasualLeave)
		assert.Equal(t, employee.DefaultVacationLeave, created.VacationLeave)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("s3cret-pass")))
	})

	t.Run("success with explicit manager role", func(t *testing.T) {
		svc, repo := setupAuthServiceTest(t)

		repo.EXPECT().Create(ctx, gomock.Any()).Return(nil)

		resp, err := svc.Register(ctx, auth.RegisterRequest{
			Name:     "Sinta Dewi",
			Email:    "sinta@example.com",
			Password: "s3cret-pass",
			Role:     employee.RoleManager,
		})

		assert.NoError(t, err)
		assert.Equal(t, employee.RoleManager, resp.Role)
	})

	t.Run("negative duplicate email", func(t *testing.T) {
		svc, repo := setupAuthServiceTest(t)

		repo.EXPECT().
			Create(ctx, gomock.Any()).
			Return(&pgconn.PgError{Code: "23505", ConstraintName: "uq_employee_email"})

		_, err := svc.Register(ctx, auth.RegisterRequest{
			Name:     "Raka Pratama",
			Email:    "raka@example.com",
			Password: "s3cret-pass",
		})

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeAlreadyExists)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "test-secret")
		svc, repo := setupAuthServiceTest(t)

		e := registeredEmployee(t, "s3cret-pass")
		repo.EXPECT().FindByEmail(ctx, e.Email).Return(e, nil)

		access, refresh, resp, err := svc.Login(ctx, e.Email, "s3cret-pass")

		assert.NoError(t, err)
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, refresh)
		assert.NotEqual(t, access, refresh)
		assert.Equal(t, e.ID.String(), resp.ID)
	})

	t.Run("negative wrong password", func(t *testing.T) {
		svc, repo := setupAuthServiceTest(t)

		e := registeredEmployee(t, "s3cret-pass")
		repo.EXPECT().FindByEmail(ctx, e.Email).Return(e, nil)

		_, _, _, err := svc.Login(ctx, e.Email, "wrong-pass")

		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("negative unknown email", func(t *testing.T) {
		svc, repo := setupAuthServiceTest(t)

		repo.EXPECT().
			FindByEmail(ctx, "ghost@example.com").
			Return(nil, employeeerrors.ErrEmployeeNotFound)

		_, _, _, err := svc.Login(ctx, "ghost@example.com", "whatever")

		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctx := context.Background()

	t.Run("success round trip", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "test-secret")
		svc, repo := setupAuthServiceTest(t)

		e := registeredEmployee(t, "s3cret-pass")
		repo.EXPECT().FindByEmail(ctx, e.Email).Return(e, nil)
		repo.EXPECT().FindByID(ctx, e.ID.String()).Return(e, nil)

		_, refresh, _, err := svc.Login(ctx, e.Email, "s3cret-pass")
		assert.NoError(t, err)

		newAccess, newRefresh, resp, err := svc.RefreshToken(ctx, refresh)

		assert.NoError(t, err)
		assert.NotEmpty(t, newAccess)
		assert.NotEmpty(t, newRefresh)
		assert.Equal(t, e.ID.String(), resp.ID)
	})

	t.Run("negative garbage token", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "test-secret")
		svc, _ := setupAuthServiceTest(t)

		_, _, _, err := svc.RefreshToken(ctx, "not.a.jwt")

		assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)
	})
}

func TestAuthService_GetMe(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		svc, repo := setupAuthServiceTest(t)

		e := registeredEmployee(t, "s3cret-pass")
		repo.EXPECT().FindByID(ctx, e.ID.String()).Return(e, nil)

		resp, err := svc.GetMe(ctx, e.ID.String())

		assert.NoError(t, err)
		assert.Equal(t, e.Email, resp.Email)
	})

	t.Run("negative invalid employee id", func(t *testing.T) {
		svc, _ := setupAuthServiceTest(t)

		_, err := svc.GetMe(ctx, "not-a-uuid")

		assert.ErrorIs(t, err, employeeerrors.ErrInvalidEmployeeID)
	})
}
