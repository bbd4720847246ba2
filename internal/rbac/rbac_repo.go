package rbac

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=rbac_repo.go -destination=mock/rbac_repo_mock.go -package=mock
type Repository interface {
	GetEmployeeRole(ctx context.Context, employeeID string) (string, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetEmployeeRole(ctx context.Context, employeeID string) (string, error) {
	var role string

	err := r.db.WithContext(ctx).
		Table("employees").
		Select("role").
		Where("id = ?", employeeID).
		Scan(&role).Error

	return role, err
}
