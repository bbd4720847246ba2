package leave

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *LeaveRequest) error
	FindByID(ctx context.Context, id string) (*LeaveRequest, error)
	FindByIDAndEmployee(ctx context.Context, id, employeeID string) (*LeaveRequest, error)
	FindAllByEmployee(ctx context.Context, employeeID string, status *Status) ([]LeaveRequest, error)
	FindAll(ctx context.Context, status *Status) ([]LeaveRequest, error)
	CountByEmployeeAndStatus(ctx context.Context, employeeID string, status *Status) (int64, error)
	CountByStatus(ctx context.Context, status *Status) (int64, error)
	FindRecent(ctx context.Context, employeeID string, limit int) ([]LeaveRequest, error)
	MarkDecided(ctx context.Context, id string, outcome Status, comment string, managerID string) (bool, error)
	CancelPending(ctx context.Context, id, employeeID string) (bool, error)
}

// repository reads through gorm and performs the write paths with raw SQL
// through the execer so they participate in the caller's *sql.Tx. The status
// writes are conditioned on the stored status still being pending; the
// affected-row count is the compare-and-set verdict.
type repository struct {
	db    *gorm.DB
	sqlDB *sql.DB
	tx    *sql.Tx
}

func NewRepository(db *gorm.DB, sqlDB *sql.DB) Repository {
	return &repository{db: db, sqlDB: sqlDB}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, sqlDB: r.sqlDB, tx: tx}
}

func (r *repository) Create(ctx context.Context, l *LeaveRequest) error {
	query := `
INSERT INTO leave_requests (
	id, employee_id, category, start_date, end_date, total_days, reason, status, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
`
	_, err := r.execer().ExecContext(
		ctx, query,
		l.ID, l.EmployeeID, l.Category, l.StartDate, l.EndDate, l.TotalDays, l.Reason, l.Status,
	)
	return err
}

func (r *repository) FindByID(ctx context.Context, id string) (*LeaveRequest, error) {
	var l LeaveRequest
	err := r.db.WithContext(ctx).
		Preload("Employee").
		First(&l, "id = ?", id).Error
	return &l, err
}

func (r *repository) FindByIDAndEmployee(ctx context.Context, id, employeeID string) (*LeaveRequest, error) {
	var l LeaveRequest
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		First(&l, "id = ?", id).Error
	return &l, err
}

func (r *repository) FindAllByEmployee(ctx context.Context, employeeID string, status *Status) ([]LeaveRequest, error) {
	db := r.db.WithContext(ctx).
		Preload("Employee").
		Where("employee_id = ?", employeeID)
	if status != nil {
		db = db.Where("status = ?", *status)
	}

	var leaves []LeaveRequest
	err := db.Order("created_at DESC").Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindAll(ctx context.Context, status *Status) ([]LeaveRequest, error) {
	db := r.db.WithContext(ctx).Preload("Employee")
	if status != nil {
		db = db.Where("status = ?", *status)
	}

	var leaves []LeaveRequest
	err := db.Order("created_at DESC").Find(&leaves).Error
	return leaves, err
}

func (r *repository) CountByEmployeeAndStatus(ctx context.Context, employeeID string, status *Status) (int64, error) {
	db := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Where("employee_id = ?", employeeID)
	if status != nil {
		db = db.Where("status = ?", *status)
	}

	var count int64
	err := db.Count(&count).Error
	return count, err
}

func (r *repository) CountByStatus(ctx context.Context, status *Status) (int64, error) {
	db := r.db.WithContext(ctx).Model(&LeaveRequest{})
	if status != nil {
		db = db.Where("status = ?", *status)
	}

	var count int64
	err := db.Count(&count).Error
	return count, err
}

func (r *repository) FindRecent(ctx context.Context, employeeID string, limit int) ([]LeaveRequest, error) {
	db := r.db.WithContext(ctx).Preload("Employee")
	if employeeID != "" {
		db = db.Where("employee_id = ?", employeeID)
	}

	var leaves []LeaveRequest
	err := db.Order("created_at DESC").Limit(limit).Find(&leaves).Error
	return leaves, err
}

// MarkDecided writes the terminal status with a conditional update: the row
// is touched only if it is still pending. A false return means another
// decision already landed and the caller lost the race.
func (r *repository) MarkDecided(ctx context.Context, id string, outcome Status, comment string, managerID string) (bool, error) {
	query := `
UPDATE leave_requests
SET
	status = $2,
	manager_comment = $3,
	decided_by = $4,
	decided_at = NOW(),
	updated_at = NOW()
WHERE id = $1
	AND status = 'pending'
	AND deleted_at IS NULL
`
	res, err := r.execer().ExecContext(ctx, query, id, outcome, comment, managerID)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

// CancelPending soft-deletes the request, again conditioned on pending, and
// scoped to the owning employee.
func (r *repository) CancelPending(ctx context.Context, id, employeeID string) (bool, error) {
	query := `
UPDATE leave_requests
SET
	status = 'cancelled',
	deleted_at = NOW(),
	updated_at = NOW()
WHERE id = $1
	AND employee_id = $2
	AND status = 'pending'
	AND deleted_at IS NULL
`
	res, err := r.execer().ExecContext(ctx, query, id, employeeID)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

func (r *repository) execer() interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	return r.sqlDB
}
