package leave

import (
	"time"

	"leavedesk/internal/balance"
	"leavedesk/internal/employee"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LeaveRequest struct {
	ID         uuid.UUID          `gorm:"type:uuid;primaryKey"`
	EmployeeID uuid.UUID          `gorm:"type:uuid;not null;index:idx_leave_requests_employee"`
	Employee   *employee.Employee `gorm:"foreignKey:EmployeeID"`

	Category  balance.Category `gorm:"type:varchar(30);not null"`
	StartDate time.Time        `gorm:"type:date;not null"`
	EndDate   time.Time        `gorm:"type:date;not null"`
	TotalDays int              `gorm:"not null"`
	Reason    string           `gorm:"type:text;not null"`

	Status         Status     `gorm:"type:varchar(20);not null;default:'pending';index:idx_leave_requests_status"`
	ManagerComment *string    `gorm:"type:text"`
	DecidedBy      *uuid.UUID `gorm:"type:uuid"`
	DecidedAt      *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index:idx_leave_requests_deleted_at"`
}
