package employee

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleEmployee = "employee"
	RoleManager  = "manager"
)

// Default leave allotments granted at registration.
const (
	DefaultSickLeave     = 10
	DefaultCasualLeave   = 5
	DefaultVacationLeave = 5
)

// Employee carries the three per-category balance columns. The columns are
// written here only at registration; afterwards the leave lifecycle service
// is the sole writer, through the balance repository.
type Employee struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName     string    `gorm:"not null"`
	Email        string    `gorm:"uniqueIndex:uq_employee_email;not null"`
	PasswordHash string    `gorm:"not null"`
	Role         string    `gorm:"type:varchar(20);not null;default:'employee'"`

	SickLeave     int `gorm:"not null;default:10"`
	CasualLeave   int `gorm:"not null;default:5"`
	VacationLeave int `gorm:"not null;default:5"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
