package balance

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Category is one of the three fixed leave types. Each category maps to its
// own balance column on the employees table.
type Category string

const (
	CategorySick     Category = "sickLeave"
	CategoryCasual   Category = "casualLeave"
	CategoryVacation Category = "vacationLeave"
)

// categoryColumns whitelists the column per category; the column name is
// interpolated into SQL, so it must never come from user input directly.
var categoryColumns = map[Category]string{
	CategorySick:     "sick_leave",
	CategoryCasual:   "casual_leave",
	CategoryVacation: "vacation_leave",
}

func (c Category) Valid() bool {
	_, ok := categoryColumns[c]
	return ok
}

func (c Category) String() string {
	return string(c)
}

var ErrUnknownCategory = errors.New("unknown leave category")

// Balances is the full per-category snapshot for one employee.
type Balances struct {
	SickLeave     int
	CasualLeave   int
	VacationLeave int
}

//go:generate mockgen -source=balance_repo.go -destination=mock/balance_repo_mock.go -package=mock

// Repository is the balance store. It is written exclusively by the leave
// lifecycle service; Deduct clamps at zero and must run inside the same
// transaction as the status write that triggered it.
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Get(ctx context.Context, employeeID string, category Category) (int, error)
	GetAll(ctx context.Context, employeeID string) (Balances, error)
	Deduct(ctx context.Context, employeeID string, category Category, days int) (int, error)
	HasSufficient(ctx context.Context, employeeID string, category Category, days int) (bool, error)
}

type repository struct {
	db *sql.DB
	tx *sql.Tx
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Get(ctx context.Context, employeeID string, category Category) (int, error) {
	col, ok := categoryColumns[category]
	if !ok {
		return 0, ErrUnknownCategory
	}

	query := fmt.Sprintf(`SELECT %s FROM employees WHERE id = $1`, col)

	var remaining int
	if err := r.querier().QueryRowContext(ctx, query, employeeID).Scan(&remaining); err != nil {
		return 0, err
	}
	return remaining, nil
}

func (r *repository) GetAll(ctx context.Context, employeeID string) (Balances, error) {
	query := `
SELECT sick_leave, casual_leave, vacation_leave
FROM employees
WHERE id = $1
`

	var b Balances
	err := r.querier().QueryRowContext(ctx, query, employeeID).
		Scan(&b.SickLeave, &b.CasualLeave, &b.VacationLeave)
	if err != nil {
		return Balances{}, err
	}
	return b, nil
}

// Deduct atomically subtracts days from the category balance, clamped at a
// floor of zero, and returns the new balance. The clamp mirrors the observed
// behavior of best-effort deduction rather than failing an approval whose
// balance moved between submission and decision.
func (r *repository) Deduct(ctx context.Context, employeeID string, category Category, days int) (int, error) {
	col, ok := categoryColumns[category]
	if !ok {
		return 0, ErrUnknownCategory
	}

	query := fmt.Sprintf(`
UPDATE employees
SET %s = GREATEST(%s - $2, 0), updated_at = NOW()
WHERE id = $1
RETURNING %s
`, col, col, col)

	var remaining int
	if err := r.querier().QueryRowContext(ctx, query, employeeID, days).Scan(&remaining); err != nil {
		return 0, err
	}
	return remaining, nil
}

func (r *repository) HasSufficient(ctx context.Context, employeeID string, category Category, days int) (bool, error) {
	remaining, err := r.Get(ctx, employeeID, category)
	if err != nil {
		return false, err
	}
	return remaining >= days, nil
}

func (r *repository) querier() interface {
	QueryRowContext(context.Context, string, ...any) *sql.Row
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}
