package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/kartikdhasmana/Expense-Tracker-Dashboard/internal/domain"

	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	Users         Users
	Verifications Verifications
	Expenses      Expenses
	Txer          Transactor
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		Users:         newUserRepository(db),
		Verifications: newVerificationRepository(db),
		Expenses:      newExpenseRepository(db),
		Txer:          newTransactor(db),
	}
}

type Users interface {
	CreateWithTx(ctx context.Context, tx *sqlx.Tx, user *domain.User) (int64, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetOneByID(ctx context.Context, id int64) (*domain.User, error)
}

type Verifications interface {
	DeleteByEmailWithTx(ctx context.Context, tx *sqlx.Tx, email string) error
	CreateWithTx(ctx context.Context, tx *sqlx.Tx, verification *domain.EmailVerification) error
	GetPendingByEmailAndCode(ctx context.Context, email string, code string) (*domain.EmailVerification, error)
	ConsumeWithTx(ctx context.Context, tx *sqlx.Tx, id int64) error
	DeleteByIDWithTx(ctx context.Context, tx *sqlx.Tx, id int64) error
	DeleteByID(ctx context.Context, id int64) error
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

type Expenses interface {
	Create(ctx context.Context, expense *domain.Expense) (int64, error)
	GetOneByID(ctx context.Context, userID int64, id int64) (*domain.Expense, error)
	ListByUser(ctx context.Context, userID int64, filters domain.ExpenseFilters) ([]domain.Expense, error)
	Update(ctx context.Context, expense *domain.Expense) error
	Delete(ctx context.Context, userID int64, id int64) error
	TotalByUser(ctx context.Context, userID int64) (float64, error)
	SumByCategory(ctx context.Context, userID int64) ([]domain.CategorySum, error)
}

// Transactor runs a function inside a single database transaction so
// read-modify-write sequences cannot interleave across requests.
type Transactor interface {
	Transaction(ctx context.Context, fn func(tx *sqlx.Tx) error) error
}

type transactor struct {
	db *sqlx.DB
}

func newTransactor(db *sqlx.DB) *transactor {
	return &transactor{db: db}
}

func (t *transactor) Transaction(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := t.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx failed: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx failed: %w", err)
	}

	return nil
}
