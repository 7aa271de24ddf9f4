package mocks

import (
	"context"
	"time"

	"github.com/kartikdhasmana/Expense-Tracker-Dashboard/internal/domain"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/mock"
)

type Users struct {
	mock.Mock
}

func (m *Users) CreateWithTx(ctx context.Context, tx *sqlx.Tx, user *domain.User) (int64, error) {
	args := m.Called(ctx, tx, user)

	return args.Get(0).(int64), args.Error(1)
}

func (m *Users) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *Users) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *Users) GetOneByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.User), args.Error(1)
}

type Verifications struct {
	mock.Mock
}

func (m *Verifications) DeleteByEmailWithTx(ctx context.Context, tx *sqlx.Tx, email string) error {
	args := m.Called(ctx, tx, email)

	return args.Error(0)
}

func (m *Verifications) CreateWithTx(ctx context.Context, tx *sqlx.Tx, verification *domain.EmailVerification) error {
	args := m.Called(ctx, tx, verification)

	return args.Error(0)
}

func (m *Verifications) GetPendingByEmailAndCode(ctx context.Context, email string, code string) (*domain.EmailVerification, error) {
	args := m.Called(ctx, email, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.EmailVerification), args.Error(1)
}

func (m *Verifications) ConsumeWithTx(ctx context.Context, tx *sqlx.Tx, id int64) error {
	args := m.Called(ctx, tx, id)

	return args.Error(0)
}

func (m *Verifications) DeleteByIDWithTx(ctx context.Context, tx *sqlx.Tx, id int64) error {
	args := m.Called(ctx, tx, id)

	return args.Error(0)
}

func (m *Verifications) DeleteByID(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

func (m *Verifications) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)

	return args.Get(0).(int64), args.Error(1)
}

type Expenses struct {
	mock.Mock
}

func (m *Expenses) Create(ctx context.Context, expense *domain.Expense) (int64, error) {
	args := m.Called(ctx, expense)

	return args.Get(0).(int64), args.Error(1)
}

func (m *Expenses) GetOneByID(ctx context.Context, userID int64, id int64) (*domain.Expense, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Expense), args.Error(1)
}

func (m *Expenses) ListByUser(ctx context.Context, userID int64, filters domain.ExpenseFilters) ([]domain.Expense, error) {
	args := m.Called(ctx, userID, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Expense), args.Error(1)
}

func (m *Expenses) Update(ctx context.Context, expense *domain.Expense) error {
	args := m.Called(ctx, expense)

	return args.Error(0)
}

func (m *Expenses) Delete(ctx context.Context, userID int64, id int64) error {
	args := m.Called(ctx, userID, id)

	return args.Error(0)
}

func (m *Expenses) TotalByUser(ctx context.Context, userID int64) (float64, error) {
	args := m.Called(ctx, userID)

	return args.Get(0).(float64), args.Error(1)
}

func (m *Expenses) SumByCategory(ctx context.Context, userID int64) ([]domain.CategorySum, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.CategorySum), args.Error(1)
}

// Transactor runs the given function immediately with a nil tx. Repository
// mocks ignore the tx argument, so service transaction flows can be
// exercised without a database.
type Transactor struct {
	mock.Mock
}

func (m *Transactor) Transaction(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	args := m.Called(ctx)
	if args.Error(0) != nil {
		return args.Error(0)
	}

	return fn(nil)
}
