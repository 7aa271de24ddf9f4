package service

import (
	"context"
	"testing"
	"time"

	"github.com/kartikdhasmana/Expense-Tracker-Dashboard/internal/domain"
	"github.com/kartikdhasmana/Expense-Tracker-Dashboard/internal/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type analyticsMock struct {
	mock.Mock
}

func (m *analyticsMock) Summary(ctx context.Context, userID int64) (*domain.AnalyticsSummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.AnalyticsSummary), args.Error(1)
}

func (m *analyticsMock) Invalidate(ctx context.Context, userID int64) {
	m.Called(ctx, userID)
}

func newTestExpenseService(t *testing.T) (*expenseService, *mocks.Expenses, *analyticsMock) {
	t.Helper()

	expenses := new(mocks.Expenses)
	analytics := new(analyticsMock)

	return newExpenseService(expenses, analytics), expenses, analytics
}

func TestExpenseService_Create(t *testing.T) {
	s, expenses, analytics := newTestExpenseService(t)

	spentAt := time.Date(2026, 8, 14, 0, 0, 0, 0, time.UTC)
	input := ExpenseInput{SpentAt: spentAt, Category: "food", Amount: 12.5, Note: "lunch"}

	expenses.On("Create", mock.Anything, mock.MatchedBy(func(e *domain.Expense) bool {
		return e.UserID == 1 && e.Category == "food" && e.Amount == 12.5
	})).Return(int64(7), nil)
	analytics.On("Invalidate", mock.Anything, int64(1))
	expenses.On("GetOneByID", mock.Anything, int64(1), int64(7)).Return(&domain.Expense{
		ID:       7,
		UserID:   1,
		SpentAt:  spentAt,
		Category: "food",
		Amount:   12.5,
		Note:     "lunch",
	}, nil)

	created, err := s.Create(context.Background(), 1, input)
	require.NoError(t, err)
	assert.Equal(t, int64(7), created.ID)

	analytics.AssertExpectations(t)
}

func TestExpenseService_UpdateNotOwned(t *testing.T) {
	s, expenses, analytics := newTestExpenseService(t)

	// The repository keys updates by user id, so touching a row that belongs
	// to someone else surfaces as not found.
	expenses.On("Update", mock.Anything, mock.MatchedBy(func(e *domain.Expense) bool {
		return e.ID == 7 && e.UserID == 2
	})).Return(domain.ErrNotFound)

	_, err := s.Update(context.Background(), 2, 7, ExpenseInput{Category: "food", Amount: 1})
	assert.ErrorIs(t, err, ErrExpenseNotFound)

	analytics.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
}

func TestExpenseService_Delete(t *testing.T) {
	s, expenses, analytics := newTestExpenseService(t)

	expenses.On("Delete", mock.Anything, int64(1), int64(7)).Return(nil)
	analytics.On("Invalidate", mock.Anything, int64(1))

	err := s.Delete(context.Background(), 1, 7)
	require.NoError(t, err)

	analytics.AssertExpectations(t)
}

func TestExpenseService_DeleteNotFound(t *testing.T) {
	s, expenses, analytics := newTestExpenseService(t)

	expenses.On("Delete", mock.Anything, int64(1), int64(99)).Return(domain.ErrNotFound)

	err := s.Delete(context.Background(), 1, 99)
	assert.ErrorIs(t, err, ErrExpenseNotFound)

	analytics.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
}
