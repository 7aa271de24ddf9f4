package service

import (
	"context"
	"testing"
	"time"

	"github.com/kartikdhasmana/Expense-Tracker-Dashboard/internal/domain"
	"github.com/kartikdhasmana/Expense-Tracker-Dashboard/internal/repository/mocks"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestAnalyticsService(t *testing.T) (*analyticsService, *mocks.Expenses, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	expenses := new(mocks.Expenses)

	return newAnalyticsService(expenses, cache, time.Minute), expenses, mr
}

func TestAnalyticsService_Summary(t *testing.T) {
	s, expenses, _ := newTestAnalyticsService(t)
	ctx := context.Background()

	expenses.On("TotalByUser", mock.Anything, int64(1)).Return(150.5, nil).Once()
	expenses.On("SumByCategory", mock.Anything, int64(1)).Return([]domain.CategorySum{
		{Category: "food", Total: 100.5},
		{Category: "travel", Total: 50.0},
	}, nil).Once()

	summary, err := s.Summary(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 150.5, summary.TotalSpend)
	assert.Len(t, summary.CategorySummary, 2)

	// Second read is served from the cache; Once() above would fail the test
	// if the repository were hit again.
	cached, err := s.Summary(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, summary, cached)

	expenses.AssertExpectations(t)
}

func TestAnalyticsService_SummaryPerUserKeys(t *testing.T) {
	s, expenses, _ := newTestAnalyticsService(t)
	ctx := context.Background()

	expenses.On("TotalByUser", mock.Anything, int64(1)).Return(10.0, nil).Once()
	expenses.On("SumByCategory", mock.Anything, int64(1)).Return([]domain.CategorySum{}, nil).Once()
	expenses.On("TotalByUser", mock.Anything, int64(2)).Return(99.0, nil).Once()
	expenses.On("SumByCategory", mock.Anything, int64(2)).Return([]domain.CategorySum{}, nil).Once()

	first, err := s.Summary(ctx, 1)
	require.NoError(t, err)
	second, err := s.Summary(ctx, 2)
	require.NoError(t, err)

	assert.Equal(t, 10.0, first.TotalSpend)
	assert.Equal(t, 99.0, second.TotalSpend)
}

func TestAnalyticsService_Invalidate(t *testing.T) {
	s, expenses, mr := newTestAnalyticsService(t)
	ctx := context.Background()

	expenses.On("TotalByUser", mock.Anything, int64(1)).Return(10.0, nil).Once()
	expenses.On("SumByCategory", mock.Anything, int64(1)).Return([]domain.CategorySum{}, nil).Once()

	_, err := s.Summary(ctx, 1)
	require.NoError(t, err)
	assert.True(t, mr.Exists("analytics:1"))

	s.Invalidate(ctx, 1)
	assert.False(t, mr.Exists("analytics:1"))

	// Next read recomputes with the fresh numbers.
	expenses.On("TotalByUser", mock.Anything, int64(1)).Return(25.0, nil).Once()
	expenses.On("SumByCategory", mock.Anything, int64(1)).Return([]domain.CategorySum{}, nil).Once()

	summary, err := s.Summary(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 25.0, summary.TotalSpend)

	expenses.AssertExpectations(t)
}

func TestAnalyticsService_SummaryCacheDown(t *testing.T) {
	s, expenses, mr := newTestAnalyticsService(t)
	mr.Close()

	expenses.On("TotalByUser", mock.Anything, int64(1)).Return(42.0, nil)
	expenses.On("SumByCategory", mock.Anything, int64(1)).Return([]domain.CategorySum{}, nil)

	// An unreachable cache degrades to a direct query, never an error.
	summary, err := s.Summary(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 42.0, summary.TotalSpend)
}
