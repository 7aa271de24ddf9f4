package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/kartikdhasmana/Expense-Tracker-Dashboard/internal/domain"
	"github.com/kartikdhasmana/Expense-Tracker-Dashboard/internal/repository"
	"github.com/kartikdhasmana/Expense-Tracker-Dashboard/pkg/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type analyticsService struct {
	expenseRepository repository.Expenses
	cache             redis.UniversalClient
	cacheTTL          time.Duration
}

func newAnalyticsService(expenseRepository repository.Expenses, cache redis.UniversalClient, cacheTTL time.Duration) *analyticsService {
	return &analyticsService{
		expenseRepository: expenseRepository,
		cache:             cache,
		cacheTTL:          cacheTTL,
	}
}

func analyticsKey(userID int64) string {
	return fmt.Sprintf("analytics:%d", userID)
}

// Summary returns the per-user total and per-category sums, served from the
// redis cache when possible. Cache failures degrade to a direct query.
func (s *analyticsService) Summary(ctx context.Context, userID int64) (*domain.AnalyticsSummary, error) {
	key := analyticsKey(userID)

	if cached, err := s.cache.Get(ctx, key).Result(); err == nil {
		var summary domain.AnalyticsSummary
		if err := json.Unmarshal([]byte(cached), &summary); err == nil {
			return &summary, nil
		}
		logger.Warn("corrupt analytics cache entry, recomputing", zap.String("key", key))
	} else if err != redis.Nil {
		logger.Warn("analytics cache read failed", zap.String("key", key), zap.Error(err))
	}

	total, err := s.expenseRepository.TotalByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("total spend failed: %w", err)
	}

	sums, err := s.expenseRepository.SumByCategory(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("category sums failed: %w", err)
	}

	summary := &domain.AnalyticsSummary{
		TotalSpend:      total,
		CategorySummary: sums,
	}

	if payload, err := json.Marshal(summary); err == nil {
		if err := s.cache.Set(ctx, key, payload, s.cacheTTL).Err(); err != nil {
			logger.Warn("analytics cache write failed", zap.String("key", key), zap.Error(err))
		}
	}

	return summary, nil
}

func (s *analyticsService) Invalidate(ctx context.Context, userID int64) {
	key := analyticsKey(userID)
	if err := s.cache.Del(ctx, key).Err(); err != nil {
		logger.Warn("analytics cache invalidation failed", zap.String("key", key), zap.Error(err))
	}
}
