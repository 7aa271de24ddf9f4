package worker

import (
	"context"
	"time"

	"github.com/kartikdhasmana/Expense-Tracker-Dashboard/internal/repository"
	"github.com/kartikdhasmana/Expense-Tracker-Dashboard/pkg/logger"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type verificationSweeper struct {
	verificationRepository repository.Verifications
}

func newVerificationSweeper(verificationRepository repository.Verifications) *verificationSweeper {
	return &verificationSweeper{
		verificationRepository: verificationRepository,
	}
}

func (s *verificationSweeper) Sweep(ctx context.Context) (int64, error) {
	deleted, err := s.verificationRepository.DeleteExpired(ctx, time.Now())
	if err != nil {
		return 0, errors.Wrap(err, "sweep expired verifications")
	}

	if deleted > 0 {
		logger.Info("swept expired verification codes", zap.Int64("deleted", deleted))
	}

	return deleted, nil
}
