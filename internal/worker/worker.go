package worker

import (
	"context"

	"github.com/kartikdhasmana/Expense-Tracker-Dashboard/internal/repository"
)

type Workers struct {
	VerificationSweeper VerificationSweeper
}

type Deps struct {
	Repos *repository.Repositories
}

// VerificationSweeper is the proactive garbage collection for expired
// verification codes; without it, expired rows linger until someone tries
// to verify against them.
type VerificationSweeper interface {
	Sweep(ctx context.Context) (int64, error)
}

func NewWorkers(deps Deps) *Workers {
	return &Workers{
		VerificationSweeper: newVerificationSweeper(deps.Repos.Verifications),
	}
}
