package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/kartikdhasmana/Expense-Tracker-Dashboard/internal/domain"
	"github.com/kartikdhasmana/Expense-Tracker-Dashboard/internal/repository"
)

// expenseService is tenant-scoped glue over the expense repository: every
// operation takes the authenticated user id and the repository keys all
// queries by it, so reaching another user's rows is structurally impossible.
type expenseService struct {
	expenseRepository repository.Expenses
	analytics         Analytics
}

func newExpenseService(expenseRepository repository.Expenses, analytics Analytics) *expenseService {
	return &expenseService{
		expenseRepository: expenseRepository,
		analytics:         analytics,
	}
}

func (s *expenseService) Create(ctx context.Context, userID int64, input ExpenseInput) (*domain.Expense, error) {
	expense := &domain.Expense{
		UserID:   userID,
		SpentAt:  input.SpentAt,
		Category: input.Category,
		Amount:   input.Amount,
		Note:     input.Note,
	}

	id, err := s.expenseRepository.Create(ctx, expense)
	if err != nil {
		return nil, fmt.Errorf("create expense failed: %w", err)
	}

	s.analytics.Invalidate(ctx, userID)

	created, err := s.expenseRepository.GetOneByID(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("reload created expense failed: %w", err)
	}

	return created, nil
}

func (s *expenseService) List(ctx context.Context, userID int64, filters domain.ExpenseFilters) ([]domain.Expense, error) {
	expenses, err := s.expenseRepository.ListByUser(ctx, userID, filters)
	if err != nil {
		return nil, fmt.Errorf("list expenses failed: %w", err)
	}

	return expenses, nil
}

func (s *expenseService) Update(ctx context.Context, userID int64, id int64, input ExpenseInput) (*domain.Expense, error) {
	expense := &domain.Expense{
		ID:       id,
		UserID:   userID,
		SpentAt:  input.SpentAt,
		Category: input.Category,
		Amount:   input.Amount,
		Note:     input.Note,
	}

	if err := s.expenseRepository.Update(ctx, expense); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrExpenseNotFound
		}
		return nil, fmt.Errorf("update expense failed: %w", err)
	}

	s.analytics.Invalidate(ctx, userID)

	updated, err := s.expenseRepository.GetOneByID(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("reload updated expense failed: %w", err)
	}

	return updated, nil
}

func (s *expenseService) Delete(ctx context.Context, userID int64, id int64) error {
	if err := s.expenseRepository.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrExpenseNotFound
		}
		return fmt.Errorf("delete expense failed: %w", err)
	}

	s.analytics.Invalidate(ctx, userID)

	return nil
}
