package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/kartikdhasmana/Expense-Tracker-Dashboard/internal/domain"

	"github.com/jmoiron/sqlx"
)

type expenseRepository struct {
	db *sqlx.DB
}

func newExpenseRepository(db *sqlx.DB) *expenseRepository {
	return &expenseRepository{
		db: db,
	}
}

func (r *expenseRepository) Create(ctx context.Context, expense *domain.Expense) (int64, error) {
	const query = `
	INSERT INTO expense (user_id, spent_at, category, amount, note)
	VALUES (?, ?, ?, ?, ?);
	`

	result, err := r.db.ExecContext(ctx, query,
		expense.UserID,
		expense.SpentAt,
		expense.Category,
		expense.Amount,
		expense.Note,
	)
	if err != nil {
		return 0, fmt.Errorf("db insert expense failed: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id failed: %w", err)
	}

	return id, nil
}

// GetOneByID is keyed by both expense id and owner id: rows belonging to
// another user are indistinguishable from absent rows.
func (r *expenseRepository) GetOneByID(ctx context.Context, userID int64, id int64) (*domain.Expense, error) {
	const query = `
	SELECT id, user_id, spent_at, category, amount, note, created_at, updated_at
	FROM expense WHERE id = ? AND user_id = ?;
	`

	var expense domain.Expense
	if err := r.db.GetContext(ctx, &expense, query, id, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("select expense by id failed: %w", err)
	}

	return &expense, nil
}

func (r *expenseRepository) ListByUser(ctx context.Context, userID int64, filters domain.ExpenseFilters) ([]domain.Expense, error) {
	query := `
	SELECT id, user_id, spent_at, category, amount, note, created_at, updated_at
	FROM expense WHERE user_id = ?`
	args := []interface{}{userID}

	if filters.Category != "" {
		query += " AND category = ?"
		args = append(args, filters.Category)
	}
	if !filters.StartDate.IsZero() {
		query += " AND spent_at >= ?"
		args = append(args, filters.StartDate)
	}
	if !filters.EndDate.IsZero() {
		query += " AND spent_at <= ?"
		args = append(args, filters.EndDate)
	}

	query += " ORDER BY spent_at DESC, id DESC;"

	expenses := make([]domain.Expense, 0)
	if err := r.db.SelectContext(ctx, &expenses, query, args...); err != nil {
		return nil, fmt.Errorf("select expenses failed: %w", err)
	}

	return expenses, nil
}

func (r *expenseRepository) Update(ctx context.Context, expense *domain.Expense) error {
	const query = `
	UPDATE expense SET spent_at = ?, category = ?, amount = ?, note = ?
	WHERE id = ? AND user_id = ?;
	`

	res, err := r.db.ExecContext(ctx, query,
		expense.SpentAt,
		expense.Category,
		expense.Amount,
		expense.Note,
		expense.ID,
		expense.UserID,
	)
	if err != nil {
		return fmt.Errorf("db update expense failed: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected failed: %w", err)
	}

	if rows == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *expenseRepository) Delete(ctx context.Context, userID int64, id int64) error {
	const query = `DELETE FROM expense WHERE id = ? AND user_id = ?;`

	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("db delete expense failed: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected failed: %w", err)
	}

	if rows == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *expenseRepository) TotalByUser(ctx context.Context, userID int64) (float64, error) {
	const query = `SELECT COALESCE(SUM(amount), 0) FROM expense WHERE user_id = ?;`

	var total float64
	if err := r.db.GetContext(ctx, &total, query, userID); err != nil {
		return 0, fmt.Errorf("sum expenses failed: %w", err)
	}

	return total, nil
}

func (r *expenseRepository) SumByCategory(ctx context.Context, userID int64) ([]domain.CategorySum, error) {
	const query = `
	SELECT category, COALESCE(SUM(amount), 0) AS total
	FROM expense WHERE user_id = ?
	GROUP BY category ORDER BY total DESC;
	`

	sums := make([]domain.CategorySum, 0)
	if err := r.db.SelectContext(ctx, &sums, query, userID); err != nil {
		return nil, fmt.Errorf("sum expenses by category failed: %w", err)
	}

	return sums, nil
}
