package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/kartikdhasmana/Expense-Tracker-Dashboard/internal/domain"

	"github.com/jmoiron/sqlx"
)

type verificationRepository struct {
	db *sqlx.DB
}

func newVerificationRepository(db *sqlx.DB) *verificationRepository {
	return &verificationRepository{
		db: db,
	}
}

func (r *verificationRepository) DeleteByEmailWithTx(ctx context.Context, tx *sqlx.Tx, email string) error {
	const op = "repository.verification.DeleteByEmailWithTx"

	const query = `DELETE FROM email_verification WHERE email = ?;`

	if _, err := tx.ExecContext(ctx, query, email); err != nil {
		return fmt.Errorf("%s: delete verifications failed: %w", op, err)
	}

	return nil
}

func (r *verificationRepository) CreateWithTx(ctx context.Context, tx *sqlx.Tx, verification *domain.EmailVerification) error {
	const op = "repository.verification.CreateWithTx"

	const query = `
	INSERT INTO email_verification (email, code, expires_at)
	VALUES (:email, :code, :expires_at);
	`

	res, err := tx.NamedExecContext(ctx, query, verification)
	if err != nil {
		return fmt.Errorf("%s: insert verification failed: %w", op, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: get rows affected failed: %w", op, err)
	}

	if rows != 1 {
		return fmt.Errorf("%s: expected 1 row affected, got %d", op, rows)
	}

	return nil
}

func (r *verificationRepository) GetPendingByEmailAndCode(ctx context.Context, email string, code string) (*domain.EmailVerification, error) {
	const op = "repository.verification.GetPendingByEmailAndCode"

	const query = `
	SELECT id, email, code, consumed, created_at, expires_at
	FROM email_verification
	WHERE email = ? AND code = ? AND consumed = false;
	`

	var verification domain.EmailVerification
	if err := r.db.GetContext(ctx, &verification, query, email, code); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%s: select verification failed: %w", op, err)
	}

	return &verification, nil
}

// ConsumeWithTx flips the consumed flag only if it is still unset, so of two
// concurrent verifications exactly one observes the row transition.
func (r *verificationRepository) ConsumeWithTx(ctx context.Context, tx *sqlx.Tx, id int64) error {
	const op = "repository.verification.ConsumeWithTx"

	const query = `
	UPDATE email_verification SET consumed = true WHERE id = ? AND consumed = false;
	`

	res, err := tx.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("%s: update verification failed: %w", op, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: get rows affected failed: %w", op, err)
	}

	if rows == 0 {
		return domain.ErrNoRowsAffected
	}

	return nil
}

func (r *verificationRepository) DeleteByIDWithTx(ctx context.Context, tx *sqlx.Tx, id int64) error {
	const op = "repository.verification.DeleteByIDWithTx"

	const query = `DELETE FROM email_verification WHERE id = ?;`

	if _, err := tx.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("%s: delete verification failed: %w", op, err)
	}

	return nil
}

func (r *verificationRepository) DeleteByID(ctx context.Context, id int64) error {
	const op = "repository.verification.DeleteByID"

	const query = `DELETE FROM email_verification WHERE id = ?;`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("%s: delete verification failed: %w", op, err)
	}

	return nil
}

// DeleteExpired purges rows whose expiry is past. Called by the periodic
// sweeper, not from the request path.
func (r *verificationRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	const op = "repository.verification.DeleteExpired"

	const query = `DELETE FROM email_verification WHERE expires_at <= ?;`

	res, err := r.db.ExecContext(ctx, query, before)
	if err != nil {
		return 0, fmt.Errorf("%s: delete expired verifications failed: %w", op, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: get rows affected failed: %w", op, err)
	}

	return rows, nil
}
