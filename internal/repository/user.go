package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/kartikdhasmana/Expense-Tracker-Dashboard/internal/db"
	"github.com/kartikdhasmana/Expense-Tracker-Dashboard/internal/domain"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

type userRepository struct {
	db *sqlx.DB
}

func newUserRepository(db *sqlx.DB) *userRepository {
	return &userRepository{
		db: db,
	}
}

// CreateWithTx inserts a user as part of the verify-then-provision
// transaction. Email and username uniqueness is enforced by the schema;
// a violation surfaces as domain.ErrDuplicateEntry.
func (r *userRepository) CreateWithTx(ctx context.Context, tx *sqlx.Tx, user *domain.User) (int64, error) {
	const query = `
	INSERT INTO user (email, username, password_hash)
	VALUES (?, ?, ?);
	`

	result, err := tx.ExecContext(ctx, query, user.Email, user.Username, user.PasswordHash)
	if err != nil {
		//nolint:errorlint
		if mysqlError, ok := err.(*mysql.MySQLError); ok && mysqlError.Number == db.DuplicateEntry {
			return 0, domain.ErrDuplicateEntry
		}
		return 0, fmt.Errorf("db insert user failed: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id failed: %w", err)
	}

	return id, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `
	SELECT id, email, username, password_hash, created_at FROM user WHERE email = ?;
	`

	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("select user by email failed: %w", err)
	}

	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	const query = `
	SELECT id, email, username, password_hash, created_at FROM user WHERE username = ?;
	`

	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("select user by username failed: %w", err)
	}

	return &user, nil
}

func (r *userRepository) GetOneByID(ctx context.Context, id int64) (*domain.User, error) {
	const query = `
	SELECT id, email, username, password_hash, created_at FROM user WHERE id = ?;
	`

	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("select user by id failed: %w", err)
	}

	return &user, nil
}
