package domain

import "time"

// EmailVerification is a pending proof of email ownership. At most one
// unconsumed, unexpired row per email exists at a time: requesting a new
// code deletes the previous rows in the same transaction that inserts
// the replacement.
type EmailVerification struct {
	ID        int64     `db:"id"`
	Email     string    `db:"email"`
	Code      string    `db:"code"`
	Consumed  bool      `db:"consumed"`
	CreatedAt time.Time `db:"created_at"`
	ExpiresAt time.Time `db:"expires_at"`
}

func (v *EmailVerification) Expired(now time.Time) bool {
	return !now.Before(v.ExpiresAt)
}
