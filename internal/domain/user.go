package domain

import "time"

// User identities are created only through the OTP-gated signup flow.
// PasswordHash always holds an argon2id digest, never the plaintext.
type User struct {
	ID           int64     `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
