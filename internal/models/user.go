package models

import "time"

// User roles. Anything outside this set is rejected at registration.
const (
	RoleAdmin   = "admin"
	RoleRegular = "regular"
)

type User struct {
	ID           int64     `db:"id" json:"-"`
	UserID       string    `db:"user_id" json:"user_id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         string    `db:"role" json:"role"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
