package model

import "time"

// Admin a moderator account
type Admin struct {
	ID           int64     `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Token        string    `db:"token" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Auth actions accepted by the auth endpoint
const (
	AuthActionLogin    = "login"
	AuthActionRegister = "register"
)

// AuthRequest body of the auth endpoint
type AuthRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Action   string `json:"action,omitempty"`
}
