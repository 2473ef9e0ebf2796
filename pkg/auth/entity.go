package auth

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered account.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Gender       string
	CreatedAt    time.Time
}

// Registration is the sign-up payload.
type Registration struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Gender    string `json:"gender"`
}

// Session identifies one issued token, as seen by the middleware.
type Session struct {
	UserID    uuid.UUID
	TokenID   string
	ExpiresAt time.Time
}
