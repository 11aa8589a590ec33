package auth

import "time"

// Provider is a contracted service provider, the principal that logs in and
// operates the system.
type Provider struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Service      string    `json:"service"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
