package domain

import "time"

// User is a registered shop customer.
type User struct {
	ID           string    `json:"id"`
	Firstname    string    `json:"firstname"`
	Lastname     string    `json:"lastname"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         *string   `json:"role,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}
