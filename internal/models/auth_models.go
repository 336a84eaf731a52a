package models

import "time"

// User is the identity record a Camper profile hangs off.
type User struct {
	ID           int64     `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	FirstName    string    `json:"first_name" db:"first_name"`
	LastName     string    `json:"last_name" db:"last_name"`
	PasswordHash string    `json:"-" db:"password_hash"`
	IsStaff      bool      `json:"-" db:"is_staff"`
	CreatedAt    time.Time `json:"-" db:"created_at"`
}

