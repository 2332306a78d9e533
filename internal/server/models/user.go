// Package models defines server-side entities persisted in the database.
package models

import "time"

// User is an account. PasswordHash is a bcrypt digest and never leaves the server.
type User struct {
	ID           string    `json:"id"`
	UserName     string    `json:"username"`
	PasswordHash []byte    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}
