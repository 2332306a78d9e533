package models

import "time"

// ShareLink publishes an outfit (a comma-joined clothes list) under a short code.
type ShareLink struct {
	Code      string    `json:"code"`
	UserID    string    `json:"-"`
	Owner     string    `json:"owner"`
	Clothes   string    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}
