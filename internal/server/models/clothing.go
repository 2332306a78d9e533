package models

import "time"

// ClothingItem is one photographed piece of a user's wardrobe. The image
// bytes live in object storage under StorageKey; ImageURL is its public address.
type ClothingItem struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	Name       string    `json:"name"`
	Category   string    `json:"category"`
	Color      string    `json:"color"`
	ImageURL   string    `json:"imageUrl"`
	StorageKey string    `json:"-"`
	CreatedAt  time.Time `json:"createdAt"`
}
