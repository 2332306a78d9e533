package models

import "time"

type Listing struct {
	ID          string    `json:"id"`
	SellerID    string    `json:"sellerId"`
	Seller      string    `json:"seller"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	PriceCents  int64     `json:"priceCents"`
	Size        string    `json:"size"`
	ImageURL    string    `json:"imageUrl"`
	StorageKey  string    `json:"-"`
	Sold        bool      `json:"sold"`
	CreatedAt   time.Time `json:"createdAt"`
}
