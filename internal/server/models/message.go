package models

import "time"

// Message is a persisted chat message. Sender and Recipient are usernames.
type Message struct {
	ID        int64     `json:"id"`
	Sender    string    `json:"sender"`
	Recipient string    `json:"recipient"`
	Body      string    `json:"message"`
	CreatedAt time.Time `json:"timestamp"`
}

// Conversation summarises the latest exchange with one partner.
type Conversation struct {
	Partner     string  `json:"partner"`
	LastMessage Message `json:"lastMessage"`
}
