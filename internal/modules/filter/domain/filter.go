package domain

import "time"

// Filter is a keyword trigger with a canned reply, unique per chat
type Filter struct {
	ChatID    int64     `json:"chat_id"`
	Keyword   string    `json:"keyword"`
	Reply     string    `json:"reply"`
	CreatedBy int64     `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}
