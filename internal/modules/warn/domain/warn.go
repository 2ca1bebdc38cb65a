package domain

import "time"

// Limit is the number of warns that bans a user from a chat
const Limit = 3

// Warn is one strike against a user in a chat
type Warn struct {
	ID        string    `json:"id"`
	ChatID    int64     `json:"chat_id"`
	UserID    int64     `json:"user_id"`
	Reason    string    `json:"reason,omitempty"`
	IssuerID  int64     `json:"issuer_id"`
	CreatedAt time.Time `json:"created_at"`
}
