package domain

import "time"

// GlobalBan bans a user from every chat the bot manages
type GlobalBan struct {
	UserID    int64     `json:"user_id"`
	Reason    string    `json:"reason,omitempty"`
	IssuerID  int64     `json:"issuer_id"`
	CreatedAt time.Time `json:"created_at"`
}
