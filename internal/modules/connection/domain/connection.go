package domain

import "time"

// HistoryLimit is the number of connections remembered per user
const HistoryLimit = 5

// Connection points a user's private chat at a group they administer remotely
type Connection struct {
	ChatID      int64     `json:"chat_id"`
	ChatTitle   string    `json:"chat_title"`
	ConnectedAt time.Time `json:"connected_at"`
}

// History is a user's recent connections, most recent last. LastActive is the connection
// that was current before the last disconnect.
type History struct {
	UserID     int64        `json:"user_id"`
	Entries    []Connection `json:"entries"`
	LastActive *Connection  `json:"last_active,omitempty"`
}

// Current returns the most recent connection
func (h *History) Current() (Connection, bool) {
	if len(h.Entries) == 0 {
		return Connection{}, false
	}
	return h.Entries[len(h.Entries)-1], true
}
