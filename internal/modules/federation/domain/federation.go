package domain

import (
	"time"

	"github.com/samber/lo"
)

// Federation is a named group of chats sharing a ban list
type Federation struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	OwnerID   int64            `json:"owner_id"`
	AdminIDs  []int64          `json:"admin_ids"`
	ChatIDs   []int64          `json:"chat_ids"`
	Bans      map[int64]FedBan `json:"bans"`
	CreatedAt time.Time        `json:"created_at"`
}

// FedBan is a ban recorded in one federation
type FedBan struct {
	Reason    string    `json:"reason,omitempty"`
	IssuerID  int64     `json:"issuer_id"`
	CreatedAt time.Time `json:"created_at"`
}

// IsOwner reports whether userID owns the federation
func (f *Federation) IsOwner(userID int64) bool {
	return f.OwnerID == userID
}

// IsAdmin reports whether userID may manage the federation's ban list
func (f *Federation) IsAdmin(userID int64) bool {
	return f.IsOwner(userID) || lo.Contains(f.AdminIDs, userID)
}

// IsBanned reports whether userID is banned in the federation
func (f *Federation) IsBanned(userID int64) bool {
	_, ok := f.Bans[userID]
	return ok
}
