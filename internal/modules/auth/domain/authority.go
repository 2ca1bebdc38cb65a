package domain

import (
	"slices"

	"github.com/samber/lo"
)

// Satisfies reports whether t meets the required tier
func (x Tier) Satisfies(required Tier) bool {
	return x >= required
}

// Authority is the configured owner and sudo set. It is built once from configuration and
// never changes; runtime promotions live on the user records.
type Authority struct {
	ownerID int64
	sudo    map[int64]struct{}
}

// NewAuthority snapshots the configured owner and sudo users
func NewAuthority(ownerID int64, sudoIDs []int64) Authority {
	return Authority{
		ownerID: ownerID,
		sudo: lo.SliceToMap(sudoIDs, func(id int64) (int64, struct{}) {
			return id, struct{}{}
		}),
	}
}

// OwnerID returns the configured owner
func (a Authority) OwnerID() int64 {
	return a.ownerID
}

// IsOwner reports whether userID is the configured owner. A zero owner matches nobody.
func (a Authority) IsOwner(userID int64) bool {
	return a.ownerID != 0 && a.ownerID == userID
}

// IsConfiguredSudo reports whether userID is in the configured sudo set
func (a Authority) IsConfiguredSudo(userID int64) bool {
	_, ok := a.sudo[userID]
	return ok
}

// SudoIDs returns the configured sudo users in ascending order
func (a Authority) SudoIDs() []int64 {
	ids := lo.Keys(a.sudo)
	slices.Sort(ids)
	return ids
}
