package domain

import (
	"strings"
	"time"

	"github.com/samber/lo"
)

// User is a platform user the bot has seen at least once
type User struct {
	ID               int64     `json:"id"`
	FirstName        string    `json:"first_name"`
	LastName         string    `json:"last_name"`
	Username         string    `json:"username"`
	IsSudo           bool      `json:"is_sudo"`
	IsGloballyBanned bool      `json:"is_globally_banned"`
	BannedIn         []int64   `json:"banned_in"`
	FirstSeen        time.Time `json:"first_seen"`
	LastSeen         time.Time `json:"last_seen"`
}

// Profile is the identity the platform reports for a user
type Profile struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
	IsBot     bool   `json:"is_bot"`
}

func (u *User) IsBannedIn(chatID int64) bool {
	return lo.Contains(u.BannedIn, chatID)
}

// Profile returns the platform identity stored on the record
func (u *User) Profile() Profile {
	return Profile{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Username:  u.Username,
	}
}

// FullName joins first and last name
func (p Profile) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// Mention is how the bot refers to the user in plain text
func (p Profile) Mention() string {
	if p.Username != "" {
		return "@" + p.Username
	}
	if p.FirstName != "" {
		return p.FirstName
	}
	return "user"
}
