package domain

import (
	"time"

	"github.com/samber/lo"
)

// Chat holds the per-chat settings the bot manages
type Chat struct {
	ID              int64       `json:"id"`
	Title           string      `json:"title"`
	Type            ChatType    `json:"type"`
	WelcomeTemplate string      `json:"welcome_template,omitempty"`
	GoodbyeTemplate string      `json:"goodbye_template,omitempty"`
	WelcomeEnabled  bool        `json:"welcome_enabled"`
	GoodbyeEnabled  bool        `json:"goodbye_enabled"`
	RulesText       string      `json:"rules_text,omitempty"`
	LockedTypes     []LockType  `json:"locked_types"`
	FullyLocked     bool        `json:"fully_locked"`
	CleanTypes      []CleanType `json:"clean_types"`
	FedID           string      `json:"fed_id,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
}

// IsGroup reports whether the chat is a group or supergroup
func (t ChatType) IsGroup() bool {
	return t == ChatTypeGroup || t == ChatTypeSupergroup
}

// IsLocked reports whether content of type t may not be posted
func (c *Chat) IsLocked(t LockType) bool {
	return c.FullyLocked || lo.Contains(c.LockedTypes, LockTypeAll) || lo.Contains(c.LockedTypes, t)
}

// Cleans reports whether bot messages of category t are cleaned up
func (c *Chat) Cleans(t CleanType) bool {
	return lo.Contains(c.CleanTypes, CleanTypeAll) || lo.Contains(c.CleanTypes, t)
}

// LockableTypes lists every lock type except "all"
func LockableTypes() []LockType {
	return lo.Without(lo.Map(LockTypeNames(), func(name string, _ int) LockType {
		return LockType(name)
	}), LockTypeAll)
}
