package domain

import (
	"strconv"
	"time"
)

// GlobalScope collects actions that apply across every chat
const GlobalScope = "global"

// Entry is one recorded moderation step
type Entry struct {
	ID        string    `json:"id"`
	Scope     string    `json:"scope"`
	Action    Action    `json:"action"`
	ActorID   int64     `json:"actor_id"`
	TargetID  int64     `json:"target_id"`
	Reason    string    `json:"reason,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ChatScope is the log scope of a single chat
func ChatScope(chatID int64) string {
	return "chat:" + strconv.FormatInt(chatID, 10)
}

// FedScope is the log scope of a federation
func FedScope(fedID string) string {
	return "fed:" + fedID
}
