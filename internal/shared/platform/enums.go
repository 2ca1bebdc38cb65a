//go:generate go run github.com/abice/go-enum --file=$GOFILE --names --nocase

package platform

// ActionKind is the kind of platform side effect requested by the engine
// ENUM(ban_member,unban_member,restrict_member,delete_message,send_message)
type ActionKind string
