//go:generate go run github.com/abice/go-enum --file=$GOFILE --names --nocase

package domain

// Tier is a permission level. Each tier satisfies the checks of every lower one.
// ENUM(member,chat_admin,sudo,owner)
type Tier int
