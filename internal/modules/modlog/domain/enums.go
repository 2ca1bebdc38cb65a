//go:generate go run github.com/abice/go-enum --file=$GOFILE --names --nocase

package domain

// Action is the kind of moderation step recorded in the log
// ENUM(ban,unban,mute,unmute,kick,warn,unwarn,reset_warns,gban,ungban,fban,unfban,fed_create,fed_delete,sudo_add,sudo_remove)
type Action string
