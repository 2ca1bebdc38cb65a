//go:generate go run github.com/abice/go-enum --file=$GOFILE --names --nocase

package domain

// ChatType is the platform kind of chat
// ENUM(private,group,supergroup,channel)
type ChatType string

// LockType is a content type that can be locked in a chat
// ENUM(text,audio,voice,video,photo,document,sticker,gif,game,poll,forward,location,contact,url,bot,inline,all)
type LockType string

// CleanType is a category of handled message the bot deletes after acting on it
// ENUM(action,note,warn,report,filter,all)
type CleanType string
