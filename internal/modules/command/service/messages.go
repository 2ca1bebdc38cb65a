package service

const (
	msgNeedAdmin      = "❌ You need to be an admin to use this command!"
	msgOwnerOnly      = "❌ This command is only for the bot owner!"
	msgSudoOnly       = "❌ This command is only for sudo users!"
	msgNoPermission   = "❌ You don't have permission to use this command!"
	msgUserNotFound   = "❌ User not found! Reply to a user or provide user ID/username."
	msgGroupOnly      = "❌ This command can only be used in groups!"
	msgPrivateOnly    = "❌ This command can only be used in private chat!"
	msgNotConnected   = "❌ You are not connected to any chat. Use /connect in the group first."
	msgNotFound       = "❌ Not found!"
	msgAlreadyExists  = "❌ That already exists!"
	msgInvalidArgs    = "❌ Invalid arguments!"
	msgProtected      = "❌ I can't do that to an admin!"
	msgExternalFailed = "❌ Telegram refused the request"
	msgInternalError  = "❌ Something went wrong, please try again later."
)

const startMessage = `🌹 Welcome to GroupGuard!

I'm a group management bot:
• Moderation tools (ban, mute, warn, kick)
• Welcome/Goodbye messages
• Filters and notes
• Federations and global bans
• Locks and message cleanup

Use /help to see all commands.`

const helpMessage = `🌹 GroupGuard - Help

Admin Commands:
• /ban [user] [reason] - Ban a user
• /unban [user] - Unban a user
• /mute [user] [time] - Mute a user (time like 30m, 2h, 7d)
• /unmute [user] - Unmute a user
• /warn [user] [reason] - Warn a user
• /unwarn [user] [warn id] - Remove a warning
• /warns [user] - Show warnings
• /resetwarns [user] - Clear warnings
• /kick [user] - Kick a user
• /del - Delete the replied message
• /purge - Delete messages from the replied one

Welcome/Goodbye:
• /setwelcome [text] - Set welcome message
• /unsetwelcome - Remove welcome message
• /setgoodbye [text] - Set goodbye message
• /unsetgoodbye - Remove goodbye message
• /welcome [on/off] - Show or toggle welcome
• /goodbye [on/off] - Show or toggle goodbye
Placeholders: {first} {last} {fullname} {username} {id} {chat} {count} {mention}

Sudo Management (Owner Only):
• /addsudo [user] - Add user to sudo
• /rmsudo [user] - Remove user from sudo
• /sudolist - List sudo users
• /stats - Bot statistics

Global Bans:
• /gban [user] [reason] - Global ban
• /ungban [user] - Remove global ban
• /gbanlist - List globally banned users

Federation:
• /newfed [name] - Create federation
• /delfed [fedid] - Delete federation
• /fedinfo [fedid] - Federation info
• /joinfed [fedid] - Join this chat to a federation
• /leavefed - Leave the federation
• /fpromote [user] - Make a federation admin
• /fdemote [user] - Remove a federation admin
• /fban [user] [reason] - Ban in federation
• /unfban [user] - Unban in federation
• /myfeds - Federations you own

Locks:
• /lock [type] - Lock a content type
• /unlock [type] - Unlock a content type
• /lockall - Lock everything
• /unlockall - Unlock everything
• /locks - Show current locks
• /locktypes - Show lockable types

Clean Messages:
• /cleanmsg [type] - Delete handled messages of a type
• /keepmsg [type] - Stop deleting them
• /cleanmsgtypes - List cleanable types

Connections:
• /connect [chat] - Connect to chat
• /disconnect [chat] - Disconnect from chat
• /reconnect - Reconnect
• /connection - Show connection info

Filters & Notes:
• /filter [word] [reply] - Add filter
• /stop [word] - Remove filter
• /filters - List filters
• /save [name] [content] - Save note
• /get [name] - Get note (or #name)
• /clear [name] - Delete note
• /notes - List notes

Other Commands:
• /start - Start the bot
• /help - This message
• /id - Get user/chat ID
• /report [reason] - Report a user
• /rules - Show chat rules
• /setrules [text] - Set rules
• /settings - Chat settings

Commands also work with the ! prefix.`

const (
	defaultWelcome = "Hey {mention}, welcome to {chat}!"
	defaultGoodbye = "Goodbye {first}!"
)
