package errors

import "errors"

// Moderation and authorization taxonomy. Callers match with errors.Is; every layer wraps these
// with oops to attach context.
var (
	ErrPermissionDenied   = errors.New("permission denied")
	ErrNotFound           = errors.New("not found")
	ErrAlreadyExists      = errors.New("already exists")
	ErrInvalidTarget      = errors.New("invalid target")
	ErrExternalCallFailed = errors.New("external call failed")
)

// Command boundary errors
var (
	ErrGroupOnly       = errors.New("command can only be used in groups")
	ErrPrivateOnly     = errors.New("command can only be used in private chat")
	ErrInvalidArgument = errors.New("invalid argument")
)

var ErrMissingBotToken = errors.New("TELEGRAM_BOT_TOKEN environment variable is required")
