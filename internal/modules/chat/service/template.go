package service

import (
	"strconv"
	"strings"

	userDomain "github.com/reshetovitsme/groupguard/internal/modules/user/domain"
)

// Tokens recognised by RenderTemplate. Anything else in braces is left as written.
var templateTokens = []string{"first", "last", "fullname", "username", "id", "chat", "count", "mention"}

// RenderTemplate substitutes the known {token} placeholders in a single pass.
// Substituted values are never expanded again.
func RenderTemplate(template string, vars map[string]string) string {
	pairs := make([]string, 0, len(templateTokens)*2)
	for _, token := range templateTokens {
		value, ok := vars[token]
		if !ok {
			continue
		}
		pairs = append(pairs, "{"+token+"}", value)
	}
	if len(pairs) == 0 {
		return template
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// GreetingVars builds the template variables for a member joining or leaving a chat
func GreetingVars(member userDomain.Profile, chatTitle string, memberCount int) map[string]string {
	username := member.FirstName
	if member.Username != "" {
		username = "@" + member.Username
	}

	vars := map[string]string{
		"first":    member.FirstName,
		"last":     member.LastName,
		"fullname": member.FullName(),
		"username": username,
		"id":       strconv.FormatInt(member.ID, 10),
		"chat":     chatTitle,
		"mention":  member.Mention(),
	}
	if memberCount > 0 {
		vars["count"] = strconv.Itoa(memberCount)
	}
	return vars
}
