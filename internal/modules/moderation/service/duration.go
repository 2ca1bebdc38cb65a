package service

import (
	"strconv"
	"strings"
	"time"

	"github.com/reshetovitsme/groupguard/internal/shared/errors"
	"github.com/samber/oops"
)

var durationUnits = map[byte]time.Duration{
	's': time.Second,
	'm': time.Minute,
	'h': time.Hour,
	'd': 24 * time.Hour,
}

// ParseDuration parses mute lengths like "30s", "10m", "2h" or "7d"
func ParseDuration(s string) (time.Duration, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) < 2 {
		return 0, oops.With("duration", s).Wrap(errors.ErrInvalidArgument)
	}

	unit, ok := durationUnits[s[len(s)-1]]
	if !ok {
		return 0, oops.With("duration", s).Wrap(errors.ErrInvalidArgument)
	}
	n, err := strconv.Atoi(s[:len(s)-1])
	if err != nil || n <= 0 {
		return 0, oops.With("duration", s).Wrap(errors.ErrInvalidArgument)
	}
	return time.Duration(n) * unit, nil
}
