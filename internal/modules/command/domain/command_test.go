package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		text string
		name string
		args []string
		raw  string
		ok   bool
	}{
		{text: "/ban 123 spam", name: "ban", args: []string{"123", "spam"}, raw: "123 spam", ok: true},
		{text: "!warn@GuardBot  reason  here", name: "warn", args: []string{"reason", "here"}, raw: "reason  here", ok: true},
		{text: "/Start", name: "start", args: []string{}, raw: "", ok: true},
		{text: "/setwelcome\nHi {first}", name: "setwelcome", args: []string{"Hi", "{first}"}, raw: "Hi {first}", ok: true},
		{text: "hello"},
		{text: "/"},
		{text: "/@bot"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			name, args, raw, ok := Parse(tt.text)
			assert.Equal(t, tt.ok, ok)
			if !tt.ok {
				return
			}
			assert.Equal(t, tt.name, name)
			assert.Equal(t, tt.args, args)
			assert.Equal(t, tt.raw, raw)
		})
	}
}

func TestAddressedTo(t *testing.T) {
	assert.Equal(t, "GuardBot", AddressedTo("!warn@GuardBot reason"))
	assert.Equal(t, "otherbot", AddressedTo("/ban@otherbot\n7"))
	assert.Empty(t, AddressedTo("/ban 7"))
	assert.Empty(t, AddressedTo("hello@there"))
}
