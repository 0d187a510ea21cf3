package auth_test

import (
	"testing"

	"github.com/YOUBAZ/SafeStay/auth"
	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "local egyptian mobile", input: "01012345678", expected: "+201012345678"},
		{name: "already E164", input: "+201012345678", expected: "+201012345678"},
		{name: "padded input", input: "  01012345678  ", expected: "+201012345678"},
		{name: "unparseable input passes through trimmed", input: " not-a-number ", expected: "not-a-number"},
		{name: "too short for a valid number", input: "0101", expected: "0101"},
		{name: "empty", input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, auth.NormalizePhone(tt.input))
		})
	}
}

func TestNormalizePhoneRegionOverride(t *testing.T) {
	// A US local number parsed under the US region code.
	assert.Equal(t, "+12125551234", auth.NormalizePhone("(212) 555-1234", "US"))
}
