package address

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name       string
		in         string
		valid      bool
		normalized string
		reason     string
	}{
		{"wrapped sol", "So11111111111111111111111111111111111111112", true, "So11111111111111111111111111111111111111112", ""},
		{"bonk", "DezXAZ8z7PnrnRJjz3wXBoRgixCa6xjnB7YaB1pPB263", true, "DezXAZ8z7PnrnRJjz3wXBoRgixCa6xjnB7YaB1pPB263", ""},
		{"system program", "11111111111111111111111111111111", true, "11111111111111111111111111111111", ""},
		{"surrounding whitespace", "  So11111111111111111111111111111111111111112\n", true, "So11111111111111111111111111111111111111112", ""},
		{"empty", "", false, "", "empty address"},
		{"blank", "   ", false, "", "empty address"},
		{"too short", "So1111", false, "", "invalid length"},
		{"too long", strings.Repeat("A", 45), false, "", "invalid length"},
		{"zero not in alphabet", "0o11111111111111111111111111111111111111112", false, "", "invalid base58"},
		{"evm address", "0x6B175474E89094C44Da98b954EedeAC495271d0F", false, "", "invalid base58"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Validate(tt.in)
			assert.Equal(t, tt.valid, got.Valid)
			assert.Equal(t, tt.normalized, got.Normalized)
			assert.Equal(t, tt.reason, got.Reason)
		})
	}
}

func TestValidate_WrongDecodedSize(t *testing.T) {
	// 44 base58 'z' characters decode to more than 32 bytes.
	got := Validate(strings.Repeat("z", 44))
	assert.False(t, got.Valid)
	assert.Equal(t, "invalid public key size", got.Reason)
}

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid("So11111111111111111111111111111111111111112"))
	assert.False(t, IsValid("not-an-address"))
}
