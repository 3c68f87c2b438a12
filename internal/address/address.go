// Package address validates the shape of Solana account identifiers.
package address

import (
	"strings"

	"github.com/mr-tron/base58"
)

// Solana public keys are 32 bytes, which base58-encode to 32..44 characters.
const (
	PublicKeySize = 32
	MinLength     = 32
	MaxLength     = 44
)

// Result is the outcome of a syntactic address check.
type Result struct {
	Valid      bool   `json:"valid"`
	Normalized string `json:"normalized,omitempty"`
	Reason     string `json:"reason,omitempty"`
}

// Validate checks that id looks like a Solana public key. It never touches
// the network, so an address that passes may still not exist on chain.
func Validate(id string) Result {
	s := strings.TrimSpace(id)
	if s == "" {
		return Result{Reason: "empty address"}
	}
	if len(s) < MinLength || len(s) > MaxLength {
		return Result{Reason: "invalid length"}
	}
	decoded, err := base58.Decode(s)
	if err != nil {
		return Result{Reason: "invalid base58"}
	}
	if len(decoded) != PublicKeySize {
		return Result{Reason: "invalid public key size"}
	}
	return Result{Valid: true, Normalized: s}
}

// IsValid is shorthand for Validate(id).Valid.
func IsValid(id string) bool {
	return Validate(id).Valid
}
