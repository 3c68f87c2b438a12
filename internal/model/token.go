package model

import "encoding/json"

// Defaults substituted when the metadata sources return nothing usable.
const (
	UnknownName   = "Unknown Token"
	UnknownSymbol = "N/A"
)

// Socials holds the social links discovered for a token. Absent links are "".
type Socials struct {
	Twitter  string `json:"twitter" yaml:"twitter"`
	Telegram string `json:"telegram" yaml:"telegram"`
	Website  string `json:"website" yaml:"website"`
}

// Market holds market metrics in USD.
type Market struct {
	Price     float64 `json:"price" yaml:"price" validate:"gte=0"`
	Liquidity float64 `json:"liquidity" yaml:"liquidity" validate:"gte=0"`
	Volume24h float64 `json:"volume24h" yaml:"volume24h" validate:"gte=0"`
}

// RawSources echoes the upstream payloads a descriptor was built from.
type RawSources struct {
	Helius  json.RawMessage `json:"helius"`
	Birdeye json.RawMessage `json:"birdeye"`
}

// TokenDescriptor is the normalized view of a token. Every field is always
// populated; missing upstream data becomes a typed default.
type TokenDescriptor struct {
	Name        string      `json:"name" yaml:"name"`
	Symbol      string      `json:"symbol" yaml:"symbol"`
	Description string      `json:"description" yaml:"description"`
	Image       string      `json:"image" yaml:"image"`
	Socials     Socials     `json:"socials" yaml:"socials"`
	Market      Market      `json:"market" yaml:"market"`
	Raw         *RawSources `json:"raw,omitempty" yaml:"-"`
}
