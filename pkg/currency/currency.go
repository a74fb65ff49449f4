// Package currency holds the metadata for the denominations the platform
// moves money in: the fiat unit balances are kept in, and the crypto
// networks deposits arrive on.
package currency

import (
	"errors"
	"regexp"
)

const (
	// DefaultCurrency is the fiat unit wallets and plans are denominated in.
	DefaultCurrency = "USD"
	// DefaultDecimals is the scale used when a code is not registered.
	DefaultDecimals = 2
)

// ErrUnsupported is returned when a currency code is not registered.
var ErrUnsupported = errors.New("unsupported currency code")

// Code identifies a currency or crypto network denomination.
type Code string

// String returns the code as a plain string.
func (c Code) String() string { return string(c) }

// Meta describes how amounts in a currency are scaled and displayed.
type Meta struct {
	Decimals int
	Symbol   string
}

var codeFormat = regexp.MustCompile(`^[A-Z]{3,5}$`)

// Fiat units use 2 decimal places; crypto denominations are tracked to
// 8 places, the finest unit deposits are reported in.
var registry = map[Code]Meta{
	"USD":  {Decimals: 2, Symbol: "$"},
	"EUR":  {Decimals: 2, Symbol: "€"},
	"GBP":  {Decimals: 2, Symbol: "£"},
	"BTC":  {Decimals: 8, Symbol: "₿"},
	"ETH":  {Decimals: 8, Symbol: "Ξ"},
	"BSC":  {Decimals: 8, Symbol: "BNB"},
	"USDT": {Decimals: 8, Symbol: "₮"},
	"USDC": {Decimals: 8, Symbol: "USDC"},
}

// IsValidFormat reports whether s has the shape of a currency code
// (3 to 5 uppercase letters). It does not imply the code is registered.
func IsValidFormat(s string) bool {
	return codeFormat.MatchString(s)
}

// IsSupported reports whether the code is registered.
func IsSupported(code Code) bool {
	_, ok := registry[code]
	return ok
}

// Get returns the metadata for a registered code.
func Get(code Code) (Meta, error) {
	meta, ok := registry[code]
	if !ok {
		return Meta{}, ErrUnsupported
	}
	return meta, nil
}

// Decimals returns the scale for code, falling back to DefaultDecimals
// for unregistered codes.
func Decimals(code Code) int {
	if meta, ok := registry[code]; ok {
		return meta.Decimals
	}
	return DefaultDecimals
}

// Networks lists the crypto denominations deposits may arrive on.
func Networks() []Code {
	return []Code{"BTC", "ETH", "BSC", "USDT", "USDC"}
}
