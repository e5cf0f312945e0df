package entity

import "strings"

// NativeTokenAddress is the sentinel contract address used for the native currency.
const NativeTokenAddress = "0xEeeeeEeeeEeEeeEeEeEeeEEEeeeeEeeeeeeeEEeE"

// TokenInfo holds the details of a specific token.
type TokenInfo struct {
	Network  Network `json:"network"`
	Address  string  `json:"address"`
	Name     string  `json:"name"`
	Symbol   string  `json:"symbol"`
	Decimals uint8   `json:"decimals"`
	LogoURL  string  `json:"logoUrl,omitempty"`
	PriceID  string  `json:"priceId,omitempty"`
}

// IsNative reports whether the token is the network's native currency.
// The sentinel must match exactly.
func (t TokenInfo) IsNative() bool {
	return t.Address == NativeTokenAddress
}

// MatchesContract compares a reported contract address against the token.
func (t TokenInfo) MatchesContract(contractAddress string) bool {
	if t.IsNative() {
		return contractAddress == NativeTokenAddress
	}
	return contractAddress != "" && strings.EqualFold(t.Address, contractAddress)
}
