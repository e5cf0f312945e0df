package entity

import (
	"math/big"
	"time"
)

// TokenBalance is a per-fetch, display-ready balance for one token.
type TokenBalance struct {
	Token            TokenInfo `json:"token"`
	RawBalance       *big.Int  `json:"-"`
	FormattedBalance string    `json:"formattedBalance"`
	DisplayBalance   string    `json:"displayBalance"`
	PriceUSD         *float64  `json:"priceUsd,omitempty"`
	USDValue         float64   `json:"usdValue"`
	DisplayUSD       string    `json:"displayUsd,omitempty"`
}

// BalanceSnapshot is the result of the latest applied fetch cycle.
type BalanceSnapshot struct {
	Address    string         `json:"address"`
	Network    Network        `json:"network"`
	Balances   []TokenBalance `json:"balances"`
	TotalUSD   float64        `json:"totalUsd"`
	Error      string         `json:"error,omitempty"`
	Generation uint64         `json:"generation"`
	FetchedAt  time.Time      `json:"fetchedAt"`
}

// Balance returns the entry for a symbol, if present.
func (s BalanceSnapshot) Balance(symbol string) (TokenBalance, bool) {
	for _, b := range s.Balances {
		if b.Token.Symbol == symbol {
			return b, true
		}
	}
	return TokenBalance{}, false
}

// BalanceLookupToken is the token part of a balance service entry.
type BalanceLookupToken struct {
	ContractAddress string `json:"contractAddress,omitempty"`
	Symbol          string `json:"symbol"`
	Name            string `json:"name"`
	Decimals        uint8  `json:"decimals"`
}

// BalanceLookupAmount carries the smallest-unit integer as a string.
type BalanceLookupAmount struct {
	Amount   string `json:"amount"`
	Decimals *uint8 `json:"decimals,omitempty"`
}

// BalanceLookupEntry is one on-chain balance reported by a balance source.
type BalanceLookupEntry struct {
	Token  BalanceLookupToken  `json:"token"`
	Amount BalanceLookupAmount `json:"amount"`
}
