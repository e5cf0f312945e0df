package entity

import "math/big"

// BalanceRequestType defines the type of balance request.
type BalanceRequestType int

const (
	// NativeBalanceRequest requests the native balance of an account.
	NativeBalanceRequest BalanceRequestType = iota
	// TokenBalanceRequest requests an ERC-20 balanceOf.
	TokenBalanceRequest
)

// BalanceRequestItem is a single item of a JSON-RPC balance batch.
type BalanceRequestItem struct {
	Type    BalanceRequestType
	Account string
	Token   TokenInfo
}

// BalanceResultItem is the decoded result of one BalanceRequestItem.
type BalanceResultItem struct {
	Token   TokenInfo
	Balance *big.Int
	Error   error
}
