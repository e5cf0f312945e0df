package entity

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// CallMode selects how a CallEntry is interpreted.
type CallMode string

const (
	// CallModeDirect entries carry a raw target, a smallest-unit value and calldata.
	CallModeDirect CallMode = "custom"
	// CallModeTransfer entries carry a recipient, a human amount and a token symbol.
	CallModeTransfer CallMode = "multi-send"
)

func ParseCallMode(s string) (CallMode, error) {
	switch CallMode(s) {
	case CallModeDirect, CallModeTransfer:
		return CallMode(s), nil
	}
	return "", fmt.Errorf("unknown call mode %q", s)
}

// Field names accepted by CallEntry.Set.
const (
	FieldTarget = "target"
	FieldValue  = "value"
	FieldData   = "data"
	FieldAmount = "amount"
	FieldToken  = "token"
)

// CallEntry is one user-specified unit of work before compilation.
// Target is the call target in direct mode and the recipient in transfer mode.
type CallEntry struct {
	Target      string `json:"target"`
	Value       string `json:"value,omitempty"`
	PayloadHex  string `json:"data,omitempty"`
	Amount      string `json:"amount,omitempty"`
	TokenSymbol string `json:"token,omitempty"`
}

// BlankEntry returns the default entry for a mode.
func BlankEntry(mode CallMode) CallEntry {
	if mode == CallModeTransfer {
		return CallEntry{TokenSymbol: "ETH"}
	}
	return CallEntry{Value: "0", PayloadHex: "0x"}
}

// Set updates a single raw field.
func (e *CallEntry) Set(field, value string) error {
	switch field {
	case FieldTarget:
		e.Target = value
	case FieldValue:
		e.Value = value
	case FieldData:
		e.PayloadHex = value
	case FieldAmount:
		e.Amount = value
	case FieldToken:
		e.TokenSymbol = value
	default:
		return fmt.Errorf("unknown entry field %q", field)
	}
	return nil
}

// CompiledCall is the {to, value, data} triple handed to the wallet.
type CompiledCall struct {
	To    common.Address `json:"to"`
	Value *hexutil.Big   `json:"value"`
	Data  hexutil.Bytes  `json:"data"`
}

// NewCompiledCall never leaves Value or Data nil.
func NewCompiledCall(to common.Address, value *big.Int, data []byte) CompiledCall {
	if value == nil {
		value = new(big.Int)
	}
	if data == nil {
		data = []byte{}
	}
	return CompiledCall{To: to, Value: (*hexutil.Big)(new(big.Int).Set(value)), Data: data}
}

func (c CompiledCall) ValueInt() *big.Int {
	if c.Value == nil {
		return new(big.Int)
	}
	return c.Value.ToInt()
}

// BatchPreview is a compiled batch together with the sponsorship it would carry.
type BatchPreview struct {
	Mode        CallMode          `json:"mode"`
	Network     Network           `json:"network"`
	Calls       []CompiledCall    `json:"calls"`
	Sponsorship SponsorshipConfig `json:"sponsorship"`
}
