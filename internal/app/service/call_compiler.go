package service

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"smartaccount_playground/internal/app/port"
	"smartaccount_playground/internal/domain/entity"
	"smartaccount_playground/internal/pkg/contracts"
	"smartaccount_playground/internal/pkg/metrics"
	"smartaccount_playground/internal/pkg/utils"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"
)

var (
	ErrUnknownToken   = errors.New("unknown token")
	ErrInvalidAddress = errors.New("invalid address")
	ErrInvalidAmount  = errors.New("invalid amount")
	ErrInvalidValue   = errors.New("invalid value")
	ErrInvalidData    = errors.New("invalid call data")
	ErrAmountOverflow = errors.New("amount does not fit in uint256")
)

// CompileError reports which entry aborted compilation.
type CompileError struct {
	Index int
	Err   error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("entry %d: %v", e.Index+1, e.Err)
}

func (e *CompileError) Unwrap() error { return e.Err }

// CallCompiler turns validated entries into compiled calls, preserving order.
type CallCompiler struct {
	tokens port.TokenProvider
	logger port.Logger
}

func NewCallCompiler(tokens port.TokenProvider, logger port.Logger) *CallCompiler {
	return &CallCompiler{tokens: tokens, logger: logger}
}

// Compile fails closed: if any entry fails, no calls are returned.
func (c *CallCompiler) Compile(mode entity.CallMode, network entity.Network, entries []entity.CallEntry) ([]entity.CompiledCall, error) {
	calls := make([]entity.CompiledCall, 0, len(entries))
	for i, entry := range entries {
		var (
			call entity.CompiledCall
			err  error
		)
		switch mode {
		case entity.CallModeDirect:
			call, err = c.compileDirect(entry)
		case entity.CallModeTransfer:
			call, err = c.compileTransfer(network, entry)
		default:
			err = fmt.Errorf("unsupported call mode %q", mode)
		}
		if err != nil {
			c.logger.Debug("Call compilation aborted", "mode", mode, "network", network, "index", i, "error", err)
			return nil, &CompileError{Index: i, Err: err}
		}
		calls = append(calls, call)
	}

	metrics.CompiledCalls.WithLabelValues(string(mode)).Add(float64(len(calls)))
	return calls, nil
}

func (c *CallCompiler) compileDirect(entry entity.CallEntry) (entity.CompiledCall, error) {
	to, err := parseAddress(entry.Target)
	if err != nil {
		return entity.CompiledCall{}, err
	}

	value := new(big.Int)
	if raw := strings.TrimSpace(entry.Value); raw != "" {
		// decimals=0 accepts "10" and "10.0" but rejects "10.5".
		value, err = utils.ParseUnits(raw, 0)
		if err != nil {
			return entity.CompiledCall{}, fmt.Errorf("%w: %v", ErrInvalidValue, err)
		}
	}
	if err := checkUint256(value); err != nil {
		return entity.CompiledCall{}, err
	}

	data := []byte{}
	if raw := strings.TrimSpace(entry.PayloadHex); raw != "" && raw != "0x" {
		data, err = hexutil.Decode(raw)
		if err != nil {
			return entity.CompiledCall{}, fmt.Errorf("%w: %v", ErrInvalidData, err)
		}
	}

	return entity.NewCompiledCall(to, value, data), nil
}

func (c *CallCompiler) compileTransfer(network entity.Network, entry entity.CallEntry) (entity.CompiledCall, error) {
	recipient, err := parseAddress(entry.Target)
	if err != nil {
		return entity.CompiledCall{}, err
	}

	token, err := c.tokens.GetTokenBySymbol(network, entry.TokenSymbol)
	if err != nil {
		return entity.CompiledCall{}, fmt.Errorf("%w %q: %v", ErrUnknownToken, entry.TokenSymbol, err)
	}

	amount, err := utils.ParseUnits(entry.Amount, token.Decimals)
	if err != nil {
		return entity.CompiledCall{}, fmt.Errorf("%w: %v", ErrInvalidAmount, err)
	}
	if amount.Sign() <= 0 {
		return entity.CompiledCall{}, fmt.Errorf("%w: must be greater than 0", ErrInvalidAmount)
	}
	if err := checkUint256(amount); err != nil {
		return entity.CompiledCall{}, err
	}

	if token.IsNative() {
		return entity.NewCompiledCall(recipient, amount, nil), nil
	}

	data, err := EncodeTransfer(recipient, amount)
	if err != nil {
		return entity.CompiledCall{}, err
	}
	return entity.NewCompiledCall(common.HexToAddress(token.Address), new(big.Int), data), nil
}

// EncodeTransfer builds transfer(address,uint256) calldata: selector, padded recipient, padded amount.
func EncodeTransfer(recipient common.Address, amount *big.Int) ([]byte, error) {
	if err := checkUint256(amount); err != nil {
		return nil, err
	}
	data, err := contracts.ERC20().Pack("transfer", recipient, amount)
	if err != nil {
		return nil, fmt.Errorf("encode transfer: %w", err)
	}
	return data, nil
}

func parseAddress(s string) (common.Address, error) {
	s = strings.TrimSpace(s)
	if !IsAddress(s) {
		return common.Address{}, fmt.Errorf("%w: %q", ErrInvalidAddress, s)
	}
	return common.HexToAddress(s), nil
}

func checkUint256(v *big.Int) error {
	if v.Sign() < 0 {
		return fmt.Errorf("%w: negative", ErrInvalidAmount)
	}
	if _, overflow := uint256.FromBig(v); overflow {
		return ErrAmountOverflow
	}
	return nil
}
