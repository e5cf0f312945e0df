package client

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"smartaccount_playground/internal/domain/entity"
	"smartaccount_playground/internal/pkg/contracts"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
)

// EVMClient reads balances from an EVM JSON-RPC node with batch requests.
type EVMClient struct {
	rpcClient      *rpc.Client
	netDef         entity.NetworkDefinition
	rpcCallTimeout time.Duration
}

// NewEVMClient dials the primary RPC URL and then each fallback until one connects.
func NewEVMClient(netDef entity.NetworkDefinition, connectionTimeout, rpcCallTimeout time.Duration) (*EVMClient, error) {
	endpoints := append([]string{netDef.PrimaryRPCURL}, netDef.FallbackRPCURLs...)
	var lastErr error

	for _, rpcURL := range endpoints {
		if rpcURL == "" {
			continue
		}
		ctx, cancel := context.WithTimeout(context.Background(), connectionTimeout)
		c, err := rpc.DialContext(ctx, rpcURL)
		cancel()
		if err == nil {
			return NewEVMClientWithRPC(c, netDef, rpcCallTimeout), nil
		}
		lastErr = fmt.Errorf("dial %s: %w", rpcURL, err)
	}

	return nil, fmt.Errorf("no reachable RPC endpoint for %s: %w", netDef.Name, lastErr)
}

// NewEVMClientWithRPC wraps an existing connection.
func NewEVMClientWithRPC(c *rpc.Client, netDef entity.NetworkDefinition, rpcCallTimeout time.Duration) *EVMClient {
	return &EVMClient{rpcClient: c, netDef: netDef, rpcCallTimeout: rpcCallTimeout}
}

// GetBalances sends every request in one JSON-RPC batch.
// Per-item failures are reported in the result; the error is for the batch as a whole.
func (c *EVMClient) GetBalances(ctx context.Context, requests []entity.BalanceRequestItem) ([]entity.BalanceResultItem, error) {
	if len(requests) == 0 {
		return []entity.BalanceResultItem{}, nil
	}

	results := make([]entity.BalanceResultItem, len(requests))
	batchElems := make([]rpc.BatchElem, 0, len(requests))
	// positions maps each batch element back to its request.
	positions := make([]int, 0, len(requests))

	for i, item := range requests {
		results[i] = entity.BalanceResultItem{Token: item.Token}
		account := common.HexToAddress(item.Account)

		switch item.Type {
		case entity.NativeBalanceRequest:
			batchElems = append(batchElems, rpc.BatchElem{
				Method: "eth_getBalance",
				Args:   []interface{}{account, "latest"},
				Result: new(*hexutil.Big),
			})
		case entity.TokenBalanceRequest:
			callData, err := contracts.ERC20().Pack("balanceOf", account)
			if err != nil {
				results[i].Error = fmt.Errorf("encode balanceOf for %s: %w", item.Token.Symbol, err)
				continue
			}
			callArgs := map[string]any{
				"to":   common.HexToAddress(item.Token.Address),
				"data": hexutil.Bytes(callData),
			}
			batchElems = append(batchElems, rpc.BatchElem{
				Method: "eth_call",
				Args:   []any{callArgs, "latest"},
				Result: new(hexutil.Bytes),
			})
		default:
			results[i].Error = fmt.Errorf("unknown balance request type: %v for %s", item.Type, item.Token.Symbol)
			continue
		}
		positions = append(positions, i)
	}
	if len(batchElems) == 0 {
		return results, nil
	}

	rpcCallCtx, cancel := context.WithTimeout(ctx, c.rpcCallTimeout)
	defer cancel()

	if err := c.rpcClient.BatchCallContext(rpcCallCtx, batchElems); err != nil {
		return results, fmt.Errorf("balance batch: %w", err)
	}

	for j, elem := range batchElems {
		i := positions[j]
		if elem.Error != nil {
			results[i].Error = fmt.Errorf("failed to fetch %s balance: %w", requests[i].Token.Symbol, elem.Error)
			continue
		}
		results[i].Balance, results[i].Error = decodeBalance(requests[i], elem.Result)
	}
	return results, nil
}

func decodeBalance(req entity.BalanceRequestItem, result interface{}) (*big.Int, error) {
	switch req.Type {
	case entity.NativeBalanceRequest:
		if r, ok := result.(**hexutil.Big); ok && r != nil && *r != nil {
			return (*big.Int)(*r), nil
		}
		return nil, fmt.Errorf("failed to decode native balance for %s", req.Token.Symbol)
	default:
		r, ok := result.(*hexutil.Bytes)
		if !ok || r == nil {
			return nil, fmt.Errorf("failed to decode token balance for %s", req.Token.Symbol)
		}
		if len(*r) == 0 {
			return new(big.Int), nil
		}
		unpacked, err := contracts.ERC20().Unpack("balanceOf", *r)
		if err != nil {
			return nil, fmt.Errorf("failed to unpack balanceOf result for %s: %w", req.Token.Symbol, err)
		}
		if len(unpacked) == 0 {
			return nil, fmt.Errorf("balanceOf returned no data for %s", req.Token.Symbol)
		}
		balance, ok := unpacked[0].(*big.Int)
		if !ok {
			return nil, fmt.Errorf("unexpected balanceOf result type %T for %s", unpacked[0], req.Token.Symbol)
		}
		return balance, nil
	}
}

func (c *EVMClient) Definition() entity.NetworkDefinition {
	return c.netDef
}

func (c *EVMClient) Close() {
	c.rpcClient.Close()
}
