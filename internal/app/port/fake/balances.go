package fake

import (
	"context"
	"sync"

	"smartaccount_playground/internal/domain/entity"
)

type balanceArgs struct {
	address string
	network entity.Network
}

// BalanceClient returns canned entries. Stub, when set, takes precedence.
type BalanceClient struct {
	mu      sync.Mutex
	Stub    func(ctx context.Context, address string, network entity.Network) ([]entity.BalanceLookupEntry, error)
	entries []entity.BalanceLookupEntry
	err     error
	calls   []balanceArgs
}

func (c *BalanceClient) GetBalancesReturns(entries []entity.BalanceLookupEntry, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries, c.err = entries, err
}

func (c *BalanceClient) GetBalances(ctx context.Context, address string, network entity.Network) ([]entity.BalanceLookupEntry, error) {
	c.mu.Lock()
	c.calls = append(c.calls, balanceArgs{address: address, network: network})
	stub, entries, err := c.Stub, c.entries, c.err
	c.mu.Unlock()
	if stub != nil {
		return stub(ctx, address, network)
	}
	return entries, err
}

func (c *BalanceClient) GetBalancesCallCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.calls)
}

func (c *BalanceClient) GetBalancesArgsForCall(i int) (string, entity.Network) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls[i].address, c.calls[i].network
}

// PriceClient returns canned prices.
type PriceClient struct {
	mu     sync.Mutex
	prices map[string]*float64
	err    error
	calls  [][]string
}

func (c *PriceClient) GetPricesReturns(prices map[string]*float64, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.prices, c.err = prices, err
}

func (c *PriceClient) GetPrices(_ context.Context, ids []string) (map[string]*float64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, append([]string(nil), ids...))
	return c.prices, c.err
}

func (c *PriceClient) GetPricesCallCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.calls)
}

func (c *PriceClient) GetPricesArgsForCall(i int) []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls[i]
}
