package client

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"smartaccount_playground/internal/app/port"
	"smartaccount_playground/internal/domain/entity"
)

const defaultConnectionTimeout = 10 * time.Second

// ErrNoBalances is returned when every item of a batch failed.
var ErrNoBalances = errors.New("no balance could be read")

// DialFunc opens a client for a network.
type DialFunc func(netDef entity.NetworkDefinition) (*EVMClient, error)

// RPCBalanceClient reads registry token balances straight from the network's nodes.
// Clients are created lazily and cached per network.
type RPCBalanceClient struct {
	networks port.NetworkDefinitionProvider
	tokens   port.TokenProvider
	logger   port.Logger
	dial     DialFunc

	mu      sync.Mutex
	clients map[entity.Network]*EVMClient
}

var _ port.BalanceClient = (*RPCBalanceClient)(nil)

func NewRPCBalanceClient(
	networks port.NetworkDefinitionProvider,
	tokens port.TokenProvider,
	logger port.Logger,
	rpcCallTimeout time.Duration,
) *RPCBalanceClient {
	return NewRPCBalanceClientWithDialer(networks, tokens, logger, func(netDef entity.NetworkDefinition) (*EVMClient, error) {
		return NewEVMClient(netDef, defaultConnectionTimeout, rpcCallTimeout)
	})
}

func NewRPCBalanceClientWithDialer(
	networks port.NetworkDefinitionProvider,
	tokens port.TokenProvider,
	logger port.Logger,
	dial DialFunc,
) *RPCBalanceClient {
	return &RPCBalanceClient{
		networks: networks,
		tokens:   tokens,
		logger:   logger,
		dial:     dial,
		clients:  make(map[entity.Network]*EVMClient),
	}
}

func (p *RPCBalanceClient) client(network entity.Network) (*EVMClient, error) {
	p.mu.Lock()
	c, ok := p.clients[network]
	p.mu.Unlock()
	if ok {
		return c, nil
	}

	netDef, ok := p.networks.GetNetworkDefinition(network)
	if !ok {
		return nil, fmt.Errorf("%w: %s", entity.ErrUnknownNetwork, network)
	}

	// Dialing can take the whole connection timeout; other networks keep being served meanwhile.
	p.logger.Info("Creating new EVM client", "network", network, "rpc_primary", netDef.PrimaryRPCURL)
	dialed, err := p.dial(netDef)
	if err != nil {
		p.logger.Error("Failed to create EVM client", "network", network, "error", err)
		return nil, fmt.Errorf("failed to create EVM client for %s: %w", network, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if existing, ok := p.clients[network]; ok {
		dialed.Close()
		return existing, nil
	}
	p.clients[network] = dialed
	return dialed, nil
}

// GetBalances reads every registry token of the network for address.
// Items that fail are logged and left out, so the merge step treats them as zero.
func (p *RPCBalanceClient) GetBalances(ctx context.Context, address string, network entity.Network) ([]entity.BalanceLookupEntry, error) {
	tokens, err := p.tokens.GetTokens(network)
	if err != nil {
		return nil, err
	}
	c, err := p.client(network)
	if err != nil {
		return nil, err
	}

	requests := make([]entity.BalanceRequestItem, len(tokens))
	for i, t := range tokens {
		requests[i] = entity.BalanceRequestItem{Type: entity.TokenBalanceRequest, Account: address, Token: t}
		if t.IsNative() {
			requests[i].Type = entity.NativeBalanceRequest
		}
	}

	results, err := c.GetBalances(ctx, requests)
	if err != nil {
		return nil, err
	}

	entries := make([]entity.BalanceLookupEntry, 0, len(results))
	var failed int
	for _, r := range results {
		if r.Error != nil {
			failed++
			p.logger.Warn("Balance item failed", "network", network, "token", r.Token.Symbol, "error", r.Error)
			continue
		}
		decimals := r.Token.Decimals
		entries = append(entries, entity.BalanceLookupEntry{
			Token: entity.BalanceLookupToken{
				ContractAddress: r.Token.Address,
				Symbol:          r.Token.Symbol,
				Name:            r.Token.Name,
				Decimals:        r.Token.Decimals,
			},
			Amount: entity.BalanceLookupAmount{Amount: r.Balance.String(), Decimals: &decimals},
		})
	}
	if len(results) > 0 && failed == len(results) {
		return nil, ErrNoBalances
	}
	return entries, nil
}

// Close shuts down every cached connection.
func (p *RPCBalanceClient) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for n, c := range p.clients {
		c.Close()
		delete(p.clients, n)
	}
}
