package port

import (
	"context"

	"smartaccount_playground/internal/domain/entity"
)

// NetworkDefinitionProvider exposes the static network registry.
type NetworkDefinitionProvider interface {
	// GetAllNetworkDefinitions returns every supported network in display order.
	GetAllNetworkDefinitions() []entity.NetworkDefinition

	// GetNetworkDefinition returns the definition for a network and true, or false if unknown.
	GetNetworkDefinition(network entity.Network) (entity.NetworkDefinition, bool)
}

// BalanceClient is a source of on-chain balances for an account.
type BalanceClient interface {
	GetBalances(ctx context.Context, address string, network entity.Network) ([]entity.BalanceLookupEntry, error)
}
