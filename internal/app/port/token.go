package port

import (
	"context"

	"smartaccount_playground/internal/domain/entity"
)

// TokenProvider is the read-only token registry.
type TokenProvider interface {
	// GetTokens returns the registry for a network in display order.
	GetTokens(network entity.Network) ([]entity.TokenInfo, error)

	// GetTokenBySymbol looks up a token by its exact symbol.
	GetTokenBySymbol(network entity.Network, symbol string) (entity.TokenInfo, error)
}

// PriceClient resolves price identifiers to USD prices. A nil entry means unknown.
type PriceClient interface {
	GetPrices(ctx context.Context, priceIDs []string) (map[string]*float64, error)
}
