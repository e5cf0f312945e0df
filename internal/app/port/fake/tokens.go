package fake

import (
	"fmt"
	"sync"

	"smartaccount_playground/internal/domain/entity"
)

// TokenProvider serves a fixed registry.
type TokenProvider struct {
	mu       sync.Mutex
	Registry map[entity.Network][]entity.TokenInfo
	getErr   error
}

func (p *TokenProvider) GetTokensReturnsError(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.getErr = err
}

func (p *TokenProvider) GetTokens(network entity.Network) ([]entity.TokenInfo, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.getErr != nil {
		return nil, p.getErr
	}
	return append([]entity.TokenInfo(nil), p.Registry[network]...), nil
}

func (p *TokenProvider) GetTokenBySymbol(network entity.Network, symbol string) (entity.TokenInfo, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, t := range p.Registry[network] {
		if t.Symbol == symbol {
			return t, nil
		}
	}
	return entity.TokenInfo{}, fmt.Errorf("token %q not found on %s", symbol, network)
}

// NetworkDefinitionProvider serves fixed definitions.
type NetworkDefinitionProvider struct {
	Definitions []entity.NetworkDefinition
}

func (p *NetworkDefinitionProvider) GetAllNetworkDefinitions() []entity.NetworkDefinition {
	return append([]entity.NetworkDefinition(nil), p.Definitions...)
}

func (p *NetworkDefinitionProvider) GetNetworkDefinition(network entity.Network) (entity.NetworkDefinition, bool) {
	for _, d := range p.Definitions {
		if d.Network == network {
			return d, true
		}
	}
	return entity.NetworkDefinition{}, false
}
