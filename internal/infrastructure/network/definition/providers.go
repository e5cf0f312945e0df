package networkdefinition

import (
	"smartaccount_playground/internal/app/port"
	"smartaccount_playground/internal/domain/entity"
	"smartaccount_playground/internal/infrastructure/configloader"
)

// Predefined network definitions
var ( //nolint:gochecknoglobals // Global for definitions
	Base = entity.NetworkDefinition{
		Network:              entity.NetworkBase,
		ChainID:              8453,
		Name:                 "Base Mainnet",
		NativeSymbol:         "ETH",
		Decimals:             18,
		PrimaryRPCURL:        "https://mainnet.base.org",
		FallbackRPCURLs:      []string{"https://base.publicnode.com", "https://1rpc.io/base"},
		BlockExplorerURL:     "https://basescan.org",
		SimpleStorageAddress: "0x1d1CddD85aF76d4c7d46d19E0Ca3a9cf8B1e699E",
	}
	BaseSepolia = entity.NetworkDefinition{
		Network:              entity.NetworkBaseSepolia,
		ChainID:              84532,
		Name:                 "Base Sepolia",
		NativeSymbol:         "ETH",
		Decimals:             18,
		PrimaryRPCURL:        "https://sepolia.base.org",
		FallbackRPCURLs:      []string{"https://base-sepolia.publicnode.com"},
		BlockExplorerURL:     "https://sepolia.basescan.org",
		Testnet:              true,
		SimpleStorageAddress: "0x9f8e02A43aD5310cf8A9991a9A464920359CaEcB",
	}
)

// allKnownDefinitions must hold one entry per entity.Network case.
var allKnownDefinitions = map[entity.Network]entity.NetworkDefinition{
	entity.NetworkBase:        Base,
	entity.NetworkBaseSepolia: BaseSepolia,
}

// NetworkDefinitionProvider provides network definitions.
type NetworkDefinitionProvider struct {
	defs map[entity.Network]entity.NetworkDefinition
}

var _ port.NetworkDefinitionProvider = (*NetworkDefinitionProvider)(nil)

// NewNetworkDefinitionProvider builds the registry, applying RPC overrides from config.
// Overrides for unknown networks are logged and skipped.
func NewNetworkDefinitionProvider(log port.Logger, overrides []configloader.NetworkNodeConfig) *NetworkDefinitionProvider {
	p := &NetworkDefinitionProvider{defs: make(map[entity.Network]entity.NetworkDefinition, len(allKnownDefinitions))}
	for n, def := range allKnownDefinitions {
		def.FallbackRPCURLs = append([]string(nil), def.FallbackRPCURLs...)
		p.defs[n] = def
	}

	for _, o := range overrides {
		n, err := entity.ParseNetwork(o.Network)
		if err != nil {
			log.Warn("Skipping RPC override for unknown network", "network", o.Network)
			continue
		}
		def := p.defs[n]
		if o.RPCURL != "" {
			def.PrimaryRPCURL = o.RPCURL
		}
		if len(o.FallbackRPCURLs) > 0 {
			def.FallbackRPCURLs = append([]string(nil), o.FallbackRPCURLs...)
		}
		p.defs[n] = def
		log.Debug("Applied RPC override", "network", n, "rpc_primary", def.PrimaryRPCURL)
	}

	return p
}

// GetAllNetworkDefinitions returns the definitions in display order.
func (p *NetworkDefinitionProvider) GetAllNetworkDefinitions() []entity.NetworkDefinition {
	defs := make([]entity.NetworkDefinition, 0, len(p.defs))
	for _, n := range entity.Networks() {
		defs = append(defs, p.defs[n])
	}
	return defs
}

func (p *NetworkDefinitionProvider) GetNetworkDefinition(network entity.Network) (entity.NetworkDefinition, bool) {
	def, ok := p.defs[network]
	return def, ok
}
