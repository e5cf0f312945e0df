package entity

import (
	"errors"
	"fmt"
	"strings"
)

// Network is the closed set of networks the playground can target.
type Network string

const (
	NetworkBase        Network = "base"
	NetworkBaseSepolia Network = "base-sepolia"
)

// ErrUnknownNetwork is returned when a network identifier is not part of the registry.
var ErrUnknownNetwork = errors.New("unknown network")

// Networks lists every supported network in display order.
func Networks() []Network {
	return []Network{NetworkBase, NetworkBaseSepolia}
}

// ParseNetwork converts an identifier such as "base-sepolia" into a Network.
func ParseNetwork(s string) (Network, error) {
	n := Network(strings.ToLower(strings.TrimSpace(s)))
	if !n.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownNetwork, s)
	}
	return n, nil
}

func (n Network) Valid() bool {
	switch n {
	case NetworkBase, NetworkBaseSepolia:
		return true
	}
	return false
}

// IsTestnet reports whether sponsorship on this network uses the implicit default sponsor.
func (n Network) IsTestnet() bool {
	return n == NetworkBaseSepolia
}

func (n Network) String() string { return string(n) }

// NetworkDefinition holds the configuration for a specific blockchain network.
type NetworkDefinition struct {
	Network          Network  `json:"network" yaml:"network"`
	ChainID          uint64   `json:"chainId" yaml:"chainId"`
	Name             string   `json:"name" yaml:"name"`
	NativeSymbol     string   `json:"nativeSymbol" yaml:"nativeSymbol"`
	Decimals         uint8    `json:"decimals" yaml:"decimals"`
	PrimaryRPCURL    string   `json:"primaryRpcUrl" yaml:"primaryRpcUrl"`
	FallbackRPCURLs  []string `json:"fallbackRpcUrls,omitempty" yaml:"fallbackRpcUrls,omitempty"`
	BlockExplorerURL string   `json:"blockExplorerUrl" yaml:"blockExplorerUrl"`
	Testnet          bool     `json:"testnet" yaml:"testnet"`
	// SimpleStorageAddress is the demo contract used by the simple-storage preset.
	SimpleStorageAddress string `json:"simpleStorageAddress,omitempty" yaml:"simpleStorageAddress,omitempty"`
}

// TransactionURL builds the explorer link for a transaction hash.
func (d NetworkDefinition) TransactionURL(txHash string) string {
	if txHash == "" {
		return ""
	}
	return strings.TrimRight(d.BlockExplorerURL, "/") + "/tx/" + txHash
}

// AddressURL builds the explorer link for an account or contract.
func (d NetworkDefinition) AddressURL(address string) string {
	return strings.TrimRight(d.BlockExplorerURL, "/") + "/address/" + address
}
