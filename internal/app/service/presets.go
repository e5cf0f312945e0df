package service

import (
	"errors"
	"fmt"
	"math/big"
	"sort"

	"smartaccount_playground/internal/app/port"
	"smartaccount_playground/internal/domain/entity"
	"smartaccount_playground/internal/pkg/contracts"
	"smartaccount_playground/internal/pkg/utils"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// ErrUnknownPreset is returned for preset names that are not registered.
var ErrUnknownPreset = errors.New("unknown preset")

// presetRecipient is the example counterparty used by the token presets.
var presetRecipient = common.HexToAddress("0x742d35cc6634c0532925a3b8d0c9e3e0c0e61e64")

type presetBuilder func(p *Presets, network entity.Network) ([]entity.CallEntry, error)

var presetBuilders = map[string]presetBuilder{
	"erc20-transfer":       (*Presets).erc20Transfer,
	"multi-call":           (*Presets).multiCall,
	"contract-interaction": (*Presets).contractInteraction,
	"simple-storage":       (*Presets).simpleStorage,
}

// Presets builds ready-made direct-mode entries.
type Presets struct {
	tokens   port.TokenProvider
	networks port.NetworkDefinitionProvider
}

func NewPresets(tokens port.TokenProvider, networks port.NetworkDefinitionProvider) *Presets {
	return &Presets{tokens: tokens, networks: networks}
}

// Names lists the available presets.
func (p *Presets) Names() []string {
	names := make([]string, 0, len(presetBuilders))
	for name := range presetBuilders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (p *Presets) Build(name string, network entity.Network) ([]entity.CallEntry, error) {
	build, ok := presetBuilders[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return build(p, network)
}

// erc20Transfer sends 10 USDC to the example recipient.
func (p *Presets) erc20Transfer(network entity.Network) ([]entity.CallEntry, error) {
	usdc, err := p.tokens.GetTokenBySymbol(network, "USDC")
	if err != nil {
		return nil, err
	}
	amount := new(big.Int).Mul(big.NewInt(10), utils.Pow10(usdc.Decimals))
	data, err := EncodeTransfer(presetRecipient, amount)
	if err != nil {
		return nil, err
	}
	return []entity.CallEntry{{Target: usdc.Address, Value: "0", PayloadHex: hexutil.Encode(data)}}, nil
}

// multiCall is a 0.001 ETH send followed by an empty call; targets are left for the user.
func (p *Presets) multiCall(entity.Network) ([]entity.CallEntry, error) {
	return []entity.CallEntry{
		{Target: "", Value: "1000000000000000", PayloadHex: "0x"},
		{Target: "", Value: "0", PayloadHex: "0x"},
	}, nil
}

// contractInteraction resets the example recipient's USDC allowance.
func (p *Presets) contractInteraction(network entity.Network) ([]entity.CallEntry, error) {
	usdc, err := p.tokens.GetTokenBySymbol(network, "USDC")
	if err != nil {
		return nil, err
	}
	data, err := contracts.ERC20().Pack("approve", presetRecipient, new(big.Int))
	if err != nil {
		return nil, fmt.Errorf("encode approve: %w", err)
	}
	return []entity.CallEntry{{Target: usdc.Address, Value: "0", PayloadHex: hexutil.Encode(data)}}, nil
}

// simpleStorage sets the demo counter twice; the calls only make sense in order.
func (p *Presets) simpleStorage(network entity.Network) ([]entity.CallEntry, error) {
	def, ok := p.networks.GetNetworkDefinition(network)
	if !ok || def.SimpleStorageAddress == "" {
		return nil, fmt.Errorf("%w: no simple storage contract on %s", ErrUnknownPreset, network)
	}
	entries := make([]entity.CallEntry, 0, 2)
	for _, v := range []int64{1, 2} {
		data, err := contracts.SimpleStorage().Pack("set", big.NewInt(v))
		if err != nil {
			return nil, fmt.Errorf("encode set: %w", err)
		}
		entries = append(entries, entity.CallEntry{Target: def.SimpleStorageAddress, Value: "0", PayloadHex: hexutil.Encode(data)})
	}
	return entries, nil
}
