package account

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"smartaccount_playground/internal/app/port"
	"smartaccount_playground/internal/domain/entity"

	"github.com/ethereum/go-ethereum/common"
)

// StaticProvider exposes the smart account configured at startup.
// After SignOut it reports no account until the process restarts.
type StaticProvider struct {
	mu      sync.RWMutex
	account *entity.SmartAccount
	logger  port.Logger
}

var _ port.AccountProvider = (*StaticProvider)(nil)

// NewStaticProvider builds a provider from hex addresses. An empty address means signed out.
func NewStaticProvider(address, owner string, logger port.Logger) (*StaticProvider, error) {
	p := &StaticProvider{logger: logger}
	address = strings.TrimSpace(address)
	if address == "" {
		logger.Warn("No smart account configured, submissions will be refused")
		return p, nil
	}
	if !common.IsHexAddress(address) {
		return nil, fmt.Errorf("invalid smart account address %q", address)
	}
	acc := &entity.SmartAccount{Address: common.HexToAddress(address)}
	if owner = strings.TrimSpace(owner); owner != "" {
		if !common.IsHexAddress(owner) {
			return nil, fmt.Errorf("invalid owner address %q", owner)
		}
		acc.Owner = common.HexToAddress(owner)
	}
	p.account = acc
	logger.Info("Smart account loaded", "address", entity.ShortAddress(acc.Address.Hex()))
	return p, nil
}

func (p *StaticProvider) SmartAccount(context.Context) (*entity.SmartAccount, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.account == nil {
		return nil, nil
	}
	acc := *p.account
	return &acc, nil
}

func (p *StaticProvider) SignOut(context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.account != nil {
		p.logger.Info("Signed out", "address", entity.ShortAddress(p.account.Address.Hex()))
	}
	p.account = nil
	return nil
}
