package fake

import (
	"context"
	"sync"

	"smartaccount_playground/internal/domain/entity"
)

// WalletCapability records user operations. Stub, when set, takes precedence.
type WalletCapability struct {
	mu      sync.Mutex
	Stub    func(ctx context.Context, req entity.UserOperationRequest) (entity.UserOperationReceipt, error)
	receipt entity.UserOperationReceipt
	err     error
	calls   []entity.UserOperationRequest
}

func (w *WalletCapability) SendUserOperationReturns(receipt entity.UserOperationReceipt, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.receipt, w.err = receipt, err
}

func (w *WalletCapability) SendUserOperation(ctx context.Context, req entity.UserOperationRequest) (entity.UserOperationReceipt, error) {
	w.mu.Lock()
	w.calls = append(w.calls, req)
	stub, receipt, err := w.Stub, w.receipt, w.err
	w.mu.Unlock()
	if stub != nil {
		return stub(ctx, req)
	}
	return receipt, err
}

func (w *WalletCapability) SendUserOperationCallCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.calls)
}

func (w *WalletCapability) SendUserOperationArgsForCall(i int) entity.UserOperationRequest {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.calls[i]
}

// AccountProvider holds an optional account.
type AccountProvider struct {
	mu           sync.Mutex
	Account      *entity.SmartAccount
	err          error
	signOutCalls int
}

func (p *AccountProvider) SmartAccountReturnsError(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.err = err
}

func (p *AccountProvider) SmartAccount(context.Context) (*entity.SmartAccount, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return nil, p.err
	}
	return p.Account, nil
}

func (p *AccountProvider) SignOut(context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.signOutCalls++
	p.Account = nil
	return nil
}

func (p *AccountProvider) SignOutCallCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.signOutCalls
}

// SettingsStore is an in-memory map.
type SettingsStore struct {
	mu     sync.Mutex
	values map[string]string
	setErr error
}

func (s *SettingsStore) SetReturns(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setErr = err
}

func (s *SettingsStore) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *SettingsStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.setErr != nil {
		return s.setErr
	}
	if s.values == nil {
		s.values = make(map[string]string)
	}
	s.values[key] = value
	return nil
}
