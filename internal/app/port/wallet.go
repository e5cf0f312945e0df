package port

import (
	"context"

	"smartaccount_playground/internal/domain/entity"
)

// WalletCapability executes a batch of compiled calls as one atomic user operation.
type WalletCapability interface {
	SendUserOperation(ctx context.Context, req entity.UserOperationRequest) (entity.UserOperationReceipt, error)
}

// AccountProvider exposes the connected account.
type AccountProvider interface {
	// SmartAccount returns nil when no account is connected.
	SmartAccount(ctx context.Context) (*entity.SmartAccount, error)
	SignOut(ctx context.Context) error
}
