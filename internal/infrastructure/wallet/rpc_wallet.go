package wallet

import (
	"context"
	"errors"
	"fmt"

	"smartaccount_playground/internal/app/port"
	"smartaccount_playground/internal/domain/entity"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rpc"
	"go.uber.org/zap"
)

// ErrEmptyReceipt is returned when the wallet answers without a transaction hash.
var ErrEmptyReceipt = errors.New("wallet returned no transaction hash")

type sendParams struct {
	Account         common.Address        `json:"account"`
	Network         entity.Network        `json:"network"`
	Calls           []entity.CompiledCall `json:"calls"`
	UseCdpPaymaster bool                  `json:"useCdpPaymaster,omitempty"`
	PaymasterURL    string                `json:"paymasterUrl,omitempty"`
}

// RPCWallet forwards user operations to a wallet service over JSON-RPC.
type RPCWallet struct {
	client *rpc.Client
	method string
	logger *zap.Logger
}

var _ port.WalletCapability = (*RPCWallet)(nil)

// DialRPCWallet connects to endpoint. A non-empty apiKey is sent as a bearer token.
func DialRPCWallet(ctx context.Context, endpoint, method, apiKey string, logger *zap.Logger) (*RPCWallet, error) {
	var opts []rpc.ClientOption
	if apiKey != "" {
		opts = append(opts, rpc.WithHeader("Authorization", "Bearer "+apiKey))
	}
	c, err := rpc.DialOptions(ctx, endpoint, opts...)
	if err != nil {
		return nil, fmt.Errorf("dial wallet endpoint: %w", err)
	}
	return NewRPCWallet(c, method, logger), nil
}

func NewRPCWallet(c *rpc.Client, method string, logger *zap.Logger) *RPCWallet {
	return &RPCWallet{client: c, method: method, logger: logger.Named("RPCWallet")}
}

// SendUserOperation blocks until the wallet reports the operation's transaction.
func (w *RPCWallet) SendUserOperation(ctx context.Context, req entity.UserOperationRequest) (entity.UserOperationReceipt, error) {
	params := sendParams{
		Account: req.Account.Address,
		Network: req.Network,
		Calls:   req.Calls,
	}
	if req.Sponsorship != nil {
		params.UseCdpPaymaster = req.Sponsorship.UseDefaultSponsor
		params.PaymasterURL = req.Sponsorship.PaymasterURL
	}

	w.logger.Debug("Sending user operation",
		zap.String("method", w.method),
		zap.String("network", req.Network.String()),
		zap.Int("calls", len(req.Calls)),
	)

	var receipt entity.UserOperationReceipt
	if err := w.client.CallContext(ctx, &receipt, w.method, params); err != nil {
		return entity.UserOperationReceipt{}, err
	}
	if receipt.TransactionID == "" {
		return entity.UserOperationReceipt{}, ErrEmptyReceipt
	}
	return receipt, nil
}

func (w *RPCWallet) Close() {
	w.client.Close()
}
