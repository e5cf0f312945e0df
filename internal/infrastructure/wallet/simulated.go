package wallet

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"smartaccount_playground/internal/app/port"
	"smartaccount_playground/internal/domain/entity"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"go.uber.org/zap"
)

// ErrSimulatedRevert is returned for batches that call the zero address.
var ErrSimulatedRevert = errors.New("execution reverted: call to the zero address")

// SimulatedWallet accepts every well-formed batch after a fixed latency.
// Hashes are derived from the batch content and a nonce.
type SimulatedWallet struct {
	latency time.Duration
	nonce   atomic.Uint64
	logger  *zap.Logger
}

var _ port.WalletCapability = (*SimulatedWallet)(nil)

func NewSimulatedWallet(latency time.Duration, logger *zap.Logger) *SimulatedWallet {
	return &SimulatedWallet{latency: latency, logger: logger.Named("SimulatedWallet")}
}

func (w *SimulatedWallet) SendUserOperation(ctx context.Context, req entity.UserOperationRequest) (entity.UserOperationReceipt, error) {
	if w.latency > 0 {
		timer := time.NewTimer(w.latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return entity.UserOperationReceipt{}, ctx.Err()
		case <-timer.C:
		}
	}

	for _, call := range req.Calls {
		if call.To == (common.Address{}) {
			return entity.UserOperationReceipt{}, ErrSimulatedRevert
		}
	}

	nonce := w.nonce.Add(1)
	opHash := userOpHash(req, nonce)
	txHash := crypto.Keccak256Hash(opHash.Bytes(), []byte("tx"))

	w.logger.Info("Simulated user operation",
		zap.Uint64("nonce", nonce),
		zap.String("network", req.Network.String()),
		zap.Int("calls", len(req.Calls)),
		zap.Bool("sponsored", req.Sponsorship != nil),
		zap.String("tx", txHash.Hex()),
	)
	return entity.UserOperationReceipt{UserOpHash: opHash.Hex(), TransactionID: txHash.Hex()}, nil
}

func userOpHash(req entity.UserOperationRequest, nonce uint64) common.Hash {
	parts := [][]byte{
		req.Account.Address.Bytes(),
		[]byte(req.Network),
		[]byte(hexutil.EncodeUint64(nonce)),
	}
	for _, call := range req.Calls {
		parts = append(parts, call.To.Bytes(), call.ValueInt().Bytes(), call.Data)
	}
	return crypto.Keccak256Hash(parts...)
}
