package wallet_test

import (
	"context"
	"time"

	"smartaccount_playground/internal/domain/entity"
	"smartaccount_playground/internal/infrastructure/wallet"

	"github.com/ethereum/go-ethereum/common"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"
)

var _ = Describe("SimulatedWallet", func() {
	var req entity.UserOperationRequest

	BeforeEach(func() {
		req = entity.UserOperationRequest{
			Network: entity.NetworkBaseSepolia,
			Calls:   []entity.CompiledCall{entity.NewCompiledCall(common.HexToAddress("0x2222222222222222222222222222222222222222"), nil, nil)},
		}
	})

	It("should return distinct 32-byte hashes per submission", func() {
		w := wallet.NewSimulatedWallet(0, zap.NewNop())
		first, err := w.SendUserOperation(context.Background(), req)
		Expect(err).NotTo(HaveOccurred())
		second, err := w.SendUserOperation(context.Background(), req)
		Expect(err).NotTo(HaveOccurred())

		Expect(first.TransactionID).To(HaveLen(66))
		Expect(first.TransactionID).NotTo(Equal(second.TransactionID))
		Expect(first.UserOpHash).NotTo(Equal(first.TransactionID))
	})

	It("should revert calls to the zero address", func() {
		req.Calls = append(req.Calls, entity.NewCompiledCall(common.Address{}, nil, nil))
		_, err := wallet.NewSimulatedWallet(0, zap.NewNop()).SendUserOperation(context.Background(), req)
		Expect(err).To(MatchError(wallet.ErrSimulatedRevert))
	})

	It("should stop waiting when the context ends", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()
		_, err := wallet.NewSimulatedWallet(time.Minute, zap.NewNop()).SendUserOperation(ctx, req)
		Expect(err).To(MatchError(context.DeadlineExceeded))
	})
})
