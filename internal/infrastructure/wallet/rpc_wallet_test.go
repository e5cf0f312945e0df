package wallet_test

import (
	"context"
	"errors"
	"math/big"

	"smartaccount_playground/internal/domain/entity"
	"smartaccount_playground/internal/infrastructure/wallet"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"
)

type receivedCall struct {
	To    common.Address `json:"to"`
	Value *hexutil.Big   `json:"value"`
	Data  hexutil.Bytes  `json:"data"`
}

type receivedParams struct {
	Account         common.Address `json:"account"`
	Network         string         `json:"network"`
	Calls           []receivedCall `json:"calls"`
	UseCdpPaymaster *bool          `json:"useCdpPaymaster"`
	PaymasterURL    *string        `json:"paymasterUrl"`
}

type walletAPI struct {
	received []receivedParams
	txHash   string
	err      error
}

func (api *walletAPI) SendUserOperation(p receivedParams) (map[string]string, error) {
	api.received = append(api.received, p)
	if api.err != nil {
		return nil, api.err
	}
	return map[string]string{"userOpHash": "0x01", "transactionHash": api.txHash}, nil
}

var _ = Describe("RPCWallet", func() {
	var (
		api     *walletAPI
		w       *wallet.RPCWallet
		req     entity.UserOperationRequest
		receipt entity.UserOperationReceipt
		err     error
	)

	BeforeEach(func() {
		api = &walletAPI{txHash: "0xabc"}
		server := rpc.NewServer()
		Expect(server.RegisterName("wallet", api)).To(Succeed())
		DeferCleanup(server.Stop)

		w = wallet.NewRPCWallet(rpc.DialInProc(server), "wallet_sendUserOperation", zap.NewNop())
		DeferCleanup(w.Close)

		req = entity.UserOperationRequest{
			Account: entity.SmartAccount{Address: common.HexToAddress("0x1111111111111111111111111111111111111111")},
			Network: entity.NetworkBaseSepolia,
			Calls: []entity.CompiledCall{
				entity.NewCompiledCall(common.HexToAddress("0x2222222222222222222222222222222222222222"), big.NewInt(5), []byte{0xde, 0xad}),
			},
		}
	})

	JustBeforeEach(func() {
		receipt, err = w.SendUserOperation(context.Background(), req)
	})

	When("sponsorship uses the default sponsor", func() {
		BeforeEach(func() {
			req.Sponsorship = &entity.SponsorshipConfig{Enabled: true, UseDefaultSponsor: true}
		})

		It("should send the flag and no url", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(receipt.TransactionID).To(Equal("0xabc"))
			Expect(api.received).To(HaveLen(1))

			p := api.received[0]
			Expect(p.Account).To(Equal(req.Account.Address))
			Expect(p.Network).To(Equal("base-sepolia"))
			Expect(p.Calls).To(HaveLen(1))
			Expect(p.Calls[0].Value.ToInt()).To(Equal(big.NewInt(5)))
			Expect([]byte(p.Calls[0].Data)).To(Equal([]byte{0xde, 0xad}))
			Expect(p.UseCdpPaymaster).NotTo(BeNil())
			Expect(*p.UseCdpPaymaster).To(BeTrue())
			Expect(p.PaymasterURL).To(BeNil())
		})
	})

	When("sponsorship uses a paymaster url", func() {
		BeforeEach(func() {
			req.Network = entity.NetworkBase
			req.Sponsorship = &entity.SponsorshipConfig{Enabled: true, PaymasterURL: "https://pm.example"}
		})

		It("should send only the url", func() {
			Expect(err).NotTo(HaveOccurred())
			p := api.received[0]
			Expect(p.UseCdpPaymaster).To(BeNil())
			Expect(*p.PaymasterURL).To(Equal("https://pm.example"))
		})
	})

	When("no sponsorship is attached", func() {
		It("should send neither field", func() {
			p := api.received[0]
			Expect(p.UseCdpPaymaster).To(BeNil())
			Expect(p.PaymasterURL).To(BeNil())
		})
	})

	When("the wallet rejects the operation", func() {
		BeforeEach(func() {
			api.err = errors.New("user rejected the request")
		})

		It("should return the error", func() {
			Expect(err).To(MatchError(ContainSubstring("user rejected the request")))
		})
	})

	When("the wallet returns no hash", func() {
		BeforeEach(func() {
			api.txHash = ""
		})

		It("should fail", func() {
			Expect(err).To(MatchError(wallet.ErrEmptyReceipt))
		})
	})
})
