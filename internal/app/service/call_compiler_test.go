package service_test

import (
	"math/big"
	"strings"

	"smartaccount_playground/internal/app/port/fake"
	"smartaccount_playground/internal/app/service"
	"smartaccount_playground/internal/domain/entity"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("CallCompiler", func() {
	var (
		compiler *service.CallCompiler
		mode     entity.CallMode
		network  entity.Network
		entries  []entity.CallEntry
		calls    []entity.CompiledCall
		err      error
	)

	BeforeEach(func() {
		compiler = service.NewCallCompiler(newTokens(), new(fake.Logger))
		network = entity.NetworkBase
	})

	JustBeforeEach(func() {
		calls, err = compiler.Compile(mode, network, entries)
	})

	Describe("direct mode", func() {
		BeforeEach(func() {
			mode = entity.CallModeDirect
		})

		When("entries carry smallest-unit values", func() {
			BeforeEach(func() {
				entries = []entity.CallEntry{
					{Target: recipient, Value: "1000", PayloadHex: "0x"},
					{Target: usdcBase, Value: "", PayloadHex: "0xdeadbeef"},
				}
			})

			It("should keep order and values", func() {
				Expect(err).NotTo(HaveOccurred())
				Expect(calls).To(HaveLen(2))

				Expect(calls[0].To).To(Equal(common.HexToAddress(recipient)))
				Expect(calls[0].ValueInt()).To(Equal(big.NewInt(1000)))
				Expect(calls[0].Data).To(BeEmpty())

				Expect(calls[1].To).To(Equal(common.HexToAddress(usdcBase)))
				Expect(calls[1].ValueInt().Sign()).To(Equal(0))
				Expect(hexutil.Encode(calls[1].Data)).To(Equal("0xdeadbeef"))
			})
		})

		When("a single call carries zero value and empty data", func() {
			BeforeEach(func() {
				entries = []entity.CallEntry{{Target: usdcBase, Value: "0", PayloadHex: "0x"}}
			})

			It("should compile to the same target with nothing attached", func() {
				Expect(err).NotTo(HaveOccurred())
				Expect(calls).To(HaveLen(1))
				Expect(calls[0].To).To(Equal(common.HexToAddress(usdcBase)))
				Expect(calls[0].ValueInt().Sign()).To(Equal(0))
				Expect(calls[0].Data).To(BeEmpty())
			})
		})

		When("the value has a fractional part", func() {
			BeforeEach(func() {
				entries = []entity.CallEntry{{Target: recipient, Value: "10.5", PayloadHex: "0x"}}
			})

			It("should fail closed", func() {
				Expect(err).To(MatchError(service.ErrInvalidValue))
				Expect(calls).To(BeNil())
			})
		})

		When("the value does not fit in uint256", func() {
			BeforeEach(func() {
				over := new(big.Int).Lsh(big.NewInt(1), 256)
				entries = []entity.CallEntry{{Target: recipient, Value: over.String(), PayloadHex: "0x"}}
			})

			It("should report an overflow", func() {
				Expect(err).To(MatchError(service.ErrAmountOverflow))
			})
		})
	})

	Describe("transfer mode", func() {
		BeforeEach(func() {
			mode = entity.CallModeTransfer
		})

		When("sending an ERC-20 token", func() {
			BeforeEach(func() {
				entries = []entity.CallEntry{{Target: recipient, Amount: "1.5", TokenSymbol: "USDC"}}
			})

			It("should encode a transfer call to the token contract", func() {
				Expect(err).NotTo(HaveOccurred())
				Expect(calls).To(HaveLen(1))
				Expect(calls[0].To).To(Equal(common.HexToAddress(usdcBase)))
				Expect(calls[0].ValueInt().Sign()).To(Equal(0))

				data := hexutil.Encode(calls[0].Data)
				Expect(calls[0].Data).To(HaveLen(68))
				Expect(data).To(HavePrefix("0xa9059cbb"))
				Expect(data).To(ContainSubstring(strings.ToLower(recipient[2:])))
				Expect(data).To(HaveSuffix(strings.Repeat("0", 58) + "16e360"))
			})
		})

		When("sending the native currency", func() {
			BeforeEach(func() {
				entries = []entity.CallEntry{{Target: recipient, Amount: "0.01", TokenSymbol: "ETH"}}
			})

			It("should produce a plain value transfer", func() {
				Expect(err).NotTo(HaveOccurred())
				Expect(calls[0].To).To(Equal(common.HexToAddress(recipient)))
				Expect(calls[0].ValueInt()).To(Equal(big.NewInt(10_000_000_000_000_000)))
				Expect(calls[0].Data).To(BeEmpty())
			})
		})

		When("the token is not in the registry", func() {
			BeforeEach(func() {
				entries = []entity.CallEntry{
					{Target: recipient, Amount: "1", TokenSymbol: "ETH"},
					{Target: recipient, Amount: "1", TokenSymbol: "PEPE"},
				}
			})

			It("should abort with the failing index", func() {
				Expect(err).To(MatchError(service.ErrUnknownToken))
				var cerr *service.CompileError
				Expect(err).To(BeAssignableToTypeOf(cerr))
				Expect(err.(*service.CompileError).Index).To(Equal(1))
				Expect(calls).To(BeNil())
			})
		})

		When("the amount is more precise than the token", func() {
			BeforeEach(func() {
				entries = []entity.CallEntry{{Target: recipient, Amount: "1.1234567", TokenSymbol: "USDC"}}
			})

			It("should reject it", func() {
				Expect(err).To(MatchError(service.ErrInvalidAmount))
			})
		})

		When("the symbol exists only on the other network", func() {
			BeforeEach(func() {
				network = entity.NetworkBaseSepolia
				entries = []entity.CallEntry{{Target: recipient, Amount: "1", TokenSymbol: "USDC"}}
			})

			It("should use the selected network's contract", func() {
				Expect(err).NotTo(HaveOccurred())
				Expect(calls[0].To).To(Equal(common.HexToAddress(usdcSepolia)))
			})
		})
	})

	Describe("EncodeTransfer", func() {
		It("should reject negative amounts", func() {
			_, err := service.EncodeTransfer(common.HexToAddress(recipient), big.NewInt(-1))
			Expect(err).To(MatchError(service.ErrInvalidAmount))
		})
	})
})
