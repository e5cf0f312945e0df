package service_test

import (
	"context"
	"errors"
	"math/big"
	"time"

	"smartaccount_playground/internal/app/port/fake"
	"smartaccount_playground/internal/app/service"
	"smartaccount_playground/internal/domain/entity"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func ptr[T any](v T) *T { return &v }

var _ = Describe("BalanceFetcher", func() {
	var (
		fetcher  *service.BalanceFetcher
		balances *fake.BalanceClient
		prices   *fake.PriceClient
		log      *fake.Logger
		ctx      context.Context
		testErr  error
	)

	baseEntries := func() []entity.BalanceLookupEntry {
		return []entity.BalanceLookupEntry{
			{
				Token:  entity.BalanceLookupToken{ContractAddress: entity.NativeTokenAddress, Symbol: "ETH", Decimals: 18},
				Amount: entity.BalanceLookupAmount{Amount: "1500000000000000000"},
			},
			{
				Token:  entity.BalanceLookupToken{ContractAddress: "0x833589fcd6edb6e08f4c7c32d4f71b54bda02913", Symbol: "USDC", Decimals: 6},
				Amount: entity.BalanceLookupAmount{Amount: "2500000", Decimals: ptr(uint8(6))},
			},
		}
	}

	BeforeEach(func() {
		balances = new(fake.BalanceClient)
		prices = new(fake.PriceClient)
		log = new(fake.Logger)
		ctx = context.Background()
		testErr = errors.New("upstream down")
		fetcher = service.NewBalanceFetcher(balances, prices, newTokens(), log, time.Minute)
	})

	Describe("SetTarget", func() {
		var (
			snapshot entity.BalanceSnapshot
			err      error
		)

		When("both lookups succeed", func() {
			BeforeEach(func() {
				balances.GetBalancesReturns(baseEntries(), nil)
				prices.GetPricesReturns(map[string]*float64{"ethereum": ptr(2000.0), "usd-coin": ptr(1.0)}, nil)
			})

			JustBeforeEach(func() {
				snapshot, err = fetcher.SetTarget(ctx, accountAddr, entity.NetworkBase)
			})

			It("should merge balances with prices", func() {
				Expect(err).NotTo(HaveOccurred())
				Expect(snapshot.Balances).To(HaveLen(2))

				eth, ok := snapshot.Balance("ETH")
				Expect(ok).To(BeTrue())
				Expect(eth.FormattedBalance).To(Equal("1.5"))
				Expect(eth.USDValue).To(BeNumerically("~", 3000, 1e-9))

				usdc, _ := snapshot.Balance("USDC")
				Expect(usdc.FormattedBalance).To(Equal("2.5"))
				Expect(usdc.USDValue).To(BeNumerically("~", 2.5, 1e-9))

				Expect(snapshot.TotalUSD).To(BeNumerically("~", 3002.5, 1e-9))
				Expect(snapshot.Error).To(BeEmpty())
				Expect(fetcher.Latest()).To(Equal(snapshot))
			})

			It("should request each price id once", func() {
				Expect(prices.GetPricesCallCount()).To(Equal(1))
				Expect(prices.GetPricesArgsForCall(0)).To(ConsistOf("ethereum", "usd-coin"))
			})

			It("should not refetch when the target is unchanged", func() {
				_, err := fetcher.SetTarget(ctx, accountAddr, entity.NetworkBase)
				Expect(err).NotTo(HaveOccurred())
				Expect(balances.GetBalancesCallCount()).To(Equal(1))
			})
		})

		When("the price lookup fails", func() {
			BeforeEach(func() {
				balances.GetBalancesReturns(baseEntries(), nil)
				prices.GetPricesReturns(nil, testErr)
			})

			JustBeforeEach(func() {
				snapshot, err = fetcher.SetTarget(ctx, accountAddr, entity.NetworkBase)
			})

			It("should keep balances without USD values", func() {
				Expect(err).NotTo(HaveOccurred())
				eth, _ := snapshot.Balance("ETH")
				Expect(eth.FormattedBalance).To(Equal("1.5"))
				Expect(eth.PriceUSD).To(BeNil())
				Expect(eth.USDValue).To(BeZero())
				Expect(snapshot.TotalUSD).To(BeZero())
				Expect(log.Messages("warn")).NotTo(BeEmpty())
			})
		})

		When("the balance lookup fails", func() {
			BeforeEach(func() {
				balances.GetBalancesReturns(nil, testErr)
				prices.GetPricesReturns(map[string]*float64{"ethereum": ptr(2000.0)}, nil)
			})

			JustBeforeEach(func() {
				snapshot, err = fetcher.SetTarget(ctx, accountAddr, entity.NetworkBase)
			})

			It("should return zero balances and the error", func() {
				Expect(err).To(MatchError(testErr))
				Expect(snapshot.Error).To(ContainSubstring("upstream down"))
				Expect(snapshot.Balances).To(HaveLen(2))
				for _, b := range snapshot.Balances {
					Expect(b.FormattedBalance).To(Equal("0"))
					Expect(b.USDValue).To(BeZero())
				}
			})
		})

		When("no account is connected", func() {
			JustBeforeEach(func() {
				snapshot, err = fetcher.SetTarget(ctx, "", entity.NetworkBaseSepolia)
			})

			It("should produce zeros without calling the balance source", func() {
				Expect(err).NotTo(HaveOccurred())
				Expect(balances.GetBalancesCallCount()).To(Equal(0))
				Expect(snapshot.Network).To(Equal(entity.NetworkBaseSepolia))
				Expect(snapshot.Balances).To(HaveLen(2))
			})
		})
	})

	When("an older fetch finishes after a newer one", func() {
		const otherAddr = "0x2222222222222222222222222222222222222222"

		var (
			release chan struct{}
			done    chan struct{}
		)

		BeforeEach(func() {
			release = make(chan struct{})
			done = make(chan struct{})
			balances.Stub = func(_ context.Context, address string, _ entity.Network) ([]entity.BalanceLookupEntry, error) {
				if address == accountAddr {
					<-release
					return baseEntries(), nil
				}
				return nil, nil
			}
		})

		It("should discard the stale result", func() {
			go func() {
				defer GinkgoRecover()
				defer close(done)
				_, _ = fetcher.SetTarget(ctx, accountAddr, entity.NetworkBase)
			}()
			Eventually(balances.GetBalancesCallCount).Should(Equal(1))

			latest, err := fetcher.SetTarget(ctx, otherAddr, entity.NetworkBase)
			Expect(err).NotTo(HaveOccurred())
			Expect(latest.Generation).To(Equal(uint64(2)))

			close(release)
			Eventually(done).Should(BeClosed())

			Expect(fetcher.Latest().Address).To(Equal(otherAddr))
			Expect(fetcher.Latest().Generation).To(Equal(uint64(2)))
			eth, _ := fetcher.Latest().Balance("ETH")
			Expect(eth.FormattedBalance).To(Equal("0"))
		})
	})

	Describe("MergeBalances", func() {
		var tokens []entity.TokenInfo

		BeforeEach(func() {
			tokens, _ = newTokens().GetTokens(entity.NetworkBase)
		})

		It("should prefer the decimals reported by the source", func() {
			entries := []entity.BalanceLookupEntry{{
				Token:  entity.BalanceLookupToken{ContractAddress: usdcBase},
				Amount: entity.BalanceLookupAmount{Amount: "250000000", Decimals: ptr(uint8(8))},
			}}
			merged := service.MergeBalances(tokens, entries, nil, log)
			Expect(merged[1].FormattedBalance).To(Equal("2.5"))
			Expect(merged[1].RawBalance).To(Equal(big.NewInt(250000000)))
		})

		It("should truncate the display balance", func() {
			entries := []entity.BalanceLookupEntry{{
				Token:  entity.BalanceLookupToken{ContractAddress: entity.NativeTokenAddress},
				Amount: entity.BalanceLookupAmount{Amount: "1123456789000000000"},
			}}
			merged := service.MergeBalances(tokens, entries, nil, log)
			Expect(merged[0].FormattedBalance).To(Equal("1.123456789"))
			Expect(merged[0].DisplayBalance).To(Equal("1.123456"))
		})

		It("should not match the native sentinel case-insensitively", func() {
			entries := []entity.BalanceLookupEntry{{
				Token:  entity.BalanceLookupToken{ContractAddress: "0xeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeee"},
				Amount: entity.BalanceLookupAmount{Amount: "1"},
			}}
			merged := service.MergeBalances(tokens, entries, nil, log)
			Expect(merged[0].FormattedBalance).To(Equal("0"))
		})

		It("should zero malformed amounts", func() {
			entries := []entity.BalanceLookupEntry{{
				Token:  entity.BalanceLookupToken{ContractAddress: usdcBase},
				Amount: entity.BalanceLookupAmount{Amount: "12.5"},
			}}
			merged := service.MergeBalances(tokens, entries, nil, log)
			Expect(merged[1].FormattedBalance).To(Equal("0"))
			Expect(log.Messages("warn")).To(HaveLen(1))
		})
	})
})
