package service_test

import (
	"context"
	"errors"
	"time"

	"smartaccount_playground/internal/app/port/fake"
	"smartaccount_playground/internal/app/service"
	"smartaccount_playground/internal/domain/entity"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("PlaygroundService", func() {
	var (
		playground *service.PlaygroundService
		accounts   *fake.AccountProvider
		wallet     *fake.WalletCapability
		balances   *fake.BalanceClient
		store      *fake.SettingsStore
		fetcher    *service.BalanceFetcher
		ctx        context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		log := new(fake.Logger)
		tokens := newTokens()
		networks := newNetworks()

		accounts = &fake.AccountProvider{Account: testAccount()}
		wallet = new(fake.WalletCapability)
		wallet.SendUserOperationReturns(entity.UserOperationReceipt{TransactionID: "0xabc"}, nil)
		balances = new(fake.BalanceClient)
		store = new(fake.SettingsStore)

		fetcher = service.NewBalanceFetcher(balances, new(fake.PriceClient), tokens, log, time.Minute)
		playground = service.NewPlaygroundService(
			networks,
			tokens,
			accounts,
			service.NewSettingsService(store, log),
			service.NewSubmissionOrchestrator(wallet, networks, log, time.Second),
			fetcher,
			log,
		)
	})

	Describe("SubmitDraft", func() {
		var (
			result entity.SubmissionResult
			err    error
		)

		JustBeforeEach(func() {
			result, err = playground.SubmitDraft(ctx, entity.CallModeTransfer)
		})

		When("the draft is valid", func() {
			BeforeEach(func() {
				_, err := playground.UpdateEntry(entity.CallModeTransfer, 0, entity.FieldTarget, recipient)
				Expect(err).NotTo(HaveOccurred())
				_, err = playground.UpdateEntry(entity.CallModeTransfer, 0, entity.FieldAmount, "0.01")
				Expect(err).NotTo(HaveOccurred())
			})

			It("should submit with testnet sponsorship", func() {
				Expect(err).NotTo(HaveOccurred())
				Expect(result.Status).To(Equal(entity.SubmissionSuccess))
				Expect(wallet.SendUserOperationCallCount()).To(Equal(1))
				req := wallet.SendUserOperationArgsForCall(0)
				Expect(req.Network).To(Equal(entity.NetworkBaseSepolia))
				Expect(req.Sponsorship).NotTo(BeNil())
				Expect(req.Sponsorship.UseDefaultSponsor).To(BeTrue())
				Expect(playground.Submission()).To(Equal(result))
			})

			It("should clear the draft on reset", func() {
				Expect(playground.ResetSubmission(entity.CallModeTransfer)).To(Succeed())
				Expect(playground.Submission().Status).To(Equal(entity.SubmissionIdle))
				Expect(playground.Draft(entity.CallModeTransfer)).To(Equal([]entity.CallEntry{entity.BlankEntry(entity.CallModeTransfer)}))
			})
		})

		When("validation fails", func() {
			It("should not contact the wallet", func() {
				var verr *entity.ValidationError
				Expect(errors.As(err, &verr)).To(BeTrue())
				Expect(verr.Field).To(Equal("recipient-0-address"))
				Expect(wallet.SendUserOperationCallCount()).To(Equal(0))
			})
		})

		When("the account signed out", func() {
			BeforeEach(func() {
				_, _ = playground.UpdateEntry(entity.CallModeTransfer, 0, entity.FieldTarget, recipient)
				_, _ = playground.UpdateEntry(entity.CallModeTransfer, 0, entity.FieldAmount, "1")
				Expect(playground.SignOut(ctx)).To(Succeed())
			})

			It("should fail with no account", func() {
				Expect(err).To(MatchError(service.ErrNoAccount))
				Expect(wallet.SendUserOperationCallCount()).To(Equal(0))
			})
		})
	})

	Describe("CompileEntries", func() {
		It("should carry the mainnet warning when no paymaster url is set", func() {
			_, err := playground.UpdateSettings(ctx, entity.SettingsUpdate{Network: ptr("base")})
			Expect(err).NotTo(HaveOccurred())

			preview, err := playground.CompileEntries(entity.CallModeDirect, []entity.CallEntry{{Target: recipient, Value: "1", PayloadHex: "0x"}})
			Expect(err).NotTo(HaveOccurred())
			Expect(preview.Network).To(Equal(entity.NetworkBase))
			Expect(preview.Calls).To(HaveLen(1))
			Expect(preview.Sponsorship.Attached()).To(BeFalse())
			Expect(preview.Sponsorship.Warning).To(Equal(service.WarningMissingPaymasterURL))
		})

		It("should reject unknown modes", func() {
			_, err := playground.CompileEntries("batch", nil)
			Expect(err).To(MatchError(service.ErrUnknownMode))
		})
	})

	Describe("UpdateSettings", func() {
		It("should refetch balances for the new network", func() {
			_, err := playground.UpdateSettings(ctx, entity.SettingsUpdate{Network: ptr("base")})
			Expect(err).NotTo(HaveOccurred())
			Expect(balances.GetBalancesCallCount()).To(Equal(1))
			_, network := balances.GetBalancesArgsForCall(0)
			Expect(network).To(Equal(entity.NetworkBase))
			Expect(fetcher.Latest().Network).To(Equal(entity.NetworkBase))
		})
	})

	Describe("FillMaxAmount", func() {
		BeforeEach(func() {
			balances.GetBalancesReturns([]entity.BalanceLookupEntry{{
				Token:  entity.BalanceLookupToken{ContractAddress: usdcSepolia},
				Amount: entity.BalanceLookupAmount{Amount: "12345678"},
			}}, nil)
			Expect(playground.Start(ctx)).To(Succeed())
		})

		It("should copy the full balance into the amount", func() {
			_, err := playground.UpdateEntry(entity.CallModeTransfer, 0, entity.FieldToken, "USDC")
			Expect(err).NotTo(HaveOccurred())

			entries, err := playground.FillMaxAmount(entity.CallModeTransfer, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(entries[0].Amount).To(Equal("12.345678"))
		})

		It("should only apply to transfer mode", func() {
			_, err := playground.FillMaxAmount(entity.CallModeDirect, 0)
			Expect(err).To(MatchError(service.ErrUnsupportedForMode))
		})

		It("should fail when the snapshot is for another network", func() {
			Expect(store.Set(service.KeyNetwork, "base")).To(Succeed())
			_, err := playground.FillMaxAmount(entity.CallModeTransfer, 0)
			Expect(err).To(MatchError(service.ErrBalanceUnavailable))
		})
	})

	Describe("LoadPreset", func() {
		It("should replace the direct draft", func() {
			entries, err := playground.LoadPreset(entity.CallModeDirect, "simple-storage")
			Expect(err).NotTo(HaveOccurred())
			Expect(entries).To(HaveLen(2))
			Expect(playground.Draft(entity.CallModeDirect)).To(Equal(entries))
		})

		It("should refuse transfer mode", func() {
			_, err := playground.LoadPreset(entity.CallModeTransfer, "simple-storage")
			Expect(err).To(MatchError(service.ErrUnsupportedForMode))
		})
	})
})
