package httpclient_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"time"

	"smartaccount_playground/internal/domain/entity"
	"smartaccount_playground/internal/infrastructure/httpclient"

	jsoniter "github.com/json-iterator/go"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"
)

var _ = Describe("BalanceAPIClient", func() {
	var (
		server   *httptest.Server
		handler  http.HandlerFunc
		client   *httpclient.BalanceAPIClient
		lastBody map[string]any
		entries  []entity.BalanceLookupEntry
		err      error
	)

	BeforeEach(func() {
		lastBody = nil
		handler = func(w http.ResponseWriter, r *http.Request) {
			defer GinkgoRecover()
			Expect(r.Method).To(Equal(http.MethodPost))
			Expect(r.URL.Path).To(Equal("/api/balances"))
			raw, _ := io.ReadAll(r.Body)
			Expect(jsoniter.Unmarshal(raw, &lastBody)).To(Succeed())

			w.Header().Set("Content-Type", "application/json")
			_, _ = io.WriteString(w, `{"balances":[
				{"token":{"contractAddress":"0xEeeeeEeeeEeEeeEeEeEeeEEEeeeeEeeeeeeeEEeE","symbol":"ETH","name":"Ether","decimals":18},
				 "amount":{"amount":"1000000000000000000","decimals":18}}
			]}`)
		}
	})

	JustBeforeEach(func() {
		server = httptest.NewServer(handler)
		DeferCleanup(server.Close)
		client = httpclient.NewBalanceAPIClient(server.URL+"/", time.Second, 100, 1, zap.NewNop())
		entries, err = client.GetBalances(context.Background(), "0x1111111111111111111111111111111111111111", entity.NetworkBase)
	})

	It("should post the address and network", func() {
		Expect(err).NotTo(HaveOccurred())
		Expect(lastBody).To(HaveKeyWithValue("address", "0x1111111111111111111111111111111111111111"))
		Expect(lastBody).To(HaveKeyWithValue("network", "base"))
	})

	It("should decode the balances", func() {
		Expect(entries).To(HaveLen(1))
		Expect(entries[0].Token.ContractAddress).To(Equal(entity.NativeTokenAddress))
		Expect(entries[0].Amount.Amount).To(Equal("1000000000000000000"))
		Expect(*entries[0].Amount.Decimals).To(Equal(uint8(18)))
	})

	When("the service fails", func() {
		BeforeEach(func() {
			handler = func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, "boom", http.StatusInternalServerError)
			}
		})

		It("should return an error", func() {
			Expect(err).To(MatchError(httpclient.ErrUnexpectedStatus))
			Expect(entries).To(BeNil())
		})
	})

	When("the body is not json", func() {
		BeforeEach(func() {
			handler = func(w http.ResponseWriter, _ *http.Request) {
				_, _ = io.WriteString(w, "<html>")
			}
		})

		It("should return a decode error", func() {
			Expect(err).To(MatchError(ContainSubstring("failed to decode")))
		})
	})

	It("should honour a cancelled context", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := client.GetBalances(ctx, "0x1111111111111111111111111111111111111111", entity.NetworkBase)
		Expect(err).To(HaveOccurred())
	})
})
