package httpclient_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"smartaccount_playground/internal/app/port/fake"
	"smartaccount_playground/internal/infrastructure/httpclient"

	jsoniter "github.com/json-iterator/go"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"
)

var _ = Describe("PriceAPIClient", func() {
	var (
		server  *httptest.Server
		mu      sync.Mutex
		batches [][]string
		client  *httpclient.PriceAPIClient
	)

	BeforeEach(func() {
		batches = nil
		server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer GinkgoRecover()
			var req struct {
				TokenIDs []string `json:"tokenIds"`
			}
			raw, _ := io.ReadAll(r.Body)
			Expect(jsoniter.Unmarshal(raw, &req)).To(Succeed())

			mu.Lock()
			batches = append(batches, req.TokenIDs)
			mu.Unlock()

			prices := map[string]any{}
			for _, id := range req.TokenIDs {
				if id == "ethereum" {
					prices[id] = 3200.0
				} else {
					prices[id] = nil
				}
			}
			out, _ := jsoniter.Marshal(map[string]any{"prices": prices})
			_, _ = w.Write(out)
		}))
		DeferCleanup(server.Close)
		client = httpclient.NewPriceAPIClient(server.URL, time.Second, 2, zap.NewNop())
	})

	It("should split ids into batches and merge the answers", func() {
		prices, err := client.GetPrices(context.Background(), []string{"ethereum", "usd-coin", "ethereum", "dai"})
		Expect(err).NotTo(HaveOccurred())
		Expect(batches).To(Equal([][]string{{"ethereum", "usd-coin"}, {"dai"}}))

		Expect(prices).To(HaveLen(3))
		Expect(*prices["ethereum"]).To(Equal(3200.0))
		Expect(prices["usd-coin"]).To(BeNil())
	})

	It("should send nothing for an empty list", func() {
		prices, err := client.GetPrices(context.Background(), nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(prices).To(BeEmpty())
		Expect(batches).To(BeEmpty())
	})
})

var _ = Describe("CachedPriceClient", func() {
	var (
		next   *fake.PriceClient
		cached *httpclient.CachedPriceClient
		eth    float64
	)

	BeforeEach(func() {
		next = new(fake.PriceClient)
		eth = 3200
		next.GetPricesReturns(map[string]*float64{"ethereum": &eth, "zora": nil}, nil)
		cached = httpclient.NewCachedPriceClient(next, time.Minute, zap.NewNop())
	})

	It("should serve known prices from the cache", func() {
		_, err := cached.GetPrices(context.Background(), []string{"ethereum", "zora"})
		Expect(err).NotTo(HaveOccurred())

		prices, err := cached.GetPrices(context.Background(), []string{"ethereum", "zora"})
		Expect(err).NotTo(HaveOccurred())
		Expect(*prices["ethereum"]).To(Equal(3200.0))
		Expect(prices).To(HaveKey("zora"))

		Expect(next.GetPricesCallCount()).To(Equal(2))
		Expect(next.GetPricesArgsForCall(1)).To(Equal([]string{"zora"}))
	})

	It("should not call upstream when everything is cached", func() {
		_, _ = cached.GetPrices(context.Background(), []string{"ethereum"})
		_, _ = cached.GetPrices(context.Background(), []string{"ethereum"})
		Expect(next.GetPricesCallCount()).To(Equal(1))
	})

	It("should pass upstream errors through", func() {
		next.GetPricesReturns(nil, errors.New("rate limited"))
		_, err := cached.GetPrices(context.Background(), []string{"ethereum"})
		Expect(err).To(MatchError("rate limited"))
	})
})
