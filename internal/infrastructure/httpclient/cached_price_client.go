package httpclient

import (
	"context"
	"time"

	"smartaccount_playground/internal/app/port"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// CachedPriceClient keeps known prices for ttl. Unknown prices are not cached.
type CachedPriceClient struct {
	next   port.PriceClient
	cache  *cache.Cache
	logger *zap.Logger
}

var _ port.PriceClient = (*CachedPriceClient)(nil)

func NewCachedPriceClient(next port.PriceClient, ttl time.Duration, logger *zap.Logger) *CachedPriceClient {
	return &CachedPriceClient{
		next:   next,
		cache:  cache.New(ttl, 2*ttl),
		logger: logger.Named("CachedPriceClient"),
	}
}

func (c *CachedPriceClient) GetPrices(ctx context.Context, priceIDs []string) (map[string]*float64, error) {
	prices := make(map[string]*float64, len(priceIDs))
	var misses []string
	for _, id := range priceIDs {
		if v, ok := c.cache.Get(id); ok {
			p := v.(float64)
			prices[id] = &p
			continue
		}
		misses = append(misses, id)
	}
	if len(misses) == 0 {
		return prices, nil
	}

	fetched, err := c.next.GetPrices(ctx, misses)
	if err != nil {
		return nil, err
	}
	for _, id := range misses {
		p := fetched[id]
		prices[id] = p
		if p != nil {
			c.cache.SetDefault(id, *p)
		}
	}
	c.logger.Debug("Price cache", zap.Int("hits", len(priceIDs)-len(misses)), zap.Int("misses", len(misses)))
	return prices, nil
}
