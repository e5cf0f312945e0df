package httpclient

import (
	"context"
	"fmt"
	"time"

	"smartaccount_playground/internal/app/port"
	"smartaccount_playground/internal/domain/entity"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const balancesPath = "/api/balances"

type balancesRequest struct {
	Address string         `json:"address"`
	Network entity.Network `json:"network"`
}

type balancesResponse struct {
	Balances []entity.BalanceLookupEntry `json:"balances"`
}

// BalanceAPIClient reads balances from the hosted balance service.
type BalanceAPIClient struct {
	poster  jsonPoster
	limiter *rate.Limiter
	logger  *zap.Logger
}

var _ port.BalanceClient = (*BalanceAPIClient)(nil)

// NewBalanceAPIClient creates a client limited to ratePerSecond requests with the given burst.
func NewBalanceAPIClient(baseURL string, timeout time.Duration, ratePerSecond, burst int, logger *zap.Logger) *BalanceAPIClient {
	named := logger.Named("BalanceAPIClient")
	limit := rate.Inf
	if ratePerSecond > 0 {
		limit = rate.Limit(ratePerSecond)
	}
	if burst <= 0 {
		burst = 1
	}
	return &BalanceAPIClient{
		poster:  newJSONPoster(baseURL, timeout, named),
		limiter: rate.NewLimiter(limit, burst),
		logger:  named,
	}
}

func (c *BalanceAPIClient) GetBalances(ctx context.Context, address string, network entity.Network) ([]entity.BalanceLookupEntry, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	c.logger.Debug("Requesting balances", zap.String("address", entity.ShortAddress(address)), zap.String("network", network.String()))

	var resp balancesResponse
	if err := c.poster.post(ctx, balancesPath, balancesRequest{Address: address, Network: network}, &resp); err != nil {
		return nil, err
	}
	return resp.Balances, nil
}
