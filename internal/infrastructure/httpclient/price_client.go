package httpclient

import (
	"context"
	"time"

	"smartaccount_playground/internal/app/port"
	"smartaccount_playground/internal/pkg/utils"

	"go.uber.org/zap"
)

const pricesPath = "/api/prices"

type pricesRequest struct {
	TokenIDs []string `json:"tokenIds"`
}

type pricesResponse struct {
	Prices map[string]*float64 `json:"prices"`
}

// PriceAPIClient resolves price ids through the prices endpoint, in batches.
type PriceAPIClient struct {
	poster           jsonPoster
	maxIDsPerRequest int
	logger           *zap.Logger
}

var _ port.PriceClient = (*PriceAPIClient)(nil)

func NewPriceAPIClient(baseURL string, timeout time.Duration, maxIDsPerRequest int, logger *zap.Logger) *PriceAPIClient {
	named := logger.Named("PriceAPIClient")
	return &PriceAPIClient{
		poster:           newJSONPoster(baseURL, timeout, named),
		maxIDsPerRequest: maxIDsPerRequest,
		logger:           named,
	}
}

// GetPrices fails as a whole if any batch fails.
func (c *PriceAPIClient) GetPrices(ctx context.Context, priceIDs []string) (map[string]*float64, error) {
	ids := utils.UniqueStrings(priceIDs)
	prices := make(map[string]*float64, len(ids))

	for _, batch := range utils.BatchStrings(ids, c.maxIDsPerRequest) {
		var resp pricesResponse
		if err := c.poster.post(ctx, pricesPath, pricesRequest{TokenIDs: batch}, &resp); err != nil {
			return nil, err
		}
		for _, id := range batch {
			prices[id] = resp.Prices[id]
		}
	}

	c.logger.Debug("Resolved prices", zap.Int("requested", len(ids)))
	return prices, nil
}
