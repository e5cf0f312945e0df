package restapi

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// mockPrices is the demo price table. Unknown ids resolve to null.
var mockPrices = map[string]float64{
	"ethereum":             3200,
	"usd-coin":             1.00,
	"weth":                 3200,
	"dai":                  1.00,
	"coinbase-wrapped-btc": 95000,
	"tether":               1.00,
	"zora":                 0.15,
	"layerzero":            4.50,
	"pancakeswap-token":    2.80,
}

type mockPricesRequest struct {
	TokenIDs *[]string `json:"tokenIds"`
}

type mockPricesResponse struct {
	Prices map[string]*float64 `json:"prices"`
}

// MockPrices answers the prices endpoint from a fixed table.
func MockPrices(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse{Error: "Failed to fetch prices"})
		return
	}
	var req mockPricesRequest
	if err := json.Unmarshal(body, &req); err != nil || req.TokenIDs == nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: "Invalid tokenIds array"})
		return
	}

	prices := make(map[string]*float64, len(*req.TokenIDs))
	for _, id := range *req.TokenIDs {
		if p, ok := mockPrices[id]; ok {
			prices[id] = &p
		} else {
			prices[id] = nil
		}
	}
	c.JSON(http.StatusOK, mockPricesResponse{Prices: prices})
}
