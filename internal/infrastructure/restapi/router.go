package restapi

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// RouterConfig carries the router options that come from config.
type RouterConfig struct {
	AllowedOrigins []string
	MockPrices     bool
}

// SetupRouter builds the gin engine with middleware and every route.
func SetupRouter(cfg RouterConfig, handler *PlaygroundHandler, logger *zap.Logger) *gin.Engine {
	router := gin.New()

	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) == 0 || (len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", requestIDHeader}
	router.Use(cors.New(corsConfig))

	router.Use(ZapLogger(logger))
	router.Use(Recovery(logger))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/networks", handler.Networks)
		v1.GET("/networks/:network/tokens", handler.Tokens)

		v1.GET("/settings", handler.GetSettings)
		v1.PUT("/settings", handler.UpdateSettings)

		v1.GET("/account", handler.Account)
		v1.POST("/account/sign-out", handler.SignOut)

		drafts := v1.Group("/drafts/:mode")
		drafts.GET("", handler.Draft)
		drafts.POST("/entries", handler.AddEntry)
		drafts.PATCH("/entries/:index", handler.UpdateEntry)
		drafts.DELETE("/entries/:index", handler.RemoveEntry)
		drafts.POST("/entries/:index/max", handler.FillMax)
		drafts.POST("/presets/:preset", handler.LoadPreset)
		drafts.POST("/validate", handler.Validate)
		drafts.POST("/compile", handler.CompileDraft)
		drafts.POST("/submit", handler.Submit)

		v1.GET("/submission", handler.Submission)
		v1.POST("/submission/reset", handler.ResetSubmission)

		v1.POST("/calls/compile", handler.CompileCalls)

		v1.GET("/balances", handler.Balances)
		v1.POST("/balances/refresh", handler.RefreshBalances)
	}

	if cfg.MockPrices {
		router.POST("/api/prices", MockPrices)
	}

	router.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}
