package restapi

import (
	"context"
	"net/http"
	"strconv"

	"smartaccount_playground/internal/app/port"
	"smartaccount_playground/internal/domain/entity"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// PlaygroundHandler serves the call batch pipeline.
type PlaygroundHandler struct {
	playground port.PlaygroundService
	balances   port.BalanceService
	refresh    *rate.Limiter
	logger     *zap.Logger
}

func NewPlaygroundHandler(playground port.PlaygroundService, balances port.BalanceService, refresh *rate.Limiter, logger *zap.Logger) *PlaygroundHandler {
	return &PlaygroundHandler{
		playground: playground,
		balances:   balances,
		refresh:    refresh,
		logger:     logger.Named("PlaygroundHandler"),
	}
}

type updateEntryRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

type compileRequest struct {
	Mode    entity.CallMode    `json:"mode" binding:"required"`
	Entries []entity.CallEntry `json:"entries"`
}

type resetRequest struct {
	Mode entity.CallMode `json:"mode" binding:"required"`
}

type validateResponse struct {
	Valid   bool   `json:"valid"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message,omitempty"`
}

type accountResponse struct {
	SignedIn     bool                 `json:"signedIn"`
	Address      string               `json:"address,omitempty"`
	ShortAddress string               `json:"shortAddress,omitempty"`
	SmartAccount *entity.SmartAccount `json:"smartAccount,omitempty"`
}

func (h *PlaygroundHandler) Networks(c *gin.Context) {
	respond(c, h.playground.Networks())
}

func (h *PlaygroundHandler) Tokens(c *gin.Context) {
	network, err := entity.ParseNetwork(c.Param("network"))
	if err != nil {
		fail(c, err)
		return
	}
	tokens, err := h.playground.Tokens(network)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, tokens)
}

func (h *PlaygroundHandler) GetSettings(c *gin.Context) {
	settings, err := h.playground.Settings()
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, settings)
}

func (h *PlaygroundHandler) UpdateSettings(c *gin.Context) {
	var update entity.SettingsUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		badRequest(c, "invalid settings body")
		return
	}
	settings, err := h.playground.UpdateSettings(c.Request.Context(), update)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, settings)
}

func (h *PlaygroundHandler) Account(c *gin.Context) {
	account, err := h.playground.Account(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	resp := accountResponse{}
	if account != nil {
		addr := account.Address.Hex()
		resp = accountResponse{SignedIn: true, Address: addr, ShortAddress: entity.ShortAddress(addr), SmartAccount: account}
	}
	respond(c, resp)
}

func (h *PlaygroundHandler) SignOut(c *gin.Context) {
	if err := h.playground.SignOut(c.Request.Context()); err != nil {
		fail(c, err)
		return
	}
	respond(c, accountResponse{})
}

func (h *PlaygroundHandler) Draft(c *gin.Context) {
	mode, ok := modeParam(c)
	if !ok {
		return
	}
	respond(c, h.playground.Draft(mode))
}

func (h *PlaygroundHandler) AddEntry(c *gin.Context) {
	mode, ok := modeParam(c)
	if !ok {
		return
	}
	respond(c, h.playground.AddEntry(mode))
}

func (h *PlaygroundHandler) UpdateEntry(c *gin.Context) {
	mode, index, ok := modeAndIndex(c)
	if !ok {
		return
	}
	var req updateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "field is required")
		return
	}
	entries, err := h.playground.UpdateEntry(mode, index, req.Field, req.Value)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, entries)
}

func (h *PlaygroundHandler) RemoveEntry(c *gin.Context) {
	mode, index, ok := modeAndIndex(c)
	if !ok {
		return
	}
	entries, err := h.playground.RemoveEntry(mode, index)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, entries)
}

func (h *PlaygroundHandler) FillMax(c *gin.Context) {
	mode, index, ok := modeAndIndex(c)
	if !ok {
		return
	}
	entries, err := h.playground.FillMaxAmount(mode, index)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, entries)
}

func (h *PlaygroundHandler) LoadPreset(c *gin.Context) {
	mode, ok := modeParam(c)
	if !ok {
		return
	}
	entries, err := h.playground.LoadPreset(mode, c.Param("preset"))
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, entries)
}

// Validate always answers 200; the body says whether the draft is valid.
func (h *PlaygroundHandler) Validate(c *gin.Context) {
	mode, ok := modeParam(c)
	if !ok {
		return
	}
	if verr := h.playground.ValidateDraft(mode); verr != nil {
		respond(c, validateResponse{Field: verr.Field, Message: verr.Message})
		return
	}
	respond(c, validateResponse{Valid: true})
}

func (h *PlaygroundHandler) CompileDraft(c *gin.Context) {
	mode, ok := modeParam(c)
	if !ok {
		return
	}
	preview, err := h.playground.CompileDraft(mode)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, preview)
}

func (h *PlaygroundHandler) CompileCalls(c *gin.Context) {
	var req compileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "mode and entries are required")
		return
	}
	preview, err := h.playground.CompileEntries(req.Mode, req.Entries)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, preview)
}

// Submit blocks until the wallet answers. A wallet failure is a 200 with status "failed".
// A client that disconnects does not cancel the submission; the orchestrator timeout still applies.
func (h *PlaygroundHandler) Submit(c *gin.Context) {
	mode, ok := modeParam(c)
	if !ok {
		return
	}
	result, err := h.playground.SubmitDraft(context.WithoutCancel(c.Request.Context()), mode)
	if err != nil {
		fail(c, err)
		return
	}
	h.logger.Info("Submission finished",
		zap.String("id", result.ID),
		zap.String("status", string(result.Status)),
		zap.String("tx", result.TransactionID),
	)
	respond(c, result)
}

func (h *PlaygroundHandler) Submission(c *gin.Context) {
	respond(c, h.playground.Submission())
}

func (h *PlaygroundHandler) ResetSubmission(c *gin.Context) {
	var req resetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "mode is required")
		return
	}
	if err := h.playground.ResetSubmission(req.Mode); err != nil {
		fail(c, err)
		return
	}
	respond(c, h.playground.Submission())
}

func (h *PlaygroundHandler) Balances(c *gin.Context) {
	respond(c, h.balances.Latest())
}

// RefreshBalances returns the snapshot even when the balance source failed; the error is inside it.
func (h *PlaygroundHandler) RefreshBalances(c *gin.Context) {
	if h.refresh != nil && !h.refresh.Allow() {
		c.AbortWithStatusJSON(http.StatusTooManyRequests, errorResponse{Error: "Refreshing too often, try again shortly"})
		return
	}
	snapshot, err := h.balances.Refresh(c.Request.Context())
	if err != nil {
		h.logger.Warn("Manual balance refresh failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, dataResponse{Data: snapshot})
		return
	}
	respond(c, snapshot)
}

func modeParam(c *gin.Context) (entity.CallMode, bool) {
	mode, err := entity.ParseCallMode(c.Param("mode"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, errorResponse{Error: err.Error()})
		return "", false
	}
	return mode, true
}

func modeAndIndex(c *gin.Context) (entity.CallMode, int, bool) {
	mode, ok := modeParam(c)
	if !ok {
		return "", 0, false
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		badRequest(c, "index must be a non-negative integer")
		return "", 0, false
	}
	return mode, index, true
}
