package restapi

import (
	"errors"
	"net/http"

	"smartaccount_playground/internal/app/service"
	"smartaccount_playground/internal/domain/entity"

	"github.com/gin-gonic/gin"
)

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

type dataResponse struct {
	Data any `json:"data"`
}

func respond(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dataResponse{Data: data})
}

// statusFor maps service errors onto HTTP statuses.
func statusFor(err error) int {
	var (
		verr *entity.ValidationError
		cerr *service.CompileError
	)
	switch {
	case errors.As(err, &verr), errors.As(err, &cerr):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrSubmissionPending):
		return http.StatusConflict
	case errors.Is(err, service.ErrNoAccount):
		return http.StatusPreconditionFailed
	case errors.Is(err, service.ErrUnknownMode),
		errors.Is(err, service.ErrUnknownPreset),
		errors.Is(err, entity.ErrUnknownNetwork):
		return http.StatusNotFound
	case errors.Is(err, service.ErrUnsupportedForMode),
		errors.Is(err, service.ErrEntryIndex),
		errors.Is(err, service.ErrUnknownField),
		errors.Is(err, service.ErrLastEntry),
		errors.Is(err, service.ErrEmptyBatch),
		errors.Is(err, service.ErrUnknownToken):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrBalanceUnavailable):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func fail(c *gin.Context, err error) {
	_ = c.Error(err)
	resp := errorResponse{Error: err.Error()}
	var verr *entity.ValidationError
	if errors.As(err, &verr) {
		resp = errorResponse{Error: verr.Message, Field: verr.Field}
	}
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		resp = errorResponse{Error: "Something went wrong"}
	}
	c.AbortWithStatusJSON(status, resp)
}

func badRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: msg})
}
