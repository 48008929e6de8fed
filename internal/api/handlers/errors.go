package handlers

import (
	"errors"
	"net/http"
	"os"

	"basket-backtest/internal/api/models"
	"basket-backtest/internal/data"
	"basket-backtest/internal/model"

	"github.com/gin-gonic/gin"
)

// errorStatus maps an error to an HTTP status and error code.
func errorStatus(err error) (int, string) {
	var fe *data.FetchError
	switch {
	case errors.As(err, &fe):
		switch fe.StatusCode {
		case http.StatusForbidden, http.StatusUnauthorized:
			return http.StatusUnauthorized, fe.Code
		case http.StatusTooManyRequests:
			return http.StatusTooManyRequests, fe.Code
		default:
			return http.StatusBadRequest, fe.Code
		}
	case errors.Is(err, errAssetNotFound):
		return http.StatusNotFound, "ASSET_NOT_FOUND"
	case errors.Is(err, model.ErrNoData):
		return http.StatusUnprocessableEntity, "NO_DATA"
	case errors.Is(err, model.ErrInvalidInput):
		return http.StatusBadRequest, "INVALID_INPUT"
	case errors.Is(err, os.ErrNotExist):
		return http.StatusNotFound, "DATA_NOT_FOUND"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR"
	}
}

func writeError(c *gin.Context, err error) {
	status, code := errorStatus(err)
	detail := models.ErrorDetail{Code: code, Message: err.Error()}

	var fe *data.FetchError
	switch {
	case errors.As(err, &fe):
		detail.Details = map[string]interface{}{
			"status_code": fe.StatusCode,
			"retry_after": fe.RetryAfter,
		}
	case errors.Is(err, model.ErrNoData):
		detail.Message = "no data for selected range"
	case status == http.StatusInternalServerError:
		_ = c.Error(err)
		detail.Message = "An unexpected error occurred"
	}
	c.JSON(status, models.ErrorResponse{Error: detail})
}

func writeRequestError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    "INVALID_REQUEST",
			Message: err.Error(),
			Details: validationDetails(err),
		},
	})
}
