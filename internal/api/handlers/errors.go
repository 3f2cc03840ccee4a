package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"rotation-backtest/internal/analysis"
	"rotation-backtest/internal/api/models"
	"rotation-backtest/internal/model"
)

const dateLayout = "2006-01-02"

func writeError(c *gin.Context, status int, code string, err error, details map[string]interface{}) {
	_ = c.Error(err)
	c.JSON(status, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    code,
			Message: err.Error(),
			Details: details,
		},
	})
}

// writeRunError maps engine and summarizer failures onto HTTP responses.
func writeRunError(c *gin.Context, err error) {
	var (
		insufficient *model.InsufficientDataError
		nonPositive  *model.NonPositivePriceError
		degenerate   *model.DegenerateRangeError
		misaligned   *model.MisalignedSeriesError
	)
	switch {
	case errors.As(err, &insufficient):
		writeError(c, http.StatusUnprocessableEntity, "INSUFFICIENT_DATA", err, map[string]interface{}{
			"have": insufficient.Have,
			"need": insufficient.Need,
		})
	case errors.As(err, &nonPositive):
		writeError(c, http.StatusUnprocessableEntity, "NON_POSITIVE_PRICE", err, map[string]interface{}{
			"row":        nonPositive.Index,
			"date":       nonPositive.Date.Format(dateLayout),
			"instrument": string(nonPositive.Instrument),
			"price":      nonPositive.Price,
		})
	case errors.As(err, &degenerate):
		writeError(c, http.StatusUnprocessableEntity, "DEGENERATE_RANGE", err, map[string]interface{}{
			"start": degenerate.Start.Format(dateLayout),
			"end":   degenerate.End.Format(dateLayout),
		})
	case errors.As(err, &misaligned):
		writeError(c, http.StatusUnprocessableEntity, "MISALIGNED_SERIES", err, map[string]interface{}{
			"row":    misaligned.Index,
			"date":   misaligned.Date.Format(dateLayout),
			"reason": misaligned.Reason,
		})
	case errors.Is(err, model.ErrNonPositivePrice):
		writeError(c, http.StatusUnprocessableEntity, "NON_POSITIVE_PRICE", err, nil)
	case errors.Is(err, model.ErrInsufficientData):
		writeError(c, http.StatusUnprocessableEntity, "INSUFFICIENT_DATA", err, nil)
	case errors.Is(err, model.ErrDegenerateRange):
		writeError(c, http.StatusUnprocessableEntity, "DEGENERATE_RANGE", err, nil)
	case errors.Is(err, analysis.ErrNonPositiveValue):
		writeError(c, http.StatusUnprocessableEntity, "NON_POSITIVE_VALUE", err, nil)
	default:
		writeError(c, http.StatusInternalServerError, "BACKTEST_ERROR", err, nil)
	}
}
