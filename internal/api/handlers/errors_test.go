package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"rotation-backtest/internal/analysis"
	"rotation-backtest/internal/api/models"
	"rotation-backtest/internal/model"
)

func TestWriteRunError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	day := time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC)

	_, baselineErr := analysis.BuyAndHold("RUGBITR10Y", 0, 120, 100_000, 1)

	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{
			name:   "typed price error",
			err:    fmt.Errorf("row 4: %w", &model.NonPositivePriceError{Index: 4, Date: day, Instrument: model.RegimeLong, Price: -1}),
			status: http.StatusUnprocessableEntity,
			code:   "NON_POSITIVE_PRICE",
		},
		{
			name:   "baseline price error",
			err:    baselineErr,
			status: http.StatusUnprocessableEntity,
			code:   "NON_POSITIVE_PRICE",
		},
		{
			name:   "insufficient data",
			err:    &model.InsufficientDataError{Have: 3, Need: 91},
			status: http.StatusUnprocessableEntity,
			code:   "INSUFFICIENT_DATA",
		},
		{
			name:   "non-positive value",
			err:    fmt.Errorf("strategy: %w", analysis.ErrNonPositiveValue),
			status: http.StatusUnprocessableEntity,
			code:   "NON_POSITIVE_VALUE",
		},
		{
			name:   "unknown",
			err:    errors.New("boom"),
			status: http.StatusInternalServerError,
			code:   "BACKTEST_ERROR",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err == nil {
				t.Fatal("test error is nil")
			}
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			writeRunError(c, tt.err)

			if w.Code != tt.status {
				t.Fatalf("status = %d, want %d", w.Code, tt.status)
			}
			var resp models.ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Error.Code != tt.code {
				t.Errorf("code = %q, want %q", resp.Error.Code, tt.code)
			}
		})
	}
}
