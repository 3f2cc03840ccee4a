package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rotation-backtest/internal/api/models"
	"rotation-backtest/internal/model"
	"rotation-backtest/internal/strategy"
)

var strategyDescriptions = map[string]string{
	strategy.MomentumName: "Trailing-trend rotation. Holds the long index while the signal index rose over the lookback window, otherwise the short index.",
}

// StrategyHandler handles strategy-related requests
type StrategyHandler struct {
	registry *strategy.Registry
}

func NewStrategyHandler(registry *strategy.Registry) *StrategyHandler {
	if registry == nil {
		registry = strategy.DefaultRegistry()
	}
	return &StrategyHandler{registry: registry}
}

// ListStrategies handles GET /api/v1/strategies
func (h *StrategyHandler) ListStrategies(c *gin.Context) {
	names := h.registry.List()
	strategies := make([]models.StrategyInfo, 0, len(names))
	for _, name := range names {
		strategies = append(strategies, models.StrategyInfo{
			Name:        name,
			Description: strategyDescriptions[name],
			Parameters:  runParameters(),
		})
	}
	c.JSON(http.StatusOK, gin.H{"strategies": strategies})
}

func runParameters() []models.ParameterInfo {
	return []models.ParameterInfo{
		{
			Name:        "lookback_window",
			Type:        "int",
			Description: "Trading observations between the compared signal values",
			Default:     model.DefaultLookbackWindow,
		},
		{
			Name:        "initial_capital",
			Type:        "float",
			Description: "Capital allocated to the short index on the first row",
			Default:     float64(model.DefaultInitialCapital),
		},
		{
			Name:        "warmup",
			Type:        "string",
			Description: "Rows before the first full lookback: 'hold_short' simulates them holding the short index, 'exclude' drops them",
			Default:     string(model.WarmupHoldShort),
		},
	}
}
