package handlers

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"rotation-backtest/internal/api/models"
	"rotation-backtest/internal/config"
)

// PresetHandler serves the instruments presets
type PresetHandler struct {
	presetDir string
	log       zerolog.Logger
}

func NewPresetHandler(presetDir string, log zerolog.Logger) *PresetHandler {
	return &PresetHandler{presetDir: presetDir, log: log}
}

// ListPresets handles GET /api/v1/presets
func (h *PresetHandler) ListPresets(c *gin.Context) {
	presets, err := config.ListPresets(h.presetDir)
	if err != nil {
		if os.IsNotExist(err) {
			h.log.Warn().Str("dir", h.presetDir).Msg("preset directory not found")
			c.JSON(http.StatusOK, gin.H{"presets": []models.PresetInfo{}})
			return
		}
		writeError(c, http.StatusInternalServerError, "PRESETS_LOAD_ERROR", err, nil)
		return
	}

	out := make([]models.PresetInfo, len(presets))
	for i, p := range presets {
		out[i] = models.PresetInfo{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Instruments: p.Data.Instruments(),
		}
	}
	c.JSON(http.StatusOK, gin.H{"presets": out})
}
