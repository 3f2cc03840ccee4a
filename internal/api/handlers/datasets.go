package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"rotation-backtest/internal/api/models"
	"rotation-backtest/internal/data"
)

// DatasetHandler describes the index files available on the server
type DatasetHandler struct {
	dataDir string
}

func NewDatasetHandler(dataDir string) *DatasetHandler {
	return &DatasetHandler{dataDir: dataDir}
}

// ListDatasets handles GET /api/v1/datasets
func (h *DatasetHandler) ListDatasets(c *gin.Context) {
	entries, err := os.ReadDir(h.dataDir)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "DATASETS_LOAD_ERROR", err, nil)
		return
	}

	datasets := []models.DatasetInfo{}
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		info := models.DatasetInfo{
			ID:   strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())),
			File: e.Name(),
		}
		// A file that does not parse is still listed, with the reason.
		pts, err := data.LoadIndexCSV(filepath.Join(h.dataDir, e.Name()), "")
		if err != nil {
			info.Error = err.Error()
		} else {
			info.Observations = len(pts)
			for i, p := range pts {
				if i == 0 || p.Date.Before(info.FirstDate) {
					info.FirstDate = p.Date
				}
				if i == 0 || p.Date.After(info.LastDate) {
					info.LastDate = p.Date
				}
			}
		}
		datasets = append(datasets, info)
	}
	c.JSON(http.StatusOK, gin.H{"datasets": datasets})
}
