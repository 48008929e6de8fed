package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"

	"basket-backtest/internal/api/models"
	"basket-backtest/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

var errAssetNotFound = errors.New("asset not found")

// AssetHandler serves the asset presets found in one directory. The
// directory is re-read on every request so presets can be edited live.
type AssetHandler struct {
	assetDir string
	logger   zerolog.Logger
}

// NewAssetHandler creates a new asset handler
func NewAssetHandler(dir string, logger zerolog.Logger) *AssetHandler {
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	logger.Info().Str("dir", dir).Msg("using asset directory")
	return &AssetHandler{assetDir: dir, logger: logger}
}

// AssetDir returns the directory presets are read from.
func (h *AssetHandler) AssetDir() string {
	return h.assetDir
}

func (h *AssetHandler) catalog() (*config.Catalog, error) {
	cat, skipped, err := config.LoadCatalog(h.assetDir)
	if err != nil {
		return nil, err
	}
	for _, e := range skipped {
		h.logger.Warn().Err(e).Msg("skipping asset preset")
	}
	return cat, nil
}

// Lookup resolves a preset by ID.
func (h *AssetHandler) Lookup(id string) (config.AssetPreset, error) {
	cat, err := h.catalog()
	if err != nil {
		return config.AssetPreset{}, err
	}
	p, ok := cat.Get(id)
	if !ok {
		return config.AssetPreset{}, fmt.Errorf("%w: %q", errAssetNotFound, id)
	}
	return p, nil
}

// ListAssets handles GET /api/v1/assets
func (h *AssetHandler) ListAssets(c *gin.Context) {
	cat, err := h.catalog()
	if err != nil {
		h.logger.Error().Err(err).Str("dir", h.assetDir).Msg("failed to read asset directory")
		c.JSON(http.StatusOK, gin.H{"assets": []models.AssetInfo{}})
		return
	}
	assets := make([]models.AssetInfo, 0, len(cat.Assets))
	for _, p := range cat.Assets {
		assets = append(assets, assetInfo(p))
	}
	c.JSON(http.StatusOK, gin.H{"assets": assets})
}

// GetAsset handles GET /api/v1/assets/:id
func (h *AssetHandler) GetAsset(c *gin.Context) {
	p, err := h.Lookup(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, assetInfo(p))
}

func assetInfo(p config.AssetPreset) models.AssetInfo {
	source := filepath.Base(p.DataFile)
	if p.DataURL != "" {
		source = p.DataURL
	}
	return models.AssetInfo{
		ID:                p.ID,
		Name:              p.Name,
		Symbol:            p.Symbol,
		Resolution:        p.Resolution,
		Source:            source,
		AssetYieldPercent: p.AssetYieldPercent,
		CashYieldPercent:  p.CashYieldPercent,
	}
}
