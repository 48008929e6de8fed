package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"basket-backtest/internal/api/models"
	"basket-backtest/internal/backtest"
	"basket-backtest/internal/config"
	"basket-backtest/internal/data"
	"basket-backtest/internal/metrics"
	"basket-backtest/internal/model"
	"basket-backtest/internal/report"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// SeriesLoader loads a price series.
type SeriesLoader interface {
	Load(ctx context.Context, src data.Source) (model.Series, error)
}

// AssetLookup resolves asset presets by ID.
type AssetLookup interface {
	Lookup(id string) (config.AssetPreset, error)
}

// BacktestHandler handles backtest-related requests
type BacktestHandler struct {
	loader  SeriesLoader
	assets  AssetLookup
	engine  *backtest.Engine
	metrics *metrics.Recorder
	logger  zerolog.Logger
	dataDir string
}

// NewBacktestHandler creates a new backtest handler. Request data paths are
// resolved inside dataDir.
func NewBacktestHandler(loader SeriesLoader, assets AssetLookup, rec *metrics.Recorder, dataDir string, logger zerolog.Logger) *BacktestHandler {
	return &BacktestHandler{
		loader:  loader,
		assets:  assets,
		engine:  backtest.New(),
		metrics: rec,
		logger:  logger,
		dataDir: dataDir,
	}
}

type run struct {
	id     string
	asset  models.AssetRef
	req    models.BacktestRequest
	result *backtest.Result
	labels report.Labels
}

// RunBacktest handles POST /api/v1/backtest
func (h *BacktestHandler) RunBacktest(c *gin.Context) {
	r, ok := h.execute(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, buildResponse(r))
}

// RenderChart handles POST /api/v1/backtest/chart
func (h *BacktestHandler) RenderChart(c *gin.Context) {
	r, ok := h.execute(c)
	if !ok {
		return
	}
	subtitle := fmt.Sprintf("%s to %s", r.result.Window.Start.Format("2006-01-02"), r.result.Window.End.Format("2006-01-02"))
	png, err := report.RenderPNG(r.result.Combined, r.labels, report.ChartOptions{Subtitle: subtitle})
	if err != nil {
		writeError(c, err)
		return
	}
	c.Header("X-Backtest-ID", r.id)
	c.Data(http.StatusOK, "image/png", png)
}

func (h *BacktestHandler) execute(c *gin.Context) (*run, bool) {
	var req models.BacktestRequest
	if err := bindJSON(c, &req); err != nil {
		writeRequestError(c, err)
		return nil, false
	}
	if (req.AssetID == "") == (req.DataSource == nil) {
		writeRequestError(c, errors.New("exactly one of asset_id or data_source is required"))
		return nil, false
	}

	r := &run{id: uuid.NewString(), req: req}
	logger := h.logger.With().Str("backtest_id", r.id).Logger()

	src, params, err := h.resolve(&r.asset, req)
	if err != nil {
		h.fail(c, logger, src.Resolution, err)
		return nil, false
	}

	series, err := h.loader.Load(c.Request.Context(), src)
	if err != nil {
		h.fail(c, logger, src.Resolution, err)
		return nil, false
	}

	start, err := data.ParseBound(req.StartDate)
	if err != nil {
		h.fail(c, logger, src.Resolution, fmt.Errorf("%w: start_date: %v", model.ErrInvalidInput, err))
		return nil, false
	}
	end, err := data.ParseBound(req.EndDate)
	if err != nil {
		h.fail(c, logger, src.Resolution, fmt.Errorf("%w: end_date: %v", model.ErrInvalidInput, err))
		return nil, false
	}

	began := time.Now()
	result, err := h.engine.Run(model.BacktestInputs{
		Series:        series,
		Params:        params,
		Start:         start,
		End:           end,
		ResampleDaily: *req.Options.ResampleDaily,
	})
	if err != nil {
		h.fail(c, logger, src.Resolution, err)
		return nil, false
	}
	h.metrics.RecordBacktest(src.Resolution.String(), "ok", time.Since(began).Seconds(), result.Window.Points)

	logger.Info().
		Str("asset", r.asset.Symbol).
		Str("resolution", result.Resolution.String()).
		Int("points", result.Window.Points).
		Dur("duration", time.Since(began)).
		Msg("backtest complete")

	r.result = result
	r.labels = report.NewLabels(r.asset.Symbol, result.Params, result.Resolution)
	return r, true
}

// resolve turns the request into a data source and strategy parameters.
// Request yields override preset yields.
func (h *BacktestHandler) resolve(asset *models.AssetRef, req models.BacktestRequest) (data.Source, model.StrategyParams, error) {
	params := model.StrategyParams{
		InitialInvestment:        req.Investment,
		RebalanceFrequencyPerDay: req.RebalanceFrequencyPerDay,
	}
	var (
		src data.Source
		cfg config.AssetConfig
	)
	if req.AssetID != "" {
		preset, err := h.assets.Lookup(req.AssetID)
		if err != nil {
			return src, params, err
		}
		*asset = models.AssetRef{ID: preset.ID, Name: preset.Name, Symbol: preset.Symbol}
		cfg = preset.AssetConfig
		src = data.Source{Path: cfg.DataFile, URL: cfg.DataURL}
	} else {
		ds := req.DataSource
		*asset = models.AssetRef{Symbol: ds.Symbol}
		src = data.Source{URL: ds.URL}
		if ds.Path != "" {
			p, err := h.dataPath(ds.Path)
			if err != nil {
				return src, params, err
			}
			src.Path = p
		}
		cfg.Resolution = ds.Resolution
	}

	res, err := model.ParseResolution(cfg.Resolution)
	if err != nil {
		return src, params, err
	}
	src.Resolution = res

	params.AssetYieldPercent = pick(req.AssetYieldPercent, cfg.AssetYieldPercent)
	params.CashYieldPercent = pick(req.CashYieldPercent, cfg.CashYieldPercent)
	return src, params, nil
}

// dataPath keeps request-supplied paths inside the data directory.
func (h *BacktestHandler) dataPath(p string) (string, error) {
	if h.dataDir == "" || filepath.IsAbs(p) {
		return "", fmt.Errorf("%w: data_source.path must be relative to the data directory", model.ErrInvalidInput)
	}
	clean := filepath.Clean(p)
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: data_source.path escapes the data directory", model.ErrInvalidInput)
	}
	return filepath.Join(h.dataDir, clean), nil
}

func (h *BacktestHandler) fail(c *gin.Context, logger zerolog.Logger, res model.Resolution, err error) {
	status, code := errorStatus(err)
	h.metrics.RecordBacktest(res.String(), code, 0, 0)
	var fe *data.FetchError
	if errors.As(err, &fe) {
		h.metrics.RecordFetchError(fe.Code)
	}
	ev := logger.Warn()
	if status >= http.StatusInternalServerError {
		ev = logger.Error()
	}
	ev.Err(err).Int("status", status).Str("code", code).Msg("backtest failed")
	writeError(c, err)
}

func pick(override, preset *float64) float64 {
	if override != nil {
		return *override
	}
	if preset != nil {
		return *preset
	}
	return 0
}

func buildResponse(r *run) models.BacktestResponse {
	res := r.result
	resp := models.BacktestResponse{
		ID:         r.id,
		Status:     "completed",
		Asset:      r.asset,
		Resolution: res.Resolution.String(),
		Window: models.TimeWindow{
			Start:  res.Window.Start,
			End:    res.Window.End,
			Points: res.Window.Points,
		},
		Params: models.ParamsEcho{
			Investment:               res.Params.InitialInvestment,
			AssetYieldPercent:        res.Params.AssetYieldPercent,
			CashYieldPercent:         res.Params.CashYieldPercent,
			RebalanceFrequencyPerDay: res.Params.RebalanceFrequencyPerDay,
			ResampleDaily:            *r.req.Options.ResampleDaily,
		},
		Ranking: make([]models.Ranking, 0, len(res.Ranking)),
	}

	if s := res.Summary; s != nil {
		resp.Summary.InitialValue = models.Number(s.InitialValue)
		for _, st := range s.Strategies {
			out := models.StrategySummary{
				Kind:                    string(st.Kind),
				Label:                   r.labels.Short(st.Kind),
				Description:             r.labels.Long(st.Kind),
				FinalValue:              models.Number(st.FinalValue),
				TotalReturnPercent:      models.Number(st.TotalReturnPercent),
				AnnualizedReturnPercent: models.Number(st.AnnualizedReturnPercent),
				VolatilityPercent:       models.Number(st.VolatilityPercent),
			}
			if st.Risk != nil {
				out.MaxDrawdownPercent = models.NumberPtr(st.Risk.MaxDrawdownPercent)
				out.SharpeRatio = models.NumberPtr(st.Risk.SharpeRatio)
			}
			resp.Summary.Strategies = append(resp.Summary.Strategies, out)
		}
	}

	for _, rk := range res.Ranking {
		resp.Ranking = append(resp.Ranking, models.Ranking{
			Rank:               rk.Rank,
			Kind:               string(rk.Kind),
			Label:              r.labels.Short(rk.Kind),
			TotalReturnPercent: models.Number(rk.TotalReturnPercent),
		})
	}

	if r.req.Options.IncludeTrajectory {
		resp.Trajectory = make([]models.TrajectoryRow, 0, len(res.Combined))
		for _, p := range res.Combined {
			resp.Trajectory = append(resp.Trajectory, models.TrajectoryRow{
				Time:        p.Time,
				FullAsset:   models.Number(p.FullAsset),
				StaticSplit: models.Number(p.StaticSplit),
				Rebalanced:  models.Number(p.Rebalanced),
			})
		}
	}
	return resp
}
