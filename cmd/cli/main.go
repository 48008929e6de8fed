package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"basket-backtest/internal/backtest"
	"basket-backtest/internal/config"
	"basket-backtest/internal/data"
	"basket-backtest/internal/logging"
	"basket-backtest/internal/model"
	"basket-backtest/internal/report"

	"github.com/rs/zerolog"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	logger := logging.MustNew(logging.Config{
		Level:  os.Getenv("LOG_LEVEL"),
		Format: os.Getenv("LOG_FORMAT"),
	})

	var err error
	switch os.Args[1] {
	case "backtest":
		err = cmdBacktest(os.Args[2:], logger)
	case "candles":
		err = cmdCandles(os.Args[2:], logger)
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		logger.Error().Err(err).Str("command", os.Args[1]).Msg("command failed")
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli backtest --config examples/config.yaml --out results/performance.csv --chart results/performance.png")
	fmt.Println("  cli backtest --data data/avalanche_daily_sample.csv --resolution daily --asset-yield 6 --cash-yield 7")
	fmt.Println("  cli candles --data data/bitcoin_1hour_sample.csv --out data/bitcoin_daily.csv")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - backtest runs 100% asset, 50/50 no rebalance and 50/50 rebalanced on the same prices")
	fmt.Println("  - flags given on the command line override the config file")
	fmt.Println("  - candles folds an hourly OHLCV CSV into daily rows")
}

func cmdBacktest(args []string, logger zerolog.Logger) error {
	fs := flag.NewFlagSet("backtest", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config (optional when --data is given)")
	dataPath := fs.String("data", "", "Price CSV path or http(s) URL")
	resolution := fs.String("resolution", "", "Series resolution: daily or hourly")
	symbol := fs.String("symbol", "", "Asset symbol used in labels")
	start := fs.String("start", "", "Inclusive start date (e.g. 2021-01-01)")
	end := fs.String("end", "", "Inclusive end date")
	investment := fs.Float64("investment", 10000, "Initial investment")
	assetYield := fs.Float64("asset-yield", 0, "Asset leg APY, percent")
	cashYield := fs.Float64("cash-yield", 0, "Stable leg APY, percent")
	frequency := fs.Int("frequency", 1, "Rebalances per day for hourly series (1-24)")
	noResample := fs.Bool("no-resample", false, "Keep hourly rows instead of one row per day")
	outPath := fs.String("out", "results/performance.csv", "Output CSV path")
	chartPath := fs.String("chart", "", "Optional PNG chart path")
	_ = fs.Parse(args)

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	var cfg *config.Config
	if *cfgPath != "" {
		c, err := config.LoadUnchecked(*cfgPath)
		if err != nil {
			return err
		}
		cfg = c
	} else {
		if *dataPath == "" {
			fmt.Println("--config or --data is required")
			os.Exit(2)
		}
		cfg = &config.Config{}
	}

	if set["data"] {
		cfg.Asset.DataFile, cfg.Asset.DataURL = "", ""
		if data.IsURL(*dataPath) {
			cfg.Asset.DataURL = *dataPath
		} else {
			cfg.Asset.DataFile = *dataPath
		}
	}
	if set["resolution"] {
		cfg.Asset.Resolution = *resolution
	}
	if set["symbol"] {
		cfg.Asset.Symbol = *symbol
	}
	if set["start"] {
		cfg.Range.Start = *start
	}
	if set["end"] {
		cfg.Range.End = *end
	}
	if set["investment"] {
		cfg.Strategy.InitialInvestment = *investment
	}
	if set["asset-yield"] {
		cfg.Asset.AssetYieldPercent = config.Float(*assetYield)
	}
	if set["cash-yield"] {
		cfg.Asset.CashYieldPercent = config.Float(*cashYield)
	}
	if set["frequency"] {
		cfg.Strategy.RebalanceFrequencyPerDay = *frequency
	}
	if set["no-resample"] {
		resample := !*noResample
		cfg.Output.ResampleDaily = &resample
	}

	if err := cfg.ApplyDefaults(); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	src, err := cfg.Source()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	series, err := data.NewLoader(nil, logger).Load(ctx, src)
	if err != nil {
		return err
	}
	in, err := cfg.Inputs(series)
	if err != nil {
		return err
	}

	began := time.Now()
	res, err := backtest.New().Run(in)
	if err != nil {
		return err
	}
	logger.Debug().
		Str("resolution", res.Resolution.String()).
		Int("points", res.Window.Points).
		Dur("took", time.Since(began)).
		Msg("backtest finished")

	labels := report.NewLabels(cfg.Asset.Symbol, res.Params, res.Resolution)
	name := cfg.Asset.Name
	if name == "" {
		name = labels.Symbol
	}
	fmt.Printf("%s (%s) %s to %s, %d points\n\n",
		name, res.Resolution,
		res.Window.Start.Format("2006-01-02"), res.Window.End.Format("2006-01-02"),
		res.Window.Points)

	if err := report.WriteSummary(os.Stdout, res.Summary, labels); err != nil {
		return err
	}
	fmt.Println("")
	if err := report.WriteRanking(os.Stdout, res.Ranking, labels); err != nil {
		return err
	}
	fmt.Println("")

	if err := backtest.WriteCombinedCSV(*outPath, res.Combined); err != nil {
		return err
	}
	fmt.Printf("Wrote %d rows to %s\n", len(res.Combined), *outPath)

	if *chartPath != "" {
		png, err := report.RenderPNG(res.Combined, labels, report.ChartOptions{
			Subtitle: fmt.Sprintf("%s to %s", res.Window.Start.Format("2006-01-02"), res.Window.End.Format("2006-01-02")),
		})
		if err != nil {
			return err
		}
		if err := writeFile(*chartPath, png); err != nil {
			return err
		}
		fmt.Printf("Wrote chart to %s\n", *chartPath)
	}
	return nil
}

func cmdCandles(args []string, logger zerolog.Logger) error {
	fs := flag.NewFlagSet("candles", flag.ExitOnError)
	dataPath := fs.String("data", "", "Hourly OHLCV CSV path")
	outPath := fs.String("out", "", "Output CSV path (stdout when empty)")
	ohlcv := fs.Bool("ohlcv", false, "Write open/high/low/close/volume instead of date,price")
	start := fs.String("start", "", "Inclusive start date")
	end := fs.String("end", "", "Inclusive end date")
	_ = fs.Parse(args)

	if *dataPath == "" {
		fmt.Println("--data is required")
		os.Exit(2)
	}

	candles, err := data.LoadHourlyCSV(*dataPath)
	if err != nil {
		return err
	}
	from, err := data.ParseBound(*start)
	if err != nil {
		return fmt.Errorf("%w: --start: %v", model.ErrInvalidInput, err)
	}
	to, err := data.ParseBound(*end)
	if err != nil {
		return fmt.Errorf("%w: --end: %v", model.ErrInvalidInput, err)
	}
	daily := data.GroupHourlyToDaily(data.FilterCandles(candles, from, to))
	logger.Debug().Int("hourly", len(candles)).Int("daily", len(daily)).Msg("grouped candles")

	if *outPath == "" {
		return data.WriteDailyCSV(os.Stdout, daily, *ohlcv)
	}
	if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
		return err
	}
	f, err := os.Create(*outPath)
	if err != nil {
		return err
	}
	if err := data.WriteDailyCSV(f, daily, *ohlcv); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Printf("Wrote %d days to %s\n", len(daily), *outPath)
	return nil
}

func writeFile(path string, b []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
