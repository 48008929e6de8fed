package main

import (
	"flag"
	"fmt"
	"os"

	"basket-backtest/internal/backtest"
	"basket-backtest/internal/config"
	"basket-backtest/internal/data"
	"basket-backtest/internal/model"
	"basket-backtest/internal/report"
	"basket-backtest/internal/strategy"
)

// Demo:
// - Load a daily or hourly price CSV
// - Run each strategy on its own to show how the pieces fit together
// - Print the first few combined rows and the summary table
func main() {
	dataPath := flag.String("data", "data/avalanche_daily_sample.csv", "Path to a price CSV")
	resolution := flag.String("resolution", "daily", "daily or hourly")
	cfgPath := flag.String("config", "", "Path to YAML config (optional, overrides --data and --resolution)")
	n := flag.Int("n", 10, "Number of combined rows to print")
	outCSV := flag.String("out", "", "Optional path to write the combined CSV (e.g. results/performance.csv)")
	flag.Parse()

	// Defaults (can be overridden via --config).
	params := model.StrategyParams{
		InitialInvestment:        10000,
		AssetYieldPercent:        6,
		CashYieldPercent:         7,
		RebalanceFrequencyPerDay: 1,
	}
	symbol := "AVAX"
	path := *dataPath
	res, err := model.ParseResolution(*resolution)
	if err != nil {
		panic(err)
	}

	if *cfgPath != "" {
		cfg, err := config.Load(*cfgPath)
		if err != nil {
			panic(err)
		}
		if cfg.Asset.DataFile == "" {
			panic("demo reads local files only; set asset.data_file")
		}
		params = cfg.Params()
		symbol = cfg.Asset.Symbol
		path = cfg.Asset.DataFile
		if res, err = model.ParseResolution(cfg.Asset.Resolution); err != nil {
			panic(err)
		}
	}

	f, err := os.Open(path)
	if err != nil {
		panic(err)
	}
	series, err := data.ParseSeries(f, res)
	f.Close()
	if err != nil {
		panic(err)
	}
	if series.Empty() {
		panic("no rows in CSV")
	}

	fmt.Printf("Loaded %d %s points from %s (%s to %s)\n",
		series.Len(), res, path,
		series.First().Time.Format("2006-01-02"), series.Last().Time.Format("2006-01-02"))
	fmt.Printf("Params: investment=$%.2f asset_yield=%.2f%% cash_yield=%.2f%% rebalances/day=%d\n\n",
		params.InitialInvestment, params.AssetYieldPercent, params.CashYieldPercent, params.EffectiveRebalanceFrequency())

	labels := report.NewLabels(symbol, params, res)
	trajectories := map[model.StrategyKind]model.Trajectory{}
	for _, s := range strategy.All() {
		t := s.Perform(series, params)
		if len(t) == 0 {
			panic(fmt.Sprintf("%s produced no values", s.Name()))
		}
		trajectories[s.Kind()] = t
		last := t[len(t)-1]
		fmt.Printf("%-28s final=%s\n", labels.Short(s.Kind()), report.Money(last.Value))
	}
	fmt.Println("")

	combined := backtest.Combine(
		trajectories[model.KindFullAsset],
		trajectories[model.KindStaticSplit],
		trajectories[model.KindRebalanced],
		res == model.Hourly,
	)

	fmt.Printf("%-12s %14s %14s %14s\n", "date", "full_asset", "static_split", "rebalanced")
	for i, row := range combined {
		if i >= *n {
			break
		}
		fmt.Printf("%-12s %14.2f %14.2f %14.2f\n",
			row.Time.Format("2006-01-02"), row.FullAsset, row.StaticSplit, row.Rebalanced)
	}
	fmt.Println("")

	// The engine repeats the same runs and adds the statistics.
	result, err := backtest.New().Run(model.BacktestInputs{Series: series, Params: params, ResampleDaily: true})
	if err != nil {
		panic(err)
	}
	if err := report.WriteSummary(os.Stdout, result.Summary, labels); err != nil {
		panic(err)
	}

	if *outCSV != "" {
		if err := backtest.WriteCombinedCSV(*outCSV, combined); err != nil {
			panic(err)
		}
		fmt.Printf("\nWrote %d rows to %s\n", len(combined), *outCSV)
	}
}
