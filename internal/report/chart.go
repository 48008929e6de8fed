package report

import (
	"errors"
	"fmt"
	"math"
	"time"

	"basket-backtest/internal/model"

	charts "github.com/vicanso/go-charts/v2"
)

// ChartOptions controls the rendered performance chart.
type ChartOptions struct {
	Title    string
	Subtitle string
	Width    int
	Height   int
}

// RenderPNG draws the three strategy value lines of a combined trajectory.
// Non-finite values are drawn as 0.
func RenderPNG(c model.CombinedTrajectory, labels Labels, opt ChartOptions) ([]byte, error) {
	if len(c) == 0 {
		return nil, errors.New("no data to chart")
	}
	if opt.Width <= 0 {
		opt.Width = 1000
	}
	if opt.Height <= 0 {
		opt.Height = 600
	}
	if opt.Title == "" {
		opt.Title = labels.Symbol + " strategy performance"
	}

	values := make([][]float64, 0, len(model.Kinds))
	names := make([]string, 0, len(model.Kinds))
	minVal, maxVal := math.Inf(1), math.Inf(-1)
	for _, kind := range model.Kinds {
		col := c.Column(kind)
		for i, v := range col {
			if !finite(v) {
				col[i] = 0
				v = 0
			}
			minVal = math.Min(minVal, v)
			maxVal = math.Max(maxVal, v)
		}
		values = append(values, col)
		names = append(names, labels.Short(kind))
	}

	padding := (maxVal - minVal) * 0.05
	if padding == 0 {
		padding = math.Max(math.Abs(maxVal)*0.05, 1)
	}
	yMin := minVal - padding
	yMax := maxVal + padding

	xLabels := make([]string, len(c))
	layout := "2006-01-02"
	if len(c) > 1 && c[len(c)-1].Time.Sub(c[0].Time) < 72*time.Hour {
		layout = "01-02 15:04"
	}
	for i, p := range c {
		xLabels[i] = p.Time.UTC().Format(layout)
	}
	split := 6
	if len(xLabels) <= 30 {
		split = len(xLabels) / 3
		if split < 3 {
			split = 3
		}
	}

	seriesList := charts.NewSeriesListDataFromValues(values, charts.ChartTypeLine)
	p, err := charts.Render(charts.ChartOption{SeriesList: seriesList},
		charts.TitleTextOptionFunc(opt.Title, opt.Subtitle),
		charts.XAxisOptionFunc(charts.XAxisOption{Data: xLabels, BoundaryGap: charts.FalseFlag(), SplitNumber: split}),
		charts.YAxisOptionFunc(charts.YAxisOption{Min: &yMin, Max: &yMax, DivideCount: 5}),
		charts.LegendOptionFunc(charts.LegendOption{Data: names, Top: charts.PositionTop}),
		charts.ThemeOptionFunc(charts.ThemeLight),
		charts.WidthOptionFunc(opt.Width),
		charts.HeightOptionFunc(opt.Height),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}
	buf, err := p.Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to generate chart bytes: %w", err)
	}
	return buf, nil
}
