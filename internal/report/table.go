package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"basket-backtest/internal/analysis"
	"basket-backtest/internal/model"
)

// WriteSummary prints the per-strategy statistics as an aligned table.
// Drawdown and Sharpe columns appear only when the summary carries them.
func WriteSummary(w io.Writer, s *analysis.Summary, labels Labels) error {
	if s == nil {
		_, err := fmt.Fprintln(w, "no data for selected range")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	risk := s.Resolution == model.Hourly

	header := "Strategy\tInitial\tFinal\tTotal Return\tAnnualized\tVolatility"
	if risk {
		header += "\tMax Drawdown\tSharpe"
	}
	fmt.Fprintln(tw, header)

	for _, st := range s.Strategies {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s",
			labels.Short(st.Kind),
			Money(s.InitialValue),
			Money(st.FinalValue),
			Percent(st.TotalReturnPercent),
			Percent(st.AnnualizedReturnPercent),
			Percent(st.VolatilityPercent),
		)
		if risk {
			dd, sharpe := notAvailable, notAvailable
			if st.Risk != nil {
				dd, sharpe = Percent(st.Risk.MaxDrawdownPercent), Ratio(st.Risk.SharpeRatio)
			}
			fmt.Fprintf(tw, "\t%s\t%s", dd, sharpe)
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}

// WriteRanking prints strategies best first.
func WriteRanking(w io.Writer, ranked []analysis.Ranked, labels Labels) error {
	for _, r := range ranked {
		if _, err := fmt.Fprintf(w, "%d. %s (%s)\n", r.Rank, labels.Short(r.Kind), Percent(r.TotalReturnPercent)); err != nil {
			return err
		}
	}
	return nil
}
