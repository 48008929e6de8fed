package strategy

import (
	"math"

	"basket-backtest/internal/model"
)

// StepRate converts an annual percentage yield into the compounded rate for
// one step of the given resolution: (1 + pct/100)^(1/stepsPerYear) - 1.
func StepRate(annualPercent float64, res model.Resolution) float64 {
	return math.Pow(1+annualPercent/100, 1/res.StepsPerYear()) - 1
}
