package model

import "time"

// PriceObservation is one point of a price series. For intraday data Price is
// the candle close.
type PriceObservation struct {
	Time  time.Time
	Price float64
}

// Candle is one intraday OHLCV row as it appears in the hourly CSV files.
type Candle struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Series is a chronologically ordered price series at a single resolution.
// Index 0 is the earliest observation; timestamps are strictly increasing.
type Series struct {
	Resolution   Resolution
	Observations []PriceObservation
}

func (s Series) Len() int { return len(s.Observations) }

func (s Series) Empty() bool { return len(s.Observations) == 0 }

// First returns the earliest observation. Callers must check Empty first.
func (s Series) First() PriceObservation { return s.Observations[0] }

// Last returns the latest observation. Callers must check Empty first.
func (s Series) Last() PriceObservation { return s.Observations[len(s.Observations)-1] }

// SeriesFromCandles converts intraday candles into an hourly series priced at close.
func SeriesFromCandles(candles []Candle) Series {
	obs := make([]PriceObservation, len(candles))
	for i, c := range candles {
		obs[i] = PriceObservation{Time: c.Time, Price: c.Close}
	}
	return Series{Resolution: Hourly, Observations: obs}
}
