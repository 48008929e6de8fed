package model

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput marks inputs the engine cannot run on. The engines
	// themselves degrade to empty results; this is surfaced by the pipeline.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoData means the selected range contains no observations.
	ErrNoData = fmt.Errorf("%w: no data for selected range", ErrInvalidInput)
)
