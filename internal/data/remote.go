package data

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"basket-backtest/internal/model"

	"github.com/rs/zerolog"
)

// RemoteSource fetches CSV price files over HTTP.
type RemoteSource struct {
	Client *http.Client
	Logger zerolog.Logger
}

// NewRemoteSource creates a client with a 30 second timeout.
func NewRemoteSource(logger zerolog.Logger) *RemoteSource {
	return &RemoteSource{
		Client: &http.Client{Timeout: 30 * time.Second},
		Logger: logger,
	}
}

// FetchError represents a failed remote fetch.
type FetchError struct {
	StatusCode int
	Code       string
	Message    string
	RetryAfter string // For rate limit errors
}

func (e *FetchError) Error() string {
	return e.Message
}

// Fetch downloads rawURL and parses it at the given resolution.
func (r *RemoteSource) Fetch(ctx context.Context, rawURL string, res model.Resolution) (model.Series, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return model.Series{}, &FetchError{
			Code:    "INVALID_URL",
			Message: fmt.Sprintf("invalid data url %q", rawURL),
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return model.Series{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "text/csv, text/plain;q=0.9, */*;q=0.5")

	r.Logger.Debug().Str("url", u.Redacted()).Str("resolution", res.String()).Msg("fetching series")

	start := time.Now()
	resp, err := r.client().Do(req)
	duration := time.Since(start)
	if err != nil {
		r.Logger.Warn().Err(err).Str("url", u.Redacted()).Dur("duration", duration).Msg("fetch failed")
		return model.Series{}, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	r.Logger.Info().
		Str("url", u.Redacted()).
		Int("status", resp.StatusCode).
		Dur("duration", duration).
		Msg("fetch response")

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return model.Series{}, &FetchError{
			StatusCode: resp.StatusCode,
			Code:       "UNAUTHORIZED",
			Message:    "Unauthorized: data source rejected the request",
		}
	case http.StatusNotFound:
		return model.Series{}, &FetchError{
			StatusCode: resp.StatusCode,
			Code:       "NOT_FOUND",
			Message:    fmt.Sprintf("data source not found: %s", u.Redacted()),
		}
	case http.StatusTooManyRequests:
		retryAfter := resp.Header.Get("Retry-After")
		return model.Series{}, &FetchError{
			StatusCode: resp.StatusCode,
			Code:       "RATE_LIMIT_EXCEEDED",
			Message:    fmt.Sprintf("Rate limit exceeded. Retry after: %s", retryAfter),
			RetryAfter: retryAfter,
		}
	default:
		return model.Series{}, &FetchError{
			StatusCode: resp.StatusCode,
			Code:       "API_ERROR",
			Message:    fmt.Sprintf("data source returned status %d: %s", resp.StatusCode, resp.Status),
		}
	}

	s, err := ParseSeries(io.LimitReader(resp.Body, maxRemoteBytes), res)
	if err != nil {
		return model.Series{}, fmt.Errorf("parse %s: %w", u.Redacted(), err)
	}
	r.Logger.Debug().Int("points", s.Len()).Str("url", u.Redacted()).Msg("series fetched")
	return s, nil
}

const maxRemoteBytes = 256 << 20

func (r *RemoteSource) client() *http.Client {
	if r.Client != nil {
		return r.Client
	}
	return http.DefaultClient
}
