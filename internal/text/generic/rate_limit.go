package generic

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
)

// ErrRateLimited is returned by Wait when the context ends before the
// token budget resets. No request has been sent in that case.
var ErrRateLimited = errors.New("rate limited")

// lowTokenWatermark is the remaining token budget under which the next
// request is held back until the reported reset.
const lowTokenWatermark = 50

// RateLimiter tracks the token budget a backend reports in its response
// headers. The zero budget state means nothing is known yet.
type RateLimiter struct {
	remainingHeader string
	resetHeader     string

	remaining int
	resetAt   time.Time
}

func NewRateLimiter(remainingHeader, resetHeader string) *RateLimiter {
	return &RateLimiter{
		remainingHeader: strings.ToLower(remainingHeader),
		resetHeader:     strings.ToLower(resetHeader),
	}
}

// UpdateFromHeaders replaces the budget with the one reported in h. On
// missing or malformed headers the budget is forgotten and an error returned.
func (r *RateLimiter) UpdateFromHeaders(h http.Header) error {
	r.remaining = 0
	r.resetAt = time.Time{}

	remStr := h.Get(r.remainingHeader)
	if remStr == "" {
		return fmt.Errorf("missing header '%s'", r.remainingHeader)
	}
	rem, err := strconv.Atoi(remStr)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", r.remainingHeader, err)
	}
	resetAt, err := parseReset(h.Get(r.resetHeader))
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", r.resetHeader, err)
	}
	r.remaining = rem
	r.resetAt = resetAt
	return nil
}

// parseReset accepts a Go duration ("1m30s"), unix seconds or fractional
// seconds until the reset.
func parseReset(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, errors.New("empty value")
	}
	if dur, err := time.ParseDuration(v); err == nil {
		return time.Now().Add(dur), nil
	}
	if ts, err := strconv.ParseInt(v, 10, 64); err == nil {
		return time.Unix(ts, 0), nil
	}
	if sec, err := strconv.ParseFloat(v, 64); err == nil {
		return time.Now().Add(time.Duration(sec * float64(time.Second))), nil
	}
	return time.Time{}, fmt.Errorf("unknown format '%v'", v)
}

// Pending is how long the next request has to be held back, zero if it may
// be sent right away.
func (r *RateLimiter) Pending() time.Duration {
	if r == nil || r.resetAt.IsZero() || r.remaining > lowTokenWatermark {
		return 0
	}
	return max(time.Until(r.resetAt), 0)
}

// Wait blocks until the budget resets. attrs are added to the log records,
// typically the service and model the wait is held for.
func (r *RateLimiter) Wait(ctx context.Context, attrs ...any) error {
	wait := r.Pending()
	if wait == 0 {
		return nil
	}
	rounded := wait.Round(time.Second)
	slog.Warn("token budget exhausted, holding request", append(attrs, "remaining", r.remaining, "wait", rounded.String())...)
	ancli.PrintWarn(fmt.Sprintf("token budget exhausted, waiting %v\n", rounded))
	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return fmt.Errorf("%w, %v left until token reset: %w", ErrRateLimited, time.Until(r.resetAt).Round(time.Second), ctx.Err())
	case <-timer.C:
		return nil
	}
}
