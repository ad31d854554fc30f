// Package vendorstest holds test helpers shared by the vendor adapters.
package vendorstest

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/baalimago/lockbot/internal/models"
)

// NoSleep can be used as generic.Backoff.Sleep to retry without waiting.
func NoSleep(ctx context.Context, d time.Duration) error {
	return ctx.Err()
}

// ClosedServerURL returns the URL of a server which is no longer listening,
// any request to it fails in the transport.
func ClosedServerURL(t *testing.T) string {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := ts.URL
	ts.Close()
	return url
}

// FailingServer answers every request with status and body, counting the calls.
func FailingServer(t *testing.T, status int, body string) (*httptest.Server, *int) {
	t.Helper()
	calls := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(ts.Close)
	return ts, &calls
}

// RunMissingClientTest asserts that reply fails fast with ErrMissingClient.
func RunMissingClientTest(t *testing.T, reply func() (string, error)) {
	t.Helper()
	got, err := reply()
	if !errors.Is(err, models.ErrMissingClient) {
		t.Fatalf("expected ErrMissingClient, got: %v", err)
	}
	if got != "" {
		t.Fatalf("expected empty reply, got: %q", got)
	}
}
