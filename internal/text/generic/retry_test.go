package generic

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/baalimago/go_away_boilerplate/pkg/testboil"
)

func recordingBackoff(slept *[]time.Duration) Backoff {
	b := DefaultBackoff
	b.Sleep = func(ctx context.Context, d time.Duration) error {
		*slept = append(*slept, d)
		return nil
	}
	return b
}

func TestBackoffDelay(t *testing.T) {
	b := DefaultBackoff
	testboil.FailTestIfDiff(t, b.Delay(1), 4*time.Second)
	testboil.FailTestIfDiff(t, b.Delay(2), 8*time.Second)
	testboil.FailTestIfDiff(t, b.Delay(3), 10*time.Second)
	testboil.FailTestIfDiff(t, b.Delay(10), 10*time.Second)

	uncapped := Backoff{Initial: time.Second}
	testboil.FailTestIfDiff(t, uncapped.Delay(1), time.Second)
	testboil.FailTestIfDiff(t, uncapped.Delay(2), 2*time.Second)
	testboil.FailTestIfDiff(t, uncapped.Delay(3), 4*time.Second)
}

func TestRetry(t *testing.T) {
	t.Run("stops after attempts and returns last error", func(t *testing.T) {
		var slept []time.Duration
		calls := 0
		err := Retry(context.Background(), recordingBackoff(&slept), func(ctx context.Context, attempt int) error {
			calls++
			return errors.New("fail")
		})
		if err == nil || err.Error() != "fail" {
			t.Fatalf("expected last error, got: %v", err)
		}
		testboil.FailTestIfDiff(t, calls, 3)
		testboil.FailTestIfDiff(t, len(slept), 2)
		testboil.FailTestIfDiff(t, slept[0], 4*time.Second)
		testboil.FailTestIfDiff(t, slept[1], 8*time.Second)
	})

	t.Run("returns on first success", func(t *testing.T) {
		var slept []time.Duration
		calls := 0
		err := Retry(context.Background(), recordingBackoff(&slept), func(ctx context.Context, attempt int) error {
			calls++
			if attempt < 2 {
				return errors.New("transient")
			}
			return nil
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		testboil.FailTestIfDiff(t, calls, 2)
		testboil.FailTestIfDiff(t, len(slept), 1)
	})

	t.Run("aborts on cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		calls := 0
		err := Retry(ctx, DefaultBackoff, func(ctx context.Context, attempt int) error {
			calls++
			return errors.New("fail")
		})
		if err == nil {
			t.Fatal("expected error")
		}
		testboil.FailTestIfDiff(t, calls, 1)
		testboil.AssertStringContains(t, err.Error(), "retry aborted")
	})
}
