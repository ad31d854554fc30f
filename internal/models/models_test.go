package models

import (
	"errors"
	"fmt"
	"testing"

	"github.com/baalimago/go_away_boilerplate/pkg/testboil"
)

func numbered(n int) []Message {
	ret := make([]Message, 0, n)
	for i := range n {
		ret = append(ret, Message{Role: RoleUser, Content: fmt.Sprintf("Msg %v", i)})
	}
	return ret
}

func TestTrim(t *testing.T) {
	t.Run("keeps last ten in order", func(t *testing.T) {
		got := Trim(numbered(15), 10)
		testboil.FailTestIfDiff(t, len(got), 10)
		testboil.FailTestIfDiff(t, got[0].Content, "Msg 5")
		testboil.FailTestIfDiff(t, got[9].Content, "Msg 14")
	})

	t.Run("shorter than max is unchanged", func(t *testing.T) {
		in := numbered(3)
		got := Trim(in, 10)
		testboil.FailTestIfDiff(t, len(got), 3)
		testboil.FailTestIfDiff(t, got[0].Content, "Msg 0")
	})

	t.Run("idempotent", func(t *testing.T) {
		once := Trim(numbered(15), 10)
		twice := Trim(once, 10)
		testboil.FailTestIfDiff(t, len(twice), len(once))
		for i := range once {
			testboil.FailTestIfDiff(t, twice[i], once[i])
		}
	})

	t.Run("zero max", func(t *testing.T) {
		testboil.FailTestIfDiff(t, len(Trim(numbered(2), 0)), 0)
	})
}

func TestHistoryAppend(t *testing.T) {
	h := NewHistory(0)
	testboil.FailTestIfDiff(t, h.Max, DefaultHistoryMax)

	h2, err := h.Append(Message{Role: RoleUser, Content: "hi"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testboil.FailTestIfDiff(t, h.Len(), 0)
	testboil.FailTestIfDiff(t, h2.Len(), 1)

	_, err = h2.Append(Message{Role: "admin", Content: "nope"})
	if !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got: %v", err)
	}
}

func TestHistoryAppendDoesNotTrim(t *testing.T) {
	h := NewHistory(2)
	var err error
	for _, m := range numbered(3) {
		h, err = h.Append(m)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	testboil.FailTestIfDiff(t, h.Len(), 3)
	h = h.Trimmed()
	testboil.FailTestIfDiff(t, h.Len(), 2)
	testboil.FailTestIfDiff(t, h.Messages[0].Content, "Msg 1")
}

func TestSnapshotIsCopy(t *testing.T) {
	h := History{Max: 10, Messages: numbered(2)}
	snap := h.Snapshot()
	snap[0].Content = "mutated"
	testboil.FailTestIfDiff(t, h.Messages[0].Content, "Msg 0")
}

func TestBackendErrorUnwraps(t *testing.T) {
	inner := errors.New("boom")
	err := fmt.Errorf("dispatch: %w", &BackendError{Service: "openai", Err: inner})
	if !errors.Is(err, inner) {
		t.Fatal("expected errors.Is to find inner error")
	}
	var be *BackendError
	if !errors.As(err, &be) {
		t.Fatal("expected BackendError")
	}
	testboil.FailTestIfDiff(t, be.Error(), "openai API error: boom")
}
