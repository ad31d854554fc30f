package utils

import (
	"errors"
	"strings"
	"testing"

	"github.com/baalimago/go_away_boilerplate/pkg/testboil"
)

func TestValidate(t *testing.T) {
	testCases := []struct {
		desc       string
		given      string
		wantReason Reason
		wantMsg    string
	}{
		{
			desc:       "empty",
			given:      "",
			wantReason: ReasonEmpty,
			wantMsg:    "Input cannot be empty. Please provide some details.",
		},
		{
			desc:       "whitespace only",
			given:      " \t\n ",
			wantReason: ReasonEmpty,
			wantMsg:    "Input cannot be empty. Please provide some details.",
		},
		{
			desc:       "too long",
			given:      strings.Repeat("a", 501),
			wantReason: ReasonTooLong,
			wantMsg:    "Input is too long. Please keep it under 500 characters.",
		},
		{
			desc:       "too long wins over invalid characters",
			given:      strings.Repeat("<", 501),
			wantReason: ReasonTooLong,
			wantMsg:    "Input is too long. Please keep it under 500 characters.",
		},
		{
			desc:       "script tag",
			given:      "Test <script>",
			wantReason: ReasonInvalidCharacters,
			wantMsg:    "Input contains invalid characters (e.g., <, >, {}).",
		},
		{
			desc:       "curly brace",
			given:      "what about {this}",
			wantReason: ReasonInvalidCharacters,
			wantMsg:    "Input contains invalid characters (e.g., <, >, {}).",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			err := Validate(tc.given)
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("expected validation error, got: %v", err)
			}
			var rej *Rejection
			if !errors.As(err, &rej) {
				t.Fatalf("expected *Rejection, got: %T", err)
			}
			testboil.FailTestIfDiff(t, rej.Reason, tc.wantReason)
			testboil.FailTestIfDiff(t, err.Error(), tc.wantMsg)
		})
	}
}

func TestValidateAccepts(t *testing.T) {
	for _, given := range []string{
		"What’s the best lock?",
		"help",
		strings.Repeat("a", 500),
		// 500 runes but far more than 500 bytes
		strings.Repeat("å", 500),
	} {
		if err := Validate(given); err != nil {
			t.Fatalf("expected %q to be accepted, got: %v", given, err)
		}
	}
}
