package utils

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// MaxInputRunes is the longest accepted input, counted in characters.
const MaxInputRunes = 500

var ErrValidation = errors.New("input rejected")

type Reason string

const (
	ReasonEmpty             Reason = "empty input"
	ReasonTooLong           Reason = "too long"
	ReasonInvalidCharacters Reason = "invalid characters"
)

var reasonMessages = map[Reason]string{
	ReasonEmpty:             "Input cannot be empty. Please provide some details.",
	ReasonTooLong:           "Input is too long. Please keep it under 500 characters.",
	ReasonInvalidCharacters: "Input contains invalid characters (e.g., <, >, {}).",
}

// Rejection is returned by Validate. Error() is the user-facing message.
type Rejection struct {
	Reason Reason
}

func (r *Rejection) Error() string {
	return reasonMessages[r.Reason]
}

func (r *Rejection) Is(target error) bool {
	return target == ErrValidation
}

// Validate the raw user input. Rules are checked in order, first
// match wins. A nil return means the input is accepted.
func Validate(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return &Rejection{Reason: ReasonEmpty}
	}
	if utf8.RuneCountInString(raw) > MaxInputRunes {
		return &Rejection{Reason: ReasonTooLong}
	}
	if strings.ContainsAny(raw, "<>{}") {
		return &Rejection{Reason: ReasonInvalidCharacters}
	}
	return nil
}
