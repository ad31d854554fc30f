package models

import "fmt"

// DefaultHistoryMax is the amount of messages kept in the rolling history.
const DefaultHistoryMax = 10

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAssistant, RoleSystem:
		return true
	}
	return false
}

type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// History is the chronological, bounded conversation. Appending never
// trims, the owner is expected to call Trimmed after each append.
type History struct {
	Max      int
	Messages []Message
}

func NewHistory(max int) History {
	if max <= 0 {
		max = DefaultHistoryMax
	}
	return History{Max: max}
}

// Append returns a new History with msg at the end. The receiver is left
// untouched so callers holding the old value never see the new message.
func (h History) Append(msg Message) (History, error) {
	if !msg.Role.Valid() {
		return h, fmt.Errorf("%w: '%v'", ErrInvalidRole, msg.Role)
	}
	cpy := make([]Message, len(h.Messages), len(h.Messages)+1)
	copy(cpy, h.Messages)
	h.Messages = append(cpy, msg)
	return h, nil
}

// Trimmed applies Trim using the configured maximum.
func (h History) Trimmed() History {
	h.Messages = Trim(h.Messages, h.Max)
	return h
}

func (h History) Len() int {
	return len(h.Messages)
}

// Snapshot returns a copy of the messages, safe to hand to code which
// must not retain or mutate the history.
func (h History) Snapshot() []Message {
	cpy := make([]Message, len(h.Messages))
	copy(cpy, h.Messages)
	return cpy
}

// Trim keeps the most recent max messages. If there are max or fewer
// messages, msgs is returned as is.
func Trim(msgs []Message, max int) []Message {
	if max < 0 {
		max = 0
	}
	if len(msgs) <= max {
		return msgs
	}
	return msgs[len(msgs)-max:]
}
