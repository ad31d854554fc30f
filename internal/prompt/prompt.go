// Package prompt composes the role-framed instruction sent to the backends.
package prompt

import (
	"strings"

	"github.com/baalimago/lockbot/internal/models"
)

const (
	// Persona is the role every backend is asked to act as.
	Persona = "physical security consultant"
	// DeepSearchInstruction is added to the header when the user asks about trends.
	DeepSearchInstruction = "Use DeepSearch to analyze recent X posts and provide insights. "
)

// Build the prompt as:
//
//	<role>: <content>\n...<role>: <content>\nAct as a <persona>. <extra><userText>
//
// The history block and its trailing newline are omitted when history is empty.
func Build(persona, userText string, history []models.Message, extra string) string {
	header := "Act as a " + persona + ". " + extra
	if len(history) == 0 {
		return header + userText
	}
	var sb strings.Builder
	for i, msg := range history {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(string(msg.Role))
		sb.WriteString(": ")
		sb.WriteString(msg.Content)
	}
	sb.WriteByte('\n')
	sb.WriteString(header)
	sb.WriteString(userText)
	return sb.String()
}
