package prompt

import (
	"testing"

	"github.com/baalimago/go_away_boilerplate/pkg/testboil"
	"github.com/baalimago/lockbot/internal/models"
)

func TestBuild(t *testing.T) {
	history := []models.Message{
		{Role: models.RoleUser, Content: "Hello"},
		{Role: models.RoleAssistant, Content: "Hi there"},
	}
	testCases := []struct {
		desc    string
		text    string
		history []models.Message
		extra   string
		want    string
	}{
		{
			desc: "no history",
			text: "X",
			want: "Act as a physical security consultant. X",
		},
		{
			desc:    "empty history is same as none",
			text:    "X",
			history: []models.Message{},
			want:    "Act as a physical security consultant. X",
		},
		{
			desc:  "extra instructions go between header and text",
			text:  "X",
			extra: DeepSearchInstruction,
			want:  "Act as a physical security consultant. Use DeepSearch to analyze recent X posts and provide insights. X",
		},
		{
			desc:    "history block precedes header",
			text:    "What lock?",
			history: history,
			want:    "user: Hello\nassistant: Hi there\nAct as a physical security consultant. What lock?",
		},
		{
			desc:    "preamble mode with empty text",
			history: history,
			want:    "user: Hello\nassistant: Hi there\nAct as a physical security consultant. ",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			got := Build(Persona, tc.text, tc.history, tc.extra)
			testboil.FailTestIfDiff(t, got, tc.want)
		})
	}
}
