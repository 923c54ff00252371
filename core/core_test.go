package core_test

import (
	"testing"

	"github.com/Alok-Kumar2005/WhatsApp-Agent-Neural-maze/core"
)

func TestParseWorkflow(t *testing.T) {
	cases := []struct {
		label string
		want  core.Workflow
		ok    bool
	}{
		{"conversation", core.WorkflowConversation, true},
		{"image", core.WorkflowImage, true},
		{"audio", core.WorkflowAudio, true},
		{"  Audio\n", core.WorkflowAudio, true},
		{"IMAGE", core.WorkflowImage, true},
		{"video", core.WorkflowConversation, false},
		{"", core.WorkflowConversation, false},
		{"image please", core.WorkflowConversation, false},
	}
	for _, tc := range cases {
		got, ok := core.ParseWorkflow(tc.label)
		if got != tc.want || ok != tc.ok {
			t.Errorf("ParseWorkflow(%q) = (%q, %v), want (%q, %v)", tc.label, got, ok, tc.want, tc.ok)
		}
	}
}

func TestMessageConstructors(t *testing.T) {
	u := core.NewUserMessage("hi")
	a := core.NewAgentMessage("hello")
	c := core.NewContextMessage("<image attached>")

	if u.ID == "" || a.ID == "" || c.ID == "" {
		t.Fatal("messages must carry identities")
	}
	if u.ID == a.ID || a.ID == c.ID {
		t.Error("message identities must be unique")
	}
	if u.Role != core.RoleUser || u.Synthetic {
		t.Errorf("user message: %+v", u)
	}
	if a.Role != core.RoleAgent {
		t.Errorf("agent message: %+v", a)
	}
	if c.Role != core.RoleUser || !c.Synthetic {
		t.Errorf("context message should be synthetic user-role: %+v", c)
	}
}

func TestLastN(t *testing.T) {
	msgs := []core.Message{
		core.NewUserMessage("a"),
		core.NewAgentMessage("b"),
		core.NewUserMessage("c"),
	}

	if got := core.LastN(msgs, 2); len(got) != 2 || got[0].Content != "b" {
		t.Errorf("LastN(2) = %+v", got)
	}
	if got := core.LastN(msgs, 5); len(got) != 3 {
		t.Errorf("LastN(5) = %d messages, want all 3", len(got))
	}
	if got := core.LastN(msgs, 0); got != nil {
		t.Errorf("LastN(0) = %+v, want nil", got)
	}
	if got := core.LastN(nil, 3); got != nil {
		t.Errorf("LastN(nil) = %+v, want nil", got)
	}
}

func TestJoinContents(t *testing.T) {
	msgs := []core.Message{
		core.NewUserMessage("one"),
		core.NewAgentMessage("two"),
	}
	if got := core.JoinContents(msgs, " "); got != "one two" {
		t.Errorf("JoinContents = %q", got)
	}
	if got := core.JoinContents(nil, " "); got != "" {
		t.Errorf("JoinContents(nil) = %q, want empty", got)
	}
}
