package graph_test

import (
	"testing"

	"github.com/Alok-Kumar2005/WhatsApp-Agent-Neural-maze/core"
	"github.com/Alok-Kumar2005/WhatsApp-Agent-Neural-maze/graph"
)

func strPtr(s string) *string { return &s }

func TestApplyScalarReplacement(t *testing.T) {
	st := graph.State{Summary: "old", MemoryContext: "old"}

	wf := core.WorkflowAudio
	apply := true
	st.Apply(graph.Update{
		Summary:         strPtr("new summary"),
		Workflow:        &wf,
		CurrentActivity: strPtr("Swimming laps at the local pool"),
		ApplyActivity:   &apply,
		MemoryContext:   strPtr(""),
		AudioBuffer:     []byte("abc"),
	})

	if st.Summary != "new summary" {
		t.Errorf("Summary = %q", st.Summary)
	}
	if st.Workflow != core.WorkflowAudio {
		t.Errorf("Workflow = %q", st.Workflow)
	}
	if st.CurrentActivity != "Swimming laps at the local pool" {
		t.Errorf("CurrentActivity = %q", st.CurrentActivity)
	}
	if !st.ApplyActivity {
		t.Error("ApplyActivity not applied")
	}
	if st.MemoryContext != "" {
		t.Errorf("MemoryContext = %q, want cleared", st.MemoryContext)
	}
	if string(st.AudioBuffer) != "abc" {
		t.Errorf("AudioBuffer = %v", st.AudioBuffer)
	}
}

func TestApplyNilFieldsLeaveStateUnchanged(t *testing.T) {
	st := graph.State{
		Summary:         "keep",
		Workflow:        core.WorkflowImage,
		CurrentActivity: "keep",
		MemoryContext:   "keep",
	}
	st.Apply(graph.Update{})

	if st.Summary != "keep" || st.CurrentActivity != "keep" || st.MemoryContext != "keep" {
		t.Errorf("empty update changed scalars: %+v", st)
	}
	if st.Workflow != core.WorkflowImage {
		t.Errorf("empty update changed workflow: %q", st.Workflow)
	}
}

func TestApplyRemovesByIdentity(t *testing.T) {
	a := core.NewUserMessage("a")
	b := core.NewAgentMessage("b")
	c := core.NewUserMessage("c")
	st := graph.State{Messages: []core.Message{a, b, c}}

	st.Apply(graph.Update{RemoveMessages: []string{b.ID, "not-a-real-id"}})

	if len(st.Messages) != 2 {
		t.Fatalf("messages = %d, want 2", len(st.Messages))
	}
	if st.Messages[0].ID != a.ID || st.Messages[1].ID != c.ID {
		t.Errorf("wrong messages survived: %+v", st.Messages)
	}
}

func TestApplyRemovalRunsBeforeAppend(t *testing.T) {
	a := core.NewUserMessage("a")
	b := core.NewAgentMessage("b")
	st := graph.State{Messages: []core.Message{a, b}}

	fresh := core.NewUserMessage("fresh")
	st.Apply(graph.Update{
		RemoveMessages: []string{a.ID, b.ID},
		AppendMessages: []core.Message{fresh},
	})

	if len(st.Messages) != 1 || st.Messages[0].ID != fresh.ID {
		t.Errorf("expected only the appended message, got %+v", st.Messages)
	}
}

func TestApplyAppendPreservesOrder(t *testing.T) {
	st := graph.State{}
	first := core.NewUserMessage("first")
	second := core.NewAgentMessage("second")
	st.Apply(graph.Update{AppendMessages: []core.Message{first, second}})

	if len(st.Messages) != 2 || st.Messages[0].ID != first.ID || st.Messages[1].ID != second.ID {
		t.Errorf("append order broken: %+v", st.Messages)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	orig := graph.State{
		Messages:    []core.Message{core.NewUserMessage("hello")},
		AudioBuffer: []byte{1, 2, 3},
	}

	clone := orig.Clone()
	clone.Messages[0].Content = "mutated"
	clone.Messages = append(clone.Messages, core.NewAgentMessage("extra"))
	clone.AudioBuffer[0] = 9

	if orig.Messages[0].Content != "hello" {
		t.Error("clone aliases the message slice")
	}
	if len(orig.Messages) != 1 {
		t.Error("clone append leaked into original")
	}
	if orig.AudioBuffer[0] != 1 {
		t.Error("clone aliases the audio buffer")
	}
}

func TestLastAgentText(t *testing.T) {
	st := graph.State{Messages: []core.Message{
		core.NewUserMessage("q1"),
		core.NewAgentMessage("a1"),
		core.NewAgentMessage("a2"),
		core.NewUserMessage("q2"),
	}}
	if got := st.LastAgentText(); got != "a2" {
		t.Errorf("LastAgentText = %q, want a2", got)
	}

	empty := graph.State{Messages: []core.Message{core.NewUserMessage("q")}}
	if got := empty.LastAgentText(); got != "" {
		t.Errorf("LastAgentText = %q, want empty", got)
	}
}
