package thread_test

import (
	"testing"

	"github.com/Alok-Kumar2005/WhatsApp-Agent-Neural-maze/core"
	"github.com/Alok-Kumar2005/WhatsApp-Agent-Neural-maze/graph"
	"github.com/Alok-Kumar2005/WhatsApp-Agent-Neural-maze/thread"
)

func TestLoadMissingThread(t *testing.T) {
	store := thread.NewMemoryStore()

	st, ok := store.Load("nope")
	if ok {
		t.Fatal("Load reported an unknown thread as present")
	}
	if len(st.Messages) != 0 || st.Summary != "" {
		t.Errorf("missing thread returned non-zero state: %+v", st)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := thread.NewMemoryStore()

	st := graph.State{
		Messages: []core.Message{
			core.NewUserMessage("hello"),
			core.NewAgentMessage("hi there"),
		},
		Summary:         "a short chat",
		Workflow:        core.WorkflowConversation,
		CurrentActivity: "Reading in Dolores Park",
	}
	store.Save("t1", st)

	got, ok := store.Load("t1")
	if !ok {
		t.Fatal("saved thread not found")
	}
	if len(got.Messages) != 2 {
		t.Fatalf("Load returned %d messages, want 2", len(got.Messages))
	}
	if got.Messages[1].Content != "hi there" {
		t.Errorf("message content = %q, want %q", got.Messages[1].Content, "hi there")
	}
	if got.Summary != st.Summary || got.CurrentActivity != st.CurrentActivity {
		t.Errorf("scalar fields not preserved: %+v", got)
	}
}

func TestSaveReplaces(t *testing.T) {
	store := thread.NewMemoryStore()

	store.Save("t1", graph.State{Summary: "first"})
	store.Save("t1", graph.State{Summary: "second"})

	got, _ := store.Load("t1")
	if got.Summary != "second" {
		t.Errorf("Summary = %q, want %q", got.Summary, "second")
	}
}

func TestThreadsAreIsolated(t *testing.T) {
	store := thread.NewMemoryStore()

	store.Save("a", graph.State{Summary: "alpha"})
	store.Save("b", graph.State{Summary: "beta"})

	a, _ := store.Load("a")
	b, _ := store.Load("b")
	if a.Summary != "alpha" || b.Summary != "beta" {
		t.Errorf("cross-thread contamination: a=%q b=%q", a.Summary, b.Summary)
	}
}

func TestStoredStateDoesNotAliasCaller(t *testing.T) {
	store := thread.NewMemoryStore()

	st := graph.State{Messages: []core.Message{core.NewUserMessage("original")}}
	store.Save("t1", st)

	// Mutating the caller's copy after Save must not affect the stored record.
	st.Messages[0].Content = "mutated"

	got, _ := store.Load("t1")
	if got.Messages[0].Content != "original" {
		t.Errorf("stored state aliased the caller's slice: %q", got.Messages[0].Content)
	}

	// Mutating a loaded copy must not affect subsequent loads either.
	got.Messages[0].Content = "mutated again"
	again, _ := store.Load("t1")
	if again.Messages[0].Content != "original" {
		t.Errorf("loaded state aliased the stored record: %q", again.Messages[0].Content)
	}
}
