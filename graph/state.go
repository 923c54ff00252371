package graph

import "github.com/Alok-Kumar2005/WhatsApp-Agent-Neural-maze/core"

// State is the shared conversation record threaded through every node of a
// turn. One instance exists per conversation thread; the engine clones it at
// the start of a turn so a failed turn never leaks partial updates.
type State struct {
	// Messages is the chronological history. Append-only except for
	// identity-keyed pruning during summarization.
	Messages []core.Message

	// Summary condenses all pruned history. Empty until the first
	// summarization, extend-only afterwards.
	Summary string

	// Workflow is the last routing decision, recomputed every turn.
	Workflow core.Workflow

	// CurrentActivity is the companion's declared activity, sticky across
	// turns until the schedule changes it.
	CurrentActivity string

	// ApplyActivity is true only on the turn the activity changed.
	ApplyActivity bool

	// MemoryContext is the formatted block of relevant memories,
	// recomputed every turn. Empty string when nothing is relevant.
	MemoryContext string

	// ImagePath and AudioBuffer are per-turn artifacts, set only by the
	// corresponding response path.
	ImagePath   string
	AudioBuffer []byte
}

// Clone returns a deep copy of the state. The engine runs each turn against a
// clone so the caller's state survives node failures untouched.
func (s State) Clone() State {
	out := s
	out.Messages = append([]core.Message(nil), s.Messages...)
	out.AudioBuffer = append([]byte(nil), s.AudioBuffer...)
	return out
}

// LastAgentText returns the content of the most recent agent message.
func (s State) LastAgentText() string {
	for i := len(s.Messages) - 1; i >= 0; i-- {
		if s.Messages[i].Role == core.RoleAgent {
			return s.Messages[i].Content
		}
	}
	return ""
}

// Update is a sparse patch produced by a node. Nodes never mutate State
// directly; the engine applies each Update with fixed merge rules:
// append for messages, identity-based removal for pruning, replace for
// scalar fields. Nil pointer fields leave the current value unchanged.
type Update struct {
	// AppendMessages are added to the end of the history, in order.
	AppendMessages []core.Message

	// RemoveMessages prunes history by message identity. Identities that
	// are no longer present are skipped silently.
	RemoveMessages []string

	Summary         *string
	Workflow        *core.Workflow
	CurrentActivity *string
	ApplyActivity   *bool
	MemoryContext   *string
	ImagePath       *string

	// AudioBuffer replaces the artifact when non-nil.
	AudioBuffer []byte
}

// Apply merges an Update into the state. Removals run before appends so a
// single Update can prune old history and add new messages without the new
// ones being eligible for its own removal set.
func (s *State) Apply(u Update) {
	if len(u.RemoveMessages) > 0 {
		drop := make(map[string]struct{}, len(u.RemoveMessages))
		for _, id := range u.RemoveMessages {
			drop[id] = struct{}{}
		}
		kept := s.Messages[:0]
		for _, m := range s.Messages {
			if _, ok := drop[m.ID]; ok {
				continue
			}
			kept = append(kept, m)
		}
		s.Messages = kept
	}

	s.Messages = append(s.Messages, u.AppendMessages...)

	if u.Summary != nil {
		s.Summary = *u.Summary
	}
	if u.Workflow != nil {
		s.Workflow = *u.Workflow
	}
	if u.CurrentActivity != nil {
		s.CurrentActivity = *u.CurrentActivity
	}
	if u.ApplyActivity != nil {
		s.ApplyActivity = *u.ApplyActivity
	}
	if u.MemoryContext != nil {
		s.MemoryContext = *u.MemoryContext
	}
	if u.ImagePath != nil {
		s.ImagePath = *u.ImagePath
	}
	if u.AudioBuffer != nil {
		s.AudioBuffer = u.AudioBuffer
	}
}
