// Package graph implements the per-turn workflow: memory extraction, routing,
// activity-context injection, memory injection, response generation, and
// conditional summarization, sequenced as a fixed pipeline over a shared
// conversation state.
package graph

import (
	"context"
	"fmt"
	"log"

	"github.com/Alok-Kumar2005/WhatsApp-Agent-Neural-maze/core"
	"github.com/Alok-Kumar2005/WhatsApp-Agent-Neural-maze/memory"
)

// Classifier decides which response path a turn takes. It sees only a recency
// window of messages; the graph clamps anything outside the fixed workflow
// set to conversation.
type Classifier interface {
	Classify(ctx context.Context, recent []core.Message) (string, error)
}

// ResponseInput is the common contract shared by all three response paths.
type ResponseInput struct {
	Messages        []core.Message
	CurrentActivity string
	MemoryContext   string
	Summary         string
}

// Responder generates the companion's text reply.
type Responder interface {
	Respond(ctx context.Context, in ResponseInput) (string, error)
}

// SummaryGenerator condenses history into a rolling summary. When existing is
// non-empty it must extend it with the new messages, never start over.
type SummaryGenerator interface {
	Summarize(ctx context.Context, messages []core.Message, existing string) (string, error)
}

// ImageGenerator derives a scenario prompt from recent messages and renders
// it to an image file.
type ImageGenerator interface {
	CreateScenario(ctx context.Context, recent []core.Message) (string, error)
	Generate(ctx context.Context, prompt, path string) error
}

// SpeechSynthesizer converts response text to audio bytes.
type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// ActivitySource reports the companion's scheduled activity for the current
// wall-clock time.
type ActivitySource interface {
	CurrentActivity() string
}

// Collaborators are the external components a Graph runs against.
// All fields are required.
type Collaborators struct {
	Classifier Classifier
	Responder  Responder
	Summaries  SummaryGenerator
	Images     ImageGenerator
	Speech     SpeechSynthesizer
	Memory     memory.Manager
	Schedule   ActivitySource
}

type nodeFunc func(ctx context.Context, st *State) (Update, error)

// Graph is the workflow engine. It owns no shared mutable state: distinct
// conversation threads can run turns concurrently as long as the memory
// manager and schedule are safe for concurrent use.
type Graph struct {
	classifier Classifier
	responder  Responder
	summaries  SummaryGenerator
	images     ImageGenerator
	speech     SpeechSynthesizer
	memory     memory.Manager
	schedule   ActivitySource
	config     *core.Config

	dispatch map[core.Workflow]nodeFunc
}

// New creates a Graph. A nil config uses core.DefaultConfig.
func New(c Collaborators, config *core.Config) (*Graph, error) {
	switch {
	case c.Classifier == nil:
		return nil, fmt.Errorf("classifier is required")
	case c.Responder == nil:
		return nil, fmt.Errorf("responder is required")
	case c.Summaries == nil:
		return nil, fmt.Errorf("summary generator is required")
	case c.Images == nil:
		return nil, fmt.Errorf("image generator is required")
	case c.Speech == nil:
		return nil, fmt.Errorf("speech synthesizer is required")
	case c.Memory == nil:
		return nil, fmt.Errorf("memory manager is required")
	case c.Schedule == nil:
		return nil, fmt.Errorf("activity schedule is required")
	}
	if config == nil {
		config = core.DefaultConfig()
	}

	g := &Graph{
		classifier: c.Classifier,
		responder:  c.Responder,
		summaries:  c.Summaries,
		images:     c.Images,
		speech:     c.Speech,
		memory:     c.Memory,
		schedule:   c.Schedule,
		config:     config,
	}
	g.dispatch = map[core.Workflow]nodeFunc{
		core.WorkflowConversation: g.conversationNode,
		core.WorkflowImage:        g.imageNode,
		core.WorkflowAudio:        g.audioNode,
	}
	return g, nil
}

// Run executes one full turn: the user message is appended to history and the
// node pipeline runs to completion. On success the advanced state is
// returned; on any node failure the input state is returned unchanged along
// with the error, so the caller never persists a partial turn.
func (g *Graph) Run(ctx context.Context, state State, userMessage string) (State, error) {
	st := state.Clone()

	// Artifacts belong to the turn that produced them.
	st.ImagePath = ""
	st.AudioBuffer = nil

	if userMessage != "" {
		st.Apply(Update{AppendMessages: []core.Message{core.NewUserMessage(userMessage)}})
	}

	steps := []struct {
		name string
		fn   nodeFunc
	}{
		{"memory_extraction", g.memoryExtractionNode},
		{"router", g.routerNode},
		{"context_injection", g.contextInjectionNode},
		{"memory_injection", g.memoryInjectionNode},
	}
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return state, fmt.Errorf("turn aborted before %s: %w", step.name, err)
		}
		u, err := step.fn(ctx, &st)
		if err != nil {
			return state, fmt.Errorf("%s: %w", step.name, err)
		}
		st.Apply(u)
	}

	respond, ok := g.dispatch[st.Workflow]
	if !ok {
		// The router clamps to the fixed set, so this only fires on a bug.
		return state, fmt.Errorf("no response path for workflow %q", st.Workflow)
	}
	u, err := respond(ctx, &st)
	if err != nil {
		return state, fmt.Errorf("%s response: %w", st.Workflow, err)
	}
	st.Apply(u)

	if len(st.Messages) > g.config.SummaryTrigger {
		u, err := g.summarizeNode(ctx, &st)
		if err != nil {
			return state, fmt.Errorf("summarize: %w", err)
		}
		st.Apply(u)
		log.Printf("[GRAPH] Summarized history, %d messages retained", len(st.Messages))
	}

	return st, nil
}
