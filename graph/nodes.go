package graph

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/Alok-Kumar2005/WhatsApp-Agent-Neural-maze/core"
)

// memoryExtractionNode hands exactly the latest message to the memory manager.
// Older history is never re-scanned; each message gets one shot at extraction,
// on the turn it arrives.
func (g *Graph) memoryExtractionNode(ctx context.Context, st *State) (Update, error) {
	if len(st.Messages) == 0 {
		return Update{}, nil
	}
	last := st.Messages[len(st.Messages)-1]
	if err := g.memory.ExtractAndStore(ctx, last); err != nil {
		return Update{}, fmt.Errorf("extract and store: %w", err)
	}
	return Update{}, nil
}

// routerNode classifies the recent window into one of the three response
// paths. Labels outside the fixed set clamp to conversation; only a transport
// failure from the classifier fails the turn.
func (g *Graph) routerNode(ctx context.Context, st *State) (Update, error) {
	recent := core.LastN(st.Messages, g.config.RouterMessagesToAnalyze)
	label, err := g.classifier.Classify(ctx, recent)
	if err != nil {
		return Update{}, fmt.Errorf("classify: %w", err)
	}
	workflow, ok := core.ParseWorkflow(label)
	if !ok {
		log.Printf("[GRAPH] Unrecognized route %q, defaulting to conversation", label)
	}
	return Update{Workflow: &workflow}, nil
}

// contextInjectionNode reads the schedule and flags the turn when the
// activity changed. An absent prior activity (first turn of a thread) counts
// as a change.
func (g *Graph) contextInjectionNode(ctx context.Context, st *State) (Update, error) {
	activity := g.schedule.CurrentActivity()
	apply := activity != st.CurrentActivity
	return Update{CurrentActivity: &activity, ApplyActivity: &apply}, nil
}

// memoryInjectionNode queries the store with the recent conversation and
// formats the hits for the prompt. The result is always a string; no
// memories means the empty string.
func (g *Graph) memoryInjectionNode(ctx context.Context, st *State) (Update, error) {
	recent := core.LastN(st.Messages, 3)
	query := core.JoinContents(recent, " ")

	memories, err := g.memory.Relevant(ctx, query)
	if err != nil {
		return Update{}, fmt.Errorf("relevant memories: %w", err)
	}
	memoryContext := g.memory.FormatForPrompt(memories)
	return Update{MemoryContext: &memoryContext}, nil
}

// responseInput assembles the common input contract for the response paths.
func (g *Graph) responseInput(st *State) ResponseInput {
	return ResponseInput{
		Messages:        st.Messages,
		CurrentActivity: st.CurrentActivity,
		MemoryContext:   st.MemoryContext,
		Summary:         st.Summary,
	}
}

// conversationNode is the plain text path.
func (g *Graph) conversationNode(ctx context.Context, st *State) (Update, error) {
	text, err := g.responder.Respond(ctx, g.responseInput(st))
	if err != nil {
		return Update{}, err
	}
	return Update{AppendMessages: []core.Message{core.NewAgentMessage(text)}}, nil
}

// imageNode derives a scenario from the recent window, renders it to a file,
// and injects a synthetic context message describing the attachment before
// the text response runs, so the reply is coherent with what was just shown.
func (g *Graph) imageNode(ctx context.Context, st *State) (Update, error) {
	recent := core.LastN(st.Messages, 5)
	prompt, err := g.images.CreateScenario(ctx, recent)
	if err != nil {
		return Update{}, fmt.Errorf("create scenario: %w", err)
	}

	if err := os.MkdirAll(g.config.ImageDir, 0o755); err != nil {
		return Update{}, fmt.Errorf("create image dir: %w", err)
	}
	path := filepath.Join(g.config.ImageDir, fmt.Sprintf("image_%s.png", uuid.New().String()))
	if err := g.images.Generate(ctx, prompt, path); err != nil {
		return Update{}, fmt.Errorf("generate image: %w", err)
	}

	attachment := core.NewContextMessage(
		fmt.Sprintf("<image attached by %s generated from prompt: %s>", g.config.CharacterName, prompt))

	in := g.responseInput(st)
	in.Messages = append(append([]core.Message(nil), st.Messages...), attachment)

	text, err := g.responder.Respond(ctx, in)
	if err != nil {
		return Update{}, err
	}
	return Update{
		AppendMessages: []core.Message{attachment, core.NewAgentMessage(text)},
		ImagePath:      &path,
	}, nil
}

// audioNode generates the text reply first, then synthesizes it. The reply is
// stored as a structured agent message exactly like the other two paths.
func (g *Graph) audioNode(ctx context.Context, st *State) (Update, error) {
	text, err := g.responder.Respond(ctx, g.responseInput(st))
	if err != nil {
		return Update{}, err
	}
	audio, err := g.speech.Synthesize(ctx, text)
	if err != nil {
		return Update{}, fmt.Errorf("synthesize speech: %w", err)
	}
	return Update{
		AppendMessages: []core.Message{core.NewAgentMessage(text)},
		AudioBuffer:    audio,
	}, nil
}

// summarizeNode condenses history into the rolling summary and prunes all but
// the trailing window, by message identity.
func (g *Graph) summarizeNode(ctx context.Context, st *State) (Update, error) {
	summary, err := g.summaries.Summarize(ctx, st.Messages, st.Summary)
	if err != nil {
		return Update{}, err
	}

	var removed []string
	if keep := g.config.MessagesAfterSummary; len(st.Messages) > keep {
		for _, m := range st.Messages[:len(st.Messages)-keep] {
			removed = append(removed, m.ID)
		}
	}
	return Update{Summary: &summary, RemoveMessages: removed}, nil
}
