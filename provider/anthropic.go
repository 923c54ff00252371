// Package provider implements the external generation collaborators: the
// Anthropic-backed text routines (routing, character response, summarization,
// memory analysis) and the HTTP clients for image generation and speech
// synthesis.
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/Alok-Kumar2005/WhatsApp-Agent-Neural-maze/core"
	"github.com/Alok-Kumar2005/WhatsApp-Agent-Neural-maze/graph"
	"github.com/Alok-Kumar2005/WhatsApp-Agent-Neural-maze/memory"
)

const (
	defaultModel     = "claude-sonnet-4-20250514"
	defaultMaxTokens = 1024
)

// Anthropic implements the text-generation collaborators on the Anthropic
// API: graph.Classifier, graph.Responder, graph.SummaryGenerator, the
// scenario half of image generation, and memory.Analyzer.
type Anthropic struct {
	client    *anthropic.Client
	model     string
	maxTokens int64
	character string
}

// Option configures the Anthropic provider.
type Option func(*Anthropic)

// WithModel overrides the Claude model.
func WithModel(model string) Option {
	return func(a *Anthropic) {
		a.model = model
	}
}

// WithMaxTokens overrides the response token cap.
func WithMaxTokens(n int64) Option {
	return func(a *Anthropic) {
		a.maxTokens = n
	}
}

// WithCharacterName sets the companion's name used in prompts.
func WithCharacterName(name string) Option {
	return func(a *Anthropic) {
		a.character = name
	}
}

// NewAnthropic creates the provider around an Anthropic client.
func NewAnthropic(client *anthropic.Client, opts ...Option) *Anthropic {
	a := &Anthropic{
		client:    client,
		model:     defaultModel,
		maxTokens: defaultMaxTokens,
		character: "Ava",
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Classify routes the recent window to one of the response modes. The raw
// label is returned as-is; the graph owns validation and clamping.
func (a *Anthropic) Classify(ctx context.Context, recent []core.Message) (string, error) {
	if len(recent) == 0 {
		return string(core.WorkflowConversation), nil
	}
	label, err := a.complete(ctx, routerPrompt, []anthropic.MessageParam{
		anthropic.NewUserMessage(anthropic.NewTextBlock(transcript(recent))),
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(label), nil
}

// Respond generates the companion's reply from the full response contract.
func (a *Anthropic) Respond(ctx context.Context, in graph.ResponseInput) (string, error) {
	system := characterCard(a.character, in.CurrentActivity, in.MemoryContext, in.Summary)
	return a.complete(ctx, system, toMessageParams(in.Messages))
}

// Summarize creates or extends the rolling summary. The instruction is
// appended as a final user message after the history, so the model condenses
// "the messages above".
func (a *Anthropic) Summarize(ctx context.Context, messages []core.Message, existing string) (string, error) {
	var instruction string
	if existing != "" {
		instruction = fmt.Sprintf(
			"This is the summary of the conversation to date between %s and the user: %s\n\n"+
				"Extend the summary by taking into account the new messages above:",
			a.character, existing)
	} else {
		instruction = fmt.Sprintf(
			"Create a summary of the conversation above between %s and the user. "+
				"The summary must be a short description of the conversation so far, "+
				"but one that captures all the relevant information shared.",
			a.character)
	}

	params := append(toMessageParams(messages),
		anthropic.NewUserMessage(anthropic.NewTextBlock(instruction)))
	return a.complete(ctx, summaryPrompt, params)
}

// Analyze judges a message for durable information and reformats it as a
// storable fact.
func (a *Anthropic) Analyze(ctx context.Context, text string) (memory.Analysis, error) {
	raw, err := a.complete(ctx, memoryAnalysisPrompt, []anthropic.MessageParam{
		anthropic.NewUserMessage(anthropic.NewTextBlock(text)),
	})
	if err != nil {
		return memory.Analysis{}, err
	}

	var analysis memory.Analysis
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &analysis); err != nil {
		return memory.Analysis{}, fmt.Errorf("parse analysis %q: %w", raw, err)
	}
	return analysis, nil
}

// CreateScenario derives an image-generation prompt from the recent window.
func (a *Anthropic) CreateScenario(ctx context.Context, recent []core.Message) (string, error) {
	prompt, err := a.complete(ctx, scenarioPrompt, []anthropic.MessageParam{
		anthropic.NewUserMessage(anthropic.NewTextBlock(transcript(recent))),
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(prompt), nil
}

// complete makes a single non-streaming model call and concatenates the text
// blocks of the response.
func (a *Anthropic) complete(ctx context.Context, system string, messages []anthropic.MessageParam) (string, error) {
	resp, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(a.model),
		MaxTokens: a.maxTokens,
		Messages:  messages,
		System: []anthropic.TextBlockParam{
			{Text: system},
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic api: %w", err)
	}

	var text string
	for _, block := range resp.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}
	return text, nil
}

// toMessageParams converts history to API messages, merging consecutive
// same-role messages into multi-block params. Synthetic context messages ride
// along as user-role blocks.
func toMessageParams(msgs []core.Message) []anthropic.MessageParam {
	var out []anthropic.MessageParam
	var blocks []anthropic.ContentBlockParamUnion
	var role core.Role

	flush := func() {
		if len(blocks) == 0 {
			return
		}
		if role == core.RoleAgent {
			out = append(out, anthropic.NewAssistantMessage(blocks...))
		} else {
			out = append(out, anthropic.NewUserMessage(blocks...))
		}
		blocks = nil
	}

	for _, m := range msgs {
		if len(blocks) > 0 && m.Role != role {
			flush()
		}
		role = m.Role
		blocks = append(blocks, anthropic.NewTextBlock(m.Content))
	}
	flush()
	return out
}

// transcript renders messages as role-labelled lines for single-shot prompts.
func transcript(msgs []core.Message) string {
	var b strings.Builder
	for _, m := range msgs {
		if m.Role == core.RoleAgent {
			b.WriteString("assistant: ")
		} else {
			b.WriteString("user: ")
		}
		b.WriteString(m.Content)
		b.WriteByte('\n')
	}
	return b.String()
}

// stripCodeFence unwraps a ```json ... ``` fenced response.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
