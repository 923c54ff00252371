package core

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role identifies who produced a message.
type Role string

const (
	// RoleUser marks a message sent by the user.
	RoleUser Role = "user"

	// RoleAgent marks a message produced by the companion.
	RoleAgent Role = "agent"
)

// Message is a single entry in a conversation thread.
//
// The ID is assigned once at creation and is the only thing pruning keys on.
// Positions shift when old history is pruned, IDs never do.
type Message struct {
	ID      string
	Role    Role
	Content string

	// Synthetic marks a context message injected by the workflow itself
	// (e.g. the image-attachment note), as opposed to a genuine user turn.
	// Synthetic messages carry RoleUser on the wire but are never treated
	// as user input by memory extraction.
	Synthetic bool

	CreatedAt time.Time
}

// NewUserMessage creates a message for a genuine user turn.
func NewUserMessage(content string) Message {
	return Message{
		ID:        uuid.New().String(),
		Role:      RoleUser,
		Content:   content,
		CreatedAt: time.Now(),
	}
}

// NewAgentMessage creates a message for a companion response.
func NewAgentMessage(content string) Message {
	return Message{
		ID:        uuid.New().String(),
		Role:      RoleAgent,
		Content:   content,
		CreatedAt: time.Now(),
	}
}

// NewContextMessage creates a synthetic user-role message injected by the
// workflow, such as the note describing an attached image.
func NewContextMessage(content string) Message {
	return Message{
		ID:        uuid.New().String(),
		Role:      RoleUser,
		Content:   content,
		Synthetic: true,
		CreatedAt: time.Now(),
	}
}

// LastN returns the trailing n messages in chronological order.
// The returned slice aliases msgs; callers must not mutate it.
func LastN(msgs []Message, n int) []Message {
	if n <= 0 || len(msgs) == 0 {
		return nil
	}
	if len(msgs) <= n {
		return msgs
	}
	return msgs[len(msgs)-n:]
}

// JoinContents concatenates message contents with the given separator.
func JoinContents(msgs []Message, sep string) string {
	parts := make([]string, 0, len(msgs))
	for _, m := range msgs {
		parts = append(parts, m.Content)
	}
	return strings.Join(parts, sep)
}
