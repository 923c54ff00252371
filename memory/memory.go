package memory

import (
	"context"
	"time"

	"github.com/Alok-Kumar2005/WhatsApp-Agent-Neural-maze/core"
)

// Memory is a durably stored fact extracted from user input.
// Memories are immutable after storage; newer, more specific facts supersede
// older ones implicitly through the store's duplicate check, never by mutation.
type Memory interface {
	ID() string
	Content() string
	CreatedAt() time.Time

	Embedding() []float32
	SetEmbedding([]float32)
}

// Manager orchestrates long-term memory for the workflow.
//
// The workflow is opinionated about WHEN memory runs (extraction before
// routing, injection before response generation). The Manager is unopinionated
// about HOW: implementations decide what counts as durable information, how
// relevance is scored, and how memories are rendered for the prompt.
type Manager interface {
	// ExtractAndStore inspects a single message for durable, reusable
	// information and persists it if found. The call blocks until the write
	// commits or fails; a nil return means either a committed write or a
	// deliberate skip (unimportant or duplicate content).
	ExtractAndStore(ctx context.Context, msg core.Message) error

	// Relevant returns the memories most relevant to the query text,
	// most relevant first. An empty slice is a valid result.
	// Relevant never mutates the store.
	Relevant(ctx context.Context, query string) ([]Memory, error)

	// FormatForPrompt renders memories into a single prompt-ready block.
	// Returns the empty string (never an absent value) when memories is empty.
	FormatForPrompt(memories []Memory) string
}

// Result pairs a memory with its similarity to the query embedding.
type Result struct {
	Memory     Memory
	Similarity float32
}

// Store is the vector storage backend.
// Implementations: ChromemStore (embedded), pgvector (production swap).
type Store interface {
	// Store saves a memory. The embedding must be set before calling Store.
	Store(ctx context.Context, mem Memory) error

	// Query retrieves up to limit memories by vector similarity,
	// highest similarity first.
	Query(ctx context.Context, embedding []float32, limit int) ([]Result, error)

	// Close releases resources.
	Close() error
}

// Embedder converts text to vector embeddings.
// Implementations: MockEmbedder (testing), ONNXEmbedder (local, build tag).
type Embedder interface {
	// Embed converts a single text to an embedding vector.
	Embed(ctx context.Context, text string) ([]float32, error)

	// Dimensions returns the embedding vector size.
	Dimensions() int
}

// Analysis is the outcome of judging a message for memory-worthiness.
type Analysis struct {
	// IsImportant reports whether the message contains durable information
	// worth remembering across conversations.
	IsImportant bool `json:"is_important"`

	// FormattedMemory is the fact restated in storable form,
	// e.g. "Loves jazz music". Empty when IsImportant is false.
	FormattedMemory string `json:"formatted_memory"`
}

// Analyzer judges whether a message contains a durable fact and reformats it
// for storage. An LLM-backed implementation lives in the provider package.
type Analyzer interface {
	Analyze(ctx context.Context, text string) (Analysis, error)
}
