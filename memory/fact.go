package memory

import (
	"time"

	"github.com/google/uuid"
)

// FactMemory is the standard Memory implementation: a single extracted fact
// about the user, e.g. "Lives in Porto" or "Loves jazz music".
type FactMemory struct {
	id        string
	content   string
	createdAt time.Time
	embedding []float32
}

// NewFactMemory creates a FactMemory with a fresh identity.
func NewFactMemory(content string) *FactMemory {
	return &FactMemory{
		id:        uuid.New().String(),
		content:   content,
		createdAt: time.Now(),
	}
}

// NewFactMemoryFromStorage rebuilds a FactMemory from stored data.
// Used by Store implementations when deserializing.
func NewFactMemoryFromStorage(id, content string, createdAt time.Time, embedding []float32) *FactMemory {
	return &FactMemory{
		id:        id,
		content:   content,
		createdAt: createdAt,
		embedding: embedding,
	}
}

func (f *FactMemory) ID() string               { return f.id }
func (f *FactMemory) Content() string          { return f.content }
func (f *FactMemory) CreatedAt() time.Time     { return f.createdAt }
func (f *FactMemory) Embedding() []float32     { return f.embedding }
func (f *FactMemory) SetEmbedding(e []float32) { f.embedding = e }
