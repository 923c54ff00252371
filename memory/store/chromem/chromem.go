// Package chromem implements the memory store on chromem-go,
// a pure Go embedded vector database.
package chromem

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	chromem "github.com/philippgille/chromem-go"

	"github.com/Alok-Kumar2005/WhatsApp-Agent-Neural-maze/memory"
)

const collectionName = "long_term_memory"

// ChromemStore wraps chromem-go as the fact store backing the memory manager.
type ChromemStore struct {
	db  *chromem.DB
	col *chromem.Collection
	mu  sync.Mutex
}

// New creates a new chromem-based store.
func New() (*ChromemStore, error) {
	return &ChromemStore{db: chromem.NewDB()}, nil
}

// collection lazily creates the single fact collection.
func (s *ChromemStore) collection() (*chromem.Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.col != nil {
		return s.col, nil
	}

	// No custom embedding func (embeddings are provided by the manager),
	// default cosine distance.
	col, err := s.db.CreateCollection(collectionName, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("create collection: %w", err)
	}
	s.col = col
	return col, nil
}

// Store saves a fact with its embedding.
func (s *ChromemStore) Store(ctx context.Context, mem memory.Memory) error {
	col, err := s.collection()
	if err != nil {
		return err
	}

	log.Printf("[CHROMEM] Storing memory: id=%s", mem.ID())

	doc := chromem.Document{
		ID:        mem.ID(),
		Content:   mem.Content(),
		Embedding: mem.Embedding(),
		Metadata: map[string]string{
			"created_at": mem.CreatedAt().Format(time.RFC3339),
		},
	}
	if err := col.AddDocument(ctx, doc); err != nil {
		return fmt.Errorf("add document: %w", err)
	}
	return nil
}

// Query retrieves facts by vector similarity, highest first.
func (s *ChromemStore) Query(ctx context.Context, embedding []float32, limit int) ([]memory.Result, error) {
	col, err := s.collection()
	if err != nil {
		return nil, err
	}

	// chromem-go requires nResults <= collection size.
	// Retry with smaller limits until the query fits.
	var results []chromem.Result
	for currentLimit := limit; currentLimit >= 1; currentLimit-- {
		results, err = col.QueryEmbedding(ctx, embedding, currentLimit, nil, nil)
		if err == nil {
			break
		}
		if isInsufficientDocsError(err) {
			if currentLimit == 1 {
				// Collection is empty
				return nil, nil
			}
			continue
		}
		return nil, fmt.Errorf("chromem query: %w", err)
	}

	out := make([]memory.Result, 0, len(results))
	for _, r := range results {
		createdAt, _ := time.Parse(time.RFC3339, r.Metadata["created_at"])
		mem := memory.NewFactMemoryFromStorage(r.ID, r.Content, createdAt, r.Embedding)
		out = append(out, memory.Result{Memory: mem, Similarity: r.Similarity})
	}
	return out, nil
}

// Close releases resources. chromem-go keeps everything in memory,
// nothing to release.
func (s *ChromemStore) Close() error {
	return nil
}

// isInsufficientDocsError checks if the error is chromem rejecting a limit
// larger than the collection.
func isInsufficientDocsError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "nResults must be") || strings.Contains(msg, "number of documents")
}
