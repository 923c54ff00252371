package memory

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/dgraph-io/ristretto"

	"github.com/Alok-Kumar2005/WhatsApp-Agent-Neural-maze/core"
)

// VectorManager is the standard Manager implementation: LLM-judged extraction
// in front of a vector store, with a small retrieval cache.
//
// Extraction pipeline per message:
//  1. Analyzer decides whether the message carries a durable fact
//  2. the fact is embedded
//  3. a near-duplicate check against the store skips facts already known
//  4. the fact is persisted
//
// Retrieval embeds the query, takes the top-K hits above the similarity
// floor, and caches the result per query text. The cache is cleared on every
// committed write so injection always sees fresh facts.
type VectorManager struct {
	store    Store
	embedder Embedder
	analyzer Analyzer
	config   *Config
	cache    *ristretto.Cache
}

// Config holds VectorManager tunables.
type Config struct {
	// TopK is the number of memories returned by Relevant.
	TopK int

	// MinSimilarity is the floor below which query hits are discarded [0.0-1.0].
	MinSimilarity float32

	// DuplicateSimilarity is the threshold at or above which a new fact is
	// considered already known and skipped [0.0-1.0].
	DuplicateSimilarity float32
}

// DefaultConfig returns sensible defaults for the embedded store.
func DefaultConfig() *Config {
	return &Config{
		TopK:                3,
		MinSimilarity:       0.5,
		DuplicateSimilarity: 0.9,
	}
}

// NewVectorManager creates a VectorManager. A nil config uses DefaultConfig.
func NewVectorManager(store Store, embedder Embedder, analyzer Analyzer, config *Config) (*VectorManager, error) {
	if config == nil {
		config = DefaultConfig()
	}
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1e4,
		MaxCost:     1 << 20,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create retrieval cache: %w", err)
	}
	return &VectorManager{
		store:    store,
		embedder: embedder,
		analyzer: analyzer,
		config:   config,
		cache:    cache,
	}, nil
}

// ExtractAndStore analyzes a single user message and persists the extracted
// fact if it is both important and not already known.
func (m *VectorManager) ExtractAndStore(ctx context.Context, msg core.Message) error {
	// Only genuine user turns carry extractable facts. Agent responses and
	// synthetic context messages are skipped outright.
	if msg.Role != core.RoleUser || msg.Synthetic || strings.TrimSpace(msg.Content) == "" {
		return nil
	}

	analysis, err := m.analyzer.Analyze(ctx, msg.Content)
	if err != nil {
		return fmt.Errorf("analyze message: %w", err)
	}
	if !analysis.IsImportant || analysis.FormattedMemory == "" {
		log.Printf("[MEMORY] Nothing durable in message, skipping: %q", truncateLog(msg.Content, 50))
		return nil
	}

	embedding, err := m.embedder.Embed(ctx, analysis.FormattedMemory)
	if err != nil {
		return fmt.Errorf("embed fact: %w", err)
	}

	// Skip facts the store already holds a near-identical version of.
	existing, err := m.store.Query(ctx, embedding, 1)
	if err != nil {
		return fmt.Errorf("duplicate check: %w", err)
	}
	if len(existing) > 0 && existing[0].Similarity >= m.config.DuplicateSimilarity {
		log.Printf("[MEMORY] Similar memory already stored, skipping: %q", analysis.FormattedMemory)
		return nil
	}

	mem := NewFactMemory(analysis.FormattedMemory)
	mem.SetEmbedding(embedding)
	if err := m.store.Store(ctx, mem); err != nil {
		return fmt.Errorf("store fact: %w", err)
	}
	log.Printf("[MEMORY] Stored fact: %q", analysis.FormattedMemory)

	// New facts invalidate every cached retrieval.
	m.cache.Clear()
	return nil
}

// Relevant returns the top-K memories for the query, most relevant first.
func (m *VectorManager) Relevant(ctx context.Context, query string) ([]Memory, error) {
	if strings.TrimSpace(query) == "" {
		return nil, nil
	}

	if cached, ok := m.cache.Get(query); ok {
		return cached.([]Memory), nil
	}

	embedding, err := m.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	results, err := m.store.Query(ctx, embedding, m.config.TopK)
	if err != nil {
		return nil, fmt.Errorf("query store: %w", err)
	}

	memories := make([]Memory, 0, len(results))
	for _, r := range results {
		if r.Similarity < m.config.MinSimilarity {
			continue
		}
		memories = append(memories, r.Memory)
	}
	log.Printf("[MEMORY] Retrieved %d memories for query: %q", len(memories), truncateLog(query, 50))

	m.cache.Set(query, memories, int64(len(memories)+1))
	m.cache.Wait()
	return memories, nil
}

// FormatForPrompt renders memories as one bullet line per fact.
// Returns "" for an empty list, never an absent value.
func (m *VectorManager) FormatForPrompt(memories []Memory) string {
	if len(memories) == 0 {
		return ""
	}
	lines := make([]string, 0, len(memories))
	for _, mem := range memories {
		lines = append(lines, "- "+mem.Content())
	}
	return strings.Join(lines, "\n")
}

// Close releases the store and cache.
func (m *VectorManager) Close() error {
	m.cache.Close()
	return m.store.Close()
}

// truncateLog truncates text for logging.
func truncateLog(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
