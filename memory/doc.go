// Package memory provides the companion's long-term memory: durable facts
// extracted from user messages, retrievable by semantic relevance.
//
// Architecture:
//   - Store: vector storage backend (chromem-go embedded, pgvector for production)
//   - Embedder: text-to-vector conversion (ONNX local model, mock for tests)
//   - Analyzer: LLM judgment on whether a message carries a durable fact
//   - Manager: orchestrates extraction, duplicate suppression, and retrieval
//
// Workflow integration:
//   - extraction runs on the latest user message before routing
//   - injection retrieves and formats relevant facts before response generation
//
// Facts are immutable once stored. A near-duplicate check at write time keeps
// the store from accumulating restatements of the same fact.
package memory
