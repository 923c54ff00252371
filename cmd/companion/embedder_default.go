//go:build !onnx

package main

import (
	"github.com/Alok-Kumar2005/WhatsApp-Agent-Neural-maze/memory"
	"github.com/Alok-Kumar2005/WhatsApp-Agent-Neural-maze/memory/embedder/mock"
)

// newEmbedder returns the hash-based embedder. Build with -tags onnx for real
// semantic embeddings via a local ONNX model.
func newEmbedder() (memory.Embedder, error) {
	return mock.New(), nil
}
