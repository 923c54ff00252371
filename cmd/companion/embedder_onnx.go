//go:build onnx

package main

import (
	"os"

	"github.com/Alok-Kumar2005/WhatsApp-Agent-Neural-maze/memory"
	"github.com/Alok-Kumar2005/WhatsApp-Agent-Neural-maze/memory/embedder/onnx"
)

// newEmbedder returns the local ONNX embedder (all-MiniLM-L6-v2 by default).
func newEmbedder() (memory.Embedder, error) {
	return onnx.New(onnx.Config{
		ModelPath:     os.Getenv("ONNX_MODEL_PATH"),
		TokenizerPath: os.Getenv("ONNX_TOKENIZER_PATH"),
	})
}
