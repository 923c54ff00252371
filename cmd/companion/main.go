// Command companion runs the conversational companion behind a WebSocket
// chat gateway.
package main

import (
	"log"
	"net/http"
	"os"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/joho/godotenv"

	"github.com/Alok-Kumar2005/WhatsApp-Agent-Neural-maze/core"
	"github.com/Alok-Kumar2005/WhatsApp-Agent-Neural-maze/graph"
	"github.com/Alok-Kumar2005/WhatsApp-Agent-Neural-maze/memory"
	"github.com/Alok-Kumar2005/WhatsApp-Agent-Neural-maze/memory/store/chromem"
	"github.com/Alok-Kumar2005/WhatsApp-Agent-Neural-maze/provider"
	"github.com/Alok-Kumar2005/WhatsApp-Agent-Neural-maze/schedule"
	"github.com/Alok-Kumar2005/WhatsApp-Agent-Neural-maze/server"
	"github.com/Alok-Kumar2005/WhatsApp-Agent-Neural-maze/thread"
)

func main() {
	// Load .env if present; system env vars work fine without one.
	_ = godotenv.Load()

	anthropicKey := os.Getenv("ANTHROPIC_API_KEY")
	if anthropicKey == "" {
		log.Fatal("ANTHROPIC_API_KEY environment variable is required")
	}
	elevenKey := os.Getenv("ELEVENLABS_API_KEY")
	if elevenKey == "" {
		log.Fatal("ELEVENLABS_API_KEY environment variable is required")
	}
	voiceID := os.Getenv("ELEVENLABS_VOICE_ID")
	if voiceID == "" {
		log.Fatal("ELEVENLABS_VOICE_ID environment variable is required")
	}
	togetherKey := os.Getenv("TOGETHER_API_KEY")
	if togetherKey == "" {
		log.Fatal("TOGETHER_API_KEY environment variable is required")
	}
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	config := core.DefaultConfig()
	if name := os.Getenv("CHARACTER_NAME"); name != "" {
		config.CharacterName = name
	}

	client := anthropic.NewClient(option.WithAPIKey(anthropicKey))
	providerOpts := []provider.Option{provider.WithCharacterName(config.CharacterName)}
	if model := os.Getenv("COMPANION_MODEL"); model != "" {
		providerOpts = append(providerOpts, provider.WithModel(model))
	}
	llm := provider.NewAnthropic(&client, providerOpts...)

	store, err := chromem.New()
	if err != nil {
		log.Fatalf("create memory store: %v", err)
	}
	embedder, err := newEmbedder()
	if err != nil {
		log.Fatalf("create embedder: %v", err)
	}
	manager, err := memory.NewVectorManager(store, embedder, llm, nil)
	if err != nil {
		log.Fatalf("create memory manager: %v", err)
	}
	defer manager.Close()

	g, err := graph.New(graph.Collaborators{
		Classifier: llm,
		Responder:  llm,
		Summaries:  llm,
		Images:     provider.NewImageClient(llm, togetherKey),
		Speech:     provider.NewSpeechClient(elevenKey, voiceID),
		Memory:     manager,
		Schedule:   schedule.New(),
	}, config)
	if err != nil {
		log.Fatalf("build workflow: %v", err)
	}

	srv := server.New(g, thread.NewMemoryStore())
	log.Printf("[SERVER] Listening on :%s", port)
	if err := http.ListenAndServe(":"+port, srv.Handler()); err != nil {
		log.Fatalf("serve: %v", err)
	}
}
