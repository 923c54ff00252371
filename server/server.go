// Package server exposes the companion over a WebSocket chat gateway.
// Each inbound frame runs exactly one workflow turn against the thread's
// persisted state.
package server

import (
	"context"
	"encoding/base64"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/Alok-Kumar2005/WhatsApp-Agent-Neural-maze/graph"
	"github.com/Alok-Kumar2005/WhatsApp-Agent-Neural-maze/thread"
)

// TurnRunner executes one workflow turn. graph.Graph implements it.
type TurnRunner interface {
	Run(ctx context.Context, state graph.State, userMessage string) (graph.State, error)
}

// inboundFrame is one user message on the wire.
type inboundFrame struct {
	ThreadID string `json:"thread_id,omitempty"`
	Content  string `json:"content"`
}

// outboundFrame is the turn result on the wire. Audio is base64-encoded;
// Error is set instead of Content when the turn failed.
type outboundFrame struct {
	ThreadID  string `json:"thread_id"`
	Workflow  string `json:"workflow,omitempty"`
	Content   string `json:"content,omitempty"`
	ImagePath string `json:"image_path,omitempty"`
	Audio     string `json:"audio,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Server is the WebSocket gateway.
type Server struct {
	runner      TurnRunner
	threads     thread.Store
	upgrader    websocket.Upgrader
	turnTimeout time.Duration
}

// ServerOption configures the gateway.
type ServerOption func(*Server)

// WithTurnTimeout bounds how long a single turn may run.
func WithTurnTimeout(d time.Duration) ServerOption {
	return func(s *Server) {
		s.turnTimeout = d
	}
}

// New creates a gateway around a turn runner and a thread store.
func New(runner TurnRunner, threads thread.Store, opts ...ServerOption) *Server {
	s := &Server{
		runner:      runner,
		threads:     threads,
		turnTimeout: 2 * time.Minute,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the HTTP handler serving the gateway at /ws.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	return mux
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[SERVER] Upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	for {
		var in inboundFrame
		if err := conn.ReadJSON(&in); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[SERVER] Read failed: %v", err)
			}
			return
		}

		threadID := in.ThreadID
		if threadID == "" {
			threadID = uuid.New().String()
		}
		if in.Content == "" {
			s.write(conn, outboundFrame{ThreadID: threadID, Error: "content is required"})
			continue
		}

		state, _ := s.threads.Load(threadID)

		ctx, cancel := context.WithTimeout(r.Context(), s.turnTimeout)
		next, err := s.runner.Run(ctx, state, in.Content)
		cancel()
		if err != nil {
			// The failed turn left no partial state; the thread keeps its
			// pre-turn record.
			log.Printf("[SERVER] Turn failed for thread %s: %v", threadID, err)
			s.write(conn, outboundFrame{ThreadID: threadID, Error: "turn failed"})
			continue
		}

		s.threads.Save(threadID, next)

		out := outboundFrame{
			ThreadID:  threadID,
			Workflow:  string(next.Workflow),
			Content:   next.LastAgentText(),
			ImagePath: next.ImagePath,
		}
		if len(next.AudioBuffer) > 0 {
			out.Audio = base64.StdEncoding.EncodeToString(next.AudioBuffer)
		}
		s.write(conn, out)
	}
}

func (s *Server) write(conn *websocket.Conn, out outboundFrame) {
	if err := conn.WriteJSON(out); err != nil {
		log.Printf("[SERVER] Write failed: %v", err)
	}
}
