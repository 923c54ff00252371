package server_test

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/websocket"

	"github.com/Alok-Kumar2005/WhatsApp-Agent-Neural-maze/core"
	"github.com/Alok-Kumar2005/WhatsApp-Agent-Neural-maze/graph"
	"github.com/Alok-Kumar2005/WhatsApp-Agent-Neural-maze/server"
	"github.com/Alok-Kumar2005/WhatsApp-Agent-Neural-maze/thread"
)

// fakeRunner appends the user message and an echo reply, mimicking one
// conversation turn without any model calls.
type fakeRunner struct {
	mu    sync.Mutex
	calls int
	err   error
	audio []byte
	image string
}

func (f *fakeRunner) Run(ctx context.Context, state graph.State, userMessage string) (graph.State, error) {
	f.mu.Lock()
	f.calls++
	seen := f.calls
	f.mu.Unlock()

	if f.err != nil {
		return state, f.err
	}

	next := state.Clone()
	next.Workflow = core.WorkflowConversation
	next.Messages = append(next.Messages, core.NewUserMessage(userMessage))
	next.Messages = append(next.Messages, core.NewAgentMessage(fmt.Sprintf("reply %d to %s", seen, userMessage)))
	next.ImagePath = f.image
	next.AudioBuffer = f.audio
	return next, nil
}

type frame struct {
	ThreadID  string `json:"thread_id"`
	Workflow  string `json:"workflow"`
	Content   string `json:"content"`
	ImagePath string `json:"image_path"`
	Audio     string `json:"audio"`
	Error     string `json:"error"`
}

func dial(t *testing.T, runner *fakeRunner, threads thread.Store) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(server.New(runner, threads).Handler())
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func roundTrip(t *testing.T, conn *websocket.Conn, threadID, content string) frame {
	t.Helper()
	if err := conn.WriteJSON(map[string]string{"thread_id": threadID, "content": content}); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	var out frame
	if err := conn.ReadJSON(&out); err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	return out
}

func TestTurnRoundTrip(t *testing.T) {
	conn := dial(t, &fakeRunner{}, thread.NewMemoryStore())

	out := roundTrip(t, conn, "t1", "hello")
	if out.Error != "" {
		t.Fatalf("unexpected error frame: %q", out.Error)
	}
	if out.ThreadID != "t1" {
		t.Errorf("ThreadID = %q, want %q", out.ThreadID, "t1")
	}
	if out.Workflow != "conversation" {
		t.Errorf("Workflow = %q, want %q", out.Workflow, "conversation")
	}
	if out.Content != "reply 1 to hello" {
		t.Errorf("Content = %q", out.Content)
	}
}

func TestThreadStatePersistsAcrossFrames(t *testing.T) {
	threads := thread.NewMemoryStore()
	conn := dial(t, &fakeRunner{}, threads)

	roundTrip(t, conn, "t1", "first")
	roundTrip(t, conn, "t1", "second")

	st, ok := threads.Load("t1")
	if !ok {
		t.Fatal("thread was not persisted")
	}
	// Two turns of two messages each.
	if len(st.Messages) != 4 {
		t.Fatalf("persisted %d messages, want 4", len(st.Messages))
	}
	if st.Messages[2].Content != "second" {
		t.Errorf("second turn did not build on the first: %q", st.Messages[2].Content)
	}
}

func TestMissingThreadIDIsAssigned(t *testing.T) {
	conn := dial(t, &fakeRunner{}, thread.NewMemoryStore())

	out := roundTrip(t, conn, "", "hello")
	if out.ThreadID == "" {
		t.Fatal("server did not assign a thread id")
	}
}

func TestEmptyContentIsRejected(t *testing.T) {
	runner := &fakeRunner{}
	conn := dial(t, runner, thread.NewMemoryStore())

	out := roundTrip(t, conn, "t1", "")
	if out.Error != "content is required" {
		t.Fatalf("Error = %q, want %q", out.Error, "content is required")
	}
	if runner.calls != 0 {
		t.Errorf("runner ran %d times for an empty frame", runner.calls)
	}
}

func TestFailedTurnKeepsPriorState(t *testing.T) {
	threads := thread.NewMemoryStore()
	threads.Save("t1", graph.State{Summary: "before"})

	conn := dial(t, &fakeRunner{err: errors.New("model unavailable")}, threads)

	out := roundTrip(t, conn, "t1", "hello")
	if out.Error != "turn failed" {
		t.Fatalf("Error = %q, want %q", out.Error, "turn failed")
	}

	st, _ := threads.Load("t1")
	if st.Summary != "before" {
		t.Errorf("failed turn altered the stored state: %q", st.Summary)
	}
	if len(st.Messages) != 0 {
		t.Errorf("failed turn persisted %d messages", len(st.Messages))
	}
}

func TestAudioAndImageArtifactsOnTheWire(t *testing.T) {
	audio := []byte{0x52, 0x49, 0x46, 0x46}
	conn := dial(t, &fakeRunner{audio: audio, image: "generated_images/image_abc.png"}, thread.NewMemoryStore())

	out := roundTrip(t, conn, "t1", "say it")
	if out.ImagePath != "generated_images/image_abc.png" {
		t.Errorf("ImagePath = %q", out.ImagePath)
	}
	decoded, err := base64.StdEncoding.DecodeString(out.Audio)
	if err != nil {
		t.Fatalf("Audio is not valid base64: %v", err)
	}
	if string(decoded) != string(audio) {
		t.Errorf("Audio round-trip mismatch: %v", decoded)
	}
}
