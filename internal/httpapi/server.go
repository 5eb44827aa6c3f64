package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/hbalint/jarvis/internal/assistant"
	"github.com/hbalint/jarvis/internal/config"
)

// turnRunner is the orchestrator surface the HTTP layer depends on
type turnRunner interface {
	HandleTurn(ctx context.Context, userInput string, sink assistant.StreamSink) (string, error)
	ClearHistory(ctx context.Context) error
	Status() assistant.Status
}

// Server exposes the assistant over HTTP. Each request runs its turn on
// the request's own goroutine; the history store serializes commits.
type Server struct {
	runner   turnRunner
	settings *config.Store

	mux    *http.ServeMux
	server *http.Server
}

func NewServer(runner turnRunner, settings *config.Store) *Server {
	s := &Server{
		runner:   runner,
		settings: settings,
		mux:      http.NewServeMux(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("/api/chat", s.handleChat)
	s.mux.HandleFunc("/api/chat/stream", s.handleChatStream)
	s.mux.HandleFunc("/api/history/clear", s.handleHistoryClear)
	s.mux.HandleFunc("/api/status", s.handleStatus)
	s.mux.HandleFunc("/api/config", s.handleConfig)
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) ListenAndServe(addr string) error {
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}
