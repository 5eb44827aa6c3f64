package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

type streamEvent struct {
	Chunk string `json:"chunk,omitempty"`
	Done  bool   `json:"done,omitempty"`
	Reply string `json:"reply,omitempty"`
	Error string `json:"error,omitempty"`
}

// handleChatStream runs one turn and relays generated chunks as SSE
// events, followed by a final event carrying the assembled reply.
// Chunks preserve emission order; the reply is authoritative.
func (s *Server) handleChatStream(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	message := strings.TrimSpace(r.URL.Query().Get("message"))
	if message == "" {
		writeError(w, http.StatusBadRequest, "missing message")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	send := func(event streamEvent) bool {
		payload, err := json.Marshal(event)
		if err != nil {
			return false
		}
		if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
			return false
		}
		flusher.Flush()
		return true
	}

	// The sink runs on this handler's goroutine, so writes need no
	// extra synchronization.
	reply, err := s.runner.HandleTurn(r.Context(), message, func(chunk string) {
		send(streamEvent{Chunk: chunk})
	})
	if err != nil {
		// Cancelled by the client; nothing left to send.
		return
	}
	send(streamEvent{Done: true, Reply: reply})
}
