package history

import (
	"context"
	"sync"
	"time"
)

// Interaction is one completed turn recorded in the rolling memory log
type Interaction struct {
	Time     time.Time `json:"time"`
	Input    string    `json:"input"`
	Response string    `json:"response"`
}

// interactionLogCap bounds the rolling memory log
const interactionLogCap = 100

// interactionResponseLimit truncates logged responses, in runes
const interactionResponseLimit = 500

// Store persists the transcript and the interaction log. Save enforces
// the cap invariant; implementations serialize access so concurrent
// turns cannot interleave partial writes.
type Store interface {
	Load(ctx context.Context) (Transcript, error)
	Save(ctx context.Context, t Transcript) error
	Clear(ctx context.Context) error

	LogInteraction(ctx context.Context, input, response string) error
	Interactions(ctx context.Context, limit int) ([]Interaction, error)

	Close() error
}

// truncateResponse caps a logged response at interactionResponseLimit runes
func truncateResponse(response string) string {
	runes := []rune(response)
	if len(runes) <= interactionResponseLimit {
		return response
	}
	return string(runes[:interactionResponseLimit]) + "..."
}

// MemoryStore is an in-process Store. It backs tests and serves as the
// fallback when the on-disk store cannot be opened, so a broken data
// directory degrades to a fresh conversation instead of a fatal error.
type MemoryStore struct {
	mu           sync.Mutex
	cap          int
	transcript   Transcript
	interactions []Interaction
}

// NewMemoryStore creates an empty in-memory store with the given cap
func NewMemoryStore(cap int) *MemoryStore {
	if cap <= 0 {
		cap = DefaultCap
	}
	return &MemoryStore{cap: cap}
}

func (s *MemoryStore) Load(_ context.Context) (Transcript, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(Transcript, len(s.transcript))
	copy(out, s.transcript)
	return out, nil
}

func (s *MemoryStore) Save(_ context.Context, t Transcript) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	capped := t.Capped(s.cap)
	s.transcript = make(Transcript, len(capped))
	copy(s.transcript, capped)
	return nil
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transcript = nil
	return nil
}

func (s *MemoryStore) LogInteraction(_ context.Context, input, response string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.interactions = append(s.interactions, Interaction{
		Time:     time.Now().UTC(),
		Input:    input,
		Response: truncateResponse(response),
	})
	if len(s.interactions) > interactionLogCap {
		s.interactions = s.interactions[len(s.interactions)-interactionLogCap:]
	}
	return nil
}

func (s *MemoryStore) Interactions(_ context.Context, limit int) ([]Interaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if limit <= 0 || limit > len(s.interactions) {
		limit = len(s.interactions)
	}
	out := make([]Interaction, limit)
	copy(out, s.interactions[len(s.interactions)-limit:])
	return out, nil
}

func (s *MemoryStore) Close() error { return nil }
