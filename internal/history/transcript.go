package history

import "github.com/hbalint/jarvis/internal/llm"

// DefaultCap is the maximum transcript length kept after a save:
// the system message plus the 30 most recent messages.
const DefaultCap = 31

// Transcript is the ordered, role-tagged message history. A well-formed
// transcript begins with exactly one system message, which is never
// evicted by capping and never duplicated.
type Transcript []llm.Message

// NewTranscript returns a transcript holding only the system message
func NewTranscript(rules string) Transcript {
	return Transcript{llm.System(rules)}
}

// WithSystem ensures the transcript starts with a system message,
// inserting one carrying rules when it is missing. An existing system
// message is left untouched.
func (t Transcript) WithSystem(rules string) Transcript {
	if len(t) > 0 && t[0].Role == llm.RoleSystem {
		return t
	}
	out := make(Transcript, 0, len(t)+1)
	out = append(out, llm.System(rules))
	out = append(out, t...)
	return out
}

// Append returns a new transcript with the messages added. The receiver
// is not modified, so turn-local working copies never leak into the
// persisted transcript.
func (t Transcript) Append(messages ...llm.Message) Transcript {
	out := make(Transcript, 0, len(t)+len(messages))
	out = append(out, t...)
	out = append(out, messages...)
	return out
}

// Capped truncates to at most c messages, keeping the leading system
// message and the most recent c-1 others. Oldest non-system messages are
// dropped first.
func (t Transcript) Capped(c int) Transcript {
	if c <= 0 || len(t) <= c {
		return t
	}
	if len(t) > 0 && t[0].Role == llm.RoleSystem {
		out := make(Transcript, 0, c)
		out = append(out, t[0])
		out = append(out, t[len(t)-(c-1):]...)
		return out
	}
	return t[len(t)-c:]
}
