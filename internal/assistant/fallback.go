package assistant

import (
	"strings"
	"time"

	"github.com/abadojack/whatlanggo"
	"golang.org/x/text/language"
)

// FallbackReply answers without a generation backend: a small keyword
// responder covering greetings, time, date, and identity, replying in
// the user's language (English or Hungarian).

var replyMatcher = language.NewMatcher([]language.Tag{
	language.English,
	language.Hungarian,
})

// detectReplyLanguage maps the detected input language onto one of the
// supported reply languages, defaulting to English
func detectReplyLanguage(input string) language.Tag {
	iso := whatlanggo.DetectLang(input).Iso6391()
	detected, err := language.Parse(iso)
	if err != nil {
		return language.English
	}
	tag, _, _ := replyMatcher.Match(detected)
	// The matcher returns the closest supported tag; anything that is
	// not Hungarian falls back to English.
	if tag == language.Hungarian {
		return language.Hungarian
	}
	return language.English
}

func containsAny(text string, words ...string) bool {
	for _, word := range words {
		if strings.Contains(text, word) {
			return true
		}
	}
	return false
}

// FallbackReply picks a canned answer for input at the given time
func FallbackReply(input string, now time.Time) string {
	lower := strings.ToLower(input)
	hungarian := detectReplyLanguage(input) == language.Hungarian

	switch {
	case containsAny(lower, "hello", "szia", "hi", "helló", "üdv"):
		if hungarian {
			return "Szia! JARVIS vagyok. Miben segíthetek?"
		}
		return "Hello! I'm JARVIS. How can I assist you today?"

	case containsAny(lower, "time", "idő", "óra"):
		if hungarian {
			return "A pontos idő: " + now.Format("15:04:05")
		}
		return "The current time is " + now.Format("15:04:05")

	case containsAny(lower, "date", "dátum", "nap"):
		if hungarian {
			return "A mai dátum: " + now.Format("2006-01-02")
		}
		return "Today's date is " + now.Format("2006-01-02")

	case containsAny(lower, "who are you", "ki vagy", "név"):
		if hungarian {
			return "JARVIS vagyok, a személyes asszisztensed."
		}
		return "I am JARVIS, your AI assistant."
	}

	if hungarian {
		return "Sajnálom, korlátozott módban futok. A teljes funkcionalitáshoz indíts el egy Ollama szervert: https://ollama.ai"
	}
	return "I apologize, but I'm running in limited mode. Please start an Ollama server for full functionality: https://ollama.ai"
}
