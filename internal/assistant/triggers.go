package assistant

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// Pre-emptive search detection: certain words in the user's input are a
// strong signal that current information is needed, so the search runs
// before the first model call instead of waiting for the model to ask.
// Triggers without a deterministic query builder (bare "now", "latest")
// are left for the model to decide.

type searchTrigger struct {
	term  string
	build func(input string, now time.Time) string
}

// Evaluation order matters: the first matching trigger wins.
var searchTriggers = []searchTrigger{
	{"weather", func(input string, _ time.Time) string {
		return fmt.Sprintf("weather %s today", extractLocation(input))
	}},
	{"temperature", func(input string, _ time.Time) string {
		return fmt.Sprintf("temperature %s now", extractLocation(input))
	}},
	{"news", func(input string, now time.Time) string {
		return fmt.Sprintf("latest news %s %d", extractTopic(input), now.Year())
	}},
	{"stock", func(input string, _ time.Time) string {
		return fmt.Sprintf("stock price %s", extractTopic(input))
	}},
	{"price", func(input string, _ time.Time) string {
		return fmt.Sprintf("current price %s", extractTopic(input))
	}},
	{"score", func(input string, _ time.Time) string {
		return fmt.Sprintf("latest %s score", extractTopic(input))
	}},
	{"match", func(input string, _ time.Time) string {
		return fmt.Sprintf("latest %s match result", extractTopic(input))
	}},
	{"when", nil},
	{"today", nil},
	{"now", nil},
	{"current", nil},
	{"latest", nil},
}

// AutoSearchQuery decides whether userInput warrants a pre-emptive
// search and builds the query when it does
func AutoSearchQuery(input string, now time.Time) (string, bool) {
	lower := strings.ToLower(input)
	for _, trigger := range searchTriggers {
		if !strings.Contains(lower, trigger.term) {
			continue
		}
		if trigger.build == nil {
			// Ambiguous trigger: the model decides.
			return "", false
		}
		return trigger.build(input, now), true
	}
	return "", false
}

// locationStopWords are capitalized words that are not locations
var locationStopWords = map[string]bool{
	"i": true, "what": true, "how": true, "when": true,
}

// extractLocation picks the first capitalized token that is not a
// question word; "here" when none is found
func extractLocation(input string) string {
	for _, word := range strings.Fields(input) {
		trimmed := strings.TrimFunc(word, unicode.IsPunct)
		if trimmed == "" {
			continue
		}
		first := []rune(trimmed)[0]
		if unicode.IsUpper(first) && !locationStopWords[strings.ToLower(trimmed)] {
			return trimmed
		}
	}
	return "here"
}

// topicStopWords are filtered out before picking the topic words
var topicStopWords = map[string]bool{
	"what": true, "how": true, "when": true, "is": true, "the": true,
	"latest": true, "current": true, "news": true, "about": true,
	"price": true, "of": true,
}

// extractTopic keeps the first three non-stop-words of the input
func extractTopic(input string) string {
	var words []string
	for _, word := range strings.Fields(strings.ToLower(input)) {
		if topicStopWords[word] {
			continue
		}
		words = append(words, word)
		if len(words) == 3 {
			break
		}
	}
	return strings.Join(words, " ")
}
