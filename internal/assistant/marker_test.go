package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseToolMarker(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		text     string
		wantName string
		wantArgs string
		wantOK   bool
	}{
		{
			name:     "bare tool call",
			text:     `Sure, let me check. TOOL("time")`,
			wantName: "time",
			wantOK:   true,
		},
		{
			name:     "tool call with argument",
			text:     `TOOL("calculate", "2+2")`,
			wantName: "calculate",
			wantArgs: "2+2",
			wantOK:   true,
		},
		{
			name:     "lowercase keyword and single quotes",
			text:     `tool('date')`,
			wantName: "date",
			wantOK:   true,
		},
		{
			name:     "whitespace inside the marker",
			text:     `TOOL ( "system" , "os" )`,
			wantName: "system",
			wantArgs: "os",
			wantOK:   true,
		},
		{
			name:     "first of several markers wins",
			text:     `TOOL("time") and also TOOL("date")`,
			wantName: "time",
			wantOK:   true,
		},
		{
			name: "plain prose",
			text: "The capital of France is Paris.",
		},
		{
			name: "mentioning the word tool is not a marker",
			text: "A hammer is a useful tool (for nails).",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			inv, ok := ParseToolMarker(tt.text)
			require.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				return
			}
			assert.Equal(t, tt.wantName, inv.Name)
			assert.Equal(t, tt.wantArgs, inv.Args)
		})
	}
}

func TestParseSearchMarker(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		text      string
		wantQuery string
		wantOK    bool
	}{
		{
			name:      "simple query",
			text:      `SEARCH("weather Budapest today")`,
			wantQuery: "weather Budapest today",
			wantOK:    true,
		},
		{
			name:      "lowercase keyword",
			text:      `I need more context: search('golang generics')`,
			wantQuery: "golang generics",
			wantOK:    true,
		},
		{
			name:      "first of several markers wins",
			text:      `SEARCH("first query") SEARCH("second query")`,
			wantQuery: "first query",
			wantOK:    true,
		},
		{
			name: "no marker",
			text: "Let me think about that.",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			query, ok := ParseSearchMarker(tt.text)
			require.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantQuery, query)
		})
	}
}

func TestParseToolMarker_DistinctFromSearch(t *testing.T) {
	t.Parallel()

	text := `SEARCH("weather Budapest today")`

	_, ok := ParseToolMarker(text)
	assert.False(t, ok)
}
