package assistant

import (
	"regexp"
	"strings"
)

// The model requests side effects through a textual calling convention
// embedded in its free-form output: TOOL("name") or TOOL("name", "args")
// and SEARCH("query"). This file is the wire-format parser for that
// grammar; only the first marker of each kind in a response is honored,
// so one response can never trigger several side effects at once.

var (
	toolMarkerRe   = regexp.MustCompile(`(?i)TOOL\s*\(\s*["']([^"']+)["']\s*(?:,\s*["']([^"']+)["']\s*)?\)`)
	searchMarkerRe = regexp.MustCompile(`(?i)SEARCH\s*\(\s*["'](.+?)["']\s*\)`)
)

// ToolInvocation is a parsed tool request. Args is empty when the
// marker carried no argument.
type ToolInvocation struct {
	Name string
	Args string
}

// ParseToolMarker extracts the first tool marker from response text
func ParseToolMarker(text string) (ToolInvocation, bool) {
	match := toolMarkerRe.FindStringSubmatch(text)
	if match == nil {
		return ToolInvocation{}, false
	}
	return ToolInvocation{
		Name: strings.TrimSpace(match[1]),
		Args: match[2],
	}, true
}

// ParseSearchMarker extracts the first search marker's query from
// response text
func ParseSearchMarker(text string) (string, bool) {
	match := searchMarkerRe.FindStringSubmatch(text)
	if match == nil {
		return "", false
	}
	return strings.TrimSpace(match[1]), true
}
