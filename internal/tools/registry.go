package tools

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Registry maps tool names, canonical and alias, to tools. Lookup is
// case-insensitive. The tool set is closed: registration happens at
// startup and unknown names fail as values, never fatally.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Tool
	names map[string]string // lowercase alias -> canonical name
}

// NewRegistry creates an empty tool registry
func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[string]Tool),
		names: make(map[string]string),
	}
}

// NewDefaultRegistry creates a registry holding the built-in tools
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	for _, tool := range ClockTools(nil) {
		mustRegister(r, tool)
	}
	mustRegister(r, NewCalculatorTool())
	mustRegister(r, NewSysInfoTool())
	return r
}

func mustRegister(r *Registry, tool Tool) {
	if err := r.Register(tool); err != nil {
		panic(err)
	}
}

// Register adds a tool under its canonical name and all aliases.
// Returns an error if any name is already taken.
func (r *Registry) Register(tool Tool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	canonical := strings.ToLower(tool.Name())
	names := append([]string{canonical}, tool.Aliases()...)
	for _, name := range names {
		if _, exists := r.names[strings.ToLower(name)]; exists {
			return fmt.Errorf("tool name %q already registered", name)
		}
	}

	r.tools[canonical] = tool
	for _, name := range names {
		r.names[strings.ToLower(name)] = canonical
	}
	return nil
}

// Resolve finds a tool by canonical name or alias
func (r *Registry) Resolve(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	canonical, ok := r.names[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, false
	}
	tool, ok := r.tools[canonical]
	return tool, ok
}

// Execute dispatches to the named tool. Unknown names yield a failure
// result describing the problem.
func (r *Registry) Execute(ctx context.Context, name, args string) Result {
	tool, ok := r.Resolve(name)
	if !ok {
		return Failure(fmt.Sprintf("Unknown tool: %s", name))
	}
	return tool.Execute(ctx, args)
}

// List returns the canonical tool names, sorted
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of registered tools
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tools)
}
