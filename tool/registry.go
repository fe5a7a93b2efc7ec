package tool

import (
	"errors"
	"fmt"
	"sync"
)

// ErrToolNotFound is returned by Resolve for unregistered names. Callers use
// errors.Is to distinguish a missing tool from an execution failure.
var ErrToolNotFound = errors.New("tool not found")

// Registry maps tool names to implementations. Names are unique and
// re-registration overwrites (last write wins). Enumeration via Names follows
// registration order. The registry is safe for concurrent reads; by contract
// it is not mutated while an orchestration cycle is running.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Tool
	order []string
}

// NewRegistry creates an empty Registry.
func NewRegistry(tools ...Tool) *Registry {
	r := &Registry{tools: make(map[string]Tool)}
	for _, t := range tools {
		r.Register(t)
	}
	return r
}

// Register adds a tool under its name. Registering a name twice replaces the
// previous implementation while keeping its original enumeration position.
func (r *Registry) Register(t Tool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tools[t.Name()]; !exists {
		r.order = append(r.order, t.Name())
	}
	r.tools[t.Name()] = t
}

// Resolve returns the tool registered under name, or an error wrapping
// ErrToolNotFound.
func (r *Registry) Resolve(name string) (Tool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tools[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrToolNotFound, name)
	}
	return t, nil
}

// Names returns all registered tool names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Subset returns the registered names among the requested ones, preserving
// registration order. Unknown names are dropped, so the result is always a
// valid enabled set for one cycle.
func (r *Registry) Subset(names []string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	want := make(map[string]struct{}, len(names))
	for _, name := range names {
		want[name] = struct{}{}
	}

	out := make([]string, 0, len(names))
	for _, name := range r.order {
		if _, ok := want[name]; ok {
			out = append(out, name)
		}
	}
	return out
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.tools)
}

// Describe returns name/description pairs in registration order, used to
// build planning prompts.
func (r *Registry) Describe() []Info {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Info, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, Info{Name: name, Description: r.tools[name].Description()})
	}
	return out
}

// Info is a name/description pair describing a registered tool.
type Info struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}
