package lexer

import (
	"fmt"
	"sort"

	"github.com/hupe1980/factgo/token"
)

// TokenSource is the contract every language-specific tokenizer fulfills:
// chunked input, fixed-size tokens, and the continuation protocol for tokens
// crossing a feed boundary. This is the substrate's one dynamic-dispatch
// extension point; it sits at the system boundary, never on the per-token
// hot path.
type TokenSource interface {
	// Feed pushes bytes and returns how many were accepted.
	Feed(p []byte) int
	// Finish signals end of input.
	Finish()
	// Next scans one token; continuation tokens mean "feed more first".
	Next() (token.Token, error)
}

var _ TokenSource = (*Lexer)(nil)

// Factory creates a fresh TokenSource for one document.
type Factory func(optFns ...func(*Options)) TokenSource

// Registry maps language names to tokenizer factories. It is explicitly
// constructed and passed by reference from the caller's top-level context;
// there is no process-wide registry and no hidden initialization.
//
// A Registry is immutable after setup and therefore safe to share across
// goroutines; Register calls must be confined to setup.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// NewDefaultRegistry creates a registry with the built-in JSON-like language
// registered under "json".
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	_ = r.Register("json", func(optFns ...func(*Options)) TokenSource {
		return New(optFns...)
	})
	return r
}

// Register adds a language. Registering a duplicate name is an error.
func (r *Registry) Register(name string, f Factory) error {
	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("lexer: language %q already registered", name)
	}
	r.factories[name] = f
	return nil
}

// Lookup returns the factory for name.
func (r *Registry) Lookup(name string) (Factory, bool) {
	f, ok := r.factories[name]
	return f, ok
}

// Names returns the registered language names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
