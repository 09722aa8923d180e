package algo

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/mitchellh/mapstructure"
)

// ErrUnknownAlgorithm is returned for names that were never registered.
var ErrUnknownAlgorithm = errors.New("unknown algorithm")

// Factory builds a fresh strategy from loosely typed options.
type Factory func(opts map[string]any) (Strategy, error)

// Registry maps algorithm names to strategy factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// DefaultRegistry holds the built-in strategies.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("dfs", func(opts map[string]any) (Strategy, error) {
		if len(opts) > 0 {
			return nil, fmt.Errorf("dfs takes no options, got %d", len(opts))
		}
		return NewDFSFrontier(), nil
	})
	r.Register("spiral", func(opts map[string]any) (Strategy, error) {
		so := DefaultSpiralOptions()
		if err := decodeOptions(opts, &so); err != nil {
			return nil, fmt.Errorf("spiral options: %w", err)
		}
		return NewSpiralGreedy(so), nil
	})
	return r
}

// Register adds a factory. An existing name is overwritten.
func (r *Registry) Register(name string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = f
}

// Names returns the registered names sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New builds a strategy by name.
func (r *Registry) New(name string, opts map[string]any) (Strategy, error) {
	r.mu.RLock()
	f, ok := r.factories[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAlgorithm, name)
	}
	return f(opts)
}

func decodeOptions(in map[string]any, out any) error {
	if len(in) == 0 {
		return nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return err
	}
	return dec.Decode(in)
}
