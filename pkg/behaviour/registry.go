package behaviour

import (
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/animclone/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// Factory returns a new, zero-valued behaviour.
type Factory func() domain.Behaviour

// Registry manages the behaviour types the host can construct.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
	}
}

// Default returns a registry holding every built-in behaviour type.
func Default() *Registry {
	r := NewRegistry()
	r.Register(TypeParameterDriver, func() domain.Behaviour { return &ParameterDriver{} })
	r.Register(TypeLayerControl, func() domain.Behaviour { return &LayerControl{} })
	r.Register(TypeTrackingControl, func() domain.Behaviour { return &TrackingControl{} })
	r.Register(TypePlayAudio, func() domain.Behaviour { return &PlayAudio{} })
	return r
}

// Register adds a factory to the registry.
// If a factory with the same type id exists, it is overwritten.
func (r *Registry) Register(typeID string, fn Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[typeID] = fn
}

// RegisterOpaque accepts typeID as a pass-through type: instances are Raw bundles whose
// fields are copied without interpretation.
func (r *Registry) RegisterOpaque(typeID string) {
	r.Register(typeID, func() domain.Behaviour { return &Raw{TypeName: typeID} })
}

// Instantiate returns a new behaviour of the given type.
// Returns an error if the type is not registered.
func (r *Registry) Instantiate(typeID string) (domain.Behaviour, error) {
	r.mu.RLock()
	fn, ok := r.factories[typeID]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("behaviour type not registered: %s", typeID)
	}
	b := fn()
	if b == nil {
		return nil, fmt.Errorf("factory for %s returned nil", typeID)
	}
	return b, nil
}

// Has reports whether typeID is registered.
func (r *Registry) Has(typeID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.factories[typeID]
	return ok
}

// Types returns the registered type ids in sorted order.
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]string, 0, len(r.factories))
	for id := range r.factories {
		types = append(types, id)
	}
	sort.Strings(types)
	return types
}

// Decode builds a behaviour of the given type from its serialized fields.
// Unknown field names are rejected so typos in assets surface early.
func (r *Registry) Decode(typeID string, fields map[string]any) (domain.Behaviour, error) {
	b, err := r.Instantiate(typeID)
	if err != nil {
		return nil, err
	}

	if raw, ok := b.(*Raw); ok {
		raw.Fields = copyFields(fields)
		return raw, nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      b,
		ErrorUnused: true,
		TagName:     "mapstructure",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create decoder for %s: %w", typeID, err)
	}
	if err := decoder.Decode(fields); err != nil {
		return nil, fmt.Errorf("failed to decode %s fields: %w", typeID, err)
	}
	return b, nil
}

// Encode returns the serialized fields of b.
func (r *Registry) Encode(b domain.Behaviour) (map[string]any, error) {
	if raw, ok := b.(*Raw); ok {
		return copyFields(raw.Fields), nil
	}

	fields := make(map[string]any)
	if err := mapstructure.Decode(b, &fields); err != nil {
		return nil, fmt.Errorf("failed to encode %s fields: %w", b.TypeID(), err)
	}
	delete(fields, "BehaviourBase")
	return fields, nil
}
