package loom

import (
	"encoding/json"
	"fmt"
	"sync"
)

// VariantFactory produces a zero value of a union variant.
type VariantFactory func() any

// VariantRegistry maps union names to their registered variants. Generated
// polymorphic-serialization blocks register each variant in declaration
// order during package init.
type VariantRegistry struct {
	mu       sync.RWMutex
	unions   map[string][]string
	variants map[string]map[string]VariantFactory
}

// NewVariantRegistry creates an empty variant registry.
func NewVariantRegistry() *VariantRegistry {
	return &VariantRegistry{
		unions:   make(map[string][]string),
		variants: make(map[string]map[string]VariantFactory),
	}
}

// Register adds a variant factory under the given union. Re-registering a
// name replaces the factory but keeps its original position.
func (r *VariantRegistry) Register(union, name string, factory VariantFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.variants[union]; !exists {
		r.variants[union] = make(map[string]VariantFactory)
	}
	if _, exists := r.variants[union][name]; !exists {
		r.unions[union] = append(r.unions[union], name)
	}
	r.variants[union][name] = factory
}

// Lookup returns the factory for a union variant.
func (r *VariantRegistry) Lookup(union, name string) (VariantFactory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	factory, exists := r.variants[union][name]
	return factory, exists
}

// Names returns the variant names of a union in registration order.
func (r *VariantRegistry) Names(union string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.unions[union]))
	copy(names, r.unions[union])
	return names
}

// DecodeVariant unmarshals a tagged JSON envelope {"$kind": ..., "value": ...}
// into the concrete variant registered under the union.
func (r *VariantRegistry) DecodeVariant(union string, data []byte) (any, error) {
	var envelope struct {
		Kind  string          `json:"$kind"`
		Value json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode %s envelope: %w", union, err)
	}

	factory, exists := r.Lookup(union, envelope.Kind)
	if !exists {
		return nil, fmt.Errorf("unknown %s variant: %s", union, envelope.Kind)
	}

	// Factories return pointers so the payload lands in the concrete type.
	value := factory()
	if len(envelope.Value) > 0 {
		if err := json.Unmarshal(envelope.Value, value); err != nil {
			return nil, fmt.Errorf("failed to decode %s variant %s: %w", union, envelope.Kind, err)
		}
	}
	return value, nil
}

// EncodeVariant marshals a variant into the tagged JSON envelope.
func (r *VariantRegistry) EncodeVariant(union, name string, value any) ([]byte, error) {
	if _, exists := r.Lookup(union, name); !exists {
		return nil, fmt.Errorf("unknown %s variant: %s", union, name)
	}

	envelope := struct {
		Kind  string `json:"$kind"`
		Value any    `json:"value"`
	}{Kind: name, Value: value}
	return json.Marshal(envelope)
}

// Variants is the global registry used by generated code.
var Variants = NewVariantRegistry()
