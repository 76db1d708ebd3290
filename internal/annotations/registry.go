package annotations

import (
	"fmt"
	"sync"
)

// AnnotationRegistry manages the schemas the parser validates against. An
// artifact kind whose schema is not registered is invisible to extraction:
// the extractor degrades to a no-op for that kind rather than failing.
type AnnotationRegistry interface {
	Register(annotationType AnnotationType, schema AnnotationSchema) error
	GetSchema(annotationType AnnotationType) (AnnotationSchema, error)
	IsRegistered(annotationType AnnotationType) bool
	Types() []AnnotationType
}

// Registry is the default thread-safe schema registry
type Registry struct {
	mu      sync.RWMutex
	schemas map[AnnotationType]AnnotationSchema
	order   []AnnotationType
}

// NewRegistry creates an empty annotation registry
func NewRegistry() *Registry {
	return &Registry{
		schemas: make(map[AnnotationType]AnnotationSchema),
	}
}

// Register adds a schema for an annotation type
func (r *Registry) Register(annotationType AnnotationType, schema AnnotationSchema) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.schemas[annotationType]; exists {
		return fmt.Errorf("schema already registered for annotation type: %s", annotationType)
	}

	r.schemas[annotationType] = schema
	r.order = append(r.order, annotationType)
	return nil
}

// GetSchema retrieves the schema for an annotation type
func (r *Registry) GetSchema(annotationType AnnotationType) (AnnotationSchema, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	schema, exists := r.schemas[annotationType]
	if !exists {
		return AnnotationSchema{}, fmt.Errorf("no schema registered for annotation type: %s", annotationType)
	}
	return schema, nil
}

// IsRegistered checks whether a schema exists for an annotation type
func (r *Registry) IsRegistered(annotationType AnnotationType) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.schemas[annotationType]
	return exists
}

// Types returns the registered annotation types in registration order
func (r *Registry) Types() []AnnotationType {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]AnnotationType, len(r.order))
	copy(types, r.order)
	return types
}
