// Package schema models the document shape of a collection as an immutable
// tree of typed fields. Schemas are built once, by a parser or a catalog
// definition, and read-only thereafter.
package schema

import (
	"fmt"

	"github.com/kailas-cloud/shardcost/internal/domain"
)

// Schema is an ordered set of uniquely named fields.
type Schema struct {
	name   string
	fields []Field
}

// New validates and creates a Schema. Field names must be unique.
func New(name string, fields []Field) (Schema, error) {
	if name == "" {
		return Schema{}, fmt.Errorf("%w: schema name is required", domain.ErrMalformedSchema)
	}
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		if seen[f.Name()] {
			return Schema{}, fmt.Errorf("%w: duplicate field %q in schema %q", domain.ErrMalformedSchema, f.Name(), name)
		}
		seen[f.Name()] = true
	}
	return Schema{name: name, fields: fields}, nil
}

// Name returns the schema name.
func (s Schema) Name() string { return s.name }

// Fields returns the fields in declaration order.
func (s Schema) Fields() []Field { return s.fields }

// FieldByName looks up a field by name.
func (s Schema) FieldByName(name string) (Field, bool) {
	for _, f := range s.fields {
		if f.Name() == name {
			return f, true
		}
	}
	return Field{}, false
}

// HasField checks if a field with the given name exists.
func (s Schema) HasField(name string) bool {
	_, ok := s.FieldByName(name)
	return ok
}

// Project builds a schema containing the named fields only, in the order
// given, deduplicated. Names absent from the schema are silently skipped:
// a projection over unknown keys is an empty contribution, not an error.
func (s Schema) Project(name string, keys ...string) Schema {
	projected := make([]Field, 0, len(keys))
	seen := make(map[string]bool, len(keys))
	for _, key := range keys {
		if seen[key] {
			continue
		}
		seen[key] = true
		if f, ok := s.FieldByName(key); ok {
			projected = append(projected, f)
		}
	}
	return Schema{name: name, fields: projected}
}
