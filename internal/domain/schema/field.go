package schema

import (
	"fmt"

	"github.com/kailas-cloud/shardcost/internal/domain"
)

// Kind is the modeled data type of a field.
type Kind string

// Field kind constants.
const (
	KindInteger    Kind = "integer"
	KindNumber     Kind = "number"
	KindString     Kind = "string"
	KindDate       Kind = "date"
	KindLongString Kind = "longstring"
	KindObject     Kind = "object"
	KindArray      Kind = "array"
)

// IsValid checks if the kind is one of the modeled types.
func (k Kind) IsValid() bool {
	switch k {
	case KindInteger, KindNumber, KindString, KindDate, KindLongString, KindObject, KindArray:
		return true
	}
	return false
}

// IsScalar reports whether the kind carries no nested schema.
func (k Kind) IsScalar() bool {
	return k.IsValid() && k != KindObject && k != KindArray
}

// Field is an immutable value object describing one document field.
// Object fields own the schema of their nested document, array fields own
// the schema of their items; scalar kinds carry no nested schema. The
// constructors enforce this, so an unrecognized kind can never silently
// contribute zero bytes to a size computation.
type Field struct {
	name     string
	kind     Kind
	required bool
	nested   *Schema // object: nested document; array: array item
}

// NewField validates and creates a scalar field.
func NewField(name string, kind Kind, required bool) (Field, error) {
	if name == "" {
		return Field{}, fmt.Errorf("%w: field name is required", domain.ErrMalformedSchema)
	}
	if !kind.IsValid() {
		return Field{}, fmt.Errorf("%w: unknown kind %q for field %q", domain.ErrMalformedSchema, kind, name)
	}
	if !kind.IsScalar() {
		return Field{}, fmt.Errorf("%w: field %q of kind %q needs a nested schema", domain.ErrMalformedSchema, name, kind)
	}
	return Field{name: name, kind: kind, required: required}, nil
}

// NewObjectField validates and creates an object field owning its nested schema.
func NewObjectField(name string, required bool, nested Schema) (Field, error) {
	if name == "" {
		return Field{}, fmt.Errorf("%w: field name is required", domain.ErrMalformedSchema)
	}
	return Field{name: name, kind: KindObject, required: required, nested: &nested}, nil
}

// NewArrayField validates and creates an array field owning its item schema.
func NewArrayField(name string, required bool, item Schema) (Field, error) {
	if name == "" {
		return Field{}, fmt.Errorf("%w: field name is required", domain.ErrMalformedSchema)
	}
	return Field{name: name, kind: KindArray, required: required, nested: &item}, nil
}

// Name returns the field name.
func (f Field) Name() string { return f.name }

// Kind returns the modeled data type.
func (f Field) Kind() Kind { return f.kind }

// Required reports whether the field is required.
func (f Field) Required() bool { return f.required }

// Nested returns the owned schema of an object or array field.
// ok is false for scalar kinds.
func (f Field) Nested() (Schema, bool) {
	if f.nested == nil {
		return Schema{}, false
	}
	return *f.nested, true
}
