package schema

import (
	"errors"
	"testing"

	"github.com/kailas-cloud/shardcost/internal/domain"
)

func makeField(t *testing.T, name string, kind Kind) Field {
	t.Helper()
	f, err := NewField(name, kind, true)
	if err != nil {
		t.Fatalf("NewField(%q, %q): %v", name, kind, err)
	}
	return f
}

func TestNewField_Scalar(t *testing.T) {
	f := makeField(t, "quantity", KindInteger)

	if f.Name() != "quantity" {
		t.Errorf("Name() = %q, want %q", f.Name(), "quantity")
	}
	if f.Kind() != KindInteger {
		t.Errorf("Kind() = %q, want %q", f.Kind(), KindInteger)
	}
	if !f.Required() {
		t.Error("Required() = false, want true")
	}
	if _, ok := f.Nested(); ok {
		t.Error("Nested() ok = true for a scalar field")
	}
}

func TestNewField_EmptyName(t *testing.T) {
	_, err := NewField("", KindString, false)
	if !errors.Is(err, domain.ErrMalformedSchema) {
		t.Fatalf("err = %v, want ErrMalformedSchema", err)
	}
}

func TestNewField_UnknownKind(t *testing.T) {
	_, err := NewField("x", Kind("decimal"), false)
	if !errors.Is(err, domain.ErrMalformedSchema) {
		t.Fatalf("err = %v, want ErrMalformedSchema", err)
	}
}

func TestNewField_CompositeKindRejected(t *testing.T) {
	for _, kind := range []Kind{KindObject, KindArray} {
		if _, err := NewField("x", kind, false); !errors.Is(err, domain.ErrMalformedSchema) {
			t.Errorf("NewField with kind %q: err = %v, want ErrMalformedSchema", kind, err)
		}
	}
}

func TestNewObjectField_OwnsNestedSchema(t *testing.T) {
	nested, err := New("price", []Field{makeField(t, "amount", KindNumber)})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	f, err := NewObjectField("price", true, nested)
	if err != nil {
		t.Fatalf("NewObjectField: %v", err)
	}
	if f.Kind() != KindObject {
		t.Errorf("Kind() = %q, want %q", f.Kind(), KindObject)
	}
	got, ok := f.Nested()
	if !ok {
		t.Fatal("Nested() ok = false")
	}
	if got.Name() != "price" || len(got.Fields()) != 1 {
		t.Errorf("Nested() = %q with %d fields, want %q with 1", got.Name(), len(got.Fields()), "price")
	}
}

func TestNew_DuplicateField(t *testing.T) {
	fields := []Field{
		makeField(t, "IDP", KindInteger),
		makeField(t, "IDP", KindInteger),
	}
	_, err := New("Stock", fields)
	if !errors.Is(err, domain.ErrMalformedSchema) {
		t.Fatalf("err = %v, want ErrMalformedSchema", err)
	}
}

func TestSchema_FieldByName(t *testing.T) {
	s, err := New("Stock", []Field{
		makeField(t, "IDP", KindInteger),
		makeField(t, "quantity", KindInteger),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	f, ok := s.FieldByName("quantity")
	if !ok || f.Name() != "quantity" {
		t.Errorf("FieldByName(quantity) = %v, %v", f.Name(), ok)
	}
	if _, ok := s.FieldByName("missing"); ok {
		t.Error("FieldByName(missing) ok = true")
	}
	if !s.HasField("IDP") {
		t.Error("HasField(IDP) = false")
	}
}

func TestSchema_Project(t *testing.T) {
	s, err := New("Product", []Field{
		makeField(t, "IDP", KindInteger),
		makeField(t, "name", KindString),
		makeField(t, "brand", KindString),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	p := s.Project("proj", "brand", "IDP", "brand", "missing")

	if p.Name() != "proj" {
		t.Errorf("Name() = %q, want %q", p.Name(), "proj")
	}
	// Deduplicated, in request order, unknown keys skipped.
	fields := p.Fields()
	if len(fields) != 2 {
		t.Fatalf("Fields() len = %d, want 2", len(fields))
	}
	if fields[0].Name() != "brand" || fields[1].Name() != "IDP" {
		t.Errorf("Fields() = [%s, %s], want [brand, IDP]", fields[0].Name(), fields[1].Name())
	}
}

func TestSchema_ProjectEmpty(t *testing.T) {
	s, _ := New("X", nil)
	p := s.Project("empty", "anything")
	if len(p.Fields()) != 0 {
		t.Errorf("Fields() len = %d, want 0", len(p.Fields()))
	}
}

func TestKind_IsScalar(t *testing.T) {
	scalars := []Kind{KindInteger, KindNumber, KindString, KindDate, KindLongString}
	for _, k := range scalars {
		if !k.IsScalar() {
			t.Errorf("%q.IsScalar() = false", k)
		}
	}
	for _, k := range []Kind{KindObject, KindArray, Kind("bogus")} {
		if k.IsScalar() {
			t.Errorf("%q.IsScalar() = true", k)
		}
	}
}
