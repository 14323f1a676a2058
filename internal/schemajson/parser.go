// Package schemajson parses the JSON-Schema-like collection definitions the
// estimator is configured with: per collection an object with "properties"
// (field name to {type, format?}) and "required", recursing through nested
// "properties" and array "items". A single file may hold several schemas
// keyed "<CollectionName>_<DatabaseId>".
//
// Property order is not preserved by JSON decoding; fields are emitted in
// sorted name order, which never changes a size computation.
package schemajson

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"sort"

	"github.com/kailas-cloud/shardcost/internal/domain"
	"github.com/kailas-cloud/shardcost/internal/domain/schema"
)

type fieldDef struct {
	Type       string              `json:"type"`
	Format     string              `json:"format,omitempty"`
	Properties map[string]fieldDef `json:"properties,omitempty"`
	Required   []string            `json:"required,omitempty"`
	Items      *fieldDef           `json:"items,omitempty"`
}

// Parse decodes a single schema definition.
func Parse(data []byte, name string) (schema.Schema, error) {
	var def fieldDef
	if err := json.Unmarshal(data, &def); err != nil {
		return schema.Schema{}, fmt.Errorf("%w: %w", domain.ErrMalformedSchema, err)
	}
	return buildSchema(name, def)
}

// ParseMulti decodes a file holding multiple named schemas.
func ParseMulti(data []byte) (map[string]schema.Schema, error) {
	var defs map[string]fieldDef
	if err := json.Unmarshal(data, &defs); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrMalformedSchema, err)
	}
	out := make(map[string]schema.Schema, len(defs))
	for name, def := range defs {
		s, err := buildSchema(name, def)
		if err != nil {
			return nil, fmt.Errorf("schema %q: %w", name, err)
		}
		out[name] = s
	}
	return out, nil
}

// ParseMultiFile loads and decodes a multi-schema file.
func ParseMultiFile(path string) (map[string]schema.Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema file: %w", err)
	}
	return ParseMulti(data)
}

func buildSchema(name string, def fieldDef) (schema.Schema, error) {
	names := make([]string, 0, len(def.Properties))
	for n := range def.Properties {
		names = append(names, n)
	}
	sort.Strings(names)

	fields := make([]schema.Field, 0, len(names))
	for _, fieldName := range names {
		f, err := buildField(fieldName, def.Properties[fieldName], slices.Contains(def.Required, fieldName))
		if err != nil {
			return schema.Schema{}, err
		}
		fields = append(fields, f)
	}
	return schema.New(name, fields)
}

func buildField(name string, def fieldDef, required bool) (schema.Field, error) {
	switch def.Type {
	case "integer":
		return schema.NewField(name, schema.KindInteger, required)
	case "number":
		return schema.NewField(name, schema.KindNumber, required)
	case "string":
		switch def.Format {
		case "date":
			return schema.NewField(name, schema.KindDate, required)
		case "longstring":
			return schema.NewField(name, schema.KindLongString, required)
		case "":
			return schema.NewField(name, schema.KindString, required)
		default:
			return schema.Field{}, fmt.Errorf("%w: field %q has unknown string format %q",
				domain.ErrMalformedSchema, name, def.Format)
		}
	case "object":
		if def.Properties == nil {
			return schema.Field{}, fmt.Errorf("%w: object field %q has no properties",
				domain.ErrMalformedSchema, name)
		}
		nested, err := buildSchema(name, def)
		if err != nil {
			return schema.Field{}, err
		}
		return schema.NewObjectField(name, required, nested)
	case "array":
		if def.Items == nil {
			return schema.Field{}, fmt.Errorf("%w: array field %q has no items",
				domain.ErrMalformedSchema, name)
		}
		item, err := buildSchema(name+"_item", *def.Items)
		if err != nil {
			return schema.Field{}, err
		}
		return schema.NewArrayField(name, required, item)
	default:
		return schema.Field{}, fmt.Errorf("%w: field %q has unknown type %q",
			domain.ErrMalformedSchema, name, def.Type)
	}
}
