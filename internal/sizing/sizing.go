// Package sizing computes byte sizes of documents, collections and databases
// from their schemas. All figures are analytical estimates driven by fixed
// per-type constants, not measurements.
package sizing

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kailas-cloud/shardcost/internal/domain/collection"
	"github.com/kailas-cloud/shardcost/internal/domain/schema"
)

// Modeled byte sizes per field kind.
const (
	IntegerSize    = 8
	NumberSize     = 8
	StringSize     = 80
	DateSize       = 20
	LongStringSize = 200

	// KeyValueOverhead is the per-field tag/key cost.
	KeyValueOverhead = 12
	// ArrayOverhead is the fixed cost of the array structure itself.
	ArrayOverhead = 12
)

// ArraySizes maps array field names to their expected element counts.
// A field absent from the map counts as one element.
type ArraySizes map[string]int64

// Count returns the expected element count for an array field.
func (a ArraySizes) Count(field string) int64 {
	if n, ok := a[field]; ok {
		return n
	}
	return 1
}

// Fingerprint returns a canonical identifier of the hint set, used to key
// the per-collection size memo.
func (a ArraySizes) Fingerprint() string {
	if len(a) == 0 {
		return ""
	}
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%s=%d;", k, a[k])
	}
	return b.String()
}

// FieldSize returns the modeled size of one field: the key overhead plus a
// kind-dependent payload. Object fields recurse into their nested schema,
// array fields add the array overhead plus count times the item size, where
// count is looked up by field name in the hints.
func FieldSize(f schema.Field, hints ArraySizes) int64 {
	size := int64(KeyValueOverhead)
	switch f.Kind() {
	case schema.KindInteger:
		size += IntegerSize
	case schema.KindNumber:
		size += NumberSize
	case schema.KindString:
		size += StringSize
	case schema.KindDate:
		size += DateSize
	case schema.KindLongString:
		size += LongStringSize
	case schema.KindObject:
		if nested, ok := f.Nested(); ok {
			size += DocumentSize(nested, hints)
		}
	case schema.KindArray:
		if item, ok := f.Nested(); ok {
			size += ArrayOverhead + hints.Count(f.Name())*DocumentSize(item, hints)
		}
	}
	return size
}

// DocumentSize returns the modeled size of one document of the schema.
func DocumentSize(s schema.Schema, hints ArraySizes) int64 {
	var total int64
	for _, f := range s.Fields() {
		total += FieldSize(f, hints)
	}
	return total
}

// CollectionSize returns document size times document count, memoizing the
// result onto the collection under the hint fingerprint.
func CollectionSize(c *collection.Collection, hints ArraySizes) int64 {
	fp := hints.Fingerprint()
	if _, cached, ok := c.CachedSizes(fp); ok {
		return cached
	}
	docSize := DocumentSize(c.Schema(), hints)
	total := docSize * c.DocumentCount()
	c.StoreSizes(fp, docSize, total)
	return total
}

// DatabaseSize sums the collection sizes of a database.
//
// Contract: a collection already sized by the caller contributes its
// memoized size, under whatever hints it was computed with. A collection
// with no memo is computed with NO array hints, so every array counts as
// one element. Callers that care about embedded arrays must call
// CollectionSize with real hints first.
func DatabaseSize(db *collection.Database) int64 {
	var total int64
	for _, c := range db.Collections() {
		if _, size, ok := c.MemoizedSizes(); ok {
			total += size
			continue
		}
		total += CollectionSize(c, nil)
	}
	return total
}
