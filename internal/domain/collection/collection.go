// Package collection models a sharded document collection: a schema, a
// document count, and an optional sharding key.
package collection

import (
	"fmt"

	"github.com/kailas-cloud/shardcost/internal/domain"
	"github.com/kailas-cloud/shardcost/internal/domain/schema"
)

// Collection describes one collection of a database design.
//
// The struct carries a size memo written by the size calculator. The memo is
// keyed by a fingerprint of the array-size hints it was computed under, so a
// lookup under different hints misses instead of returning a stale value.
// The memo is written once per computation and read thereafter; concurrent
// writers are not expected.
type Collection struct {
	name                string
	schema              schema.Schema
	documentCount       int64
	shardingKey         string
	distinctShardValues int64

	memo *sizeMemo
}

type sizeMemo struct {
	fingerprint    string
	docSize        int64
	collectionSize int64
}

// New validates and creates a Collection. The document count must be
// non-negative; operators additionally require it to be positive.
func New(name string, sch schema.Schema, documentCount int64) (*Collection, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: collection name is required", domain.ErrMalformedSchema)
	}
	if documentCount < 0 {
		return nil, domain.NewInvalidParameter("document_count", float64(documentCount))
	}
	return &Collection{name: name, schema: sch, documentCount: documentCount}, nil
}

// WithShardingKey sets the sharding key and its distinct value count.
func (c *Collection) WithShardingKey(key string, distinctValues int64) *Collection {
	c.shardingKey = key
	c.distinctShardValues = distinctValues
	return c
}

// Name returns the collection name.
func (c *Collection) Name() string { return c.name }

// Schema returns the document schema.
func (c *Collection) Schema() schema.Schema { return c.schema }

// DocumentCount returns the number of documents.
func (c *Collection) DocumentCount() int64 { return c.documentCount }

// ShardingKey returns the sharding key, empty if the collection is not sharded.
func (c *Collection) ShardingKey() string { return c.shardingKey }

// DistinctShardValues returns the distinct value count of the sharding key.
func (c *Collection) DistinctShardValues() int64 { return c.distinctShardValues }

// CachedSizes returns the memoized document and collection sizes if they were
// computed under the array-size hints identified by fingerprint.
func (c *Collection) CachedSizes(fingerprint string) (docSize, collectionSize int64, ok bool) {
	if c.memo == nil || c.memo.fingerprint != fingerprint {
		return 0, 0, false
	}
	return c.memo.docSize, c.memo.collectionSize, true
}

// MemoizedSizes returns the memo regardless of the hints it was computed
// under. Used by the database-level rollup, which trusts whatever hints the
// caller pre-sized the collection with.
func (c *Collection) MemoizedSizes() (docSize, collectionSize int64, ok bool) {
	if c.memo == nil {
		return 0, 0, false
	}
	return c.memo.docSize, c.memo.collectionSize, true
}

// StoreSizes memoizes computed sizes under the given hint fingerprint,
// replacing any memo computed under different hints.
func (c *Collection) StoreSizes(fingerprint string, docSize, collectionSize int64) {
	c.memo = &sizeMemo{fingerprint: fingerprint, docSize: docSize, collectionSize: collectionSize}
}
