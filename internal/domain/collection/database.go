package collection

import (
	"fmt"

	"github.com/kailas-cloud/shardcost/internal/domain"
)

// Database is a named set of collections keyed by collection name.
type Database struct {
	name  string
	byKey map[string]*Collection
	order []string
}

// NewDatabase creates an empty database.
func NewDatabase(name string) *Database {
	return &Database{name: name, byKey: make(map[string]*Collection)}
}

// Name returns the database name.
func (d *Database) Name() string { return d.name }

// Add registers a collection, replacing any collection with the same name.
func (d *Database) Add(c *Collection) {
	if _, exists := d.byKey[c.Name()]; !exists {
		d.order = append(d.order, c.Name())
	}
	d.byKey[c.Name()] = c
}

// Get returns the named collection or ErrNotFound.
func (d *Database) Get(name string) (*Collection, error) {
	c, ok := d.byKey[name]
	if !ok {
		return nil, fmt.Errorf("collection %q in database %q: %w", name, d.name, domain.ErrNotFound)
	}
	return c, nil
}

// Collections returns the collections in insertion order.
func (d *Database) Collections() []*Collection {
	out := make([]*Collection, 0, len(d.order))
	for _, name := range d.order {
		out = append(out, d.byKey[name])
	}
	return out
}
