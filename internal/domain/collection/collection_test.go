package collection

import (
	"errors"
	"testing"

	"github.com/kailas-cloud/shardcost/internal/domain"
	"github.com/kailas-cloud/shardcost/internal/domain/schema"
)

func makeSchema(t *testing.T, name string) schema.Schema {
	t.Helper()
	f, err := schema.NewField("IDP", schema.KindInteger, true)
	if err != nil {
		t.Fatalf("NewField: %v", err)
	}
	s, err := schema.New(name, []schema.Field{f})
	if err != nil {
		t.Fatalf("schema.New: %v", err)
	}
	return s
}

func TestNew_Valid(t *testing.T) {
	c, err := New("Stock", makeSchema(t, "Stock"), 20_000_000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Name() != "Stock" {
		t.Errorf("Name() = %q, want %q", c.Name(), "Stock")
	}
	if c.DocumentCount() != 20_000_000 {
		t.Errorf("DocumentCount() = %d, want 20000000", c.DocumentCount())
	}
	if c.ShardingKey() != "" {
		t.Errorf("ShardingKey() = %q, want empty", c.ShardingKey())
	}
}

func TestNew_EmptyName(t *testing.T) {
	_, err := New("", makeSchema(t, "X"), 1)
	if !errors.Is(err, domain.ErrMalformedSchema) {
		t.Fatalf("err = %v, want ErrMalformedSchema", err)
	}
}

func TestNew_NegativeCount(t *testing.T) {
	_, err := New("Stock", makeSchema(t, "Stock"), -1)
	if !errors.Is(err, domain.ErrInvalidParameter) {
		t.Fatalf("err = %v, want ErrInvalidParameter", err)
	}
}

func TestWithShardingKey(t *testing.T) {
	c, _ := New("Stock", makeSchema(t, "Stock"), 100)
	c.WithShardingKey("IDP", 100_000)

	if c.ShardingKey() != "IDP" {
		t.Errorf("ShardingKey() = %q, want IDP", c.ShardingKey())
	}
	if c.DistinctShardValues() != 100_000 {
		t.Errorf("DistinctShardValues() = %d, want 100000", c.DistinctShardValues())
	}
}

func TestSizeMemo_FingerprintKeyed(t *testing.T) {
	c, _ := New("Product", makeSchema(t, "Product"), 100)

	if _, _, ok := c.CachedSizes(""); ok {
		t.Fatal("CachedSizes ok = true before any store")
	}

	c.StoreSizes("categories=2;", 500, 50_000)

	if _, _, ok := c.CachedSizes(""); ok {
		t.Error("CachedSizes under different fingerprint must miss")
	}
	doc, col, ok := c.CachedSizes("categories=2;")
	if !ok || doc != 500 || col != 50_000 {
		t.Errorf("CachedSizes = (%d, %d, %v), want (500, 50000, true)", doc, col, ok)
	}

	// MemoizedSizes ignores the fingerprint.
	doc, col, ok = c.MemoizedSizes()
	if !ok || doc != 500 || col != 50_000 {
		t.Errorf("MemoizedSizes = (%d, %d, %v), want (500, 50000, true)", doc, col, ok)
	}
}

func TestDatabase_InsertionOrder(t *testing.T) {
	db := NewDatabase("DB1")
	for _, name := range []string{"Product", "Stock", "Warehouse"} {
		c, _ := New(name, makeSchema(t, name), 1)
		db.Add(c)
	}

	cols := db.Collections()
	want := []string{"Product", "Stock", "Warehouse"}
	if len(cols) != len(want) {
		t.Fatalf("Collections() len = %d, want %d", len(cols), len(want))
	}
	for i, name := range want {
		if cols[i].Name() != name {
			t.Errorf("Collections()[%d] = %q, want %q", i, cols[i].Name(), name)
		}
	}
}

func TestDatabase_Get(t *testing.T) {
	db := NewDatabase("DB1")
	c, _ := New("Stock", makeSchema(t, "Stock"), 1)
	db.Add(c)

	got, err := db.Get("Stock")
	if err != nil || got.Name() != "Stock" {
		t.Errorf("Get(Stock) = %v, %v", got, err)
	}

	_, err = db.Get("Nope")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Get(Nope) err = %v, want ErrNotFound", err)
	}
}

func TestDatabase_AddReplaces(t *testing.T) {
	db := NewDatabase("DB1")
	first, _ := New("Stock", makeSchema(t, "Stock"), 1)
	second, _ := New("Stock", makeSchema(t, "Stock"), 2)
	db.Add(first)
	db.Add(second)

	if len(db.Collections()) != 1 {
		t.Fatalf("Collections() len = %d, want 1", len(db.Collections()))
	}
	got, _ := db.Get("Stock")
	if got.DocumentCount() != 2 {
		t.Errorf("DocumentCount() = %d, want 2 (replaced)", got.DocumentCount())
	}
}
