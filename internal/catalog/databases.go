// Package catalog binds the estimator to the reference e-commerce workload:
// five database designs with different denormalization choices and the seven
// canonical analytical queries. Selectivity formulas here are configuration
// consumed by the operators, not operator logic.
package catalog

import (
	"fmt"

	"github.com/kailas-cloud/shardcost/internal/domain"
	"github.com/kailas-cloud/shardcost/internal/domain/collection"
	"github.com/kailas-cloud/shardcost/internal/domain/schema"
	"github.com/kailas-cloud/shardcost/internal/domain/stats"
	"github.com/kailas-cloud/shardcost/internal/sharding"
	"github.com/kailas-cloud/shardcost/internal/sizing"
)

// Design is one catalog database design: a database, its denormalization
// signature, and the array-size hints its embedded arrays are sized with.
type Design struct {
	ID        int
	Signature string
	Database  *collection.Database
	// Hints maps collection name to the array-size hints used when sizing
	// that collection's embedded arrays.
	Hints map[string]sizing.ArraySizes
	// ShardingCandidates maps collection name to the sharding keys worth
	// comparing for that collection.
	ShardingCandidates map[string][]sharding.Candidate
}

// Catalog holds the five reference designs.
type Catalog struct {
	stats   stats.Statistics
	designs map[int]*Design
}

// New builds the catalog designs from the workload statistics.
func New(st stats.Statistics) *Catalog {
	c := &Catalog{stats: st, designs: make(map[int]*Design)}
	for _, d := range []*Design{
		c.buildDB1(),
		c.buildDB2(),
		c.buildDB3(),
		c.buildDB4(),
		c.buildDB5(),
	} {
		c.designs[d.ID] = d
	}
	return c
}

// Stats returns the workload statistics the catalog was built from.
func (c *Catalog) Stats() stats.Statistics { return c.stats }

// Design returns the design with the given id or ErrNotFound.
func (c *Catalog) Design(id int) (*Design, error) {
	d, ok := c.designs[id]
	if !ok {
		return nil, fmt.Errorf("database design %d: %w", id, domain.ErrNotFound)
	}
	return d, nil
}

// Designs returns all designs ordered by id.
func (c *Catalog) Designs() []*Design {
	out := make([]*Design, 0, len(c.designs))
	for id := 1; id <= len(c.designs); id++ {
		if d, ok := c.designs[id]; ok {
			out = append(out, d)
		}
	}
	return out
}

// Schema builders. Field definitions are literals, so constructor failures
// are programming errors and panic.

func mustField(f schema.Field, err error) schema.Field {
	if err != nil {
		panic(err)
	}
	return f
}

func mustSchema(s schema.Schema, err error) schema.Schema {
	if err != nil {
		panic(err)
	}
	return s
}

func priceSchema() schema.Schema {
	return mustSchema(schema.New("price", []schema.Field{
		mustField(schema.NewField("amount", schema.KindNumber, true)),
		mustField(schema.NewField("currency", schema.KindString, true)),
		mustField(schema.NewField("vat_rate", schema.KindNumber, true)),
	}))
}

func categorySchema() schema.Schema {
	return mustSchema(schema.New("category", []schema.Field{
		mustField(schema.NewField("title", schema.KindString, true)),
	}))
}

func supplierSchema() schema.Schema {
	return mustSchema(schema.New("supplier", []schema.Field{
		mustField(schema.NewField("IDS", schema.KindInteger, true)),
		mustField(schema.NewField("name", schema.KindString, true)),
		mustField(schema.NewField("SIRET", schema.KindString, true)),
		mustField(schema.NewField("headOffice", schema.KindString, true)),
		mustField(schema.NewField("revenue", schema.KindInteger, true)),
	}))
}

// productFields is the normalized Product shape: scalars, a nested price and
// supplier and a categories array.
func productFields(extra ...schema.Field) []schema.Field {
	fields := []schema.Field{
		mustField(schema.NewField("IDP", schema.KindInteger, true)),
		mustField(schema.NewField("name", schema.KindString, true)),
		mustField(schema.NewField("brand", schema.KindString, true)),
		mustField(schema.NewField("description", schema.KindLongString, false)),
		mustField(schema.NewField("image_url", schema.KindString, false)),
		mustField(schema.NewObjectField("price", true, priceSchema())),
		mustField(schema.NewArrayField("categories", false, categorySchema())),
		mustField(schema.NewObjectField("supplier", true, supplierSchema())),
	}
	return append(fields, extra...)
}

func productSchema(extra ...schema.Field) schema.Schema {
	return mustSchema(schema.New("Product", productFields(extra...)))
}

func stockFields() []schema.Field {
	return []schema.Field{
		mustField(schema.NewField("IDP", schema.KindInteger, true)),
		mustField(schema.NewField("IDW", schema.KindInteger, true)),
		mustField(schema.NewField("quantity", schema.KindInteger, true)),
		mustField(schema.NewField("location", schema.KindString, false)),
	}
}

func stockSchema(extra ...schema.Field) schema.Schema {
	return mustSchema(schema.New("Stock", append(stockFields(), extra...)))
}

func warehouseSchema() schema.Schema {
	return mustSchema(schema.New("Warehouse", []schema.Field{
		mustField(schema.NewField("IDW", schema.KindInteger, true)),
		mustField(schema.NewField("address", schema.KindLongString, true)),
		mustField(schema.NewField("capacity", schema.KindInteger, true)),
	}))
}

func orderLineFields() []schema.Field {
	return []schema.Field{
		mustField(schema.NewField("IDC", schema.KindInteger, true)),
		mustField(schema.NewField("IDP", schema.KindInteger, true)),
		mustField(schema.NewField("date", schema.KindDate, true)),
		mustField(schema.NewField("quantity", schema.KindInteger, true)),
		mustField(schema.NewField("deliveryDate", schema.KindDate, false)),
		mustField(schema.NewField("comment", schema.KindLongString, false)),
		mustField(schema.NewField("grade", schema.KindInteger, false)),
	}
}

func orderLineSchema(extra ...schema.Field) schema.Schema {
	return mustSchema(schema.New("OrderLine", append(orderLineFields(), extra...)))
}

func clientSchema() schema.Schema {
	return mustSchema(schema.New("Client", []schema.Field{
		mustField(schema.NewField("IDC", schema.KindInteger, true)),
		mustField(schema.NewField("ln", schema.KindString, true)),
		mustField(schema.NewField("fn", schema.KindString, true)),
		mustField(schema.NewField("address", schema.KindLongString, false)),
		mustField(schema.NewField("nationality", schema.KindString, false)),
		mustField(schema.NewField("birthDate", schema.KindDate, false)),
		mustField(schema.NewField("email", schema.KindString, true)),
	}))
}

func mustCollection(name string, sch schema.Schema, count int64) *collection.Collection {
	c, err := collection.New(name, sch, count)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Catalog) productCandidates() []sharding.Candidate {
	return []sharding.Candidate{
		{Key: "IDP", DistinctValues: c.stats.NumProducts},
		{Key: "brand", DistinctValues: c.stats.NumBrands},
	}
}

func (c *Catalog) stockCandidates() []sharding.Candidate {
	return []sharding.Candidate{
		{Key: "IDP", DistinctValues: c.stats.NumProducts},
		{Key: "IDW", DistinctValues: c.stats.NumWarehouses},
	}
}

func (c *Catalog) orderLineCandidates() []sharding.Candidate {
	return []sharding.Candidate{
		{Key: "IDC", DistinctValues: c.stats.NumClients},
		{Key: "IDP", DistinctValues: c.stats.NumProducts},
	}
}

// buildDB1 is the normalized design: five flat collections.
func (c *Catalog) buildDB1() *Design {
	db := collection.NewDatabase("DB1")
	db.Add(mustCollection("Product", productSchema(), c.stats.NumProducts))
	db.Add(mustCollection("Stock", stockSchema(), c.stats.NumStockEntries))
	db.Add(mustCollection("Warehouse", warehouseSchema(), c.stats.NumWarehouses))
	db.Add(mustCollection("OrderLine", orderLineSchema(), c.stats.NumOrderLines))
	db.Add(mustCollection("Client", clientSchema(), c.stats.NumClients))

	return &Design{
		ID:        1,
		Signature: "Prod{[Cat],Supp}, St, Wa, OL, Cl",
		Database:  db,
		Hints: map[string]sizing.ArraySizes{
			"Product": {"categories": c.stats.CategoriesPerProduct},
		},
		ShardingCandidates: map[string][]sharding.Candidate{
			"Product":   c.productCandidates(),
			"Stock":     c.stockCandidates(),
			"OrderLine": c.orderLineCandidates(),
		},
	}
}

// buildDB2 embeds each product's stock entries into the product document.
func (c *Catalog) buildDB2() *Design {
	stockItem := mustSchema(schema.New("stock", []schema.Field{
		mustField(schema.NewField("IDW", schema.KindInteger, true)),
		mustField(schema.NewField("quantity", schema.KindInteger, true)),
		mustField(schema.NewField("location", schema.KindString, false)),
	}))
	product := productSchema(mustField(schema.NewArrayField("stocks", false, stockItem)))

	db := collection.NewDatabase("DB2")
	db.Add(mustCollection("Product", product, c.stats.NumProducts))
	db.Add(mustCollection("Warehouse", warehouseSchema(), c.stats.NumWarehouses))
	db.Add(mustCollection("OrderLine", orderLineSchema(), c.stats.NumOrderLines))
	db.Add(mustCollection("Client", clientSchema(), c.stats.NumClients))

	return &Design{
		ID:        2,
		Signature: "Prod{[Cat], Supp, [St]}, Wa, OL, Cl",
		Database:  db,
		Hints: map[string]sizing.ArraySizes{
			"Product": {
				"categories": c.stats.CategoriesPerProduct,
				"stocks":     c.stats.NumWarehouses,
			},
		},
		ShardingCandidates: map[string][]sharding.Candidate{
			"Product":   c.productCandidates(),
			"OrderLine": c.orderLineCandidates(),
		},
	}
}

// buildDB3 embeds the full product document into every stock entry.
func (c *Catalog) buildDB3() *Design {
	stock := stockSchema(mustField(schema.NewObjectField(
		"product", true, mustSchema(schema.New("product", productFields())),
	)))

	db := collection.NewDatabase("DB3")
	db.Add(mustCollection("Stock", stock, c.stats.NumStockEntries))
	db.Add(mustCollection("Warehouse", warehouseSchema(), c.stats.NumWarehouses))
	db.Add(mustCollection("OrderLine", orderLineSchema(), c.stats.NumOrderLines))
	db.Add(mustCollection("Client", clientSchema(), c.stats.NumClients))

	return &Design{
		ID:        3,
		Signature: "St{Prod{[Cat], Supp}}, Wa, OL, Cl",
		Database:  db,
		Hints: map[string]sizing.ArraySizes{
			"Stock": {"categories": c.stats.CategoriesPerProduct},
		},
		ShardingCandidates: map[string][]sharding.Candidate{
			"Stock":     c.stockCandidates(),
			"OrderLine": c.orderLineCandidates(),
		},
	}
}

// buildDB4 embeds the full product document into every order line.
func (c *Catalog) buildDB4() *Design {
	orderLine := orderLineSchema(mustField(schema.NewObjectField(
		"product", true, mustSchema(schema.New("product", productFields())),
	)))

	db := collection.NewDatabase("DB4")
	db.Add(mustCollection("Stock", stockSchema(), c.stats.NumStockEntries))
	db.Add(mustCollection("Warehouse", warehouseSchema(), c.stats.NumWarehouses))
	db.Add(mustCollection("OrderLine", orderLine, c.stats.NumOrderLines))
	db.Add(mustCollection("Client", clientSchema(), c.stats.NumClients))

	return &Design{
		ID:        4,
		Signature: "St, Wa, OL{Prod{[Cat], Supp}}, Cl",
		Database:  db,
		Hints: map[string]sizing.ArraySizes{
			"OrderLine": {"categories": c.stats.CategoriesPerProduct},
		},
		ShardingCandidates: map[string][]sharding.Candidate{
			"Stock":     c.stockCandidates(),
			"OrderLine": c.orderLineCandidates(),
		},
	}
}

// buildDB5 embeds each product's order lines into the product document.
func (c *Catalog) buildDB5() *Design {
	olItem := mustSchema(schema.New("orderLine", []schema.Field{
		mustField(schema.NewField("IDC", schema.KindInteger, true)),
		mustField(schema.NewField("date", schema.KindDate, true)),
		mustField(schema.NewField("quantity", schema.KindInteger, true)),
	}))
	product := productSchema(mustField(schema.NewArrayField("orderLines", false, olItem)))

	db := collection.NewDatabase("DB5")
	db.Add(mustCollection("Product", product, c.stats.NumProducts))
	db.Add(mustCollection("Stock", stockSchema(), c.stats.NumStockEntries))
	db.Add(mustCollection("Warehouse", warehouseSchema(), c.stats.NumWarehouses))
	db.Add(mustCollection("Client", clientSchema(), c.stats.NumClients))

	return &Design{
		ID:        5,
		Signature: "Prod{[Cat], Supp, [OL]}, St, Wa, Cl",
		Database:  db,
		Hints: map[string]sizing.ArraySizes{
			"Product": {
				"categories": c.stats.CategoriesPerProduct,
				"orderLines": c.stats.OrdersPerCustomer,
			},
		},
		ShardingCandidates: map[string][]sharding.Candidate{
			"Product": c.productCandidates(),
			"Stock":   c.stockCandidates(),
		},
	}
}
