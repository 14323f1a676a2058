package catalog

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/shardcost/internal/costmodel"
	"github.com/kailas-cloud/shardcost/internal/domain"
	"github.com/kailas-cloud/shardcost/internal/domain/collection"
	"github.com/kailas-cloud/shardcost/internal/domain/cost"
	"github.com/kailas-cloud/shardcost/internal/domain/stats"
	"github.com/kailas-cloud/shardcost/internal/operator"
)

// QueryCount is the number of canonical catalog queries.
const QueryCount = 7

// queryDescriptions, indexed by query number.
var queryDescriptions = map[int]string{
	1: "stock of a given product in a given warehouse",
	2: "names and prices of products of a given brand",
	3: "product ids and quantities ordered at a given date",
	4: "stock of a given warehouse with product names",
	5: "warehouse distribution of a brand's products",
	6: "100 most ordered products with name and price",
	7: "product most ordered by a given customer",
}

// ShardingStrategy maps collection names to the sharding key each collection
// is partitioned by in the scenario under evaluation.
type ShardingStrategy map[string]string

// RunOptions parameterizes a catalog query run.
type RunOptions struct {
	Strategy ShardingStrategy
	// Brand is the brand literal of Q2/Q5. Defaults to "Apple", which has
	// its own selectivity in the statistics.
	Brand string
}

// QueryResult is the outcome of one catalog query. Exactly one of Filter,
// Join and Aggregate is set, depending on the query's shape.
type QueryResult struct {
	Query       int                       `json:"query"`
	Description string                    `json:"description"`
	Filter      *operator.FilterResult    `json:"filter,omitempty"`
	Join        *operator.JoinResult      `json:"join,omitempty"`
	Aggregate   *operator.AggregateResult `json:"aggregate,omitempty"`
	Cost        cost.QueryCost            `json:"cost"`
}

// Executor runs the canonical queries against one database design.
type Executor struct {
	db        *collection.Database
	stats     stats.Statistics
	filter    *operator.Filter
	join      *operator.Join
	aggregate *operator.Aggregate
}

// NewExecutor creates an executor over a database.
func NewExecutor(db *collection.Database, st stats.Statistics, model *costmodel.Model) *Executor {
	return &Executor{
		db:        db,
		stats:     st,
		filter:    operator.NewFilter(st, model),
		join:      operator.NewJoin(st, model),
		aggregate: operator.NewAggregate(st, model),
	}
}

// Run executes one catalog query by number.
func (e *Executor) Run(query int, opts RunOptions) (QueryResult, error) {
	var (
		res QueryResult
		err error
	)
	switch query {
	case 1:
		res, err = e.runQ1(opts)
	case 2:
		res, err = e.runQ2(opts)
	case 3:
		res, err = e.runQ3(opts)
	case 4:
		res, err = e.runQ4(opts)
	case 5:
		res, err = e.runQ5(opts)
	case 6:
		res, err = e.runQ6(opts)
	case 7:
		res, err = e.runQ7(opts)
	default:
		return QueryResult{}, fmt.Errorf("query %d: %w", query, domain.ErrUnknownQuery)
	}
	if err != nil {
		return QueryResult{}, fmt.Errorf("q%d: %w", query, err)
	}
	res.Query = query
	res.Description = queryDescriptions[query]
	return res, nil
}

// brandSelectivity: "Apple" has a known product count; any other brand gets
// the average selectivity of a brand.
func (e *Executor) brandSelectivity(brand string) float64 {
	if brand == "" || strings.EqualFold(brand, "Apple") {
		return float64(e.stats.ProductsPerBrandApple) / float64(e.stats.NumProducts)
	}
	return 1 / float64(e.stats.NumBrands)
}

// runQ1: SELECT S.quantity, S.location FROM Stock S
// WHERE S.IDP = $IDP AND S.IDW = $IDW — a point lookup.
func (e *Executor) runQ1(opts RunOptions) (QueryResult, error) {
	stock, err := e.db.Get("Stock")
	if err != nil {
		return QueryResult{}, err
	}

	res, err := e.filter.Estimate(operator.FilterRequest{
		Collection:  stock,
		FilterKeys:  []string{"IDP", "IDW"},
		OutputKeys:  []string{"quantity", "location"},
		ShardingKey: opts.Strategy["Stock"],
		Selectivity: 1 / float64(stock.DocumentCount()),
		UseIndex:    true,
	})
	if err != nil {
		return QueryResult{}, err
	}
	return QueryResult{Filter: &res, Cost: res.Cost}, nil
}

// runQ2: SELECT P.name, P.price FROM Product P WHERE P.brand = $brand.
func (e *Executor) runQ2(opts RunOptions) (QueryResult, error) {
	product, err := e.db.Get("Product")
	if err != nil {
		return QueryResult{}, err
	}

	res, err := e.filter.Estimate(operator.FilterRequest{
		Collection:  product,
		FilterKeys:  []string{"brand"},
		OutputKeys:  []string{"name", "price"},
		ShardingKey: opts.Strategy["Product"],
		Selectivity: e.brandSelectivity(opts.Brand),
		UseIndex:    true,
	})
	if err != nil {
		return QueryResult{}, err
	}
	return QueryResult{Filter: &res, Cost: res.Cost}, nil
}

// runQ3: SELECT O.IDP, O.quantity FROM OrderLine O WHERE O.date = $date.
// Orders are balanced over the year; no index on date.
func (e *Executor) runQ3(opts RunOptions) (QueryResult, error) {
	orderLine, err := e.db.Get("OrderLine")
	if err != nil {
		return QueryResult{}, err
	}

	res, err := e.filter.Estimate(operator.FilterRequest{
		Collection:  orderLine,
		FilterKeys:  []string{"date"},
		OutputKeys:  []string{"IDP", "quantity"},
		ShardingKey: opts.Strategy["OrderLine"],
		Selectivity: 1 / float64(e.stats.NumDates),
		UseIndex:    false,
	})
	if err != nil {
		return QueryResult{}, err
	}
	return QueryResult{Filter: &res, Cost: res.Cost}, nil
}

// runQ4: SELECT P.name, S.quantity FROM Stock S JOIN Product P ON S.IDP = P.IDP
// WHERE S.IDW = $IDW.
func (e *Executor) runQ4(opts RunOptions) (QueryResult, error) {
	stock, err := e.db.Get("Stock")
	if err != nil {
		return QueryResult{}, err
	}
	product, err := e.db.Get("Product")
	if err != nil {
		return QueryResult{}, err
	}

	res, err := e.join.Estimate(operator.JoinRequest{
		JoinKey: "IDP",
		Left: operator.JoinSide{
			Collection:  stock,
			OutputKeys:  []string{"quantity"},
			FilterKeys:  []string{"IDW"},
			ShardingKey: opts.Strategy["Stock"],
			Selectivity: 1 / float64(e.stats.NumWarehouses),
		},
		Right: operator.JoinSide{
			Collection:  product,
			OutputKeys:  []string{"name"},
			ShardingKey: opts.Strategy["Product"],
			Selectivity: 1 / float64(product.DocumentCount()),
		},
	})
	if err != nil {
		return QueryResult{}, err
	}
	return QueryResult{Join: &res, Cost: res.Cost}, nil
}

// runQ5: SELECT P.name, P.price, S.IDW, S.quantity
// FROM Product P JOIN Stock S ON P.IDP = S.IDP WHERE P.brand = $brand.
func (e *Executor) runQ5(opts RunOptions) (QueryResult, error) {
	product, err := e.db.Get("Product")
	if err != nil {
		return QueryResult{}, err
	}
	stock, err := e.db.Get("Stock")
	if err != nil {
		return QueryResult{}, err
	}

	res, err := e.join.Estimate(operator.JoinRequest{
		JoinKey: "IDP",
		Left: operator.JoinSide{
			Collection:  product,
			OutputKeys:  []string{"name", "price"},
			FilterKeys:  []string{"brand"},
			ShardingKey: opts.Strategy["Product"],
			Selectivity: e.brandSelectivity(opts.Brand),
		},
		Right: operator.JoinSide{
			Collection:  stock,
			OutputKeys:  []string{"IDW", "quantity"},
			ShardingKey: opts.Strategy["Stock"],
			Selectivity: 1 / float64(e.stats.NumProducts),
		},
	})
	if err != nil {
		return QueryResult{}, err
	}
	return QueryResult{Join: &res, Cost: res.Cost}, nil
}

// runQ6: the 100 most ordered products — Product joined with OrderLine
// grouped by IDP, LIMIT 100.
func (e *Executor) runQ6(opts RunOptions) (QueryResult, error) {
	product, err := e.db.Get("Product")
	if err != nil {
		return QueryResult{}, err
	}
	orderLine, err := e.db.Get("OrderLine")
	if err != nil {
		return QueryResult{}, err
	}

	res, err := e.aggregate.Estimate(operator.AggregateRequest{
		JoinRequest: operator.JoinRequest{
			JoinKey: "IDP",
			Left: operator.JoinSide{
				Collection:  product,
				OutputKeys:  []string{"name", "price"},
				ShardingKey: opts.Strategy["Product"],
				Selectivity: 1 / float64(e.stats.NumProducts),
			},
			Right: operator.JoinSide{
				Collection:  orderLine,
				OutputKeys:  []string{"quantity", "IDP"},
				ShardingKey: opts.Strategy["OrderLine"],
				Selectivity: float64(e.stats.NumProducts) / float64(e.stats.NumOrderLines),
			},
		},
		RightGroupByKey: "IDP",
		Limit:           100,
	})
	if err != nil {
		return QueryResult{}, err
	}
	return QueryResult{Aggregate: &res, Cost: res.Cost}, nil
}

// runQ7: the product most ordered by one customer — Product joined with the
// customer's order lines grouped by IDP, LIMIT 1.
func (e *Executor) runQ7(opts RunOptions) (QueryResult, error) {
	product, err := e.db.Get("Product")
	if err != nil {
		return QueryResult{}, err
	}
	orderLine, err := e.db.Get("OrderLine")
	if err != nil {
		return QueryResult{}, err
	}

	res, err := e.aggregate.Estimate(operator.AggregateRequest{
		JoinRequest: operator.JoinRequest{
			JoinKey: "IDP",
			Left: operator.JoinSide{
				Collection:  product,
				OutputKeys:  []string{"name", "price"},
				ShardingKey: opts.Strategy["Product"],
				Selectivity: 1 / float64(e.stats.NumProducts),
			},
			Right: operator.JoinSide{
				Collection:  orderLine,
				OutputKeys:  []string{"quantity"},
				FilterKeys:  []string{"IDC"},
				ShardingKey: opts.Strategy["OrderLine"],
				Selectivity: float64(e.stats.ProductsPerCustomer) / float64(e.stats.NumOrderLines),
			},
		},
		RightGroupByKey: "IDP",
		Limit:           1,
	})
	if err != nil {
		return QueryResult{}, err
	}
	return QueryResult{Aggregate: &res, Cost: res.Cost}, nil
}
