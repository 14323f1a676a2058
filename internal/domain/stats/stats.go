// Package stats holds the workload cardinalities every estimate is derived
// from. A Statistics value is the single source of real-world counts; it is
// built once and treated as immutable afterwards.
package stats

// Statistics is the fixed bag of named workload counts.
type Statistics struct {
	NumClients            int64
	NumProducts           int64
	NumOrderLines         int64
	NumWarehouses         int64
	OrdersPerCustomer     int64
	ProductsPerCustomer   int64
	CategoriesPerProduct  int64
	NumBrands             int64
	ProductsPerBrandApple int64
	NumDates              int64
	NumServers            int64

	// Derived, recomputed by Normalize.
	NumStockEntries      int64
	OrderLinesPerProduct int64

	custom map[string]int64
}

// Default returns the reference workload: an e-commerce store with 10M
// clients, 100k products, 4G order lines, 200 warehouses and a 1000-server
// cluster.
func Default() Statistics {
	s := Statistics{
		NumClients:            10_000_000,
		NumProducts:           100_000,
		NumOrderLines:         4_000_000_000,
		NumWarehouses:         200,
		OrdersPerCustomer:     100,
		ProductsPerCustomer:   20,
		CategoriesPerProduct:  2,
		NumBrands:             5_000,
		ProductsPerBrandApple: 50,
		NumDates:              365,
		NumServers:            1_000,
	}
	return s.Normalize()
}

// Normalize recomputes the derived counts from the base ones and returns the
// updated value. Call it after overriding base counts.
func (s Statistics) Normalize() Statistics {
	s.NumStockEntries = s.NumProducts * s.NumWarehouses
	if s.NumProducts > 0 {
		s.OrderLinesPerProduct = s.NumOrderLines / s.NumProducts
	}
	return s
}

// WithCustom attaches extra named counts. The map is copied.
func (s Statistics) WithCustom(custom map[string]int64) Statistics {
	s.custom = make(map[string]int64, len(custom))
	for k, v := range custom {
		s.custom[k] = v
	}
	return s
}

// Get returns a count by its snake_case name, falling back to the custom
// counts and then to zero.
func (s Statistics) Get(key string) int64 {
	switch key {
	case "num_clients":
		return s.NumClients
	case "num_products":
		return s.NumProducts
	case "num_order_lines":
		return s.NumOrderLines
	case "num_warehouses":
		return s.NumWarehouses
	case "orders_per_customer":
		return s.OrdersPerCustomer
	case "products_per_customer":
		return s.ProductsPerCustomer
	case "categories_per_product":
		return s.CategoriesPerProduct
	case "num_brands":
		return s.NumBrands
	case "products_per_brand_apple":
		return s.ProductsPerBrandApple
	case "num_dates":
		return s.NumDates
	case "num_servers":
		return s.NumServers
	case "num_stock_entries":
		return s.NumStockEntries
	case "order_lines_per_product":
		return s.OrderLinesPerProduct
	}
	return s.custom[key]
}
