// Package shardcost estimates the size, shard distribution and query cost
// of schema-described document databases before any data is loaded.
//
// The estimator works from a catalog of database designs (five variants of
// an e-commerce schema, from fully normalized to fully embedded), a set of
// workload statistics and a linear cost model. It answers three questions:
//
//   - how large will each collection and the whole database be,
//   - how evenly does a sharding key spread documents over servers,
//   - what does each catalog query cost in time, carbon and money.
//
//	est, _ := shardcost.New()
//	report, _ := est.Analyze(2, shardcost.RunOptions{})
//	fmt.Println(report.Sizes.TotalHuman)
//
// Statistics and cost parameters can be overridden with options:
//
//	est, _ := shardcost.New(
//	    shardcost.WithServers(500),
//	    shardcost.WithCostParams(params),
//	)
package shardcost
