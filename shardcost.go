package shardcost

import (
	"go.uber.org/zap"

	"github.com/kailas-cloud/shardcost/internal/catalog"
	"github.com/kailas-cloud/shardcost/internal/costmodel"
	"github.com/kailas-cloud/shardcost/internal/domain/stats"
)

// Re-exported catalog types for callers of the facade.
type (
	// RunOptions selects the sharding strategy and brand for a query run.
	RunOptions = catalog.RunOptions
	// ShardingStrategy maps collection names to sharding keys.
	ShardingStrategy = catalog.ShardingStrategy
	// QueryResult holds the estimate of a single catalog query.
	QueryResult = catalog.QueryResult
	// QueryReport pairs a query number with its result or error.
	QueryReport = catalog.QueryReport
	// SizeReport lists per-collection and total sizes for a design.
	SizeReport = catalog.SizeReport
	// ShardingAnalysis compares sharding candidates for one collection.
	ShardingAnalysis = catalog.ShardingAnalysis
	// AnalysisReport bundles sizes, sharding and all query estimates.
	AnalysisReport = catalog.AnalysisReport
	// Params holds the cost model parameters.
	Params = costmodel.Params
	// Statistics holds the workload cardinalities.
	Statistics = stats.Statistics
)

// NumQueries is the number of queries in the catalog.
const NumQueries = catalog.QueryCount

// DefaultParams returns the default cost model parameters.
func DefaultParams() Params { return costmodel.DefaultParams() }

// DefaultStatistics returns the default workload statistics.
func DefaultStatistics() Statistics { return stats.Default() }

// Estimator is the shardcost library entry point.
type Estimator struct {
	catalog *catalog.Catalog
	runner  *catalog.Runner
}

// New creates an Estimator over the built-in design catalog.
func New(opts ...Option) (*Estimator, error) {
	cfg := &estimatorConfig{
		stats:  stats.Default(),
		params: costmodel.DefaultParams(),
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	model, err := costmodel.New(cfg.params)
	if err != nil {
		return nil, err
	}

	cat := catalog.New(cfg.stats.Normalize())
	return &Estimator{
		catalog: cat,
		runner:  catalog.NewRunner(cat, model, cfg.logger),
	}, nil
}

// Statistics returns the workload statistics the estimator was built with.
func (e *Estimator) Statistics() Statistics { return e.catalog.Stats() }

// Sizes estimates per-collection and total sizes for a database design.
func (e *Estimator) Sizes(designID int) (SizeReport, error) {
	return e.runner.Sizes(designID)
}

// Sharding compares the sharding key candidates of a database design.
func (e *Estimator) Sharding(designID int) ([]ShardingAnalysis, error) {
	return e.runner.Sharding(designID)
}

// RunQuery estimates the cost of one catalog query against a design.
func (e *Estimator) RunQuery(designID, query int, opts RunOptions) (QueryResult, error) {
	return e.runner.RunQuery(designID, query, opts)
}

// RunQueries estimates every catalog query against a design. Queries that
// fail are reported individually, not as a whole-run error.
func (e *Estimator) RunQueries(designID int, opts RunOptions) ([]QueryReport, error) {
	return e.runner.RunQueries(designID, opts)
}

// Analyze produces the full report for a design: sizes, sharding and all
// query estimates.
func (e *Estimator) Analyze(designID int, opts RunOptions) (AnalysisReport, error) {
	return e.runner.Analyze(designID, opts)
}

// Option configures the Estimator.
type Option interface {
	apply(*estimatorConfig)
}

type optionFunc func(*estimatorConfig)

func (f optionFunc) apply(c *estimatorConfig) { f(c) }

type estimatorConfig struct {
	stats  Statistics
	params Params
	logger *zap.Logger
}

// WithStatistics overrides the workload statistics. Derived counts are
// recomputed from the provided values.
func WithStatistics(s Statistics) Option {
	return optionFunc(func(c *estimatorConfig) { c.stats = s })
}

// WithServers overrides the number of servers in the cluster.
func WithServers(n int64) Option {
	return optionFunc(func(c *estimatorConfig) { c.stats.NumServers = n })
}

// WithCostParams overrides the cost model parameters.
func WithCostParams(p Params) Option {
	return optionFunc(func(c *estimatorConfig) { c.params = p })
}

// WithLogger attaches a zap logger. Without it the estimator is silent.
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(c *estimatorConfig) { c.logger = l })
}
