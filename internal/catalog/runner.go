package catalog

import (
	"go.uber.org/zap"

	"github.com/kailas-cloud/shardcost/internal/costmodel"
	"github.com/kailas-cloud/shardcost/internal/sharding"
	"github.com/kailas-cloud/shardcost/internal/sizing"
)

// Runner performs the full analysis of a catalog design: storage footprint,
// sharding comparison, and the seven canonical queries.
type Runner struct {
	catalog *Catalog
	model   *costmodel.Model
	logger  *zap.Logger
}

// NewRunner creates a runner. A nil logger disables logging.
func NewRunner(c *Catalog, model *costmodel.Model, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{catalog: c, model: model, logger: logger}
}

// CollectionSizes is the storage footprint of one collection.
type CollectionSizes struct {
	Collection          string `json:"collection"`
	DocSizeBytes        int64  `json:"doc_size_bytes"`
	CollectionSizeBytes int64  `json:"collection_size_bytes"`
	CollectionSize      string `json:"collection_size"`
}

// SizeReport is the storage footprint of a whole design.
type SizeReport struct {
	DatabaseID     int               `json:"database_id"`
	Signature      string            `json:"signature"`
	Collections    []CollectionSizes `json:"collections"`
	TotalSizeBytes int64             `json:"total_size_bytes"`
	TotalSize      string            `json:"total_size"`
	TotalSizeGB    float64           `json:"total_size_gb"`
}

// ShardingAnalysis compares the sharding candidates of one collection.
type ShardingAnalysis struct {
	Collection    string                  `json:"collection"`
	Distributions []sharding.Distribution `json:"distributions"`
	Recommended   string                  `json:"recommended_key"`
}

// QueryReport is the outcome of one catalog query in a batch: either a
// result or the error that failed it.
type QueryReport struct {
	Query  int          `json:"query"`
	Result *QueryResult `json:"result,omitempty"`
	Error  string       `json:"error,omitempty"`
}

// AnalysisReport is the full analysis of one design.
type AnalysisReport struct {
	Sizes    SizeReport         `json:"sizes"`
	Sharding []ShardingAnalysis `json:"sharding"`
	Queries  []QueryReport      `json:"queries"`
}

// Sizes computes the storage footprint of a design, sizing each collection
// under the design's array hints.
func (r *Runner) Sizes(designID int) (SizeReport, error) {
	design, err := r.catalog.Design(designID)
	if err != nil {
		return SizeReport{}, err
	}

	report := SizeReport{DatabaseID: design.ID, Signature: design.Signature}
	for _, col := range design.Database.Collections() {
		hints := design.Hints[col.Name()]
		size := sizing.CollectionSize(col, hints)
		report.Collections = append(report.Collections, CollectionSizes{
			Collection:          col.Name(),
			DocSizeBytes:        sizing.DocumentSize(col.Schema(), hints),
			CollectionSizeBytes: size,
			CollectionSize:      sizing.HumanBytes(size),
		})
	}

	// Every collection was just sized with its design hints, so the
	// database rollup reuses those memos instead of the no-hints default.
	total := sizing.DatabaseSize(design.Database)
	report.TotalSizeBytes = total
	report.TotalSize = sizing.HumanBytes(total)
	report.TotalSizeGB = sizing.BytesToGB(total)
	return report, nil
}

// Sharding compares and recommends sharding keys for every collection of
// the design that has candidates.
func (r *Runner) Sharding(designID int) ([]ShardingAnalysis, error) {
	design, err := r.catalog.Design(designID)
	if err != nil {
		return nil, err
	}

	numServers := r.catalog.stats.NumServers
	out := make([]ShardingAnalysis, 0, len(design.ShardingCandidates))
	for _, col := range design.Database.Collections() {
		candidates, ok := design.ShardingCandidates[col.Name()]
		if !ok {
			continue
		}
		distributions, err := sharding.Compare(col, candidates, numServers)
		if err != nil {
			return nil, err
		}
		recommended, err := sharding.Recommend(col, candidates, numServers)
		if err != nil {
			return nil, err
		}
		out = append(out, ShardingAnalysis{
			Collection:    col.Name(),
			Distributions: distributions,
			Recommended:   recommended,
		})
	}
	return out, nil
}

// RunQueries runs all seven catalog queries against the design. A failing
// query is reported and does not abort the batch.
func (r *Runner) RunQueries(designID int, opts RunOptions) ([]QueryReport, error) {
	design, err := r.catalog.Design(designID)
	if err != nil {
		return nil, err
	}

	exec := NewExecutor(design.Database, r.catalog.stats, r.model)
	reports := make([]QueryReport, 0, QueryCount)
	for q := 1; q <= QueryCount; q++ {
		res, err := exec.Run(q, opts)
		if err != nil {
			r.logger.Warn("catalog query failed",
				zap.Int("database", designID),
				zap.Int("query", q),
				zap.Error(err),
			)
			reports = append(reports, QueryReport{Query: q, Error: err.Error()})
			continue
		}
		reports = append(reports, QueryReport{Query: q, Result: &res})
	}
	return reports, nil
}

// RunQuery runs a single catalog query against the design.
func (r *Runner) RunQuery(designID, query int, opts RunOptions) (QueryResult, error) {
	design, err := r.catalog.Design(designID)
	if err != nil {
		return QueryResult{}, err
	}
	return NewExecutor(design.Database, r.catalog.stats, r.model).Run(query, opts)
}

// Analyze produces the full report for a design.
func (r *Runner) Analyze(designID int, opts RunOptions) (AnalysisReport, error) {
	sizes, err := r.Sizes(designID)
	if err != nil {
		return AnalysisReport{}, err
	}
	shardingReport, err := r.Sharding(designID)
	if err != nil {
		return AnalysisReport{}, err
	}
	queries, err := r.RunQueries(designID, opts)
	if err != nil {
		return AnalysisReport{}, err
	}

	r.logger.Info("design analyzed",
		zap.Int("database", designID),
		zap.String("total_size", sizes.TotalSize),
		zap.Int("queries", len(queries)),
	)

	return AnalysisReport{Sizes: sizes, Sharding: shardingReport, Queries: queries}, nil
}
