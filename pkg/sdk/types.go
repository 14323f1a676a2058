package sdk

// QueryCost is the estimated cost of an operation.
type QueryCost struct {
	TimeMS          float64 `json:"time_ms"`
	CarbonGCO2      float64 `json:"carbon_gco2"`
	PriceUSD        float64 `json:"price_usd"`
	DataVolumeBytes float64 `json:"data_volume_bytes"`
	NumDocuments    float64 `json:"num_documents"`
	NumServers      int64   `json:"num_servers"`
}

// DatabaseSummary describes one catalog design in the database list.
type DatabaseSummary struct {
	ID          int      `json:"id"`
	Signature   string   `json:"signature"`
	Collections []string `json:"collections"`
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

// Distribution describes how documents spread over servers for one key.
type Distribution struct {
	ShardingKey          string  `json:"sharding_key"`
	TotalDocuments       int64   `json:"total_documents"`
	DistinctValues       int64   `json:"distinct_values"`
	NumServers           int64   `json:"num_servers"`
	AvgDocsPerServer     float64 `json:"avg_docs_per_server"`
	AvgDistinctPerServer float64 `json:"avg_distinct_per_server"`
	ServersWithData      int64   `json:"servers_with_data"`
	Utilization          float64 `json:"server_utilization"`
	SkewWarning          bool    `json:"skew_warning"`
}

// ShardingAnalysis compares the sharding candidates of one collection.
type ShardingAnalysis struct {
	Collection    string         `json:"collection"`
	Distributions []Distribution `json:"distributions"`
	Recommended   string         `json:"recommended_key"`
}

// FilterResult is the estimate of a filter operation.
type FilterResult struct {
	S1                 int64     `json:"s1"`
	O1                 int64     `json:"o1"`
	InputDocSizeBytes  int64     `json:"input_doc_size_bytes"`
	OutputDocSizeBytes int64     `json:"output_doc_size_bytes"`
	C1VolumeBytes      int64     `json:"c1_volume_bytes"`
	ShardingKey        string    `json:"sharding_key,omitempty"`
	IndexUsed          bool      `json:"index_used"`
	Cost               QueryCost `json:"cost"`
}

// JoinSideResult describes one side of a join estimate.
type JoinSideResult struct {
	InputDocSizeBytes  int64  `json:"input_doc_size_bytes"`
	OutputDocSizeBytes int64  `json:"output_doc_size_bytes"`
	ShardingKey        string `json:"sharding_key,omitempty"`
}

// JoinResult is the estimate of a nested loop join.
type JoinResult struct {
	S1            int64          `json:"s1"`
	O1            int64          `json:"o1"`
	S2            int64          `json:"s2"`
	O2            int64          `json:"o2"`
	NumLoops      int64          `json:"num_loops"`
	C1VolumeBytes int64          `json:"c1_volume_bytes"`
	C2VolumeBytes int64          `json:"c2_volume_bytes"`
	VtVolumeBytes int64          `json:"vt_volume_bytes"`
	JoinKey       string         `json:"join_key"`
	Left          JoinSideResult `json:"left"`
	Right         JoinSideResult `json:"right"`
	Cost          QueryCost      `json:"cost"`
}

// AggregateSideResult describes one side of an aggregation estimate.
type AggregateSideResult struct {
	JoinSideResult
	GroupByKey          string `json:"group_by_key,omitempty"`
	ShuffleDocuments    int64  `json:"shuffle_documents"`
	ShuffleDocSizeBytes int64  `json:"shuffle_doc_size_bytes"`
}

// AggregateResult is the estimate of a grouped join.
type AggregateResult struct {
	S1            int64               `json:"s1"`
	O1            int64               `json:"o1"`
	S2            int64               `json:"s2"`
	O2            int64               `json:"o2"`
	NumLoops      int64               `json:"num_loops"`
	Limit         int64               `json:"limit,omitempty"`
	C1VolumeBytes int64               `json:"c1_volume_bytes"`
	C2VolumeBytes int64               `json:"c2_volume_bytes"`
	VtVolumeBytes int64               `json:"vt_volume_bytes"`
	JoinKey       string              `json:"join_key"`
	Left          AggregateSideResult `json:"left"`
	Right         AggregateSideResult `json:"right"`
	Cost          QueryCost           `json:"cost"`
}

// QueryResult is the estimate of one catalog query.
type QueryResult struct {
	Query       int              `json:"query"`
	Description string           `json:"description"`
	Filter      *FilterResult    `json:"filter,omitempty"`
	Join        *JoinResult      `json:"join,omitempty"`
	Aggregate   *AggregateResult `json:"aggregate,omitempty"`
	Cost        QueryCost        `json:"cost"`
}

// QueryReport is the outcome of one query in a batch report.
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

// EstimateRequest is the body of query and report runs.
type EstimateRequest struct {
	ShardingStrategy map[string]string `json:"sharding_strategy,omitempty"`
	Brand            string            `json:"brand,omitempty"`
}

// QueryResponse wraps a single query estimate.
type QueryResponse struct {
	ReportID string      `json:"report_id"`
	Database int         `json:"database"`
	Result   QueryResult `json:"result"`
}

// ReportResponse wraps a full analysis report.
type ReportResponse struct {
	ReportID string         `json:"report_id"`
	Report   AnalysisReport `json:"report"`
}
