package costmodel

import "github.com/kailas-cloud/shardcost/internal/domain"

// Params are the physical constants of the simulated cluster. They are
// configuration: defaults below, overridable per deployment.
type Params struct {
	// BandwidthBytesPerMS is the network bandwidth, default 1 Gbit/s.
	BandwidthBytesPerMS float64 `yaml:"bandwidth_bytes_per_ms"`
	// CarbonPerGBTransfer is grams CO2 emitted per decimal GB moved.
	CarbonPerGBTransfer float64 `yaml:"carbon_per_gb_transfer"`
	// PricePerGBTransfer is USD per decimal GB moved.
	PricePerGBTransfer float64 `yaml:"price_per_gb_transfer"`
	// CarbonPerServerMS is grams CO2 per server per millisecond of work.
	CarbonPerServerMS float64 `yaml:"carbon_per_server_ms"`
	// PricePerServerMS is USD per server per millisecond of work.
	PricePerServerMS float64 `yaml:"price_per_server_ms"`
	// IndexAccessTimeMS is the per-document access time with an index.
	IndexAccessTimeMS float64 `yaml:"index_access_time_ms"`
	// FullScanTimePerDocMS is the per-document access time without an index.
	FullScanTimePerDocMS float64 `yaml:"full_scan_time_per_doc_ms"`
}

// DefaultParams returns the reference cluster constants.
func DefaultParams() Params {
	return Params{
		BandwidthBytesPerMS:  125_000,
		CarbonPerGBTransfer:  11,
		PricePerGBTransfer:   0.09,
		CarbonPerServerMS:    1.25e-5,
		PricePerServerMS:     1.4e-6,
		IndexAccessTimeMS:    0.001,
		FullScanTimePerDocMS: 0.01,
	}
}

// Validate checks that every constant is positive.
func (p Params) Validate() error {
	checks := []struct {
		name  string
		value float64
	}{
		{"bandwidth_bytes_per_ms", p.BandwidthBytesPerMS},
		{"carbon_per_gb_transfer", p.CarbonPerGBTransfer},
		{"price_per_gb_transfer", p.PricePerGBTransfer},
		{"carbon_per_server_ms", p.CarbonPerServerMS},
		{"price_per_server_ms", p.PricePerServerMS},
		{"index_access_time_ms", p.IndexAccessTimeMS},
		{"full_scan_time_per_doc_ms", p.FullScanTimePerDocMS},
	}
	for _, c := range checks {
		if c.value <= 0 {
			return domain.NewInvalidParameter(c.name, c.value)
		}
	}
	return nil
}
