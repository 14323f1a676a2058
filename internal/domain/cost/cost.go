// Package cost defines the structured estimate every operator produces.
package cost

import "fmt"

// QueryCost is the cost of one query phase or of a whole query.
// Units are fixed by the reporting contract: milliseconds, grams CO2,
// US dollars, bytes.
type QueryCost struct {
	TimeMS          float64 `json:"time_ms"`
	CarbonGCO2      float64 `json:"carbon_gco2"`
	PriceUSD        float64 `json:"price_usd"`
	DataVolumeBytes float64 `json:"data_volume_bytes"`
	NumDocuments    float64 `json:"num_documents"`
	NumServers      int64   `json:"num_servers"`
}

// Add combines two costs: time, carbon, price, volume and document counts add
// pointwise, while NumServers takes the maximum of the operands. The result
// reports the widest fan-out seen so far, not a sum of fan-outs.
func (c QueryCost) Add(other QueryCost) QueryCost {
	return QueryCost{
		TimeMS:          c.TimeMS + other.TimeMS,
		CarbonGCO2:      c.CarbonGCO2 + other.CarbonGCO2,
		PriceUSD:        c.PriceUSD + other.PriceUSD,
		DataVolumeBytes: c.DataVolumeBytes + other.DataVolumeBytes,
		NumDocuments:    c.NumDocuments + other.NumDocuments,
		NumServers:      max(c.NumServers, other.NumServers),
	}
}

// Scale multiplies a per-iteration cost by a loop count. The fan-out is a
// property of each iteration and stays unchanged.
func (c QueryCost) Scale(n float64) QueryCost {
	return QueryCost{
		TimeMS:          c.TimeMS * n,
		CarbonGCO2:      c.CarbonGCO2 * n,
		PriceUSD:        c.PriceUSD * n,
		DataVolumeBytes: c.DataVolumeBytes * n,
		NumDocuments:    c.NumDocuments * n,
		NumServers:      c.NumServers,
	}
}

func (c QueryCost) String() string {
	return fmt.Sprintf(
		"time=%.2fms carbon=%.2fgCO2 price=$%.6f volume=%.0fB docs=%.0f servers=%d",
		c.TimeMS, c.CarbonGCO2, c.PriceUSD, c.DataVolumeBytes, c.NumDocuments, c.NumServers,
	)
}
