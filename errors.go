package shardcost

import "github.com/kailas-cloud/shardcost/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotFound         = domain.ErrNotFound
	ErrInvalidParameter = domain.ErrInvalidParameter
	ErrMalformedSchema  = domain.ErrMalformedSchema
	ErrUnknownQuery     = domain.ErrUnknownQuery
)
