// Package sdk is a Go client for the shardcost HTTP API.
//
//	client := sdk.New("http://localhost:8080")
//	report, err := client.Report(ctx, 2, sdk.EstimateRequest{
//	    ShardingStrategy: map[string]string{"Product": "id", "Stock": "IDP"},
//	})
//
// All methods take a context and return typed results. API errors are
// returned as *sdk.APIError carrying the HTTP status and error code.
package sdk
