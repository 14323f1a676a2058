// Package httpapi exposes the catalog analysis and cost estimates over HTTP.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kailas-cloud/shardcost/internal/catalog"
	"github.com/kailas-cloud/shardcost/internal/domain"
	"github.com/kailas-cloud/shardcost/internal/metrics"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server handles the estimation API.
type Server struct {
	runner        *catalog.Runner
	catalog       *catalog.Catalog
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates the API server.
func NewServer(c *catalog.Catalog, runner *catalog.Runner, logger *zap.Logger) *Server {
	s := &Server{runner: runner, catalog: c, logger: logger}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, "not_found"),
		sentinelHandler(domain.ErrUnknownQuery, http.StatusNotFound, "unknown_query"),
		sentinelHandler(domain.ErrInvalidParameter, http.StatusBadRequest, "invalid_parameter"),
		sentinelHandler(domain.ErrMalformedSchema, http.StatusBadRequest, "malformed_schema"),
	}
	return s
}

// Register mounts the API routes on the router.
func (s *Server) Register(r chi.Router) {
	r.Get("/healthz", s.health)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/databases", s.listDatabases)
		r.Get("/databases/{id}/sizes", s.databaseSizes)
		r.Get("/databases/{id}/sharding", s.databaseSharding)
		r.Post("/databases/{id}/queries/{query}", s.runQuery)
		r.Post("/databases/{id}/report", s.runReport)
	})
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// databaseSummary is the list entry for one catalog design.
type databaseSummary struct {
	ID          int      `json:"id"`
	Signature   string   `json:"signature"`
	Collections []string `json:"collections"`
}

func (s *Server) listDatabases(w http.ResponseWriter, _ *http.Request) {
	designs := s.catalog.Designs()
	items := make([]databaseSummary, 0, len(designs))
	for _, d := range designs {
		names := make([]string, 0, len(d.Database.Collections()))
		for _, col := range d.Database.Collections() {
			names = append(names, col.Name())
		}
		items = append(items, databaseSummary{ID: d.ID, Signature: d.Signature, Collections: names})
	}
	writeJSON(w, http.StatusOK, map[string]any{"databases": items})
}

func (s *Server) databaseSizes(w http.ResponseWriter, r *http.Request) {
	id, ok := s.designID(w, r)
	if !ok {
		return
	}
	report, err := s.runner.Sizes(id)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) databaseSharding(w http.ResponseWriter, r *http.Request) {
	id, ok := s.designID(w, r)
	if !ok {
		return
	}
	analyses, err := s.runner.Sharding(id)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"sharding": analyses})
}

// estimateRequest is the body of query and report runs.
type estimateRequest struct {
	ShardingStrategy map[string]string `json:"sharding_strategy"`
	Brand            string            `json:"brand,omitempty"`
}

func (r estimateRequest) options() catalog.RunOptions {
	return catalog.RunOptions{
		Strategy: catalog.ShardingStrategy(r.ShardingStrategy),
		Brand:    r.Brand,
	}
}

func (s *Server) runQuery(w http.ResponseWriter, r *http.Request) {
	id, ok := s.designID(w, r)
	if !ok {
		return
	}
	query, err := strconv.Atoi(chi.URLParam(r, "query"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "query number must be an integer")
		return
	}

	var req estimateRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid request body: "+err.Error())
		return
	}

	result, err := s.runner.RunQuery(id, query, req.options())
	if err != nil {
		metrics.ObserveEstimateFailure("query")
		s.handleDomainError(w, err)
		return
	}
	metrics.ObserveEstimate(operatorKind(result))

	writeJSON(w, http.StatusOK, map[string]any{
		"report_id": uuid.NewString(),
		"database":  id,
		"result":    result,
	})
}

func (s *Server) runReport(w http.ResponseWriter, r *http.Request) {
	id, ok := s.designID(w, r)
	if !ok {
		return
	}

	var req estimateRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid request body: "+err.Error())
		return
	}

	report, err := s.runner.Analyze(id, req.options())
	if err != nil {
		metrics.ObserveEstimateFailure("report")
		s.handleDomainError(w, err)
		return
	}
	metrics.ObserveEstimate("report")

	writeJSON(w, http.StatusOK, map[string]any{
		"report_id": uuid.NewString(),
		"report":    report,
	})
}

func (s *Server) designID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "database id must be an integer")
		return 0, false
	}
	return id, true
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	for _, handle := range s.errorHandlers {
		if handle(w, err) {
			return
		}
	}
	s.logger.Error("unhandled error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
}

func operatorKind(res catalog.QueryResult) string {
	switch {
	case res.Filter != nil:
		return "filter"
	case res.Join != nil:
		return "join"
	case res.Aggregate != nil:
		return "aggregate"
	}
	return "unknown"
}

func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, err.Error())
		return true
	}
}

func decodeBody(r *http.Request, v any) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	return json.NewDecoder(r.Body).Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}
