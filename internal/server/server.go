// Package server exposes the GraphQL endpoint and the operational
// endpoints over plain net/http.
package server

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	graphql "github.com/graph-gophers/graphql-go"

	"chouquette-gateway/internal/cache"
	"chouquette-gateway/internal/metrics"
	"chouquette-gateway/internal/ratelimit"
	"chouquette-gateway/internal/schema"
	"chouquette-gateway/internal/upstream"
)

// readinessQuery exercises the resolution graph end to end; a failing
// upstream makes the instance report not ready.
const readinessQuery = `{ nuxtServerInit { settings { name url } } }`

// Options carries the optional middleware pieces.
type Options struct {
	Limiter       *ratelimit.Limiter
	Metrics       *metrics.Collector
	ResponseCache cache.Store
	CacheTTL      time.Duration
}

// Server serves GraphQL over HTTP.
type Server struct {
	schema *graphql.Schema
	logger *slog.Logger
	opts   Options
}

// New builds a server around a parsed schema.
func New(gqlSchema *graphql.Schema, logger *slog.Logger, opts Options) *Server {
	return &Server{schema: gqlSchema, logger: logger, opts: opts}
}

// Handler returns the full route set.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/graphql", s.handleGraphQL)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/ready", s.handleReady)
	mux.HandleFunc("/metrics", s.handleMetrics)
	return mux
}

type graphqlRequest struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

func (s *Server) handleGraphQL(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeRequest(w, r)
	if !ok {
		return
	}

	if s.opts.Limiter != nil {
		if err := s.opts.Limiter.Allow(); err != nil {
			retryAfter := time.Second
			if e, isLimited := err.(*ratelimit.ErrRateLimited); isLimited {
				retryAfter = e.RetryAfter
			}
			if s.opts.Metrics != nil {
				s.opts.Metrics.RecordRateLimited()
			}
			w.Header().Set("Retry-After", strconv.Itoa(int(retryAfter.Seconds())+1))
			http.Error(w, err.Error(), http.StatusTooManyRequests)
			return
		}
	}

	cacheable := s.opts.ResponseCache != nil && !schema.IsMutation(req.Query, req.OperationName)
	var cacheKey string
	if cacheable {
		cacheKey = responseCacheKey(req)
		if body, hit, err := s.opts.ResponseCache.Get(r.Context(), cacheKey); err != nil {
			s.logger.Warn("response cache read failed", "error", err)
		} else if hit {
			if s.opts.Metrics != nil {
				s.opts.Metrics.RecordCacheHit()
			}
			writeJSONBytes(w, body)
			return
		}
	}

	// Each operation gets a fresh request cache so identical upstream GETs
	// within the resolution graph collapse into one call.
	ctx := upstream.WithRequestCache(r.Context())

	start := time.Now()
	resp := s.schema.Exec(ctx, req.Query, req.OperationName, req.Variables)
	duration := time.Since(start)

	success := len(resp.Errors) == 0
	if s.opts.Metrics != nil {
		s.opts.Metrics.RecordRequest(duration, success)
	}

	body, err := json.Marshal(resp)
	if err != nil {
		s.logger.Error("response marshal failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	if cacheable && success {
		if err := s.opts.ResponseCache.Set(r.Context(), cacheKey, body, s.opts.CacheTTL); err != nil {
			s.logger.Warn("response cache write failed", "error", err)
		}
	}

	s.logger.Debug("graphql request served",
		"operation", req.OperationName, "duration", duration, "errors", len(resp.Errors))
	writeJSONBytes(w, body)
}

func (s *Server) decodeRequest(w http.ResponseWriter, r *http.Request) (graphqlRequest, bool) {
	var req graphqlRequest
	switch r.Method {
	case http.MethodPost:
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return req, false
		}
	case http.MethodGet:
		params := r.URL.Query()
		req.Query = params.Get("query")
		req.OperationName = params.Get("operationName")
		if raw := params.Get("variables"); raw != "" {
			if err := json.Unmarshal([]byte(raw), &req.Variables); err != nil {
				http.Error(w, "invalid variables", http.StatusBadRequest)
				return req, false
			}
		}
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return req, false
	}
	if req.Query == "" {
		http.Error(w, "missing query", http.StatusBadRequest)
		return req, false
	}
	return req, true
}

// responseCacheKey hashes the full operation identity. Variables marshal
// with sorted keys, so equivalent requests share a key.
func responseCacheKey(req graphqlRequest) string {
	vars, _ := json.Marshal(req.Variables)
	h := sha256.New()
	h.Write([]byte(req.Query))
	h.Write([]byte{0})
	h.Write(vars)
	h.Write([]byte{0})
	h.Write([]byte(req.OperationName))
	return fmt.Sprintf("gql:%x", h.Sum(nil))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(upstream.WithRequestCache(r.Context()), 10*time.Second)
	defer cancel()

	resp := s.schema.Exec(ctx, readinessQuery, "", nil)
	if len(resp.Errors) > 0 {
		s.logger.Warn("readiness check failed", "error", resp.Errors[0])
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  resp.Errors[0].Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) handleMetrics(w http.ResponseWriter, _ *http.Request) {
	if s.opts.Metrics == nil {
		http.Error(w, "metrics disabled", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	w.Write([]byte(s.opts.Metrics.PrometheusFormat()))
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeJSONBytes(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}
