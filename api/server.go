// Package api - Thin HTTP layer over the fee calculator.
// The API only decodes requests, looks up price tables and serializes quotes;
// it never performs pricing arithmetic itself.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"parking-fee/core/fee"
	"parking-fee/core/schedule"
	"parking-fee/internal/errors"
	"parking-fee/internal/logging"
)

// Server is the API server
type Server struct {
	mux        *http.ServeMux
	version    string
	tables     schedule.Provider
	calculator *fee.Calculator
	currency   string
	log        *zap.Logger
}

// Option configures a Server
type Option func(*Server)

// WithCalculator replaces the default fee calculator
func WithCalculator(c *fee.Calculator) Option {
	return func(s *Server) {
		s.calculator = c
	}
}

// WithCurrency sets the currency label echoed in quotes
func WithCurrency(currency string) Option {
	return func(s *Server) {
		s.currency = currency
	}
}

// NewServer creates a new API server backed by a price table provider
func NewServer(version string, tables schedule.Provider, opts ...Option) *Server {
	s := &Server{
		mux:        http.NewServeMux(),
		version:    version,
		tables:     tables,
		calculator: fee.NewCalculator(),
		log:        logging.Named("api"),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.registerRoutes()
	return s
}

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	s.mux.HandleFunc("POST /quote", s.handleQuote)
	s.mux.HandleFunc("GET /tables", s.handleListTables)
	s.mux.HandleFunc("GET /tables/{id}", s.handleGetTable)

	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /version", s.handleVersion)
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]interface{}{
		"status":  "healthy",
		"version": s.version,
		"time":    time.Now().UTC().Format(time.RFC3339),
	}, http.StatusOK)
}

// handleVersion handles GET /version
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{
		"version": s.version,
		"engine":  "parking-fee",
	}, http.StatusOK)
}

func (s *Server) writeJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Warn("failed to write response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, code, message string, status int) {
	s.writeJSON(w, ErrorResponse{
		Error: ErrorDetail{Code: code, Message: message},
	}, status)
}

// writeDomainError maps an internal/errors type onto an HTTP status
func (s *Server) writeDomainError(w http.ResponseWriter, err error) {
	code := errors.TypeOf(err)
	status := http.StatusInternalServerError
	switch code {
	case errors.TypeInput, errors.TypeParsing:
		status = http.StatusBadRequest
	case errors.TypeNotFound:
		status = http.StatusNotFound
	case errors.TypeInvalidSchedule, errors.TypeInvalidTimeRange:
		status = http.StatusUnprocessableEntity
	case "":
		code = errors.TypeInternal
	}

	if status == http.StatusInternalServerError {
		s.log.Error("request failed", zap.Error(err))
	}
	s.writeError(w, string(code), err.Error(), status)
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// ListenAndServe starts the server
func (s *Server) ListenAndServe(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}
