// Package api - request handlers
package api

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// handleQuote handles POST /quote
func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	var req QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, "INVALID_JSON", err.Error(), http.StatusBadRequest)
		return
	}
	if req.TableID == "" {
		s.writeError(w, "VALIDATION_ERROR", "table_id is required", http.StatusBadRequest)
		return
	}
	if req.Entry.IsZero() || req.Exit.IsZero() {
		s.writeError(w, "VALIDATION_ERROR", "entry and exit are required", http.StatusBadRequest)
		return
	}

	table, err := s.tables.Get(r.Context(), req.TableID)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	quote, err := s.calculator.Calculate(table, req.Entry.Time, req.Exit.Time)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	resp := QuoteResponse{
		ID:               uuid.NewString(),
		TableID:          quote.TableID,
		Currency:         s.currency,
		Amount:           quote.Amount,
		Entry:            req.Entry,
		Exit:             req.Exit,
		ToleranceMinutes: quote.ToleranceMinutes,
		BillableMinutes:  quote.BillableMinutes,
		WithinTolerance:  quote.WithinTolerance,
		Capped:           quote.Capped,
		Lines:            quote.Lines,
	}
	s.log.Debug("quote issued",
		zap.String("quote_id", resp.ID),
		zap.String("table_id", resp.TableID),
		zap.Int("billable_minutes", resp.BillableMinutes),
		zap.Stringer("amount", resp.Amount))

	s.writeJSON(w, resp, http.StatusOK)
}

// handleListTables handles GET /tables
func (s *Server) handleListTables(w http.ResponseWriter, r *http.Request) {
	tables, err := s.tables.List(r.Context())
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.writeJSON(w, TablesResponse{Tables: tables, Count: len(tables)}, http.StatusOK)
}

// handleGetTable handles GET /tables/{id}
func (s *Server) handleGetTable(w http.ResponseWriter, r *http.Request) {
	table, err := s.tables.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.writeJSON(w, table, http.StatusOK)
}
