package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/dtchealth/billing-engine/internal/clients"
	"github.com/dtchealth/billing-engine/internal/invoice"
)

// BillingRunner is the slice of the batch runner the API needs.
type BillingRunner interface {
	RunAll(ctx context.Context) (*invoice.Summary, error)
	RunOne(ctx context.Context, clientID string) (*invoice.Summary, error)
}

// Server exposes the manual invoice trigger.
type Server struct {
	runner BillingRunner
	log    zerolog.Logger
}

// NewServer creates the API server around a runner.
func NewServer(runner BillingRunner, log zerolog.Logger) *Server {
	return &Server{runner: runner, log: log}
}

// Router builds the HTTP routes.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/invoices/run", s.handleRun).Methods(http.MethodPost)
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	return r
}

type runRequest struct {
	ClientID string `json:"clientId"`
}

type runResponse struct {
	Message string           `json:"message"`
	Summary runSummary       `json:"summary"`
	Results []invoice.Result `json:"results"`
}

type runSummary struct {
	Total      int `json:"total"`
	Successful int `json:"successful"`
	Failed     int `json:"failed"`
}

// handleRun triggers billing for one client or for all active clients.
func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	var req runRequest
	if r.Body != nil {
		// An empty body means "all active clients".
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			s.writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	var (
		summary *invoice.Summary
		err     error
	)
	if req.ClientID != "" {
		summary, err = s.runner.RunOne(r.Context(), req.ClientID)
	} else {
		summary, err = s.runner.RunAll(r.Context())
	}

	if errors.Is(err, clients.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, "no clients found")
		return
	}
	if err != nil {
		s.log.Error().Err(err).Msg("billing run failed")
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, runResponse{
		Message: "Invoice generation completed",
		Summary: runSummary{
			Total:      summary.Total,
			Successful: summary.Successful,
			Failed:     summary.Failed,
		},
		Results: summary.Results,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.Error().Err(err).Msg("failed to encode response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}
