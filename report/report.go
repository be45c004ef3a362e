// Package report publishes a completed run's summary and equity curve,
// either to the log or as JSON over HTTP.
package report

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/quantfolio/backtester/ledger"
	"github.com/quantfolio/backtester/log"
	"github.com/quantfolio/backtester/statistics"
)

// New readies a report server for the supplied results
func New(summary *statistics.Summary, curve []ledger.EquityPoint) (*Server, error) {
	if summary == nil || len(curve) == 0 {
		return nil, errNothingToReport
	}
	return &Server{summary: summary, curve: curve}, nil
}

// Router wires the report endpoints
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/stats", s.handleStats).Methods(http.MethodGet)
	r.HandleFunc("/equity", s.handleEquity).Methods(http.MethodGet)
	return r
}

// Serve blocks listening on addr until Close is called
func (s *Server) Serve(addr string) error {
	s.http = &http.Server{Addr: addr, Handler: s.Router()}
	log.Infof(log.Report, "report server listening on %v", addr)
	err := s.http.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Close shuts the report server down, letting in-flight requests finish
func (s *Server) Close() error {
	if s.http == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.http.Shutdown(ctx)
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, s.summary)
}

func (s *Server) handleEquity(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, s.curve)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Errorf(log.Report, "report response write failed: %v", err)
	}
}
