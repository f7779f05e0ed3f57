// Package web serves reports over HTTP: an HTML dashboard with the embedded
// plot and a JSON endpoint with the raw report.
package web

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Cyclone1070/vizagent/internal/report"
	"github.com/gorilla/mux"
)

// reportGenerator produces a fresh report per request.
type reportGenerator interface {
	GenerateReport(ctx context.Context) (report.Report, error)
}

// ReportAPI provides the dashboard and report endpoints.
type ReportAPI struct {
	generator reportGenerator
}

// NewReportAPI creates a new report API handler.
func NewReportAPI(generator reportGenerator) *ReportAPI {
	return &ReportAPI{generator: generator}
}

// RegisterRoutes registers all report routes.
func (a *ReportAPI) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/", a.Dashboard).Methods("GET")
	router.HandleFunc("/api/report", a.GetReport).Methods("GET")
	router.HandleFunc("/healthz", a.Health).Methods("GET")
}

// Dashboard renders the report as an HTML page.
func (a *ReportAPI) Dashboard(w http.ResponseWriter, r *http.Request) {
	rep, err := a.generator.GenerateReport(r.Context())
	if err != nil {
		slog.Error("web: report failed", "path", r.URL.Path, "error", err)
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	if err := rep.Validate(); err != nil {
		slog.Error("web: invalid report", "path", r.URL.Path, "error", err)
		http.Error(w, "invalid report: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := renderDashboard(w, rep); err != nil {
		slog.Error("web: dashboard render failed", "error", err)
	}
}

// GetReport returns the report as JSON. Model and tool failures are still a
// 200: they are part of the report, not of the request.
func (a *ReportAPI) GetReport(w http.ResponseWriter, r *http.Request) {
	rep, err := a.generator.GenerateReport(r.Context())
	if err != nil {
		slog.Error("web: report failed", "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": err.Error()})
		return
	}
	if err := rep.Validate(); err != nil {
		slog.Error("web: invalid report", "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "invalid report: " + err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

// Health reports liveness.
func (a *ReportAPI) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("web: encode response failed", "error", err)
	}
}
