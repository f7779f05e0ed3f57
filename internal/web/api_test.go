package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Cyclone1070/vizagent/internal/config"
	"github.com/Cyclone1070/vizagent/internal/models"
	"github.com/Cyclone1070/vizagent/internal/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGenerator struct {
	rep   report.Report
	err   error
	calls int
}

func (s *stubGenerator) GenerateReport(ctx context.Context) (report.Report, error) {
	s.calls++
	return s.rep, s.err
}

func successReport() report.Report {
	return report.Assemble(
		[]models.DataPoint{{X: 1, Y: 10}, {X: 2, Y: 20}},
		&models.VisualizationArtifact{MimeType: models.MimeTypePNG, Encoding: models.EncodingBase64, Data: "iVBORw0KGgo="},
	)
}

func newTestHandler(gen *stubGenerator) http.Handler {
	return NewServer(config.ServerConfig{Addr: ":0", ShutdownTimeoutSeconds: 1}, NewReportAPI(gen)).Handler()
}

func serve(h http.Handler, method, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

// --- HAPPY PATH TESTS ---

func TestDashboard_EmbedsImage(t *testing.T) {
	rec := serve(newTestHandler(&stubGenerator{rep: successReport()}), http.MethodGet, "/")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	body := rec.Body.String()
	assert.Contains(t, body, `src="data:image/png;base64,iVBORw0KGgo="`)
	assert.Contains(t, body, "status-success")
	assert.NotContains(t, body, "No visualization")
}

func TestDashboard_ErrorReportHasNoImage(t *testing.T) {
	rec := serve(newTestHandler(&stubGenerator{rep: report.Failure(errors.New("unknown tool"))}), http.MethodGet, "/")

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.NotContains(t, body, "<img")
	assert.Contains(t, body, "No visualization was produced.")
	assert.Contains(t, body, "unknown tool")
}

func TestGetReport_JSON(t *testing.T) {
	gen := &stubGenerator{rep: successReport()}
	rec := serve(newTestHandler(gen), http.MethodGet, "/api/report")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got report.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, report.StatusSuccess, got.Status)
	require.NotNil(t, got.Visualization)
	assert.Equal(t, "iVBORw0KGgo=", got.Visualization.Data)
	assert.NoError(t, got.Validate())
	assert.Equal(t, 1, gen.calls)
}

func TestHealth(t *testing.T) {
	gen := &stubGenerator{}
	rec := serve(newTestHandler(gen), http.MethodGet, "/healthz")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.Equal(t, 0, gen.calls)
}

// --- ERROR PATH TESTS ---

func TestGetReport_DataUnavailable(t *testing.T) {
	rec := serve(newTestHandler(&stubGenerator{err: errors.New("data unavailable")}), http.MethodGet, "/api/report")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"error":"data unavailable"}`, rec.Body.String())
}

func TestDashboard_DataUnavailable(t *testing.T) {
	rec := serve(newTestHandler(&stubGenerator{err: errors.New("data unavailable")}), http.MethodGet, "/")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestGetReport_InvalidReportRejected(t *testing.T) {
	broken := report.Report{Status: report.StatusSuccess, Text: "no image"}

	rec := serve(newTestHandler(&stubGenerator{rep: broken}), http.MethodGet, "/api/report")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid report")
}

func TestDashboard_InvalidReportRejected(t *testing.T) {
	broken := report.Report{Status: "pending"}

	rec := serve(newTestHandler(&stubGenerator{rep: broken}), http.MethodGet, "/")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "<html")
}

func TestRoutes_WrongMethod(t *testing.T) {
	rec := serve(newTestHandler(&stubGenerator{}), http.MethodPost, "/api/report")

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestServerRun_StopsOnCancel(t *testing.T) {
	srv := NewServer(config.ServerConfig{Addr: "127.0.0.1:0", ShutdownTimeoutSeconds: 1}, NewReportAPI(&stubGenerator{}))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.NoError(t, srv.Run(ctx))
}
