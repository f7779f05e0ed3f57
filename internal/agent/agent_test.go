package agent

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	_ "image/png"
	"path/filepath"
	"testing"

	"github.com/Cyclone1070/vizagent/internal/config"
	"github.com/Cyclone1070/vizagent/internal/datasource"
	"github.com/Cyclone1070/vizagent/internal/models"
	provider "github.com/Cyclone1070/vizagent/internal/provider/models"
	"github.com/Cyclone1070/vizagent/internal/report"
	"github.com/Cyclone1070/vizagent/internal/testing/testhelpers"
	"github.com/Cyclone1070/vizagent/internal/tool/plot"
	"github.com/Cyclone1070/vizagent/internal/workflow/dispatch"
	"github.com/Cyclone1070/vizagent/internal/workflow/toolmanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAgent(cfg *config.Config, mp *testhelpers.MockProvider) *Agent {
	tools := toolmanager.NewToolManager(plot.NewTool(cfg))
	return New(cfg.DataSource, dispatch.NewDispatcher(mp, tools, nil, cfg.Provider))
}

// --- HAPPY PATH TESTS ---

func TestGenerateReport_EndToEnd(t *testing.T) {
	cfg := config.DefaultConfig()
	mp := testhelpers.NewMockProvider().
		WithToolCallResponse(testhelpers.PlotCall(plot.ToolName, datasource.DefaultMetrics))

	r, err := newAgent(cfg, mp).GenerateReport(context.Background())

	require.NoError(t, err)
	assert.Equal(t, report.StatusSuccess, r.Status)
	assert.Contains(t, r.Text, "ranging from 10 to 25")
	assert.Contains(t, r.Text, "10")
	assert.Contains(t, r.Text, "17.43")

	require.NotNil(t, r.Visualization)
	data, err := base64.StdEncoding.DecodeString(r.Visualization.Data)
	require.NoError(t, err)
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, "image/"+format, r.Visualization.MimeType)
}

func TestGenerateReport_PromptCarriesFetchedRows(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.DataSource.Query = "SELECT x, y FROM metrics WHERE x <= 2"
	var prompt string
	mp := testhelpers.NewMockProvider().
		WithToolCallResponse(testhelpers.PlotCall(plot.ToolName, datasource.DefaultMetrics[:2]))
	mp.OnGenerateCalled = func(req *provider.GenerateRequest) { prompt = req.Prompt }

	r, err := newAgent(cfg, mp).GenerateReport(context.Background())

	require.NoError(t, err)
	assert.Equal(t, report.StatusSuccess, r.Status)
	assert.Contains(t, prompt, `[{"x":1,"y":10},{"x":2,"y":15}]`)
}

func TestGenerateReport_Repeatable(t *testing.T) {
	cfg := config.DefaultConfig()
	call := testhelpers.PlotCall(plot.ToolName, datasource.DefaultMetrics)
	mp := testhelpers.NewMockProvider().WithToolCallResponse(call).WithToolCallResponse(call)
	a := newAgent(cfg, mp)

	first, err := a.GenerateReport(context.Background())
	require.NoError(t, err)
	second, err := a.GenerateReport(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

// --- UNHAPPY PATH TESTS ---

func TestGenerateReport_TextAnswer_ErrorReport(t *testing.T) {
	mp := testhelpers.NewMockProvider().WithTextResponse("I cannot draw.")

	r, err := newAgent(config.DefaultConfig(), mp).GenerateReport(context.Background())

	require.NoError(t, err)
	assert.Equal(t, report.StatusError, r.Status)
	assert.Nil(t, r.Visualization)
	assert.Contains(t, r.Text, "tool execution failure")
}

func TestGenerateReport_NoRows_ModelNotCalled(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.DataSource.Query = "SELECT x, y FROM metrics WHERE x > 100"
	mp := testhelpers.NewMockProvider()

	r, err := newAgent(cfg, mp).GenerateReport(context.Background())

	require.NoError(t, err)
	assert.Equal(t, report.StatusError, r.Status)
	assert.Equal(t, 0, mp.Calls())
}

func TestGenerateReport_DataUnavailable_IsFatal(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.DataSource.Query = "DROP TABLE metrics"
	mp := testhelpers.NewMockProvider()

	_, err := newAgent(cfg, mp).GenerateReport(context.Background())

	assert.ErrorIs(t, err, datasource.ErrDataUnavailable)
	assert.Equal(t, 0, mp.Calls())
}

func TestGenerateReport_UnseededDatabase_IsFatal(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.DataSource.Seed = false
	mp := testhelpers.NewMockProvider()

	_, err := newAgent(cfg, mp).GenerateReport(context.Background())

	assert.ErrorIs(t, err, datasource.ErrDataUnavailable)
}

// --- EDGE CASE TESTS ---

func TestGenerateReport_FileDatabaseWithoutSeed(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "metrics.db")
	store, err := datasource.Open(context.Background(), dsn)
	require.NoError(t, err)
	require.NoError(t, store.Seed(context.Background(), []models.DataPoint{{X: 1, Y: 3}}))
	require.NoError(t, store.Close())

	cfg := config.DefaultConfig()
	cfg.DataSource.DSN = dsn
	cfg.DataSource.Seed = false
	mp := testhelpers.NewMockProvider().
		WithToolCallResponse(testhelpers.PlotCall(plot.ToolName, []models.DataPoint{{X: 1, Y: 3}}))

	r, err := newAgent(cfg, mp).GenerateReport(context.Background())

	require.NoError(t, err)
	assert.Equal(t, report.StatusSuccess, r.Status)
	assert.Contains(t, r.Text, "ranging from 3 to 3")
}
