package cluster

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"dns-fleet/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()
	svc := newTestService(t, map[string]*fakeSource{
		"ns1": {
			logs:   entries("ns1", 3, "example.com"),
			groups: []reconcile.BlockingGroup{{Name: "default", Blocked: []string{"a.com"}}},
		},
		"ns2": {
			logs:   entries("ns2", 2, "example.org"),
			groups: []reconcile.BlockingGroup{{Name: "default", Blocked: []string{"b.com"}}},
		},
		"down": {logsErr: errors.New("refused"), groupsErr: errors.New("refused")},
	}, testConfig(), nil)

	feature := NewFeature(svc)
	assert.Equal(t, "cluster", feature.Name())
	assert.True(t, feature.IsEnabled())

	app := fiber.New()
	require.NoError(t, feature.Load(app))
	return app
}

func TestHandleLogs(t *testing.T) {
	app := setupTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/cluster/logs?limit=4&names=false", nil))
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	var body struct {
		Entries       []reconcile.LogEntry `json:"entries"`
		PerNodeCounts map[string]int       `json:"per_node_counts"`
		Truncated     bool                 `json:"truncated"`
		FailedNodes   []string             `json:"failed_nodes"`
		Nodes         []NodeStatus         `json:"nodes"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Len(t, body.Entries, 4)
	assert.True(t, body.Truncated)
	assert.Equal(t, []string{"down"}, body.FailedNodes)
	assert.Len(t, body.Nodes, 3)
	assert.Equal(t, 2, body.PerNodeCounts["ns1"])
	assert.Equal(t, 2, body.PerNodeCounts["ns2"])
}

func TestHandleLogs_BadRequests(t *testing.T) {
	app := setupTestApp(t)

	tests := []struct {
		name string
		url  string
		want int
	}{
		{"Negative limit", "/cluster/logs?limit=-1", 400},
		{"Bad status", "/cluster/logs?status=maybe", 400},
		{"Bad start", "/cluster/logs?start=yesterday", 400},
		{"Unknown node", "/cluster/logs?node=ns9", 404},
		{"Node filter", "/cluster/logs?node=ns2", 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", tt.url, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestHandleDrift(t *testing.T) {
	app := setupTestApp(t)

	tests := []struct {
		name string
		url  string
		want int
	}{
		{"Compared", "/cluster/drift?a=ns1&b=ns2&hints=true", 200},
		{"Missing param", "/cluster/drift?a=ns1", 400},
		{"Unknown node", "/cluster/drift?a=ns1&b=ns9", 404},
		{"Node down", "/cluster/drift?a=ns1&b=down", 502},
		{"Archive disabled", "/cluster/archives", 503},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", tt.url, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}

	resp, err := app.Test(httptest.NewRequest("POST", "/cluster/drift/archive?a=ns1&b=ns2", nil))
	require.NoError(t, err)
	assert.Equal(t, 503, resp.StatusCode)
}

func TestHandleSync(t *testing.T) {
	app := setupTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/cluster/sync?reference=ns1", nil))
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	var report SyncReport
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
	assert.Equal(t, "ns1", report.Reference)
	assert.False(t, report.InSync)
	assert.Len(t, report.Nodes, 2)

	resp, err = app.Test(httptest.NewRequest("GET", "/cluster/sync?reference=down", nil))
	require.NoError(t, err)
	assert.Equal(t, 502, resp.StatusCode)
}

func TestHandleSimilarity(t *testing.T) {
	app := setupTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/cluster/similarity?x=kitten&y=sitting", nil))
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	raw, _ := io.ReadAll(resp.Body)
	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, 3.0, body["distance"])
	assert.InDelta(t, 1-3.0/7.0, body["similarity"].(float64), 1e-9)
}
