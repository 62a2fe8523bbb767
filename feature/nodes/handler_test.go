package nodes_test

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"dns-fleet/core/node"
	"dns-fleet/feature/nodes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()
	store := nodes.NewMemoryStore([]node.Node{{ID: "ns1", Name: "Primary", URL: "http://10.0.0.2:5380", Token: "secret"}})
	feature := nodes.NewFeature(store, zap.NewNop())

	assert.Equal(t, "nodes", feature.Name())
	assert.True(t, feature.IsEnabled())

	app := fiber.New()
	require.NoError(t, feature.Load(app))
	return app
}

func TestHandleList(t *testing.T) {
	app := setupTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/nodes", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), `"id":"ns1"`)
	assert.NotContains(t, string(body), "secret", "tokens are never serialized")
}

func TestHandleGet(t *testing.T) {
	app := setupTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/nodes/ns1", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/nodes/nope", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestHandleAddRemove(t *testing.T) {
	app := setupTestApp(t)

	tests := []struct {
		name string
		body string
		want int
	}{
		{"Valid", `{"id": "ns2", "url": "http://10.0.0.3:5380", "token": "t"}`, 201},
		{"Invalid url", `{"id": "ns3", "url": "nowhere"}`, 400},
		{"Broken body", `{"id":`, 400},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/nodes", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}

	resp, err := app.Test(httptest.NewRequest("DELETE", "/nodes/ns2", nil))
	require.NoError(t, err)
	assert.Equal(t, 204, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("DELETE", "/nodes/ns2", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}
