package auth

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(cfg Config) *fiber.App {
	app := fiber.New()
	app.Use(New(cfg))
	app.Get("/cluster/logs", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/swagger/index.html", func(c *fiber.Ctx) error { return c.SendString("docs") })
	return app
}

func TestAuth(t *testing.T) {
	app := newApp(Config{ApiKey: "secret", Skip: []string{"/swagger"}})

	tests := []struct {
		name   string
		path   string
		header string
		value  string
		want   int
	}{
		{"Missing key", "/cluster/logs", "", "", 401},
		{"Wrong key", "/cluster/logs", HeaderName, "nope", 401},
		{"Header key", "/cluster/logs", HeaderName, "secret", 200},
		{"Bearer key", "/cluster/logs", "Authorization", "Bearer secret", 200},
		{"Skipped path", "/swagger/index.html", "", "", 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.path, nil)
			if tt.header != "" {
				req.Header.Set(tt.header, tt.value)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestAuth_Disabled(t *testing.T) {
	app := newApp(Config{})

	resp, err := app.Test(httptest.NewRequest("GET", "/cluster/logs", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}
