package loader

import (
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFeature struct {
	name    string
	enabled bool
	err     error
	loaded  bool
}

func (s *stubFeature) Name() string    { return s.name }
func (s *stubFeature) IsEnabled() bool { return s.enabled }
func (s *stubFeature) Load(app fiber.Router) error {
	if s.err != nil {
		return s.err
	}
	s.loaded = true
	app.Get("/"+s.name, func(c *fiber.Ctx) error { return c.SendString(s.name) })
	return nil
}

func TestManager_LoadAll(t *testing.T) {
	on := &stubFeature{name: "on", enabled: true}
	off := &stubFeature{name: "off", enabled: false}

	m := NewManager(nil)
	m.Register(on)
	m.Register(off)
	assert.Len(t, m.Features(), 2)

	app := fiber.New()
	require.NoError(t, m.LoadAll(app))
	assert.True(t, on.loaded)
	assert.False(t, off.loaded)

	resp, err := app.Test(httptest.NewRequest("GET", "/on", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/off", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestManager_LoadAll_Errors(t *testing.T) {
	t.Run("Load failure", func(t *testing.T) {
		m := NewManager(nil)
		m.Register(&stubFeature{name: "broken", enabled: true, err: errors.New("boom")})
		assert.ErrorContains(t, m.LoadAll(fiber.New()), "broken")
	})

	t.Run("Duplicate", func(t *testing.T) {
		m := NewManager(nil)
		m.Register(&stubFeature{name: "a", enabled: true})
		m.Register(&stubFeature{name: "a", enabled: true})
		assert.ErrorContains(t, m.LoadAll(fiber.New()), "twice")
	})
}
