package loader

import (
	"errors"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
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
	s.loaded = true
	return s.err
}

func TestManager_LoadAll(t *testing.T) {
	on := &stubFeature{name: "catalog", enabled: true}
	off := &stubFeature{name: "integrity", enabled: false}

	m := NewManager()
	m.Register(on)
	m.Register(off)
	m.Register(nil)

	assert.Len(t, m.Features(), 2)
	assert.NoError(t, m.LoadAll(fiber.New()))
	assert.True(t, on.loaded)
	assert.False(t, off.loaded)
}

func TestManager_LoadAllError(t *testing.T) {
	m := NewManager()
	m.Register(&stubFeature{name: "broken", enabled: true, err: errors.New("no db")})

	err := m.LoadAll(fiber.New())
	assert.EqualError(t, err, "failed to load feature broken: no db")
}
