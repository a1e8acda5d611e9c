package factory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct{ A int }

type sampleConf struct {
	A int `json:"a"`
}

// Test registry registration and instantiation using Decode.
func TestRegistry_Create(t *testing.T) {
	reg := NewRegistry[*sample]()
	if err := reg.Register("s", func(conf map[string]any) (*sample, error) {
		var c sampleConf
		if err := Decode(conf, &c); err != nil {
			return nil, err
		}
		return &sample{A: c.A}, nil
	}); err != nil {
		t.Fatalf("register: %v", err)
	}
	inst, err := reg.Create(ModuleConfig{Type: "s", Conf: map[string]any{"a": 3}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if inst.A != 3 {
		t.Fatalf("expected 3 got %d", inst.A)
	}
}

// Test duplicate registration and unknown type errors.
func TestRegistry_Errors(t *testing.T) {
	reg := NewRegistry[int]()
	if err := reg.Register("x", func(map[string]any) (int, error) { return 1, nil }); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := reg.Register("x", func(map[string]any) (int, error) { return 2, nil }); err == nil {
		t.Fatal("expected duplicate error")
	}
	if err := reg.Register("z", nil); err == nil {
		t.Fatal("expected nil factory error")
	}
	if _, err := reg.Create(ModuleConfig{Type: "y"}); err == nil {
		t.Fatal("expected unknown type error")
	}
}

func TestRegistry_NilConfAndNames(t *testing.T) {
	reg := NewRegistry[int]()
	require.NoError(t, reg.Register("b", func(conf map[string]any) (int, error) {
		if conf == nil {
			t.Fatal("conf should never be nil")
		}
		return len(conf), nil
	}))
	require.NoError(t, reg.Register("a", func(map[string]any) (int, error) { return 0, nil }))

	n, err := reg.Create(ModuleConfig{Type: "b"})
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, []string{"a", "b"}, reg.Names())
}

func TestDecodeWeakTypes(t *testing.T) {
	var c struct {
		Rows    int           `json:"rows"`
		Enabled bool          `json:"enabled"`
		Timeout time.Duration `json:"timeout"`
	}
	err := Decode(map[string]any{"rows": "7", "enabled": "true", "timeout": "2s"}, &c)
	require.NoError(t, err)
	assert.Equal(t, 7, c.Rows)
	assert.True(t, c.Enabled)
	assert.Equal(t, 2*time.Second, c.Timeout)
}
