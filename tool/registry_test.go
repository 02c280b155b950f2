package tool

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func namedTool(name string) *FunctionTool {
	return NewFunctionTool(name, "test tool "+name, map[string]any{"type": "object"},
		func(_ context.Context, _ map[string]any) (any, error) { return name, nil })
}

func TestRegistryRegisterAndGet(t *testing.T) {
	reg := NewRegistry()
	assert.Equal(t, 0, reg.Size())

	reg.Register(namedTool("alpha"))
	reg.Register(namedTool("beta"))
	assert.Equal(t, 2, reg.Size())

	got, ok := reg.Get("alpha")
	assert.True(t, ok)
	assert.Equal(t, "alpha", got.Name())

	_, ok = reg.Get("missing")
	assert.False(t, ok)
}

func TestRegistryOverwriteKeepsOrder(t *testing.T) {
	reg := NewRegistry()
	reg.Register(namedTool("alpha"))
	reg.Register(namedTool("beta"))

	replacement := NewFunctionTool("alpha", "replacement", map[string]any{"type": "object"},
		func(_ context.Context, _ map[string]any) (any, error) { return "v2", nil })
	reg.Register(replacement)

	assert.Equal(t, 2, reg.Size())
	assert.Equal(t, []string{"alpha", "beta"}, reg.Names())

	got, _ := reg.Get("alpha")
	assert.Equal(t, "replacement", got.Description())
}

func TestRegistryUnregister(t *testing.T) {
	reg := NewRegistry()
	reg.Register(namedTool("alpha"))
	reg.Register(namedTool("beta"))

	assert.True(t, reg.Unregister("alpha"))
	assert.False(t, reg.Unregister("alpha"))
	assert.Equal(t, []string{"beta"}, reg.Names())
}

func TestRegistryAllPreservesOrder(t *testing.T) {
	reg := NewRegistry()
	for _, name := range []string{"c", "a", "b"} {
		reg.Register(namedTool(name))
	}

	all := reg.All()
	names := make([]string, 0, len(all))
	for _, tl := range all {
		names = append(names, tl.Name())
	}
	assert.Equal(t, []string{"c", "a", "b"}, names)
}
