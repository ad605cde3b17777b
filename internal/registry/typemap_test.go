package registry_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/brazier-go/internal/registry"
)

type keyA struct{}
type keyB struct{}

type counter struct {
	calls int
}

func TestTypeMap_SetAndGet(t *testing.T) {
	m := registry.New()

	_, replaced := registry.Set[keyA](m, &counter{calls: 1})
	assert.False(t, replaced)

	got, ok := registry.Get[keyA, *counter](m)
	require.True(t, ok)
	assert.Equal(t, 1, got.calls)
}

func TestTypeMap_GetGrantsMutableAccess(t *testing.T) {
	m := registry.New()
	registry.Set[keyA](m, &counter{})

	first, ok := registry.Get[keyA, *counter](m)
	require.True(t, ok)
	first.calls++

	second, ok := registry.Get[keyA, *counter](m)
	require.True(t, ok)
	assert.Equal(t, 1, second.calls)
}

func TestTypeMap_GetMissing(t *testing.T) {
	m := registry.New()

	got, ok := registry.Get[keyA, *counter](m)
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestTypeMap_GetWrongTypeFailsSafely(t *testing.T) {
	m := registry.New()
	registry.Set[keyA](m, "not a counter")

	got, ok := registry.Get[keyA, *counter](m)
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestTypeMap_SetReplacesPrevious(t *testing.T) {
	m := registry.New()
	old := &counter{calls: 1}
	registry.Set[keyA](m, old)

	previous, replaced := registry.Set[keyA](m, &counter{calls: 2})
	require.True(t, replaced)
	assert.Same(t, old, previous)
	assert.Equal(t, 1, m.Len())

	got, ok := registry.Get[keyA, *counter](m)
	require.True(t, ok)
	assert.Equal(t, 2, got.calls)
}

func TestTypeMap_KeysAreIndependent(t *testing.T) {
	m := registry.New()
	registry.Set[keyA](m, &counter{calls: 1})
	registry.Set[keyB](m, &counter{calls: 2})

	a, ok := registry.Get[keyA, *counter](m)
	require.True(t, ok)
	b, ok := registry.Get[keyB, *counter](m)
	require.True(t, ok)

	assert.Equal(t, 1, a.calls)
	assert.Equal(t, 2, b.calls)
	assert.ElementsMatch(t, []reflect.Type{registry.KeyOf[keyA](), registry.KeyOf[keyB]()}, m.Types())
}

func TestTypeMap_PointerAndValueKeysDiffer(t *testing.T) {
	m := registry.New()
	registry.Set[keyA](m, 1)
	registry.Set[*keyA](m, 2)

	assert.Equal(t, 2, m.Len())
}

func TestTypeMap_DeleteAndClear(t *testing.T) {
	m := registry.New()
	registry.Set[keyA](m, 1)
	registry.Set[keyB](m, 2)

	removed, ok := registry.Delete[keyA](m)
	require.True(t, ok)
	assert.Equal(t, 1, removed)

	_, ok = registry.Delete[keyA](m)
	assert.False(t, ok)

	m.Clear()
	assert.Zero(t, m.Len())
}

func TestTypeMap_RangeStopsEarly(t *testing.T) {
	m := registry.New()
	registry.Set[keyA](m, 1)
	registry.Set[keyB](m, 2)

	visited := 0
	m.Range(func(reflect.Type, any) bool {
		visited++
		return false
	})

	assert.Equal(t, 1, visited)
}
