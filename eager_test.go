package framenest

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_InstantiateAll(t *testing.T) {
	engineCalls := 0
	carCalls := 0
	inj := MustResolveAndCreate(
		func() *engine {
			engineCalls++
			return &engine{}
		},
		func(e *engine) *car {
			carCalls++
			return &car{engine: e}
		},
	)

	require.NoError(t, inj.InstantiateAll())

	assert.Equal(t, 1, engineCalls)
	assert.Equal(t, 1, carCalls)

	// Everything is already cached; nothing runs again.
	MustGet[*car](inj)
	require.NoError(t, inj.InstantiateAll())
	assert.Equal(t, 1, engineCalls)
	assert.Equal(t, 1, carCalls)
}

func Test_WithEager(t *testing.T) {
	calls := 0
	inj, err := ResolveAndCreate(
		WithEager(),
		func() *engine {
			calls++
			return &engine{}
		},
	)

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	MustGet[*engine](inj)
	assert.Equal(t, 1, calls)
}

func Test_WithEagerSurfacesFailure(t *testing.T) {
	_, err := ResolveAndCreate(
		WithEager(),
		func() (*engine, error) { return nil, fmt.Errorf("no fuel") },
	)

	require.Error(t, err)
	var ie *InstantiationError
	require.ErrorAs(t, err, &ie)
}

func Test_FromResolvedProvidersEagerPanics(t *testing.T) {
	resolved, err := Resolve(func() (*engine, error) { return nil, fmt.Errorf("no fuel") })
	require.NoError(t, err)

	assert.Panics(t, func() {
		FromResolvedProviders(resolved, WithEager())
	})
}

func Test_InstantiateAllStopsAtFirstFailure(t *testing.T) {
	carCalls := 0
	inj := MustResolveAndCreate(
		func() (*engine, error) { return nil, fmt.Errorf("no fuel") },
		func(e *engine) *car {
			carCalls++
			return &car{engine: e}
		},
	)

	err := inj.InstantiateAll()

	require.Error(t, err)
	assert.Equal(t, 0, carCalls)
}
