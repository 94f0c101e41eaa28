package framenest

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_InvokeReturnsValue(t *testing.T) {
	inj := MustResolveAndCreate(newEngine)

	v, err := inj.Invoke(func(e *engine) int { return e.cylinders })

	require.NoError(t, err)
	assert.Equal(t, 4, v)
}

func Test_InvokeErrorOnly(t *testing.T) {
	inj := MustResolveAndCreate(newEngine)
	boom := errors.New("inspection failed")

	v, err := inj.Invoke(func(e *engine) error { return boom })

	assert.Nil(t, v)
	assert.ErrorIs(t, err, boom)
}

func Test_InvokeVoid(t *testing.T) {
	inj := MustResolveAndCreate(newEngine)
	var seen *engine

	v, err := inj.Invoke(func(e *engine) { seen = e })

	require.NoError(t, err)
	assert.Nil(t, v)
	assert.Same(t, MustGet[*engine](inj), seen)
}

func Test_InvokeMissingDependency(t *testing.T) {
	inj := MustResolveAndCreate(newEngine)

	_, err := inj.Invoke(func(c *car) int { return 0 })

	require.Error(t, err)
	var npe *NoProviderError
	require.ErrorAs(t, err, &npe)
	assert.Equal(t, "No provider for car!", err.Error())
}

func Test_InvokeIsUncached(t *testing.T) {
	calls := 0
	inj := MustResolveAndCreate(newEngine)

	for i := 0; i < 2; i++ {
		_, err := inj.Invoke(func(e *engine) int {
			calls++
			return calls
		})
		require.NoError(t, err)
	}

	assert.Equal(t, 2, calls)
}

func Test_InvokeInStruct(t *testing.T) {
	inj := MustResolveAndCreate(newEngine)

	v, err := inj.Invoke(func(p scopedParams) int { return p.Engine.cylinders })

	require.NoError(t, err)
	assert.Equal(t, 4, v)
}

func Test_InvokeNonFunction(t *testing.T) {
	inj := MustResolveAndCreate(newEngine)

	_, err := inj.Invoke("not a function")

	require.Error(t, err)
	var ipe *InvalidProviderError
	assert.ErrorAs(t, err, &ipe)
}
