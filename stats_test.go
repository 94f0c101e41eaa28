package framenest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_StatsCounters(t *testing.T) {
	sr := DefaultStatsReceiver()
	inj, err := ResolveAndCreate(WithStats(sr), newEngine, newCar)
	require.NoError(t, err)

	MustGet[*car](inj)

	// One get for the car, one recursive get for its engine.
	assert.Equal(t, int64(2), sr.Counter(statGets).Count())
	assert.Equal(t, int64(2), sr.Counter(statInstantiations).Count())
	assert.Equal(t, int64(0), sr.Counter(statCacheHits).Count())

	MustGet[*car](inj)

	assert.Equal(t, int64(3), sr.Counter(statGets).Count())
	assert.Equal(t, int64(2), sr.Counter(statInstantiations).Count())
	assert.Equal(t, int64(1), sr.Counter(statCacheHits).Count())
}

func Test_StatsInstantiationErrors(t *testing.T) {
	sr := DefaultStatsReceiver()
	inj, err := ResolveAndCreate(
		WithStats(sr),
		func() (*engine, error) { return nil, assert.AnError },
	)
	require.NoError(t, err)

	_, err = inj.Get(TypeOf[*engine]())

	require.Error(t, err)
	assert.Equal(t, int64(1), sr.Counter(statInstantiationErrors).Count())
}

func Test_StatsDefaultOff(t *testing.T) {
	// No receiver attached; resolution must not touch any metrics state.
	inj := MustResolveAndCreate(newEngine)
	assert.NotNil(t, MustGet[*engine](inj))
}
