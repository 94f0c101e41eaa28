package framenest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type trailer struct{}

type rigParams struct {
	In
	Engine  *engine
	Name    string   `name:"rig.name"`
	Trailer *trailer `optional:"true"`
}

type rig struct {
	engine  *engine
	name    string
	trailer *trailer
}

func newRig(p rigParams) *rig {
	return &rig{engine: p.Engine, name: p.Name, trailer: p.Trailer}
}

func Test_InStructInjection(t *testing.T) {
	inj := MustResolveAndCreate(
		newEngine,
		newRig,
		&Provider{Provide: Symbol("rig.name"), UseValue: "long haul"},
	)

	r := MustGet[*rig](inj)

	require.NotNil(t, r.engine)
	assert.Equal(t, "long haul", r.name)
	assert.Nil(t, r.trailer)
}

type scopedParams struct {
	In
	Engine *engine `scope:"self"`
}

type scopedRig struct {
	engine *engine
}

func newScopedRig(p scopedParams) *scopedRig {
	return &scopedRig{engine: p.Engine}
}

func Test_InStructSelfScope(t *testing.T) {
	parent := MustResolveAndCreate(newEngine)
	child, err := parent.ResolveAndCreateChild(newScopedRig)
	require.NoError(t, err)

	_, err = child.Get(TypeOf[*scopedRig]())

	require.Error(t, err)
	assert.Equal(t, "No provider for engine! (scopedRig -> engine)", err.Error())
}

func newNamedEngine(size string) *engine {
	if size == "large" {
		return &engine{cylinders: 12}
	}
	return &engine{cylinders: 4}
}

func Test_ManifestHints(t *testing.T) {
	manifest := NewManifest().
		Register(newNamedEngine, []any{Symbol("engine.size")})

	inj := MustResolveAndCreate(
		WithHintSource(manifest),
		newNamedEngine,
		&Provider{Provide: Symbol("engine.size"), UseValue: "large"},
	)

	e := MustGet[*engine](inj)

	assert.Equal(t, 12, e.cylinders)
}

func newUnregistered(a string, b string) *engine {
	_, _ = a, b
	return &engine{}
}

func Test_ManifestMiss(t *testing.T) {
	manifest := NewManifest()

	_, err := Resolve(WithHintSource(manifest), newUnregistered)

	require.Error(t, err)
	var nae *NoAnnotationError
	require.ErrorAs(t, err, &nae)
	assert.Contains(t, err.Error(), "'newUnregistered'(?, ?)")
}

func Test_ManifestRegisterRequiresFunc(t *testing.T) {
	assert.Panics(t, func() {
		NewManifest().Register("not a function")
	})
}
