package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Generate(t *testing.T) {
	spec := &WiringSpec{
		Package:     "wiring",
		ManifestVar: "AppManifest",
		Imports:     []string{"github.com/example/app/config"},
		Constructors: []ConstructorSpec{
			{
				Func: "NewServer",
				Params: []ParamSpec{
					{Symbol: "http.addr"},
					{Type: "*config.Config"},
					{Type: "*config.TLS", Optional: true, Scope: "skip-self"},
				},
			},
			{
				Func: "NewWorker",
				Params: []ParamSpec{
					{Symbol: "worker.count"},
				},
			},
		},
	}

	src, err := generate(spec)

	require.NoError(t, err)
	out := string(src)
	assert.Contains(t, out, "// Code generated by nestgen. DO NOT EDIT.")
	assert.Contains(t, out, "package wiring")
	assert.Contains(t, out, `"github.com/example/app/config"`)
	assert.Contains(t, out, "var AppManifest = framenest.NewManifest().")
	assert.Contains(t, out, "Register(NewServer,")
	assert.Contains(t, out, `[]any{framenest.Symbol("http.addr")}`)
	assert.Contains(t, out, "[]any{framenest.TypeOf[*config.Config]()}")
	assert.Contains(t, out, "[]any{framenest.Optional(), framenest.SkipSelf(), framenest.TypeOf[*config.TLS]()}")
	assert.Contains(t, out, "Register(NewWorker,")
}

func Test_GenerateDefaultsManifestVar(t *testing.T) {
	spec := &WiringSpec{
		Package: "wiring",
		Constructors: []ConstructorSpec{
			{Func: "NewThing", Params: []ParamSpec{{Symbol: "x"}}},
		},
	}

	src, err := generate(spec)

	require.NoError(t, err)
	assert.Contains(t, string(src), "var Manifest = framenest.NewManifest()")
}

func Test_GenerateValidation(t *testing.T) {
	_, err := generate(&WiringSpec{Package: "wiring"})
	assert.ErrorContains(t, err, "no constructors")

	_, err = generate(&WiringSpec{
		Package:      "wiring",
		Constructors: []ConstructorSpec{{Func: "F", Params: []ParamSpec{{}}}},
	})
	assert.ErrorContains(t, err, `exactly one of "symbol" or "type"`)

	_, err = generate(&WiringSpec{
		Package:      "wiring",
		Constructors: []ConstructorSpec{{Func: "F", Params: []ParamSpec{{Symbol: "s", Scope: "up"}}}},
	})
	assert.ErrorContains(t, err, "unknown scope")
}
