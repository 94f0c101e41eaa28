package main

import (
	"bytes"
	"encoding/json"
	"go/format"
	"os"
	"text/template"

	"github.com/pkg/errors"
)

// WiringSpec is the JSON description of one generated manifest file.
type WiringSpec struct {
	// Package is the package the generated file belongs to.
	Package string `json:"package"`

	// ManifestVar is the name of the generated manifest variable.
	ManifestVar string `json:"manifestVar"`

	// Imports are extra import paths the parameter types need.
	Imports []string `json:"imports"`

	Constructors []ConstructorSpec `json:"constructors"`
}

// ConstructorSpec names a constructor in the target package and the hint list
// for each of its parameters, in declaration order.
type ConstructorSpec struct {
	Func   string      `json:"func"`
	Params []ParamSpec `json:"params"`
}

// ParamSpec is one parameter hint. Exactly one of Symbol or Type names the
// token: Symbol binds to framenest.Symbol(value), Type to
// framenest.TypeOf[value]().
type ParamSpec struct {
	Symbol   string `json:"symbol,omitempty"`
	Type     string `json:"type,omitempty"`
	Optional bool   `json:"optional,omitempty"`
	Scope    string `json:"scope,omitempty"` // "self" | "skip-self"
}

const fileTemplate = `// Code generated by nestgen. DO NOT EDIT.

package {{.Package}}

import (
	framenest "github.com/moGeekHex/FrameNest"
{{- range .Imports}}
	"{{.}}"
{{- end}}
)

// {{.ManifestVar}} carries the explicit parameter hints for constructors
// whose signatures cannot express them. Pass it to Resolve with
// framenest.WithHintSource.
var {{.ManifestVar}} = framenest.NewManifest().
{{- range $i, $c := .Constructors}}
	Register({{$c.Func}},
{{- range $c.Params}}
		[]any{ {{- markers . -}} },
{{- end}}
	){{if last $i $.Constructors}}{{else}}.{{end}}
{{- end}}
`

// generateFromFile reads a wiring spec and renders the gofmt-ed registration
// source.
func generateFromFile(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading wiring spec %s", path)
	}
	var spec WiringSpec
	if err := json.Unmarshal(raw, &spec); err != nil {
		return nil, errors.Wrapf(err, "parsing wiring spec %s", path)
	}
	return generate(&spec)
}

func generate(spec *WiringSpec) ([]byte, error) {
	if err := validate(spec); err != nil {
		return nil, err
	}

	tmpl := template.Must(template.New("manifest").Funcs(template.FuncMap{
		"markers": renderParam,
		"last":    func(i int, cs []ConstructorSpec) bool { return i == len(cs)-1 },
	}).Parse(fileTemplate))

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, spec); err != nil {
		return nil, errors.Wrap(err, "rendering manifest template")
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, errors.Wrap(err, "formatting generated source")
	}
	return src, nil
}

func validate(spec *WiringSpec) error {
	if spec.Package == "" {
		return errors.New("wiring spec is missing \"package\"")
	}
	if spec.ManifestVar == "" {
		spec.ManifestVar = "Manifest"
	}
	if len(spec.Constructors) == 0 {
		return errors.New("wiring spec has no constructors")
	}
	for _, c := range spec.Constructors {
		if c.Func == "" {
			return errors.New("constructor entry is missing \"func\"")
		}
		for _, p := range c.Params {
			if (p.Symbol == "") == (p.Type == "") {
				return errors.Errorf("constructor %s: each param needs exactly one of \"symbol\" or \"type\"", c.Func)
			}
			if p.Scope != "" && p.Scope != "self" && p.Scope != "skip-self" {
				return errors.Errorf("constructor %s: unknown scope %q", c.Func, p.Scope)
			}
		}
	}
	return nil
}

// renderParam emits the annotation list entries for one parameter.
func renderParam(p ParamSpec) string {
	out := ""
	if p.Optional {
		out += "framenest.Optional(), "
	}
	switch p.Scope {
	case "self":
		out += "framenest.Self(), "
	case "skip-self":
		out += "framenest.SkipSelf(), "
	}
	if p.Symbol != "" {
		return out + `framenest.Symbol("` + p.Symbol + `")`
	}
	return out + "framenest.TypeOf[" + p.Type + "]()"
}
