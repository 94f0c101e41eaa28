package framenest

import (
	"reflect"
	"sync"
)

// HintSource supplies the ordered per-parameter annotation lists for a
// constructor or factory function. Each inner list is scanned like an
// explicit Deps entry: markers plus a token. A nil inner list means the
// parameter has no usable hint and normalization fails with
// NoAnnotationError.
type HintSource interface {
	ParamHints(fn any) [][]any
}

// reflectHints is the default HintSource: each parameter's own type is its
// token. An interface type with no methods carries no information, so an
// `any` parameter yields no hint.
type reflectHints struct{}

func (reflectHints) ParamHints(fn any) [][]any {
	info, err := analyzeFunc(fn)
	if err != nil {
		return nil
	}
	hints := make([][]any, len(info.params))
	for i, p := range info.params {
		if p.Kind() == reflect.Interface && p.NumMethod() == 0 {
			continue
		}
		hints[i] = []any{p}
	}
	return hints
}

var defaultHints HintSource = reflectHints{}

// Manifest is an explicit HintSource for constructors whose signatures cannot
// carry enough information, such as ones taking primitive parameters bound to
// Symbol tokens. Functions are registered up front; an unregistered function
// has no hints, so every parameter renders as "?" in the resulting
// NoAnnotationError. Registration code is typically generated by nestgen.
type Manifest struct {
	lock  sync.Mutex
	hints map[uintptr][][]any
}

// NewManifest returns an empty manifest.
func NewManifest() *Manifest {
	return &Manifest{
		hints: map[uintptr][][]any{},
	}
}

// Register records the per-parameter annotation lists for fn, one list per
// parameter in declaration order. Registering a non-function panics.
func (m *Manifest) Register(fn any, paramHints ...[]any) *Manifest {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func {
		panic("manifest registration requires a function")
	}
	m.lock.Lock()
	defer m.lock.Unlock()
	m.hints[v.Pointer()] = paramHints
	return m
}

// ParamHints returns the registered hints for fn. A miss yields one nil hint
// per parameter, which normalization reports as unresolvable.
func (m *Manifest) ParamHints(fn any) [][]any {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func {
		return nil
	}
	m.lock.Lock()
	hints, ok := m.hints[v.Pointer()]
	m.lock.Unlock()
	if ok {
		return hints
	}
	info, err := analyzeFunc(fn)
	if err != nil {
		return nil
	}
	return make([][]any, len(info.params))
}
