package framenest

import (
	"fmt"
	"reflect"
	"sync"
)

var (
	errorType = reflect.TypeOf((*error)(nil)).Elem()
	inMarker  = reflect.TypeOf(In{})
)

// funcInfo caches the reflection analysis of a constructor or factory
// function. Analysis depends only on the function type, so the cache is keyed
// by reflect.Type.
type funcInfo struct {
	fnType   reflect.Type
	params   []reflect.Type
	valIndex int
	errIndex int
	hasError bool

	// Parameter-object style: a single struct parameter embedding In whose
	// exported fields are injected individually.
	inStyle  bool
	inFields []inField
}

type inField struct {
	index    int
	typ      reflect.Type
	token    Token
	optional bool
	vis      Visibility
}

var funcInfoCache sync.Map // map[reflect.Type]*funcInfo

// analyzeFunc validates that fn is a usable target: a non-variadic function
// with at most one non-error result. Providers additionally require a value
// result; Invoke also accepts error-only and void functions. The result is
// cached per function type.
func analyzeFunc(fn any) (*funcInfo, error) {
	fnType := reflect.TypeOf(fn)
	if fnType == nil || fnType.Kind() != reflect.Func {
		return nil, &InvalidProviderError{Value: fn}
	}
	if cached, ok := funcInfoCache.Load(fnType); ok {
		return cached.(*funcInfo), nil
	}
	if fnType.IsVariadic() {
		return nil, &InvalidProviderError{Value: fn}
	}

	info := &funcInfo{
		fnType:   fnType,
		valIndex: -1,
		errIndex: -1,
	}

	for i := 0; i < fnType.NumOut(); i++ {
		out := fnType.Out(i)
		if out.AssignableTo(errorType) {
			if info.hasError {
				return nil, &InvalidProviderError{Value: fn}
			}
			info.hasError = true
			info.errIndex = i
		} else {
			if info.valIndex >= 0 {
				return nil, &InvalidProviderError{Value: fn}
			}
			info.valIndex = i
		}
	}
	info.params = make([]reflect.Type, fnType.NumIn())
	for i := 0; i < fnType.NumIn(); i++ {
		info.params[i] = fnType.In(i)
	}

	if len(info.params) == 1 && isInStruct(info.params[0]) {
		info.inStyle = true
		info.inFields = inFieldsOf(info.params[0])
	}

	actual, _ := funcInfoCache.LoadOrStore(fnType, info)
	return actual.(*funcInfo), nil
}

// resultType returns the primary (non-error) result type of the function.
func (info *funcInfo) resultType() reflect.Type {
	return info.fnType.Out(info.valIndex)
}

// isInStruct reports whether t is a struct embedding the In marker.
func isInStruct(t reflect.Type) bool {
	if t.Kind() != reflect.Struct {
		return false
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Anonymous && f.Type == inMarker {
			return true
		}
	}
	return false
}

// inFieldsOf collects the injectable fields of a parameter object. The In
// embed and unexported fields are skipped; tags refine the binding.
func inFieldsOf(t reflect.Type) []inField {
	var fields []inField
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Anonymous && f.Type == inMarker {
			continue
		}
		if f.PkgPath != "" {
			continue
		}
		field := inField{
			index: i,
			typ:   f.Type,
			token: f.Type,
		}
		if name := f.Tag.Get("name"); name != "" {
			field.token = Symbol(name)
		}
		if f.Tag.Get("optional") == "true" {
			field.optional = true
		}
		switch f.Tag.Get("scope") {
		case "self":
			field.vis = VisibilitySelf
		case "skip-self":
			field.vis = VisibilitySkipSelf
		}
		fields = append(fields, field)
	}
	return fields
}

// inFieldDependencies builds the dependency list for a parameter object.
func inFieldDependencies(fields []inField) []Dependency {
	deps := make([]Dependency, len(fields))
	for i, f := range fields {
		deps[i] = Dependency{
			Key:        KeyFor(f.token),
			Optional:   f.optional,
			Visibility: f.vis,
		}
	}
	return deps
}

// newFuncFactory builds the closure that invokes fn with already-resolved
// arguments. Panics inside fn are recovered and returned as errors so the
// injector can wrap them in an InstantiationError.
func newFuncFactory(fn any, info *funcInfo) func(args []any) (any, error) {
	fnVal := reflect.ValueOf(fn)
	if info.inStyle {
		return func(args []any) (out any, err error) {
			defer recoverFactoryPanic(&err)
			if len(args) != len(info.inFields) {
				return nil, fmt.Errorf("expected %d arguments, got %d", len(info.inFields), len(args))
			}
			param := reflect.New(info.params[0]).Elem()
			for i, f := range info.inFields {
				if args[i] == nil {
					continue
				}
				param.Field(f.index).Set(argValue(f.typ, args[i]))
			}
			return mapFactoryResults(info, fnVal.Call([]reflect.Value{param}))
		}
	}
	return func(args []any) (out any, err error) {
		defer recoverFactoryPanic(&err)
		if len(args) != len(info.params) {
			return nil, fmt.Errorf("expected %d arguments, got %d", len(info.params), len(args))
		}
		in := make([]reflect.Value, len(args))
		for i, arg := range args {
			in[i] = argValue(info.params[i], arg)
		}
		return mapFactoryResults(info, fnVal.Call(in))
	}
}

// argValue converts a resolved dependency into the reflect.Value the call
// site needs. nil arguments (optional misses, provided nil values) become the
// zero value of the parameter type.
func argValue(t reflect.Type, arg any) reflect.Value {
	if arg == nil {
		return reflect.Zero(t)
	}
	v := reflect.ValueOf(arg)
	if !v.Type().AssignableTo(t) && v.Type().ConvertibleTo(t) {
		return v.Convert(t)
	}
	return v
}

// mapFactoryResults extracts the value and error results of a factory call.
func mapFactoryResults(info *funcInfo, results []reflect.Value) (any, error) {
	if info.hasError && !results[info.errIndex].IsNil() {
		return nil, results[info.errIndex].Interface().(error)
	}
	if info.valIndex < 0 {
		return nil, nil
	}
	return results[info.valIndex].Interface(), nil
}

func recoverFactoryPanic(err *error) {
	if r := recover(); r != nil {
		if e, ok := r.(error); ok {
			*err = e
		} else {
			*err = fmt.Errorf("%v", r)
		}
	}
}
