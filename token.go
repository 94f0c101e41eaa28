package framenest

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"
)

// Token is the identity a value is requested by. Any comparable value works as
// a token: a reflect.Type (usually obtained through TypeOf), a Symbol, or a
// *Key that was handed out earlier. Two tokens are equal when they compare
// equal with ==.
type Token = any

// Symbol is a string wrapped for explicit intent. Providing a value under
// Symbol("db.url") cannot collide with a plain string used elsewhere as data.
type Symbol string

// TypeOf returns the reflect.Type of T as a token. This is the usual way to
// name an interface or a pointer type when declaring or requesting a binding.
func TypeOf[T any]() Token {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// forwardRef defers resolution of a token or declaration until the point of
// use during normalization. The accessor runs exactly once per use site.
type forwardRef struct {
	resolve func() any
}

// ForwardRef wraps a deferred accessor so a declaration can reference a token
// or constructor that is not yet defined when the provider list is written.
func ForwardRef(resolve func() any) any {
	return &forwardRef{resolve: resolve}
}

// resolveForwardRef unwraps any chain of forward references. Non-wrapped
// values pass through unchanged.
func resolveForwardRef(v any) any {
	for {
		fr, ok := v.(*forwardRef)
		if !ok {
			return v
		}
		v = fr.resolve()
	}
}

// tokenDisplay renders the canonical display form of a token: the bare type
// name for type tokens, the string value for symbols, and a best-effort %v
// for anything else.
func tokenDisplay(token Token) string {
	switch t := token.(type) {
	case *Key:
		return tokenDisplay(t.Token)
	case reflect.Type:
		return typeDisplayName(t)
	case Symbol:
		return string(t)
	case string:
		return t
	default:
		return fmt.Sprintf("%v", token)
	}
}

// typeDisplayName strips pointers and the package qualifier so *pkg.Car
// renders as "Car".
func typeDisplayName(t reflect.Type) string {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if name := t.Name(); name != "" {
		return name
	}
	return t.String()
}

// funcDisplayName returns the bare name of a function for diagnostics. Method
// values carry a "-fm" suffix from the runtime that is not useful here.
func funcDisplayName(fn any) string {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func {
		return fmt.Sprintf("%v", fn)
	}
	f := runtime.FuncForPC(v.Pointer())
	if f == nil {
		return v.Type().String()
	}
	name := strings.TrimSuffix(f.Name(), "-fm")
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.Index(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return name
}
