package framenest

import (
	"strings"
)

// Injector resolves tokens to instances. Each injector owns an immutable
// provider table and an instance cache that only grows: the first request for
// a key instantiates it, every later request returns the same instance.
// Lookups that miss the injector's own table delegate to the parent, so a
// child overrides exactly the keys it declares and shares the rest.
//
// Resolution is synchronous and single-threaded per injector. Independent
// injectors are independent; only the key registry is shared.
type Injector struct {
	parent    *Injector
	providers []*ResolvedProvider
	byKeyID   map[int]*ResolvedProvider
	instances map[int]any
	stats     StatsReceiver
	eager     bool
}

// injectorKey is the well-known self-referential token: requesting
// *Injector from any injector returns that injector itself.
var injectorKey = KeyFor(TypeOf[*Injector]())

// InjectorOption is a functional option for injector construction. Options
// may be mixed into the argument list of ResolveAndCreate in any order.
type InjectorOption func(*Injector)

// WithStats attaches a stats receiver that observes gets, cache hits,
// instantiations, and instantiation errors.
func WithStats(sr StatsReceiver) InjectorOption {
	return func(inj *Injector) {
		inj.stats = sr
	}
}

// WithEager instantiates every provider during construction instead of on
// first request. Constructors without an error return panic when eager
// instantiation fails.
func WithEager() InjectorOption {
	return func(inj *Injector) {
		inj.eager = true
	}
}

func newInjector(parent *Injector, resolved []*ResolvedProvider, opts []InjectorOption) *Injector {
	inj := &Injector{
		parent:    parent,
		providers: resolved,
		byKeyID:   make(map[int]*ResolvedProvider, len(resolved)),
		instances: map[int]any{},
	}
	for _, rp := range resolved {
		inj.byKeyID[rp.Key.ID] = rp
	}
	for _, opt := range opts {
		opt(inj)
	}
	return inj
}

// FromResolvedProviders constructs an Injector whose provider table is
// exactly the given resolved list. With WithEager, a failing provider panics;
// use ResolveAndCreate to get the error instead.
func FromResolvedProviders(resolved []*ResolvedProvider, opts ...InjectorOption) *Injector {
	inj := newInjector(nil, resolved, opts)
	if inj.eager {
		if err := inj.InstantiateAll(); err != nil {
			panic(err)
		}
	}
	return inj
}

// ResolveAndCreate normalizes the declarations and constructs an Injector
// from the result. Declarations, ResolveOptions, and InjectorOptions can be
// mixed in any order.
func ResolveAndCreate(args ...any) (*Injector, error) {
	injectorOpts, rest := splitInjectorOptions(args)
	resolved, err := Resolve(rest...)
	if err != nil {
		return nil, err
	}
	inj := newInjector(nil, resolved, injectorOpts)
	if inj.eager {
		if err := inj.InstantiateAll(); err != nil {
			return nil, err
		}
	}
	return inj, nil
}

// MustResolveAndCreate behaves like ResolveAndCreate but panics on failure.
func MustResolveAndCreate(args ...any) *Injector {
	inj, err := ResolveAndCreate(args...)
	if err != nil {
		panic(err)
	}
	return inj
}

func splitInjectorOptions(args []any) ([]InjectorOption, []any) {
	var opts []InjectorOption
	rest := make([]any, 0, len(args))
	for _, arg := range args {
		if opt, ok := arg.(InjectorOption); ok {
			opts = append(opts, opt)
		} else {
			rest = append(rest, arg)
		}
	}
	return opts, rest
}

// CreateChildFromResolved constructs a child Injector whose own table is
// exactly the given list. Tables never merge; delegation happens per lookup.
// The child references the parent, never the other way around, and creating
// a child does not mutate the parent.
func (inj *Injector) CreateChildFromResolved(resolved []*ResolvedProvider, opts ...InjectorOption) *Injector {
	child := newInjector(inj, resolved, opts)
	if child.eager {
		if err := child.InstantiateAll(); err != nil {
			panic(err)
		}
	}
	return child
}

// ResolveAndCreateChild normalizes the declarations and constructs a child
// Injector from the result.
func (inj *Injector) ResolveAndCreateChild(args ...any) (*Injector, error) {
	injectorOpts, rest := splitInjectorOptions(args)
	resolved, err := Resolve(rest...)
	if err != nil {
		return nil, err
	}
	child := newInjector(inj, resolved, injectorOpts)
	if child.eager {
		if err := child.InstantiateAll(); err != nil {
			return nil, err
		}
	}
	return child, nil
}

// Parent returns the parent injector, or nil at the root.
func (inj *Injector) Parent() *Injector {
	return inj.parent
}

// Get resolves a token to its instance, instantiating it and its
// dependencies on first request. A missing binding anywhere in the visible
// chain returns a NoProviderError carrying the request path.
func (inj *Injector) Get(token Token) (any, error) {
	return inj.getByKey(KeyFor(token), VisibilityDefault, false)
}

// MustGet behaves like Get but panics on failure.
func (inj *Injector) MustGet(token Token) any {
	value, err := inj.Get(token)
	if err != nil {
		panic(err)
	}
	return value
}

// GetOrDefault resolves a token, returning notFound when the token itself has
// no provider. Cycles, instantiation failures, and missing nested
// dependencies still return their error.
func (inj *Injector) GetOrDefault(token Token, notFound any) (any, error) {
	value, err := inj.Get(token)
	if err != nil {
		if npe, ok := err.(*NoProviderError); ok && len(npe.Keys) == 1 {
			return notFound, nil
		}
		return nil, err
	}
	return value, nil
}

// getByKey is the resolution walk. Visibility is evaluated relative to this
// injector: Self stops here, SkipSelf starts at the parent, Default searches
// the full chain. A provider found on an ancestor is instantiated by that
// ancestor, so its own dependencies resolve in the owning scope.
func (inj *Injector) getByKey(key *Key, vis Visibility, optional bool) (any, error) {
	inj.count(statGets)

	if key.ID == injectorKey.ID {
		return inj, nil
	}

	start := inj
	if vis == VisibilitySkipSelf {
		start = inj.parent
	}
	for cur := start; cur != nil; cur = cur.parent {
		if rp, ok := cur.byKeyID[key.ID]; ok {
			return cur.getObjByKeyID(key, rp)
		}
		if vis == VisibilitySelf {
			break
		}
	}

	if optional {
		return nil, nil
	}
	return nil, newNoProviderError(key)
}

// instantiateProvider invokes the provider's factory, or every factory in
// declaration order for a multi provider, collecting the results into a
// []any.
func (inj *Injector) instantiateProvider(rp *ResolvedProvider) (any, error) {
	if rp.Multi {
		values := make([]any, len(rp.Factories))
		for i, rf := range rp.Factories {
			value, err := inj.instantiate(rp, rf)
			if err != nil {
				return nil, err
			}
			values[i] = value
		}
		return values, nil
	}
	return inj.instantiate(rp, rp.Factories[0])
}

// instantiate resolves one factory's dependencies and invokes it. Resolution
// errors bubbling up from dependencies get this provider's key appended so
// the rendered path reaches back to the original request; the factory's own
// failure is wrapped in an InstantiationError.
func (inj *Injector) instantiate(rp *ResolvedProvider, rf *ResolvedFactory) (any, error) {
	args := make([]any, len(rf.Deps))
	for i, dep := range rf.Deps {
		value, err := inj.getByKey(dep.Key, dep.Visibility, dep.Optional)
		if err != nil {
			if ce, ok := err.(chainedError); ok {
				ce.addKey(rp.Key)
			}
			return nil, err
		}
		args[i] = value
	}

	inj.count(statInstantiations)
	value, err := rf.Factory(args)
	if err != nil {
		inj.count(statInstantiationErrors)
		return nil, newInstantiationError(err, rp.Key)
	}
	return value, nil
}

// ResolveAndInstantiate normalizes a single declaration and instantiates it
// through this injector without caching the result. Dependencies still come
// from (and fill) the regular cache.
func (inj *Injector) ResolveAndInstantiate(decl any, opts ...ResolveOption) (any, error) {
	args := make([]any, 0, 1+len(opts))
	args = append(args, decl)
	for _, opt := range opts {
		args = append(args, opt)
	}
	resolved, err := Resolve(args...)
	if err != nil {
		return nil, err
	}
	if len(resolved) != 1 {
		return nil, &InvalidProviderError{Value: decl}
	}
	return inj.instantiateProvider(resolved[0])
}

// InstantiateResolved instantiates a resolved provider through this
// injector's dependency resolution without caching the result. Every call
// builds a fresh value.
func (inj *Injector) InstantiateResolved(rp *ResolvedProvider) (any, error) {
	return inj.instantiateProvider(rp)
}

// DisplayName lists every provided token's display name in table order.
func (inj *Injector) DisplayName() string {
	names := make([]string, len(inj.providers))
	for i, rp := range inj.providers {
		names[i] = `"` + rp.Key.String() + `"`
	}
	return "Injector(providers: [" + strings.Join(names, ", ") + "])"
}

// String returns the DisplayName.
func (inj *Injector) String() string {
	return inj.DisplayName()
}

func (inj *Injector) count(name string) {
	if inj.stats != nil {
		inj.stats.Counter(name).Inc(1)
	}
}
