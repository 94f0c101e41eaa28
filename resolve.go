package framenest

import (
	"reflect"
)

// ResolvedFactory is one way of producing a value: an invoking closure plus
// the ordered dependencies its arguments are resolved from. Immutable once
// built.
type ResolvedFactory struct {
	Factory func(args []any) (any, error)
	Deps    []Dependency
}

// ResolvedProvider is the normalized form of every declaration for one key.
// Non-multi providers carry exactly one factory; multi providers aggregate
// one factory per declaration, in declaration order.
type ResolvedProvider struct {
	Key       *Key
	Factories []*ResolvedFactory
	Multi     bool
}

// resolveConfig carries the knobs of a single Resolve call.
type resolveConfig struct {
	hints HintSource
}

// ResolveOption is a functional option for Resolve. Options may be mixed into
// the declaration list in any order; they apply before any declaration is
// normalized.
type ResolveOption func(*resolveConfig)

// WithHintSource overrides the reflection collaborator used to infer
// dependency lists for constructors declared without explicit Deps.
func WithHintSource(src HintSource) ResolveOption {
	return func(cfg *resolveConfig) {
		cfg.hints = src
	}
}

// Resolve normalizes provider declarations into resolved providers, one per
// distinct key. Declarations are Provider records, bare constructor
// functions, forward references, and arbitrarily nested groups of those;
// groups flatten in order and nil entries are skipped. ResolveOptions can be
// mixed into the list in any order. Resolve is a pure function of its input
// and requires no Injector.
func Resolve(args ...any) ([]*ResolvedProvider, error) {
	cfg := resolveConfig{hints: defaultHints}

	flat := flattenDeclarations(args, nil)
	decls := flat[:0]
	for _, d := range flat {
		if opt, ok := d.(ResolveOption); ok {
			opt(&cfg)
		} else {
			decls = append(decls, d)
		}
	}

	var out []*ResolvedProvider
	index := map[int]*ResolvedProvider{}
	for _, decl := range decls {
		rp, err := normalizeDeclaration(decl, &cfg)
		if err != nil {
			return nil, err
		}
		if rp == nil {
			continue
		}
		existing, ok := index[rp.Key.ID]
		if !ok {
			index[rp.Key.ID] = rp
			out = append(out, rp)
			continue
		}
		if existing.Multi != rp.Multi {
			return nil, &MixingMultiProvidersError{Key: rp.Key}
		}
		if rp.Multi {
			existing.Factories = append(existing.Factories, rp.Factories...)
		} else {
			// Last declaration wins; the key keeps its first position.
			existing.Factories = rp.Factories
		}
	}
	return out, nil
}

// flattenDeclarations recursively flattens nested declaration groups into a
// single ordered list, resolving forward references and dropping nil entries.
func flattenDeclarations(args []any, out []any) []any {
	for _, a := range args {
		a = resolveForwardRef(a)
		switch v := a.(type) {
		case nil:
		case []any:
			out = flattenDeclarations(v, out)
		default:
			out = append(out, a)
		}
	}
	return out
}

// normalizeDeclaration classifies one flattened declaration. A bare function
// is shorthand for providing its result type through itself.
func normalizeDeclaration(decl any, cfg *resolveConfig) (*ResolvedProvider, error) {
	switch d := decl.(type) {
	case Provider:
		return normalizeProvider(&d, cfg)
	case *Provider:
		if d == nil {
			return nil, nil
		}
		return normalizeProvider(d, cfg)
	default:
		if t := reflect.TypeOf(decl); t != nil && t.Kind() == reflect.Func {
			return normalizeConstructor(decl, cfg)
		}
		return nil, &InvalidProviderError{Value: decl}
	}
}

// analyzeProviderFunc is analyzeFunc plus the provider result convention:
// a factory must produce a value, so T or (T, error) only.
func analyzeProviderFunc(fn any) (*funcInfo, error) {
	info, err := analyzeFunc(fn)
	if err != nil {
		return nil, err
	}
	if info.valIndex < 0 {
		return nil, &InvalidProviderError{Value: fn}
	}
	return info, nil
}

// normalizeConstructor handles the plain-class shorthand: the function's
// primary result type is the token and the function itself is the factory.
func normalizeConstructor(fn any, cfg *resolveConfig) (*ResolvedProvider, error) {
	info, err := analyzeProviderFunc(fn)
	if err != nil {
		return nil, err
	}
	rf, err := resolveFactory(fn, info, nil, cfg)
	if err != nil {
		return nil, err
	}
	return &ResolvedProvider{
		Key:       KeyFor(info.resultType()),
		Factories: []*ResolvedFactory{rf},
	}, nil
}

// normalizeProvider handles explicit Provider records, honoring the UseClass,
// UseExisting, UseFactory, UseValue precedence.
func normalizeProvider(p *Provider, cfg *resolveConfig) (*ResolvedProvider, error) {
	token := resolveForwardRef(p.Provide)
	if token == nil {
		return nil, &InvalidProviderError{Value: p}
	}
	key := KeyFor(token)

	var rf *ResolvedFactory
	switch {
	case p.UseClass != nil:
		fn := resolveForwardRef(p.UseClass)
		info, err := analyzeProviderFunc(fn)
		if err != nil {
			return nil, err
		}
		rf, err = resolveFactory(fn, info, p.Deps, cfg)
		if err != nil {
			return nil, err
		}
	case p.UseExisting != nil:
		aliasKey := KeyFor(resolveForwardRef(p.UseExisting))
		rf = &ResolvedFactory{
			Factory: func(args []any) (any, error) { return args[0], nil },
			Deps:    []Dependency{{Key: aliasKey}},
		}
	case p.UseFactory != nil:
		fn := resolveForwardRef(p.UseFactory)
		info, err := analyzeProviderFunc(fn)
		if err != nil {
			return nil, err
		}
		rf, err = resolveFactory(fn, info, p.Deps, cfg)
		if err != nil {
			return nil, err
		}
	default:
		value := p.UseValue
		rf = &ResolvedFactory{
			Factory: func([]any) (any, error) { return value, nil },
		}
	}

	return &ResolvedProvider{
		Key:       key,
		Factories: []*ResolvedFactory{rf},
		Multi:     p.Multi,
	}, nil
}

// resolveFactory builds the ResolvedFactory for a function. Explicit deps win
// over everything; a parameter-object constructor carries its own metadata;
// otherwise the hint source supplies one annotation list per parameter.
func resolveFactory(fn any, info *funcInfo, explicitDeps []any, cfg *resolveConfig) (*ResolvedFactory, error) {
	var deps []Dependency
	var err error
	switch {
	case explicitDeps != nil:
		deps, err = buildDependencies(fn, explicitDeps)
	case info.inStyle:
		deps = inFieldDependencies(info.inFields)
	default:
		hints := cfg.hints.ParamHints(fn)
		entries := make([]any, len(info.params))
		for i := range entries {
			if i < len(hints) && hints[i] != nil {
				entries[i] = hints[i]
			}
		}
		deps, err = buildDependencies(fn, entries)
	}
	if err != nil {
		return nil, err
	}
	return &ResolvedFactory{
		Factory: newFuncFactory(fn, info),
		Deps:    deps,
	}, nil
}
