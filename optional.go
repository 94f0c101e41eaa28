package framenest

// Visibility controls where the lookup for one dependency may search.
type Visibility int

const (
	// VisibilityDefault searches the requesting injector, then walks up
	// through its parents.
	VisibilityDefault Visibility = iota

	// VisibilitySelf restricts the lookup to the requesting injector only.
	VisibilitySelf

	// VisibilitySkipSelf starts the lookup at the parent, excluding the
	// requesting injector.
	VisibilitySkipSelf
)

// Dependency is one resolved constructor parameter: the key to look up, and
// how the lookup behaves.
type Dependency struct {
	Key        *Key
	Optional   bool
	Visibility Visibility
}

type optionalMarker struct{}
type selfMarker struct{}
type skipSelfMarker struct{}

type injectMarker struct {
	token Token
}

// Optional marks a dependency position so a missing provider yields nil for
// that one argument instead of failing the whole resolution.
func Optional() any { return optionalMarker{} }

// Self restricts a dependency lookup to the requesting injector.
func Self() any { return selfMarker{} }

// SkipSelf starts a dependency lookup at the requesting injector's parent.
func SkipSelf() any { return skipSelfMarker{} }

// Inject overrides the token looked up for a dependency position, replacing
// whatever the parameter type would have implied.
func Inject(token Token) any { return injectMarker{token: token} }

// buildDependency turns one raw dependency entry into a Dependency. An entry
// is a bare token or an annotation list (one level of nesting flattened).
// Markers set flags; of the remaining entries the last one is the token. The
// second result is false when no token was present, which the caller reports
// as an unresolvable parameter.
func buildDependency(entry any) (Dependency, bool) {
	dep := Dependency{}
	entry = resolveForwardRef(entry)

	list, isList := entry.([]any)
	if !isList {
		list = []any{entry}
	}

	var token Token
	for _, raw := range flattenOneLevel(list) {
		raw = resolveForwardRef(raw)
		switch m := raw.(type) {
		case nil:
			// tolerated, same as sparse provider lists
		case optionalMarker:
			dep.Optional = true
		case selfMarker:
			dep.Visibility = VisibilitySelf
		case skipSelfMarker:
			dep.Visibility = VisibilitySkipSelf
		case injectMarker:
			token = m.token
		default:
			token = raw
		}
	}

	if token == nil {
		return dep, false
	}
	dep.Key = KeyFor(token)
	return dep, true
}

// flattenOneLevel expands nested annotation lists a single level, matching
// how annotation arrays are scanned.
func flattenOneLevel(list []any) []any {
	flat := make([]any, 0, len(list))
	for _, e := range list {
		if inner, ok := e.([]any); ok {
			flat = append(flat, inner...)
		} else {
			flat = append(flat, e)
		}
	}
	return flat
}

// buildDependencies maps raw dependency entries for one factory. When any
// position lacks a token it fails with NoAnnotationError naming the owning
// function and rendering unresolved positions as "?".
func buildDependencies(owner any, entries []any) ([]Dependency, error) {
	deps := make([]Dependency, len(entries))
	params := make([]string, len(entries))
	failed := false
	for i, entry := range entries {
		dep, ok := buildDependency(entry)
		if !ok {
			failed = true
			params[i] = "?"
			continue
		}
		deps[i] = dep
		params[i] = dep.Key.String()
	}
	if failed {
		return nil, newNoAnnotationError(owner, params)
	}
	return deps, nil
}
