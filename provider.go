package framenest

// Provider declares how to produce the value for a token. Exactly one of the
// Use fields is honored, in the order UseClass, UseExisting, UseFactory,
// UseValue. An empty record provides nil: UseValue of nil is a valid provided
// value, distinct from "no provider".
type Provider struct {
	// Provide is the token the value is bound to.
	Provide Token

	// UseClass constructs the value through a constructor function whose
	// parameters are injected. The function must return T or (T, error).
	UseClass any

	// UseValue provides a constant value with no dependencies.
	UseValue any

	// UseFactory invokes the given function with injected arguments. Deps, if
	// set, overrides the function's own inferred dependency list.
	UseFactory any

	// UseExisting aliases this token to another one; requesting Provide
	// resolves the aliased token through the same injector chain.
	UseExisting Token

	// Deps is the explicit dependency list for UseClass or UseFactory. Each
	// entry is a bare token or an annotation list such as
	// []any{Optional(), TypeOf[*Engine]()}.
	Deps []any

	// Multi aggregates every declaration for this token into a []any instead
	// of letting later declarations shadow earlier ones.
	Multi bool
}

// In marks a struct as a parameter object. A constructor whose single
// parameter is a struct embedding In has each exported field injected
// individually. Field tags refine the binding:
//
//	type carParams struct {
//		In
//		Engine *Engine
//		Name   string `name:"car.name"`
//		Radio  *Radio `optional:"true"`
//		Wheel  *Wheel `scope:"self"`
//	}
//
// The name tag requests a Symbol token instead of the field type, optional
// tolerates a missing provider, and scope is "self" or "skip-self".
type In struct{}
