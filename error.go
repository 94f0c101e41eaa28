package framenest

import (
	"fmt"
	"strings"
)

// chainedError is implemented by resolution errors that accumulate the key
// chain as the recursive lookup unwinds. The first key is the failing one;
// each enclosing provider appends its own key on the way out.
type chainedError interface {
	error
	addKey(key *Key)
}

// resolvingPath renders the accumulated key chain in request order, joined
// with " -> " and wrapped in parentheses. Chains of a single key render as
// nothing: the failing key already appears in the main message. The chain is
// truncated at the first closed cycle so a loop renders once.
func resolvingPath(keys []*Key) string {
	if len(keys) <= 1 {
		return ""
	}
	reversed := make([]*Key, 0, len(keys))
	for i := len(keys) - 1; i >= 0; i-- {
		reversed = append(reversed, keys[i])
	}
	cycle := firstClosedCycle(reversed)
	names := make([]string, len(cycle))
	for i, k := range cycle {
		names[i] = k.String()
	}
	return " (" + strings.Join(names, " -> ") + ")"
}

// firstClosedCycle truncates the chain just past the first repeated key.
func firstClosedCycle(keys []*Key) []*Key {
	seen := map[int]bool{}
	for i, k := range keys {
		if seen[k.ID] {
			return keys[:i+1]
		}
		seen[k.ID] = true
	}
	return keys
}

// NoProviderError reports that no binding for a key was found anywhere in the
// visible injector chain. Keys holds the failing key first, then each
// requesting key up to the original request.
type NoProviderError struct {
	Keys []*Key
}

func newNoProviderError(key *Key) *NoProviderError {
	return &NoProviderError{Keys: []*Key{key}}
}

func (e *NoProviderError) addKey(key *Key) {
	e.Keys = append(e.Keys, key)
}

func (e *NoProviderError) Error() string {
	return fmt.Sprintf("No provider for %s!%s", e.Keys[0].String(), resolvingPath(e.Keys))
}

// CyclicDependencyError reports that the in-progress marker for a key was
// found again during recursive resolution.
type CyclicDependencyError struct {
	Keys []*Key
}

func newCyclicDependencyError(key *Key) *CyclicDependencyError {
	return &CyclicDependencyError{Keys: []*Key{key}}
}

func (e *CyclicDependencyError) addKey(key *Key) {
	e.Keys = append(e.Keys, key)
}

func (e *CyclicDependencyError) Error() string {
	return fmt.Sprintf("Cannot instantiate cyclic dependency!%s", resolvingPath(e.Keys))
}

// InstantiationError wraps a failure thrown by a user factory or constructor,
// carrying the key chain down to the failing key.
type InstantiationError struct {
	Keys        []*Key
	SourceError error
}

func newInstantiationError(cause error, key *Key) *InstantiationError {
	return &InstantiationError{Keys: []*Key{key}, SourceError: cause}
}

func (e *InstantiationError) addKey(key *Key) {
	e.Keys = append(e.Keys, key)
}

func (e *InstantiationError) Error() string {
	return fmt.Sprintf("Error during instantiation of %s!%s", e.Keys[0].String(), resolvingPath(e.Keys))
}

func (e *InstantiationError) Unwrap() error {
	return e.SourceError
}

// NoAnnotationError reports a constructor or factory parameter with no usable
// dependency hint. Params holds the display form of every parameter, with
// unresolved positions rendered as "?".
type NoAnnotationError struct {
	Name   string
	Params []string
}

func newNoAnnotationError(owner any, params []string) *NoAnnotationError {
	return &NoAnnotationError{Name: funcDisplayName(owner), Params: params}
}

func (e *NoAnnotationError) Error() string {
	return fmt.Sprintf("Cannot resolve all parameters for '%s'(%s). "+
		"Make sure that all the parameters are decorated with Inject or have valid type annotations "+
		"and that '%s' is decorated with Injectable.",
		e.Name, strings.Join(e.Params, ", "), e.Name)
}

// InvalidProviderError reports a declaration that is neither a Provider
// record nor a constructor function.
type InvalidProviderError struct {
	Value any
}

func (e *InvalidProviderError) Error() string {
	return fmt.Sprintf("Invalid provider - only instances of Provider and Type are allowed, got: %v", e.Value)
}

// MixingMultiProvidersError reports multi and non-multi declarations for the
// same key, regardless of declaration order.
type MixingMultiProvidersError struct {
	Key *Key
}

func (e *MixingMultiProvidersError) Error() string {
	return fmt.Sprintf("Cannot mix multi providers and regular providers, got: %s", e.Key.String())
}
