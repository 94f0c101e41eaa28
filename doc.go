// Package framenest is a reflective dependency-injection engine. A flat list of
// provider declarations is normalized once into resolved providers, and an
// Injector built from them lazily instantiates values on demand, injecting each
// constructor's declared dependencies. Injectors cache one instance per key,
// detect cyclic dependencies during resolution, and may delegate lookups to a
// parent Injector.
//
// The Injector object has comprehensive documentation about how resolution works.
//
// There are also generic helper functions that make using this more concise.
package framenest
