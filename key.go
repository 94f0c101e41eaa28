package framenest

import (
	"fmt"
	"reflect"
	"sync"
)

// Key is the canonical, comparable form of a token. Keys for the same token
// always carry the same ID, so provider tables and instance caches index by
// the integer instead of comparing tokens structurally.
type Key struct {
	Token Token
	ID    int
}

// String returns the display form of the key's token.
func (k *Key) String() string {
	return tokenDisplay(k.Token)
}

// KeyRegistry assigns each distinct token a process-stable sequential id. Ids
// are never reassigned; asking for the same token always yields the same Key.
// The registry is safe for concurrent registration.
type KeyRegistry struct {
	lock sync.Mutex
	keys map[Token]*Key
}

// NewKeyRegistry returns a fresh, empty registry. The package normally runs
// against a single process-global registry; fresh registries exist for tests
// that need isolated id sequences.
func NewKeyRegistry() *KeyRegistry {
	return &KeyRegistry{
		keys: map[Token]*Key{},
	}
}

// Get returns the Key for a token, registering it with the next sequential id
// on first sight. Passing an existing *Key returns it unchanged. A nil or
// non-comparable token is registration misuse and panics.
func (r *KeyRegistry) Get(token Token) *Key {
	if token == nil {
		panic("token must not be nil")
	}
	if k, ok := token.(*Key); ok {
		return k
	}
	if !reflect.TypeOf(token).Comparable() {
		panic(fmt.Sprintf("token of type %T is not comparable", token))
	}

	r.lock.Lock()
	defer r.lock.Unlock()

	if k, ok := r.keys[token]; ok {
		return k
	}
	k := &Key{Token: token, ID: len(r.keys)}
	r.keys[token] = k
	return k
}

// NumberOfKeys returns how many distinct tokens have been registered.
func (r *KeyRegistry) NumberOfKeys() int {
	r.lock.Lock()
	defer r.lock.Unlock()
	return len(r.keys)
}

// globalRegistry backs KeyFor. All normalization and injector lookups in the
// package go through it so key ids agree across independently resolved
// provider lists.
var globalRegistry = NewKeyRegistry()

// KeyFor returns the Key for a token from the process-global registry.
func KeyFor(token Token) *Key {
	return globalRegistry.Get(token)
}
