package framenest

// inProgress is the reserved cache sentinel marking a key whose instantiation
// has started but not finished. Finding it again during recursive resolution
// means the dependency chain loops back on itself; a static graph is never
// precomputed. The sentinel is visible only within one logical call stack, so
// an Injector must not be resolved from concurrently.
type inProgress struct{}

var inProgressSentinel = &inProgress{}

// cachedInstance inspects an Injector's cache slot for a key. An absent slot
// means uninstantiated.
func (inj *Injector) cachedInstance(key *Key) (value any, busy bool, ok bool) {
	v, ok := inj.instances[key.ID]
	if !ok {
		return nil, false, false
	}
	if _, busy := v.(*inProgress); busy {
		return nil, true, true
	}
	return v, false, true
}

// getObjByKeyID returns the cached instance for a key, instantiating it on
// first request. A failed instantiation resets the slot to uninstantiated so
// a later independent request may retry; only success is cached.
func (inj *Injector) getObjByKeyID(key *Key, rp *ResolvedProvider) (any, error) {
	value, busy, ok := inj.cachedInstance(key)
	if ok {
		if busy {
			return nil, newCyclicDependencyError(key)
		}
		inj.count(statCacheHits)
		return value, nil
	}

	inj.instances[key.ID] = inProgressSentinel
	value, err := inj.instantiateProvider(rp)
	if err != nil {
		delete(inj.instances, key.ID)
		return nil, err
	}
	inj.instances[key.ID] = value
	return value, nil
}
