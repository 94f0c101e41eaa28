package framenest

// Invoke calls fn with arguments resolved from this injector. Parameter
// dependencies come from the default reflection hints, so a parameter-object
// struct embedding In works the same as in a constructor. The function may
// return nothing, T, error, or (T, error); the value result, if any, is
// returned. Nothing is cached for the function itself, only for the
// dependencies it pulls in.
func (inj *Injector) Invoke(fn any) (any, error) {
	info, err := analyzeFunc(fn)
	if err != nil {
		return nil, err
	}
	rf, err := resolveFactory(fn, info, nil, &resolveConfig{hints: defaultHints})
	if err != nil {
		return nil, err
	}

	args := make([]any, len(rf.Deps))
	for i, dep := range rf.Deps {
		value, err := inj.getByKey(dep.Key, dep.Visibility, dep.Optional)
		if err != nil {
			return nil, err
		}
		args[i] = value
	}
	return rf.Factory(args)
}
