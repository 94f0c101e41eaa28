package framenest

// Get returns the value bound to TypeOf[T]() from the injector. It otherwise
// behaves exactly like Injector.Get, but returns the value typed.
func Get[T any](inj *Injector) (T, error) {
	var zero T
	value, err := inj.Get(TypeOf[T]())
	if err != nil {
		return zero, err
	}
	if value == nil {
		return zero, nil
	}
	return value.(T), nil
}

// MustGet behaves like Get but panics if the value cannot be resolved.
func MustGet[T any](inj *Injector) T {
	value, err := Get[T](inj)
	if err != nil {
		panic(err)
	}
	return value
}

// GetOptional returns the value of type T along with a boolean indicating
// whether it could be resolved. Unlike MustGet, this function does not panic
// if the resolution fails.
func GetOptional[T any](inj *Injector) (T, bool) {
	value, err := Get[T](inj)
	if err != nil {
		var zero T
		return zero, false
	}
	return value, true
}
