package utils

// AttributeMap is a convenience wrapper for pulling out
// typed information from a map.
type AttributeMap map[string]interface{}

// Has returns whether the given name is in the map.
func (am AttributeMap) Has(name string) bool {
	_, has := am[name]
	return has
}

// AssertType attempts to assert that the given interface argument is
// the given type and returns a useful error if it is not.
func AssertType[T any](from interface{}) (T, error) {
	var zero T
	if from == nil {
		return zero, NewUnexpectedTypeError[T](from)
	}
	asserted, ok := from.(T)
	if !ok {
		return zero, NewUnexpectedTypeError[T](from)
	}
	return asserted, nil
}
