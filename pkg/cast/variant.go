package cast

// Tagged is implemented by tagged-union containers whose variants have been
// bound by the funcast generator. A container holds at most one variant at a
// time; each bound variant pairs a tag (the container's field name) with a
// payload type, and no two tags of one container share a payload type.
//
// Implementations are generated; there is no reason to write one by hand
// beyond tests.
type Tagged interface {
	// Variant returns the tag of the held variant and a pointer to its
	// payload, or ("", nil) when no bound variant is held.
	Variant() (tag string, payload any)
}

// As borrows the T payload of c if c currently holds the variant bound to T.
// The returned pointer aliases the container's payload, so it also serves as
// the mutable view: writes through it update the container in place.
func As[T any](c Tagged) (*T, bool) {
	_, payload := c.Variant()
	p, ok := payload.(*T)
	return p, ok
}

// Into returns the T payload of c by value if c currently holds the variant
// bound to T. It agrees with As on eligibility: both report a present result
// for exactly the same container state. The returned value is a copy; the
// container still holds its payload afterwards.
func Into[T any](c Tagged) (T, bool) {
	if p, ok := As[T](c); ok {
		return *p, true
	}
	var zero T
	return zero, false
}
