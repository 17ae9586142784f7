package cast

// Fallible declares a conversion edge from S to T that applies only to some
// values of S. can is the eligibility test: it inspects a value without
// taking it and must have no side effects. opt performs the conversion,
// reporting false for ineligible values. Panics if either function is nil.
//
// The two functions must agree: whenever can reports true for a value, opt
// must return a present result for that same value. Try relies on this
// contract and treats a violation as a fatal implementation bug rather than
// a recoverable condition.
func Fallible[S, T any](can func(*S) bool, opt func(S) (T, bool)) Edge[S, T] {
	if can == nil || opt == nil {
		panic("cast: Fallible(" + pair[S, T]() + "): nil eligibility test or conversion")
	}
	return Edge[S, T]{can: can, opt: opt}
}

// Can reports whether s is eligible for conversion along this edge. For
// unconditional edges the answer is always true; for fallible edges it is
// the declared eligibility test. s is only inspected, never modified.
func (e Edge[S, T]) Can(s *S) bool {
	switch {
	case e.can != nil:
		return e.can(s)
	case e.cast != nil:
		return true
	}
	panic(undeclared[S, T]("Can"))
}

// Opt converts s to T, reporting false when the value is ineligible. For
// unconditional edges the result is always present.
func (e Edge[S, T]) Opt(s S) (T, bool) {
	switch {
	case e.opt != nil:
		return e.opt(s)
	case e.cast != nil:
		return e.cast(s), true
	}
	panic(undeclared[S, T]("Opt"))
}

// Try converts s to T, turning ineligibility into an error. On failure the
// error is built by onErr from a view of the rejected value, so the caller
// can describe the value without having given it up.
//
// Try panics if the edge's eligibility test passes for a value the
// conversion then declines: that is a contract violation in the edge's
// declaration, not a runtime condition Try can recover from.
func (e Edge[S, T]) Try(s S, onErr func(*S) error) (T, error) {
	if !e.Can(&s) {
		var zero T
		return zero, onErr(&s)
	}
	t, ok := e.Opt(s)
	if !ok {
		panic("cast: Try(" + pair[S, T]() + "): eligibility test passed but conversion returned no value")
	}
	return t, nil
}
