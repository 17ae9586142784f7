// Package cast defines a protocol for declaring conversion relationships
// between Go types.
//
// A relationship between a source type S and a target type T is an Edge[S, T]
// value, declared once per ordered pair as a package-level variable. Exactly
// one primitive underlies an edge: an unconditional conversion (see
// Unconditional) or an eligibility test paired with a partial conversion (see
// Fallible). Everything else — the always-true eligibility of unconditional
// edges, the always-present optional result, the error-producing Try wrapper —
// is derived from that primitive and never written by the implementer.
//
// Both sides of a conversion share the one edge value: the target-side "build
// a T from this S" view and the source-side "turn this S into a T" view are
// calls on the same variable, so the two directions of a pair cannot drift
// apart.
//
// The package also provides typed access to the variants of tagged-union
// containers (see Tagged, As, Into). The funcast command generates container
// bindings from a funcast.yaml declaration; see internal/binder.
package cast

import (
	"fmt"
	"reflect"
)

// Edge is a directed conversion relationship from a source type S to a
// target type T.
//
// The zero Edge declares no relationship; every operation on it panics.
// Build edges with Unconditional or Fallible. An edge built that way holds
// exactly one primitive, so a pair can never carry two disagreeing
// implementations of the same relationship.
type Edge[S, T any] struct {
	cast func(S) T
	can  func(*S) bool
	opt  func(S) (T, bool)
}

// Unconditional declares a conversion edge that succeeds for every value of
// S. fn must be total: defined for every input, no failure mode. Panics if
// fn is nil.
func Unconditional[S, T any](fn func(S) T) Edge[S, T] {
	if fn == nil {
		panic("cast: Unconditional(" + pair[S, T]() + "): nil conversion")
	}
	return Edge[S, T]{cast: fn}
}

// Unconditional reports whether the edge's primitive is an unconditional
// conversion.
func (e Edge[S, T]) Unconditional() bool { return e.cast != nil }

// Cast converts s to T. Defined only for unconditional edges: a fallible
// conversion has no total form, so Cast on a fallible (or undeclared) edge
// panics. Use Opt or Try for fallible edges.
func (e Edge[S, T]) Cast(s S) T {
	if e.cast == nil {
		if e.opt != nil {
			panic("cast: Cast(" + pair[S, T]() + "): edge is fallible, use Opt or Try")
		}
		panic(undeclared[S, T]("Cast"))
	}
	return e.cast(s)
}

// pair renders the edge's type pair for diagnostics.
func pair[S, T any]() string {
	s := reflect.TypeOf((*S)(nil)).Elem()
	t := reflect.TypeOf((*T)(nil)).Elem()
	return s.String() + " -> " + t.String()
}

func undeclared[S, T any](op string) string {
	return fmt.Sprintf("cast: %s(%s): no conversion declared", op, pair[S, T]())
}
