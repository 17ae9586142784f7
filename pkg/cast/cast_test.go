package cast

import (
	"fmt"
	"strings"
	"testing"
)

// Illustrative types shared by the package tests. Bar can always be built
// from a Foo; Baz can be built from a Bar only when B is zero.
type Foo struct{ A int }

type Bar struct{ B uint32 }

type Baz struct{ Bar Bar }

var barFromFoo = Unconditional(func(f Foo) Bar {
	return Bar{B: uint32(f.A)}
})

var bazFromBar = Fallible(
	func(b *Bar) bool { return b.B == 0 },
	func(b Bar) (Baz, bool) {
		if b.B == 0 {
			return Baz{Bar: b}, true
		}
		return Baz{}, false
	},
)

func wantPanic(t *testing.T, substr string, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected panic containing %q, got none", substr)
		}
		msg := fmt.Sprint(r)
		if !strings.Contains(msg, substr) {
			t.Errorf("panic = %q, want substring %q", msg, substr)
		}
	}()
	fn()
}

func TestCast(t *testing.T) {
	got := barFromFoo.Cast(Foo{A: 1})
	if got != (Bar{B: 1}) {
		t.Errorf("Cast(Foo{1}) = %+v, want Bar{B: 1}", got)
	}
}

func TestCast_Total(t *testing.T) {
	// An unconditional edge is defined for every input value.
	for _, a := range []int{0, 1, 42, 1 << 20} {
		got := barFromFoo.Cast(Foo{A: a})
		if got.B != uint32(a) {
			t.Errorf("Cast(Foo{%d}).B = %d, want %d", a, got.B, a)
		}
	}
}

func TestUnconditional_Accessor(t *testing.T) {
	if !barFromFoo.Unconditional() {
		t.Error("barFromFoo.Unconditional() = false, want true")
	}
	if bazFromBar.Unconditional() {
		t.Error("bazFromBar.Unconditional() = true, want false")
	}
}

func TestUnconditional_DerivedEligibility(t *testing.T) {
	// An unconditional edge derives a constant-true eligibility test and an
	// always-present optional conversion.
	foo := Foo{A: 7}
	if !barFromFoo.Can(&foo) {
		t.Error("Can on unconditional edge = false, want true")
	}
	got, ok := barFromFoo.Opt(foo)
	if !ok {
		t.Fatal("Opt on unconditional edge returned no value")
	}
	if got != (Bar{B: 7}) {
		t.Errorf("Opt(Foo{7}) = %+v, want Bar{B: 7}", got)
	}
}

func TestUnconditional_DerivedTry(t *testing.T) {
	got, err := barFromFoo.Try(Foo{A: 3}, func(f *Foo) error {
		return fmt.Errorf("unreachable for %+v", f)
	})
	if err != nil {
		t.Fatalf("Try on unconditional edge: %v", err)
	}
	if got != (Bar{B: 3}) {
		t.Errorf("Try(Foo{3}) = %+v, want Bar{B: 3}", got)
	}
}

func TestCast_FallibleEdgePanics(t *testing.T) {
	wantPanic(t, "edge is fallible", func() {
		bazFromBar.Cast(Bar{B: 0})
	})
}

func TestZeroEdge_Panics(t *testing.T) {
	var e Edge[Foo, Bar]
	foo := Foo{A: 1}

	wantPanic(t, "no conversion declared", func() { e.Cast(foo) })
	wantPanic(t, "no conversion declared", func() { e.Can(&foo) })
	wantPanic(t, "no conversion declared", func() { e.Opt(foo) })
}

func TestUnconditional_NilConversionPanics(t *testing.T) {
	wantPanic(t, "nil conversion", func() {
		Unconditional[Foo, Bar](nil)
	})
}

func TestPair_Diagnostic(t *testing.T) {
	// Panic diagnostics name both types of the pair.
	var e Edge[Foo, Bar]
	wantPanic(t, "cast.Foo -> cast.Bar", func() { e.Cast(Foo{}) })
}
