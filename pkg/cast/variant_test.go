package cast

import "testing"

// FooBar mirrors the container binding the funcast generator emits for:
//
//	bindings:
//	  - {container: FooBar, variant: Foo, payload: Foo}
//	  - {container: FooBar, variant: Bar, payload: Bar}
//	  - {container: FooBar, variant: Baz, payload: Baz}
type FooBar struct {
	Foo *Foo
	Bar *Bar
	Baz *Baz
}

func (c *FooBar) Variant() (string, any) {
	switch {
	case c.Foo != nil:
		return "Foo", c.Foo
	case c.Bar != nil:
		return "Bar", c.Bar
	case c.Baz != nil:
		return "Baz", c.Baz
	}
	return "", nil
}

var _ Tagged = (*FooBar)(nil)

var fooBarFromBar = Unconditional(func(v Bar) FooBar {
	return FooBar{Bar: &v}
})

func TestAs_MatchingVariant(t *testing.T) {
	c := fooBarFromBar.Cast(Bar{B: 0})

	got, ok := As[Bar](&c)
	if !ok {
		t.Fatal("As[Bar] on Bar variant returned no value")
	}
	if *got != (Bar{B: 0}) {
		t.Errorf("As[Bar] = %+v, want Bar{B: 0}", *got)
	}
	if got != c.Bar {
		t.Error("As[Bar] returned a pointer that does not alias the container payload")
	}
}

func TestAs_OtherVariant(t *testing.T) {
	c := fooBarFromBar.Cast(Bar{B: 0})

	if _, ok := As[Foo](&c); ok {
		t.Error("As[Foo] on Bar variant returned a value")
	}
	if _, ok := As[Baz](&c); ok {
		t.Error("As[Baz] on Bar variant returned a value")
	}
}

func TestAs_EmptyContainer(t *testing.T) {
	var c FooBar
	if tag, payload := c.Variant(); tag != "" || payload != nil {
		t.Errorf("Variant() on empty container = (%q, %v), want (\"\", nil)", tag, payload)
	}
	if _, ok := As[Bar](&c); ok {
		t.Error("As[Bar] on empty container returned a value")
	}
}

func TestAs_MutatesInPlace(t *testing.T) {
	// The pointer returned by As is the mutable view of the payload.
	c := fooBarFromBar.Cast(Bar{B: 0})

	p, ok := As[Bar](&c)
	if !ok {
		t.Fatal("As[Bar] returned no value")
	}
	p.B = 42

	got, ok := As[Bar](&c)
	if !ok || got.B != 42 {
		t.Errorf("payload after mutation = %+v, want Bar{B: 42}", got)
	}
}

func TestInto(t *testing.T) {
	c := fooBarFromBar.Cast(Bar{B: 5})

	got, ok := Into[Bar](&c)
	if !ok {
		t.Fatal("Into[Bar] on Bar variant returned no value")
	}
	if got != (Bar{B: 5}) {
		t.Errorf("Into[Bar] = %+v, want Bar{B: 5}", got)
	}

	if _, ok := Into[Foo](&c); ok {
		t.Error("Into[Foo] on Bar variant returned a value")
	}
}

func TestInto_CopiesWithoutEmptying(t *testing.T) {
	c := fooBarFromBar.Cast(Bar{B: 5})

	got, ok := Into[Bar](&c)
	if !ok {
		t.Fatal("Into[Bar] on Bar variant returned no value")
	}

	// Extraction copies; the container keeps its payload.
	p, ok := As[Bar](&c)
	if !ok {
		t.Fatal("container no longer holds its payload after Into")
	}
	if *p != (Bar{B: 5}) {
		t.Errorf("payload after Into = %+v, want Bar{B: 5}", *p)
	}

	// And the copy is independent of the container's payload.
	got.B = 9
	if p.B != 5 {
		t.Errorf("mutating the extracted copy changed the container: B = %d", p.B)
	}
}

func TestVariantAccessorsAgree(t *testing.T) {
	// As and Into report a present result for exactly the same container
	// state.
	containers := []FooBar{
		{},
		{Foo: &Foo{A: 1}},
		{Bar: &Bar{B: 2}},
		{Baz: &Baz{Bar: Bar{B: 0}}},
	}
	for i := range containers {
		c := &containers[i]
		_, asOK := As[Bar](c)
		_, intoOK := Into[Bar](c)
		if asOK != intoOK {
			t.Errorf("container %d: As = %v, Into = %v", i, asOK, intoOK)
		}
	}
}

func TestContainerEdge_DerivedCapabilities(t *testing.T) {
	// The generated payload→container edge takes part in the full protocol.
	bar := Bar{B: 3}
	if !fooBarFromBar.Can(&bar) {
		t.Error("Can on container edge = false, want true")
	}
	c, ok := fooBarFromBar.Opt(bar)
	if !ok {
		t.Fatal("Opt on container edge returned no value")
	}
	if c.Bar == nil || *c.Bar != bar {
		t.Errorf("Opt wrapped %+v, want Bar{B: 3}", c.Bar)
	}
	if !Matches(&bar, fooBarFromBar) {
		t.Error("Matches on container edge = false, want true")
	}
}
