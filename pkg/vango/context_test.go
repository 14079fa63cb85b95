package vango

import (
	"errors"
	"sync"
	"testing"

	"github.com/vango-dev/uniqueid/pkg/vdom"
)

func TestContextProvider_CreatesComponentVNode(t *testing.T) {
	ctx := CreateContext("default")
	node := ctx.Provider("value", vdom.Text("child"))
	if node == nil || node.Kind != vdom.KindComponent || node.Comp == nil {
		t.Fatalf("Provider() should return a component VNode, got %+v", node)
	}
}

func TestContextProviderComponent_Render_NoOwnerReturnsFragment(t *testing.T) {
	ctx := CreateContext("default")
	node := ctx.Provider("value", vdom.Text("a"), vdom.Text("b"))

	out := node.Comp.Render()
	if out == nil || out.Kind != vdom.KindFragment {
		t.Fatalf("Render() without owner should return Fragment, got %+v", out)
	}
	if len(out.Children) != 2 {
		t.Fatalf("Fragment children = %d, want %d", len(out.Children), 2)
	}
}

func TestContextUse_NearestProviderWins(t *testing.T) {
	ctx := CreateContext("default")
	root := NewOwner(nil)
	outer := NewOwner(root)
	inner := NewOwner(outer)
	leaf := NewOwner(inner)

	WithOwner(outer, func() { ctx.Provider("outer").Comp.Render() })
	WithOwner(inner, func() { ctx.Provider("inner").Comp.Render() })

	var got string
	WithOwner(leaf, func() { got = ctx.Use() })
	if got != "inner" {
		t.Errorf("Use() = %q, want inner", got)
	}

	WithOwner(root, func() { got = ctx.Use() })
	if got != "default" {
		t.Errorf("Use() above provider = %q, want default", got)
	}
}

func TestContextUse_SiblingsIsolated(t *testing.T) {
	ctx := CreateContext(0)
	root := NewOwner(nil)
	a := NewOwner(root)
	b := NewOwner(root)

	WithOwner(a, func() { ctx.Provide(1) })

	var fromB int
	var found bool
	WithOwner(b, func() { fromB, found = ctx.Lookup() })
	if found || fromB != 0 {
		t.Errorf("sibling saw provider value: %d (found=%v)", fromB, found)
	}
}

func TestContextLookup_NoOwner(t *testing.T) {
	ctx := CreateContext("d")
	v, ok := ctx.Lookup()
	if ok || v != "d" {
		t.Errorf("Lookup() outside render = %q, %v", v, ok)
	}
	if ctx.Default() != "d" {
		t.Errorf("Default() = %q", ctx.Default())
	}
}

func TestContextMustUse_PanicsWithContextError(t *testing.T) {
	ctx := CreateNamedContext[*int]("counter", nil)
	owner := NewOwner(nil)

	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok {
			t.Fatalf("expected error panic, got %v", r)
		}
		if !errors.Is(err, ErrContextNotFound) {
			t.Errorf("error should wrap ErrContextNotFound: %v", err)
		}
		var ce *ContextError
		if !errors.As(err, &ce) || ce.Name != "counter" {
			t.Errorf("expected ContextError for counter, got %v", err)
		}
	}()

	WithOwner(owner, func() { ctx.MustUse() })
}

func TestContextName(t *testing.T) {
	if got := CreateNamedContext("theme", "").Name(); got != "theme" {
		t.Errorf("Name() = %q", got)
	}
	if got := CreateContext(0).Name(); got != "context[int]" {
		t.Errorf("unnamed Name() = %q", got)
	}
}

func TestWithOwner_RestoresOnPanic(t *testing.T) {
	owner := NewOwner(nil)

	func() {
		defer func() { _ = recover() }()
		WithOwner(owner, func() { panic("boom") })
	}()

	if CurrentOwner() != nil {
		t.Error("owner should be cleared after panic")
	}
}

func TestWithOwner_PerGoroutine(t *testing.T) {
	ctx := CreateContext("none")
	var wg sync.WaitGroup
	results := make([]string, 8)

	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			owner := NewOwner(nil)
			owner.SetValue(ctx.key, string(rune('a'+i)))
			WithOwner(owner, func() {
				results[i] = ctx.Use()
			})
		}(i)
	}
	wg.Wait()

	for i, got := range results {
		if want := string(rune('a' + i)); got != want {
			t.Errorf("goroutine %d saw %q, want %q", i, got, want)
		}
	}
}
