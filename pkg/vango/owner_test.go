package vango

import (
	"testing"
)

func TestOwnerBasic(t *testing.T) {
	owner := NewOwner(nil)

	if owner.ID() == 0 {
		t.Error("owner should have non-zero ID")
	}

	if owner.Parent() != nil {
		t.Error("root owner should have nil parent")
	}

	if owner.IsDisposed() {
		t.Error("new owner should not be disposed")
	}
}

func TestOwnerHierarchy(t *testing.T) {
	root := NewOwner(nil)
	child1 := NewOwner(root)
	child2 := NewOwner(root)
	grandchild := NewOwner(child1)

	if child1.Parent() != root || child2.Parent() != root {
		t.Error("children should point at root")
	}
	if grandchild.Parent() != child1 {
		t.Error("grandchild parent should be child1")
	}
	if got := len(root.Children()); got != 2 {
		t.Errorf("root children = %d, want 2", got)
	}
}

func TestOwnerDisposeHierarchy(t *testing.T) {
	root := NewOwner(nil)
	child1 := NewOwner(root)
	child2 := NewOwner(root)
	grandchild := NewOwner(child1)

	var order []string
	child1.OnCleanup(func() { order = append(order, "child1") })
	child2.OnCleanup(func() { order = append(order, "child2") })
	grandchild.OnCleanup(func() { order = append(order, "grandchild") })

	root.Dispose()

	for _, o := range []*Owner{root, child1, child2, grandchild} {
		if !o.IsDisposed() {
			t.Errorf("owner %d should be disposed", o.ID())
		}
	}

	want := []string{"child2", "grandchild", "child1"}
	if len(order) != len(want) {
		t.Fatalf("cleanup order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("cleanup order = %v, want %v", order, want)
		}
	}
}

func TestOwnerDisposeRemovesFromParent(t *testing.T) {
	root := NewOwner(nil)
	child := NewOwner(root)

	child.Dispose()
	child.Dispose() // idempotent

	if got := len(root.Children()); got != 0 {
		t.Errorf("root children after dispose = %d, want 0", got)
	}
}

func TestOwnerOnCleanupAfterDispose(t *testing.T) {
	owner := NewOwner(nil)
	owner.Dispose()

	ran := false
	owner.OnCleanup(func() { ran = true })
	if !ran {
		t.Error("cleanup registered after dispose should run immediately")
	}
}

func TestOwnerValues(t *testing.T) {
	root := NewOwner(nil)
	child := NewOwner(root)
	grandchild := NewOwner(child)

	root.SetValue("k", "root")
	child.SetValue("other", 1)

	if got := grandchild.GetValue("k"); got != "root" {
		t.Errorf("grandchild lookup = %v, want root", got)
	}

	child.SetValue("k", "child")
	if got := grandchild.GetValue("k"); got != "child" {
		t.Errorf("nearest provider should win, got %v", got)
	}
	if got := root.GetValue("k"); got != "root" {
		t.Errorf("ancestor value should be untouched, got %v", got)
	}

	if _, ok := grandchild.LookupValue("missing"); ok {
		t.Error("missing key should not be found")
	}

	root.SetValue("nil", nil)
	if v, ok := child.LookupValue("nil"); !ok || v != nil {
		t.Errorf("explicit nil should be found, got %v %v", v, ok)
	}
}

func TestOwnerHookSlots(t *testing.T) {
	owner := NewOwner(nil)

	type state struct{ n int }

	render := func() *state {
		owner.StartRender()
		defer owner.EndRender()

		slot := owner.UseHookSlot()
		if slot != nil {
			return slot.(*state)
		}
		s := &state{}
		owner.SetHookSlot(s)
		return s
	}

	first := render()
	first.n = 42
	second := render()

	if first != second {
		t.Fatal("hook slot should return the same instance across renders")
	}
	if second.n != 42 {
		t.Errorf("state lost: n = %d", second.n)
	}
	if owner.RenderCount() != 2 {
		t.Errorf("RenderCount = %d, want 2", owner.RenderCount())
	}
}

func TestOwnerMultipleHookSlots(t *testing.T) {
	owner := NewOwner(nil)

	owner.StartRender()
	if owner.UseHookSlot() != nil {
		t.Fatal("first slot should start empty")
	}
	owner.SetHookSlot("a")
	if owner.UseHookSlot() != nil {
		t.Fatal("second slot should start empty")
	}
	owner.SetHookSlot("b")
	owner.EndRender()

	owner.StartRender()
	if got := owner.UseHookSlot(); got != "a" {
		t.Errorf("slot 0 = %v, want a", got)
	}
	if got := owner.UseHookSlot(); got != "b" {
		t.Errorf("slot 1 = %v, want b", got)
	}
	owner.EndRender()
}
