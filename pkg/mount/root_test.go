package mount

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/vango-dev/uniqueid/pkg/vango"
	"github.com/vango-dev/uniqueid/pkg/vdom"
)

var quietLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// counterComp counts its own renders in a hook slot.
type counterComp struct {
	label string
	log   *[]string
}

type counterState struct{ renders int }

func (c *counterComp) Render() *vdom.VNode {
	owner := vango.CurrentOwner()
	st, _ := owner.UseHookSlot().(*counterState)
	if st == nil {
		st = &counterState{}
		owner.SetHookSlot(st)
		owner.OnCleanup(func() {
			if c.log != nil {
				*c.log = append(*c.log, "cleanup:"+c.label)
			}
		})
	}
	st.renders++
	if c.log != nil {
		*c.log = append(*c.log, c.label)
	}
	return vdom.Span(vdom.Data("label", c.label), vdom.Data("renders", st.renders))
}

func renders(t *testing.T, tree *vdom.VNode) map[string]int {
	t.Helper()
	out := map[string]int{}
	for _, n := range vdom.Collect(tree, func(n *vdom.VNode) bool { return n.Tag == "span" }) {
		out[n.Props.String("data-label")] = n.Props.Get("data-renders").(int)
	}
	return out
}

func TestRoot_InstancesPersistAcrossPasses(t *testing.T) {
	app := vdom.Func(func() *vdom.VNode {
		return vdom.Div(
			vdom.Comp(&counterComp{label: "a"}),
			vdom.Comp(&counterComp{label: "b"}),
		)
	})
	root := New(app, WithLogger(quietLogger))

	for pass := 1; pass <= 3; pass++ {
		tree, err := root.Render(context.Background())
		if err != nil {
			t.Fatalf("pass %d: %v", pass, err)
		}
		got := renders(t, tree)
		if got["a"] != pass || got["b"] != pass {
			t.Fatalf("pass %d: renders = %v", pass, got)
		}
	}
	if root.Passes() != 3 {
		t.Errorf("Passes() = %d, want 3", root.Passes())
	}
	if root.Mounted() != 3 {
		t.Errorf("Mounted() = %d, want 3 (app + 2 counters)", root.Mounted())
	}
}

func TestRoot_RenderOrderIsTopDownDocumentOrder(t *testing.T) {
	var log []string
	child := func(label string, kids ...any) *vdom.VNode {
		return vdom.Comp(vdom.Func(func() *vdom.VNode {
			log = append(log, label)
			return vdom.Div(kids...)
		}))
	}
	app := vdom.Func(func() *vdom.VNode {
		return vdom.Fragment(
			child("1", child("1.1"), child("1.2")),
			child("2", child("2.1")),
		)
	})
	root := New(app, WithLogger(quietLogger))
	if _, err := root.Render(context.Background()); err != nil {
		t.Fatal(err)
	}

	want := "1,1.1,1.2,2,2.1"
	if got := strings.Join(log, ","); got != want {
		t.Errorf("render order = %s, want %s", got, want)
	}
}

func TestRoot_RemovedComponentsAreDisposed(t *testing.T) {
	var log []string
	show := true
	app := vdom.Func(func() *vdom.VNode {
		return vdom.Div(
			vdom.Comp(&counterComp{label: "keep", log: &log}),
			vdom.If(show, vdom.Comp(&counterComp{label: "drop", log: &log})),
		)
	})
	root := New(app, WithLogger(quietLogger))

	if _, err := root.Render(context.Background()); err != nil {
		t.Fatal(err)
	}
	show = false
	tree, err := root.Render(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	got := renders(t, tree)
	if _, ok := got["drop"]; ok {
		t.Error("dropped component still rendered")
	}
	if got["keep"] != 2 {
		t.Errorf("keep renders = %d, want 2", got["keep"])
	}
	if !contains(log, "cleanup:drop") {
		t.Errorf("dropped component was not cleaned up: %v", log)
	}
	if contains(log, "cleanup:keep") {
		t.Errorf("kept component was cleaned up: %v", log)
	}
}

func TestRoot_KeyedChildrenFollowTheirKey(t *testing.T) {
	order := []string{"x", "y"}
	app := vdom.Func(func() *vdom.VNode {
		var kids []*vdom.VNode
		for _, k := range order {
			kids = append(kids, vdom.Keyed(k, vdom.Comp(&counterComp{label: k})))
		}
		return vdom.Ul(kids)
	})
	root := New(app, WithLogger(quietLogger))

	if _, err := root.Render(context.Background()); err != nil {
		t.Fatal(err)
	}
	order = []string{"y", "x", "z"}
	tree, err := root.Render(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	got := renders(t, tree)
	want := map[string]int{"x": 2, "y": 2, "z": 1}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("renders[%s] = %d, want %d", k, got[k], v)
		}
	}
}

func TestRoot_TypeChangeRemounts(t *testing.T) {
	useFunc := false
	app := vdom.Func(func() *vdom.VNode {
		if useFunc {
			return vdom.Comp(vdom.Func(func() *vdom.VNode { return vdom.Text("func") }))
		}
		return vdom.Comp(&counterComp{label: "c"})
	})
	root := New(app, WithLogger(quietLogger))

	if _, err := root.Render(context.Background()); err != nil {
		t.Fatal(err)
	}
	useFunc = true
	if _, err := root.Render(context.Background()); err != nil {
		t.Fatal(err)
	}
	useFunc = false
	tree, err := root.Render(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if got := renders(t, tree)["c"]; got != 1 {
		t.Errorf("remounted counter renders = %d, want 1", got)
	}
}

var errBroken = errors.New("broken component")

func TestRoot_PanicBecomesRenderError(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		wantIs  error
		wantMsg string
	}{
		{"error value", errBroken, errBroken, "broken component"},
		{"wrapped error", fmt.Errorf("wrap: %w", errBroken), errBroken, "wrap: broken component"},
		{"string value", "plain panic", nil, "plain panic"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := vdom.Func(func() *vdom.VNode {
				return vdom.Div(vdom.Comp(vdom.Func(func() *vdom.VNode { panic(tt.value) })))
			})
			root := New(app, WithLogger(quietLogger))

			tree, err := root.Render(context.Background())
			if tree != nil {
				t.Error("failed pass should not return a tree")
			}
			var re *RenderError
			if !errors.As(err, &re) {
				t.Fatalf("expected *RenderError, got %T: %v", err, err)
			}
			if !strings.Contains(re.Error(), tt.wantMsg) {
				t.Errorf("message %q does not contain %q", re.Error(), tt.wantMsg)
			}
			if len(re.Stack) == 0 {
				t.Error("stack should be captured")
			}
			if tt.wantIs != nil && !errors.Is(err, tt.wantIs) {
				t.Errorf("errors.Is(%v) = false", tt.wantIs)
			}
			if tt.wantIs == nil && re.Unwrap() != nil {
				t.Error("non-error panic should not unwrap")
			}
			if vango.CurrentOwner() != nil {
				t.Error("owner leaked after panic")
			}
		})
	}
}

func TestRoot_LastKeepsPreviousTreeOnFailure(t *testing.T) {
	fail := false
	app := vdom.Func(func() *vdom.VNode {
		if fail {
			panic(errBroken)
		}
		return vdom.Text("ok")
	})
	root := New(app, WithLogger(quietLogger))

	first, err := root.Render(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	fail = true
	if _, err := root.Render(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if root.Last() != first {
		t.Error("Last() should return the tree from the last successful pass")
	}
}

type recordingObserver struct{ stats []PassStats }

func (o *recordingObserver) ObservePass(s PassStats) { o.stats = append(o.stats, s) }

func TestRoot_ObserverReceivesStats(t *testing.T) {
	obs := &recordingObserver{}
	app := vdom.Func(func() *vdom.VNode {
		return vdom.Fragment(vdom.Comp(&counterComp{label: "a"}))
	})
	root := New(app, WithLogger(quietLogger), WithObserver(obs), WithObserver(nil))

	for i := 0; i < 2; i++ {
		if _, err := root.Render(context.Background()); err != nil {
			t.Fatal(err)
		}
	}

	if len(obs.stats) != 2 {
		t.Fatalf("observed %d passes, want 2", len(obs.stats))
	}
	s := obs.stats[1]
	if s.Pass != 2 || s.Rendered != 2 || s.Mounted != 2 || s.Err != nil {
		t.Errorf("unexpected stats %+v", s)
	}
}

func TestRoot_UpdateAndDispose(t *testing.T) {
	var log []string
	root := New(&counterComp{label: "one", log: &log}, WithLogger(quietLogger))

	if _, err := root.Render(context.Background()); err != nil {
		t.Fatal(err)
	}
	tree, err := root.Update(context.Background(), &counterComp{label: "two", log: &log})
	if err != nil {
		t.Fatal(err)
	}
	if got := renders(t, tree)["two"]; got != 2 {
		t.Errorf("same-type update should keep state, renders = %d", got)
	}

	root.Dispose()
	root.Dispose()
	if root.Mounted() != 0 {
		t.Errorf("Mounted() after dispose = %d", root.Mounted())
	}
	if !contains(log, "cleanup:one") {
		t.Errorf("dispose should run cleanups: %v", log)
	}
	if _, err := root.Render(context.Background()); !errors.Is(err, ErrDisposed) {
		t.Errorf("Render after dispose = %v, want ErrDisposed", err)
	}
	if _, err := root.Update(context.Background(), nil); !errors.Is(err, ErrDisposed) {
		t.Errorf("Update after dispose = %v, want ErrDisposed", err)
	}
}

func TestRoot_NilComponent(t *testing.T) {
	root := New(nil, WithLogger(quietLogger))
	tree, err := root.Render(context.Background())
	if err != nil || tree != nil {
		t.Errorf("nil root = %v, %v", tree, err)
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// namedComp shares one Go type across names and reports the name as its
// identity.
type namedComp struct {
	counterComp
	name string
}

func (n *namedComp) Identity() any { return n.name }

func TestRoot_IdentityChangeRemounts(t *testing.T) {
	name := "a"
	app := vdom.Func(func() *vdom.VNode {
		return vdom.Comp(&namedComp{counterComp: counterComp{label: "c"}, name: name})
	})
	root := New(app, WithLogger(quietLogger))
	ctx := context.Background()

	tests := []struct {
		name string
		want int
	}{
		{"a", 1},
		{"a", 2}, // same identity keeps its state
		{"b", 1}, // new identity starts fresh
		{"b", 2},
	}
	for i, tt := range tests {
		name = tt.name
		tree, err := root.Render(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if got := renders(t, tree)["c"]; got != tt.want {
			t.Errorf("pass %d (%s): renders = %d, want %d", i+1, tt.name, got, tt.want)
		}
	}
	if got := root.Mounted(); got != 2 {
		t.Errorf("Mounted() = %d, want 2", got)
	}
}
