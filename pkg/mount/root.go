package mount

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/uniqueid/pkg/vango"
	"github.com/vango-dev/uniqueid/pkg/vdom"
)

// Default tracer name for render passes.
const defaultTracerName = "github.com/vango-dev/uniqueid/pkg/mount"

// PassStats describes one completed render pass.
type PassStats struct {
	// Pass is the 1-based pass number for the root.
	Pass int

	// Rendered is the number of component renders in the pass.
	Rendered int

	// Mounted is the number of live component instances after the pass.
	Mounted int

	Duration time.Duration

	// Err is the render error, if the pass failed.
	Err error
}

// PassObserver receives stats after every render pass.
type PassObserver interface {
	ObservePass(stats PassStats)
}

// Option configures a Root.
type Option func(*Root)

// WithLogger sets the logger used for mount/unmount and failure logs.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Root) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithTracer sets the tracer used for render pass spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(r *Root) {
		if tracer != nil {
			r.tracer = tracer
		}
	}
}

// WithObserver registers a PassObserver.
func WithObserver(o PassObserver) Option {
	return func(r *Root) {
		if o != nil {
			r.observers = append(r.observers, o)
		}
	}
}

// Root is a mounted component tree.
//
// Each call to Render performs one synchronous top-down render pass:
// every component in the tree renders once, parents before children,
// siblings in document order. Component instances are kept between passes
// so their scopes (and the state stored in them) persist until the
// component leaves the tree.
//
// A Root serializes its passes; it is safe to call from multiple goroutines.
type Root struct {
	mu sync.Mutex

	component vdom.Component
	scope     *vango.Owner
	top       *instance
	last      *vdom.VNode

	passes   int
	seq      int
	mounted  int
	disposed bool

	logger    *slog.Logger
	tracer    trace.Tracer
	observers []PassObserver
}

// New creates a Root for component. Nothing renders until Render is called.
func New(component vdom.Component, opts ...Option) *Root {
	r := &Root{
		component: component,
		scope:     vango.NewOwner(nil),
		logger:    slog.Default(),
		tracer:    otel.Tracer(defaultTracerName),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render performs a render pass and returns the expanded tree: a tree
// with every component node replaced by the output it rendered.
func (r *Root) Render(ctx context.Context) (*vdom.VNode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.renderLocked(ctx)
}

// Update replaces the root component (typically the same component
// function called with new props) and performs a render pass.
func (r *Root) Update(ctx context.Context, component vdom.Component) (*vdom.VNode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.disposed {
		return nil, ErrDisposed
	}
	r.component = component
	return r.renderLocked(ctx)
}

// Last returns the tree produced by the most recent successful pass.
func (r *Root) Last() *vdom.VNode {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}

// Passes returns the number of render passes attempted.
func (r *Root) Passes() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.passes
}

// Mounted returns the number of live component instances.
func (r *Root) Mounted() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.mounted
}

// Dispose unmounts every component. Further renders return ErrDisposed.
func (r *Root) Dispose() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.disposed {
		return
	}
	r.disposed = true
	if r.top != nil {
		r.top.dispose(&pass{root: r})
		r.top = nil
	}
	r.scope.Dispose()
	r.last = nil
}

func (r *Root) renderLocked(ctx context.Context) (*vdom.VNode, error) {
	if r.disposed {
		return nil, ErrDisposed
	}
	if ctx == nil {
		ctx = context.Background()
	}

	r.passes++
	_, span := r.tracer.Start(ctx, "mount.render",
		trace.WithAttributes(attribute.Int("mount.pass", r.passes)))
	defer span.End()

	start := time.Now()
	p := &pass{root: r}
	tree, err := r.runPass(p)

	stats := PassStats{
		Pass:     r.passes,
		Rendered: p.rendered,
		Mounted:  r.mounted,
		Duration: time.Since(start),
		Err:      err,
	}
	span.SetAttributes(
		attribute.Int("mount.rendered", stats.Rendered),
		attribute.Int("mount.mounted", stats.Mounted),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		r.logger.Error("render pass failed", "pass", r.passes, "error", err)
	} else {
		r.last = tree
		r.logger.Debug("render pass complete",
			"pass", r.passes,
			"rendered", stats.Rendered,
			"mounted", stats.Mounted,
			"duration", stats.Duration)
	}
	for _, o := range r.observers {
		o.ObservePass(stats)
	}
	return tree, err
}

func (r *Root) runPass(p *pass) (*vdom.VNode, error) {
	node := vdom.Comp(r.component)
	if node == nil {
		if r.top != nil {
			r.top.dispose(p)
			r.top = nil
		}
		return nil, nil
	}

	if r.top == nil || !r.top.matches(node) {
		if r.top != nil {
			r.top.dispose(p)
		}
		r.top = p.mount(node, r.scope)
	} else {
		r.top.comp = node.Comp
	}
	return p.renderInstance(r.top)
}
