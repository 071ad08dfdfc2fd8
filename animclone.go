package animclone

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/animclone/internal/clone"
	"github.com/aretw0/animclone/internal/logging"
	"github.com/aretw0/animclone/pkg/behaviour"
	"github.com/aretw0/animclone/pkg/diagnostics"
	"github.com/aretw0/animclone/pkg/domain"
	"github.com/aretw0/animclone/pkg/observability"
	"github.com/aretw0/animclone/pkg/ports"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Result is the outcome of a successful clone.
type Result struct {
	Root     *domain.StateMachine
	Summary  domain.Summary
	Warnings []domain.Warning

	// Registration counters; all zero when no container is configured.
	Registered int
	Conflicts  int
	Failures   int
}

// Cloner is the high-level entry point of the library.
// It is safe for concurrent use as long as its collaborators are; each Clone call runs
// its own single-shot operation.
type Cloner struct {
	behaviours  ports.BehaviourFactory
	container   ports.Container
	diagnostics ports.DiagnosticsSink
	store       ports.GraphStore
	logger      *slog.Logger
	tracer      trace.Tracer
	metrics     *observability.Metrics
	newID       func() domain.ID
}

// Option defines a functional option for configuring the Cloner.
type Option func(*Cloner)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Cloner) {
		c.logger = logger
	}
}

// WithBehaviours sets the factory used to reconstruct attached behaviours.
// Defaults to behaviour.Default().
func WithBehaviours(factory ports.BehaviourFactory) Option {
	return func(c *Cloner) {
		c.behaviours = factory
	}
}

// WithContainer registers every cloned object with container.
func WithContainer(container ports.Container) Option {
	return func(c *Cloner) {
		c.container = container
	}
}

// WithDiagnostics sets the sink receiving warnings as they happen.
func WithDiagnostics(sink ports.DiagnosticsSink) Option {
	return func(c *Cloner) {
		c.diagnostics = sink
	}
}

// WithStore sets the graph store used by CloneAsset.
func WithStore(store ports.GraphStore) Option {
	return func(c *Cloner) {
		c.store = store
	}
}

// WithTracerProvider emits one span per clone and per phase.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Cloner) {
		c.tracer = tp.Tracer("github.com/aretw0/animclone")
	}
}

// WithMetrics records clone outcomes and warnings.
func WithMetrics(m *observability.Metrics) Option {
	return func(c *Cloner) {
		c.metrics = m
	}
}

// WithIDGenerator overrides the identity source for new objects. Defaults to random UUIDs.
func WithIDGenerator(fn func() domain.ID) Option {
	return func(c *Cloner) {
		c.newID = fn
	}
}

// New creates a Cloner.
func New(opts ...Option) *Cloner {
	c := &Cloner{}
	for _, opt := range opts {
		opt(c)
	}
	if c.behaviours == nil {
		c.behaviours = behaviour.Default()
	}
	if c.logger == nil {
		c.logger = logging.NewNop()
	}
	if c.tracer == nil {
		c.tracer = noop.NewTracerProvider().Tracer("github.com/aretw0/animclone")
	}
	if c.newID == nil {
		c.newID = clone.NewUUID
	}
	return c
}

// Clone copies root and registers the copy with the configured container, if any.
func (c *Cloner) Clone(ctx context.Context, root *domain.StateMachine) (*Result, error) {
	return c.CloneInto(ctx, root, c.container)
}

// CloneInto is Clone with an explicit container. A nil container skips registration.
func (c *Cloner) CloneInto(ctx context.Context, root *domain.StateMachine, container ports.Container) (*Result, error) {
	sink := c.diagnostics
	if c.metrics != nil {
		sink = diagnostics.Multi{c.diagnostics, c.metrics}
	}

	op := clone.NewOperation(c.behaviours,
		clone.WithLogger(c.logger),
		clone.WithDiagnostics(sink),
		clone.WithTracer(c.tracer),
		clone.WithIDGenerator(c.newID),
	)

	start := time.Now()
	res, err := op.Run(ctx, root, container)
	if c.metrics != nil {
		var sum domain.Summary
		if res != nil {
			sum = res.Summary
		}
		c.metrics.ObserveClone(time.Since(start), sum, err)
		if res != nil && container != nil {
			c.metrics.ObserveRegistration(res.Registration.Registered, res.Registration.Conflicts, res.Registration.Failures)
		}
	}
	if err != nil {
		return nil, err
	}

	return &Result{
		Root:       res.Root,
		Summary:    res.Summary,
		Warnings:   res.Warnings,
		Registered: res.Registration.Registered,
		Conflicts:  res.Registration.Conflicts,
		Failures:   res.Registration.Failures,
	}, nil
}

// CloneAsset loads the asset named src from the configured store, clones it and saves the copy
// as dst.
func (c *Cloner) CloneAsset(ctx context.Context, src, dst string) (*Result, error) {
	if c.store == nil {
		return nil, fmt.Errorf("no graph store configured")
	}
	root, err := c.store.Load(ctx, src)
	if err != nil {
		return nil, err
	}
	res, err := c.Clone(ctx, root)
	if err != nil {
		return nil, err
	}
	if err := c.store.Save(ctx, dst, res.Root); err != nil {
		return nil, fmt.Errorf("failed to save clone: %w", err)
	}
	return res, nil
}

// Register hands every object of root to container, skipping objects that are already owned.
func (c *Cloner) Register(ctx context.Context, root *domain.StateMachine, container ports.Container) (registered, conflicts, failures int) {
	sink := c.diagnostics
	if c.metrics != nil {
		sink = diagnostics.Multi{c.diagnostics, c.metrics}
	}
	reg := clone.NewRegistrar(sink, c.logger).Register(ctx, root, container)
	if c.metrics != nil {
		c.metrics.ObserveRegistration(reg.Registered, reg.Conflicts, reg.Failures)
	}
	return reg.Registered, reg.Conflicts, reg.Failures
}

// Clone copies root with a Cloner built from opts.
func Clone(ctx context.Context, root *domain.StateMachine, opts ...Option) (*Result, error) {
	return New(opts...).Clone(ctx, root)
}
