package clone

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/animclone/internal/logging"
	"github.com/aretw0/animclone/pkg/domain"
	"github.com/aretw0/animclone/pkg/ports"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Phase is the lifecycle position of an Operation.
type Phase int

const (
	PhaseEmpty Phase = iota
	PhaseMaterializing
	PhaseWiring
	PhaseRegistering
	PhaseComplete
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseEmpty:
		return "empty"
	case PhaseMaterializing:
		return "materializing"
	case PhaseWiring:
		return "wiring"
	case PhaseRegistering:
		return "registering"
	case PhaseComplete:
		return "complete"
	case PhaseFailed:
		return "failed"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// IDGenerator produces identities for cloned objects.
type IDGenerator func() domain.ID

// NewUUID is the default IDGenerator.
func NewUUID() domain.ID {
	return domain.ID(uuid.NewString())
}

// Result is the outcome of a successful Operation.
type Result struct {
	Root         *domain.StateMachine
	Store        *NodeStore
	Summary      domain.Summary
	Edges        int
	Warnings     []domain.Warning
	Registration Registration
}

// Operation clones one tree. It is single-shot: a second Run fails with domain.ErrOperationReused.
type Operation struct {
	behaviours  ports.BehaviourFactory
	diagnostics ports.DiagnosticsSink
	logger      *slog.Logger
	tracer      trace.Tracer
	newID       IDGenerator

	phase Phase
}

// Option configures an Operation.
type Option func(*Operation)

// WithLogger sets the operation logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Operation) {
		o.logger = logger
	}
}

// WithDiagnostics sets the sink receiving warnings.
func WithDiagnostics(sink ports.DiagnosticsSink) Option {
	return func(o *Operation) {
		o.diagnostics = sink
	}
}

// WithTracer sets the tracer used for phase spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(o *Operation) {
		o.tracer = tracer
	}
}

// WithIDGenerator overrides the identity source for new objects.
func WithIDGenerator(fn IDGenerator) Option {
	return func(o *Operation) {
		o.newID = fn
	}
}

// NewOperation creates an operation that instantiates behaviours through factory.
func NewOperation(factory ports.BehaviourFactory, opts ...Option) *Operation {
	o := &Operation{
		behaviours: factory,
		logger:     logging.NewNop(),
		tracer:     noop.NewTracerProvider().Tracer("animclone"),
		newID:      NewUUID,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Phase returns the current lifecycle phase.
func (o *Operation) Phase() Phase {
	return o.phase
}

// Run clones root, wires every edge and, when container is not nil, registers the new objects.
// Only materialization can fail; the caller then receives no partial tree.
func (o *Operation) Run(ctx context.Context, root *domain.StateMachine, container ports.Container) (*Result, error) {
	if o.phase != PhaseEmpty {
		return nil, domain.ErrOperationReused
	}
	if root == nil {
		o.phase = PhaseFailed
		return nil, domain.ErrNilRoot
	}
	if o.behaviours == nil {
		o.phase = PhaseFailed
		return nil, fmt.Errorf("%w: no behaviour factory configured", domain.ErrBehaviourAttach)
	}

	ctx, span := o.tracer.Start(ctx, "clone.Run", trace.WithAttributes(
		attribute.String("clone.root", root.Name),
	))
	defer span.End()

	logger := o.logger.With("root", root.Name)
	report := newReporter(o.diagnostics, logger)

	o.phase = PhaseMaterializing
	_, mspan := o.tracer.Start(ctx, "clone.materialize")
	clone, store, err := NewNodeCloner(o.behaviours, o.newID, logger).CloneTree(root)
	mspan.End()
	if err != nil {
		o.phase = PhaseFailed
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.Error("materialization failed", "err", err)
		return nil, err
	}
	store.Seal()
	states, machines := store.Len()
	logger.Debug("materialized", "states", states, "machines", machines)

	o.phase = PhaseWiring
	_, wspan := o.tracer.Start(ctx, "clone.wire")
	wirer := newEdgeWirer(store, o.newID, logger, report)
	if err := wirer.Wire(root); err != nil {
		// Unreachable with a store from CloneTree.
		wspan.End()
		o.phase = PhaseFailed
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	wspan.End()

	o.phase = PhaseRegistering
	var reg Registration
	if container != nil {
		rctx, rspan := o.tracer.Start(ctx, "clone.register")
		registrar := &OwnershipRegistrar{logger: logger, report: report}
		reg = registrar.Register(rctx, clone, container)
		rspan.End()
	} else {
		logger.Debug("no container, skipping ownership registration")
	}

	o.phase = PhaseComplete
	res := &Result{
		Root:         clone,
		Store:        store,
		Summary:      domain.Summarize(clone),
		Edges:        wirer.Edges(),
		Warnings:     report.collected(),
		Registration: reg,
	}
	span.SetAttributes(
		attribute.Int("clone.nodes", res.Summary.Total()),
		attribute.Int("clone.warnings", len(res.Warnings)),
	)
	logger.Info("graph cloned", "nodes", res.Summary.Total(), "warnings", len(res.Warnings))
	return res, nil
}
