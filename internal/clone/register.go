package clone

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aretw0/animclone/internal/logging"
	"github.com/aretw0/animclone/pkg/domain"
	"github.com/aretw0/animclone/pkg/ports"
)

// Registration summarizes one pass of the OwnershipRegistrar.
type Registration struct {
	Registered int
	Conflicts  int
	Failures   int
	Warnings   []domain.Warning
}

// OwnershipRegistrar attaches every object of a tree to an ownership container.
type OwnershipRegistrar struct {
	logger *slog.Logger
	report *reporter
}

// NewRegistrar creates a registrar. sink may be nil; a nil logger discards output.
func NewRegistrar(sink ports.DiagnosticsSink, logger *slog.Logger) *OwnershipRegistrar {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &OwnershipRegistrar{logger: logger, report: newReporter(sink, logger)}
}

// Register walks root and adds each machine, state, transition and behaviour to the container,
// marking it hidden. Objects already owned by any container are skipped with a warning, which
// makes a second call on the same tree a no-op. Container errors never abort the walk.
func (r *OwnershipRegistrar) Register(ctx context.Context, root *domain.StateMachine, container ports.Container) Registration {
	var reg Registration
	if root == nil || container == nil {
		return reg
	}
	start := len(r.report.warnings)

	visited := make(map[domain.Object]bool)
	attach := func(obj domain.Object) {
		if obj == nil || visited[obj] {
			return
		}
		visited[obj] = true
		r.attach(ctx, obj, container, &reg)
	}

	domain.Walk(root, domain.Visitor{
		Machine: func(m *domain.StateMachine) {
			attach(m)
			for _, b := range m.Behaviours {
				attach(b)
			}
			for _, t := range m.AnyStateTransitions {
				if t != nil {
					attach(t)
				}
			}
			for _, t := range m.EntryTransitions {
				if t != nil {
					attach(t)
				}
			}
		},
		State: func(s *domain.State, _ *domain.StateMachine) {
			attach(s)
			for _, b := range s.Behaviours {
				attach(b)
			}
			for _, t := range s.Transitions {
				if t != nil {
					attach(t)
				}
			}
		},
	})

	reg.Warnings = append([]domain.Warning(nil), r.report.warnings[start:]...)
	r.logger.Debug("ownership registration finished",
		"registered", reg.Registered, "conflicts", reg.Conflicts, "failures", reg.Failures)
	return reg
}

func (r *OwnershipRegistrar) attach(ctx context.Context, obj domain.Object, container ports.Container, reg *Registration) {
	label := describe(obj)

	owned, err := container.IsOwned(ctx, obj)
	if err != nil {
		reg.Failures++
		r.report.warn(domain.WarningRegistrationFailed, label, string(obj.ObjectID()),
			fmt.Sprintf("ownership query failed: %v", err))
		return
	}
	if owned {
		reg.Conflicts++
		r.report.warn(domain.WarningOwnershipConflict, label, string(obj.ObjectID()),
			"object already belongs to a container, skipped")
		return
	}

	if err := container.AddOwned(ctx, obj); err != nil {
		if errors.Is(err, domain.ErrAlreadyOwned) {
			reg.Conflicts++
			r.report.warn(domain.WarningOwnershipConflict, label, string(obj.ObjectID()),
				"object already belongs to a container, skipped")
			return
		}
		reg.Failures++
		r.report.warn(domain.WarningRegistrationFailed, label, string(obj.ObjectID()),
			fmt.Sprintf("add to container failed: %v", err))
		return
	}

	if err := container.MarkHidden(ctx, obj); err != nil {
		reg.Failures++
		r.report.warn(domain.WarningRegistrationFailed, label, string(obj.ObjectID()),
			fmt.Sprintf("mark hidden failed: %v", err))
		return
	}
	reg.Registered++
}

func describe(obj domain.Object) string {
	if name := obj.ObjectName(); name != "" {
		return fmt.Sprintf("%s %q", obj.ObjectKind(), name)
	}
	return string(obj.ObjectKind())
}
