package clone

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/animclone/pkg/domain"
)

// EdgeWirer copies the edges of a source tree onto its materialized clone.
type EdgeWirer struct {
	store  *NodeStore
	newID  IDGenerator
	logger *slog.Logger
	report *reporter
	edges  int
}

func newEdgeWirer(store *NodeStore, newID IDGenerator, logger *slog.Logger, report *reporter) *EdgeWirer {
	return &EdgeWirer{store: store, newID: newID, logger: logger, report: report}
}

// Wire walks the source tree and attaches a copy of every edge to the clone.
// It requires a sealed store produced by NodeCloner.CloneTree for the same root.
func (w *EdgeWirer) Wire(root *domain.StateMachine) error {
	if !w.store.Sealed() {
		return fmt.Errorf("edge wiring requires a sealed node store")
	}

	var err error
	domain.Walk(root, domain.Visitor{
		Machine: func(src *domain.StateMachine) {
			if err != nil {
				return
			}
			err = w.machine(src)
		},
		State: func(src *domain.State, _ *domain.StateMachine) {
			if err != nil {
				return
			}
			err = w.state(src)
		},
	})
	return err
}

// Edges returns the number of edges written to the clone.
func (w *EdgeWirer) Edges() int {
	return w.edges
}

func (w *EdgeWirer) machine(src *domain.StateMachine) error {
	dst, ok := w.store.Machine(src)
	if !ok {
		return fmt.Errorf("state machine %q was not materialized", src.Name)
	}

	// Only a state cloned in this operation can be the default.
	if src.DefaultState != nil {
		if s, ok := w.store.State(src.DefaultState); ok {
			dst.DefaultState = s
		} else {
			w.logger.Debug("default state outside cloned tree, leaving unset",
				"machine", src.Name, "state", src.DefaultState.Name)
		}
	}

	for _, t := range src.AnyStateTransitions {
		if t == nil {
			continue
		}
		r := Resolve(t.Destination, w.store)
		if !w.representable(r, src.Name, t.Destination, "any-state") {
			continue
		}
		dst.AnyStateTransitions = append(dst.AnyStateTransitions, w.copyTransition(t, r))
		w.edges++
	}

	for _, t := range src.EntryTransitions {
		if t == nil {
			continue
		}
		r := Resolve(t.Destination, w.store)
		if !w.representable(r, src.Name, t.Destination, "entry") {
			continue
		}
		dst.EntryTransitions = append(dst.EntryTransitions, &domain.EntryTransition{
			ID:          w.newID(),
			Name:        t.Name,
			Destination: r.Destination(),
			Conditions:  domain.CopyConditions(t.Conditions),
			Mute:        t.Mute,
			Solo:        t.Solo,
		})
		w.edges++
	}
	return nil
}

// representable reports whether an any-state or entry edge survives the clone.
// Those edge kinds cannot point at the exit, so exit targets and dangling targets are dropped.
func (w *EdgeWirer) representable(r Resolution, machine string, dest domain.Destination, edge string) bool {
	switch r.Kind {
	case ResolvedState, ResolvedMachine:
		return true
	case ResolvedExit:
		w.report.warn(domain.WarningStructuralDrop, machine, dest.Label(),
			fmt.Sprintf("%s transition cannot target the exit and was dropped", edge))
	default:
		w.report.warn(domain.WarningResolution, machine, dest.Label(),
			fmt.Sprintf("%s transition destination is not part of the cloned tree and was dropped", edge))
	}
	return false
}

func (w *EdgeWirer) state(src *domain.State) error {
	dst, ok := w.store.State(src)
	if !ok {
		return fmt.Errorf("state %q was not materialized", src.Name)
	}

	for _, t := range src.Transitions {
		if t == nil {
			continue
		}
		r := Resolve(t.Destination, w.store)
		if r.Kind == Unresolved {
			w.report.warn(domain.WarningResolution, src.Name, t.Destination.Label(),
				"transition destination is not part of the cloned tree, redirected to exit")
			r = Resolution{Kind: ResolvedExit}
		}
		dst.Transitions = append(dst.Transitions, w.copyTransition(t, r))
		w.edges++
	}
	return nil
}

func (w *EdgeWirer) copyTransition(src *domain.Transition, r Resolution) *domain.Transition {
	return &domain.Transition{
		ID:          w.newID(),
		Name:        src.Name,
		Destination: r.Destination(),
		Conditions:  domain.CopyConditions(src.Conditions),
		Settings:    src.Settings,
		Mute:        src.Mute,
		Solo:        src.Solo,
	}
}
