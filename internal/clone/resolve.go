package clone

import "github.com/aretw0/animclone/pkg/domain"

// ResolutionKind tells what a destination resolved to.
type ResolutionKind int

const (
	Unresolved ResolutionKind = iota
	ResolvedState
	ResolvedMachine
	ResolvedExit
)

func (k ResolutionKind) String() string {
	switch k {
	case ResolvedState:
		return "state"
	case ResolvedMachine:
		return "machine"
	case ResolvedExit:
		return "exit"
	default:
		return "unresolved"
	}
}

// Resolution is a destination expressed in terms of the clone.
type Resolution struct {
	Kind    ResolutionKind
	State   *domain.State
	Machine *domain.StateMachine
}

// Resolve maps a source destination onto the clone.
// Priority: a cloned target state, then a cloned target machine, then the exit marker.
// Anything else is Unresolved; the caller applies the fallback of its edge kind.
func Resolve(dest domain.Destination, store *NodeStore) Resolution {
	if s, ok := store.State(dest.State); ok {
		return Resolution{Kind: ResolvedState, State: s}
	}
	if m, ok := store.Machine(dest.Machine); ok {
		return Resolution{Kind: ResolvedMachine, Machine: m}
	}
	if dest.IsExit {
		return Resolution{Kind: ResolvedExit}
	}
	return Resolution{Kind: Unresolved}
}

// Destination converts the resolution back to an edge destination.
func (r Resolution) Destination() domain.Destination {
	switch r.Kind {
	case ResolvedState:
		return domain.Destination{State: r.State}
	case ResolvedMachine:
		return domain.Destination{Machine: r.Machine}
	case ResolvedExit:
		return domain.Destination{IsExit: true}
	default:
		return domain.Destination{}
	}
}
