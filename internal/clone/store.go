package clone

import (
	"fmt"

	"github.com/aretw0/animclone/pkg/domain"
)

// NodeStore maps source nodes to their clones for a single operation.
// It holds at most one clone per source node.
type NodeStore struct {
	states   map[*domain.State]*domain.State
	machines map[*domain.StateMachine]*domain.StateMachine
	sealed   bool
}

// NewNodeStore creates an empty store.
func NewNodeStore() *NodeStore {
	return &NodeStore{
		states:   make(map[*domain.State]*domain.State),
		machines: make(map[*domain.StateMachine]*domain.StateMachine),
	}
}

// PutState records the clone of a source state.
func (s *NodeStore) PutState(old, clone *domain.State) error {
	if s.sealed {
		return fmt.Errorf("node store is sealed")
	}
	if _, ok := s.states[old]; ok {
		return fmt.Errorf("state %q already cloned", old.Name)
	}
	s.states[old] = clone
	return nil
}

// PutMachine records the clone of a source machine.
func (s *NodeStore) PutMachine(old, clone *domain.StateMachine) error {
	if s.sealed {
		return fmt.Errorf("node store is sealed")
	}
	if _, ok := s.machines[old]; ok {
		return fmt.Errorf("state machine %q already cloned", old.Name)
	}
	s.machines[old] = clone
	return nil
}

// State returns the clone of a source state.
func (s *NodeStore) State(old *domain.State) (*domain.State, bool) {
	if old == nil {
		return nil, false
	}
	clone, ok := s.states[old]
	return clone, ok
}

// Machine returns the clone of a source machine.
func (s *NodeStore) Machine(old *domain.StateMachine) (*domain.StateMachine, bool) {
	if old == nil {
		return nil, false
	}
	clone, ok := s.machines[old]
	return clone, ok
}

// Seal freezes the store. Wiring only starts on a sealed store.
func (s *NodeStore) Seal() {
	s.sealed = true
}

// Sealed reports whether the store is frozen.
func (s *NodeStore) Sealed() bool {
	return s.sealed
}

// Len returns the number of cloned states and machines.
func (s *NodeStore) Len() (states, machines int) {
	return len(s.states), len(s.machines)
}
