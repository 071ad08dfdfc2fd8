package domain

// Layout holds the editor positions of a machine's pseudo nodes.
type Layout struct {
	Entry    Vector3 `json:"entry" yaml:"entry"`
	AnyState Vector3 `json:"any_state" yaml:"any_state"`
	Exit     Vector3 `json:"exit" yaml:"exit"`
	Parent   Vector3 `json:"parent" yaml:"parent"`
}

// ChildState places a state inside a machine.
type ChildState struct {
	State    *State
	Position Vector3
}

// ChildMachine places a nested machine inside a machine.
type ChildMachine struct {
	Machine  *StateMachine
	Position Vector3
}

// StateMachine is a container of states, nested machines and machine-level edges.
type StateMachine struct {
	ID     ID
	Name   string
	Layout Layout

	States   []ChildState
	Machines []ChildMachine

	// DefaultState is entered when no entry transition matches. It may be nil.
	DefaultState *State

	// AnyStateTransitions can fire from any active state of this machine.
	AnyStateTransitions []*Transition
	EntryTransitions    []*EntryTransition

	Behaviours []Behaviour
}

func (m *StateMachine) ObjectID() ID       { return m.ID }
func (m *StateMachine) ObjectKind() Kind   { return KindStateMachine }
func (m *StateMachine) ObjectName() string { return m.Name }

// IsEmpty reports whether the machine holds no states and no nested machines.
func (m *StateMachine) IsEmpty() bool {
	return len(m.States) == 0 && len(m.Machines) == 0
}

// AddState appends a child state at the given position.
func (m *StateMachine) AddState(s *State, pos Vector3) {
	m.States = append(m.States, ChildState{State: s, Position: pos})
}

// AddMachine appends a nested machine at the given position.
func (m *StateMachine) AddMachine(child *StateMachine, pos Vector3) {
	m.Machines = append(m.Machines, ChildMachine{Machine: child, Position: pos})
}

// Contains reports whether s is a direct child of m.
func (m *StateMachine) Contains(s *State) bool {
	for _, cs := range m.States {
		if cs.State == s {
			return true
		}
	}
	return false
}

// Visitor receives every machine and every state of a tree exactly once.
// Either function may be nil.
type Visitor struct {
	Machine func(m *StateMachine)
	State   func(s *State, parent *StateMachine)
}

// Walk traverses the tree rooted at root depth-first, parents before children.
// Machines and states reachable through more than one child link are visited once.
func Walk(root *StateMachine, v Visitor) {
	if root == nil {
		return
	}
	machines := make(map[*StateMachine]bool)
	states := make(map[*State]bool)

	var walk func(m *StateMachine)
	walk = func(m *StateMachine) {
		if m == nil || machines[m] {
			return
		}
		machines[m] = true
		if v.Machine != nil {
			v.Machine(m)
		}
		for _, cs := range m.States {
			if cs.State == nil || states[cs.State] {
				continue
			}
			states[cs.State] = true
			if v.State != nil {
				v.State(cs.State, m)
			}
		}
		for _, cm := range m.Machines {
			walk(cm.Machine)
		}
	}
	walk(root)
}
