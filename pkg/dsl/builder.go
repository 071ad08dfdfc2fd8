package dsl

import (
	"fmt"
	"strings"

	"github.com/aretw0/animclone/pkg/domain"
)

// MachineBuilder manages the construction of one state machine and its children.
type MachineBuilder struct {
	name        string
	pos         domain.Vector3
	layout      domain.Layout
	defaultName string
	behaviours  []domain.Behaviour

	states   []*StateBuilder
	byName   map[string]*StateBuilder
	machines []*MachineBuilder
	anyState []*TransitionBuilder
	entry    []*TransitionBuilder
	parent   *MachineBuilder
}

// New creates a builder for a root machine.
func New(name string) *MachineBuilder {
	return &MachineBuilder{
		name:   name,
		byName: make(map[string]*StateBuilder),
	}
}

// State returns the builder of the named state, creating it on first use.
func (m *MachineBuilder) State(name string) *StateBuilder {
	if sb, ok := m.byName[name]; ok {
		return sb
	}
	sb := &StateBuilder{
		state:   domain.State{Name: name, Speed: 1},
		machine: m,
	}
	m.byName[name] = sb
	m.states = append(m.states, sb)
	return sb
}

// Machine returns the builder of the named child machine, creating it on first use.
func (m *MachineBuilder) Machine(name string) *MachineBuilder {
	for _, child := range m.machines {
		if child.name == name {
			return child
		}
	}
	child := New(name)
	child.parent = m
	m.machines = append(m.machines, child)
	return child
}

// Parent returns the enclosing machine builder, or nil for the root.
func (m *MachineBuilder) Parent() *MachineBuilder {
	return m.parent
}

// Default names the default state. It must be one of this machine's states.
func (m *MachineBuilder) Default(name string) *MachineBuilder {
	m.defaultName = name
	return m
}

// At sets the editor position of the machine inside its parent.
func (m *MachineBuilder) At(x, y float64) *MachineBuilder {
	m.pos = domain.Vector3{X: x, Y: y}
	return m
}

// Layout sets the editor positions of the machine's pseudo-nodes.
func (m *MachineBuilder) Layout(l domain.Layout) *MachineBuilder {
	m.layout = l
	return m
}

// Attach appends a behaviour to the machine.
func (m *MachineBuilder) Attach(b domain.Behaviour) *MachineBuilder {
	m.behaviours = append(m.behaviours, b)
	return m
}

// AnyStateTo adds an any-state transition to the state called target.
func (m *MachineBuilder) AnyStateTo(target string) *TransitionBuilder {
	return m.anyEdge(ref{kind: refState, name: target})
}

// AnyStateToMachine adds an any-state transition to the machine called target.
func (m *MachineBuilder) AnyStateToMachine(target string) *TransitionBuilder {
	return m.anyEdge(ref{kind: refMachine, name: target})
}

// AnyStateToExit adds an any-state transition to the exit. Such edges are not representable
// in a clone and exist to describe malformed assets.
func (m *MachineBuilder) AnyStateToExit() *TransitionBuilder {
	return m.anyEdge(ref{kind: refExit})
}

// EntryTo adds an entry transition to the state called target.
func (m *MachineBuilder) EntryTo(target string) *TransitionBuilder {
	return m.entryEdge(ref{kind: refState, name: target})
}

// EntryToMachine adds an entry transition to the machine called target.
func (m *MachineBuilder) EntryToMachine(target string) *TransitionBuilder {
	return m.entryEdge(ref{kind: refMachine, name: target})
}

// EntryToExit adds an entry transition to the exit.
func (m *MachineBuilder) EntryToExit() *TransitionBuilder {
	return m.entryEdge(ref{kind: refExit})
}

func (m *MachineBuilder) anyEdge(target ref) *TransitionBuilder {
	t := &TransitionBuilder{target: target}
	m.anyState = append(m.anyState, t)
	return t
}

func (m *MachineBuilder) entryEdge(target ref) *TransitionBuilder {
	t := &TransitionBuilder{target: target}
	m.entry = append(m.entry, t)
	return t
}

// build holds the name indexes of one Build call.
type build struct {
	states       map[*StateBuilder]*domain.State
	local        map[*MachineBuilder]map[string]*domain.State
	global       map[string][]*domain.State
	machines     map[string][]*domain.StateMachine
	placeholders map[string]*domain.State
}

// Build compiles the builder into a machine tree.
// Object ids are derived from names and paths, so building twice yields equal trees.
func (m *MachineBuilder) Build() (*domain.StateMachine, error) {
	b := &build{
		states:       make(map[*StateBuilder]*domain.State),
		local:        make(map[*MachineBuilder]map[string]*domain.State),
		global:       make(map[string][]*domain.State),
		machines:     make(map[string][]*domain.StateMachine),
		placeholders: make(map[string]*domain.State),
	}

	built := make(map[*MachineBuilder]*domain.StateMachine)
	root, err := b.nodes(m, m.name, built)
	if err != nil {
		return nil, err
	}
	if err := b.edges(m, m.name, built); err != nil {
		return nil, err
	}
	return root, nil
}

func (b *build) nodes(mb *MachineBuilder, path string, built map[*MachineBuilder]*domain.StateMachine) (*domain.StateMachine, error) {
	sm := &domain.StateMachine{
		ID:         domain.ID(path),
		Name:       mb.name,
		Layout:     mb.layout,
		Behaviours: append([]domain.Behaviour(nil), mb.behaviours...),
	}
	built[mb] = sm
	b.machines[mb.name] = append(b.machines[mb.name], sm)
	b.local[mb] = make(map[string]*domain.State)

	for _, sb := range mb.states {
		s := sb.state
		s.ID = domain.ID(path + "/" + s.Name)
		s.Behaviours = append([]domain.Behaviour(nil), sb.state.Behaviours...)
		b.states[sb] = &s
		b.local[mb][s.Name] = &s
		b.global[s.Name] = append(b.global[s.Name], &s)
		sm.AddState(&s, sb.pos)
	}

	if mb.defaultName != "" {
		s, ok := b.local[mb][mb.defaultName]
		if !ok {
			return nil, fmt.Errorf("default state %q is not a state of machine %q", mb.defaultName, mb.name)
		}
		sm.DefaultState = s
	}

	for _, child := range mb.machines {
		c, err := b.nodes(child, path+"/"+child.name, built)
		if err != nil {
			return nil, err
		}
		sm.AddMachine(c, child.pos)
	}
	return sm, nil
}

func (b *build) edges(mb *MachineBuilder, path string, built map[*MachineBuilder]*domain.StateMachine) error {
	sm := built[mb]

	for i, tb := range mb.anyState {
		dest, err := b.resolve(mb, tb.target)
		if err != nil {
			return err
		}
		sm.AnyStateTransitions = append(sm.AnyStateTransitions, tb.transition(edgeID(path, "any", dest, i), dest))
	}
	for i, tb := range mb.entry {
		dest, err := b.resolve(mb, tb.target)
		if err != nil {
			return err
		}
		sm.EntryTransitions = append(sm.EntryTransitions, &domain.EntryTransition{
			ID:          edgeID(path, "entry", dest, i),
			Name:        tb.name,
			Destination: dest,
			Conditions:  domain.CopyConditions(tb.conditions),
			Mute:        tb.mute,
			Solo:        tb.solo,
		})
	}

	for _, sb := range mb.states {
		s := b.states[sb]
		for i, tb := range sb.edges {
			dest, err := b.resolve(mb, tb.target)
			if err != nil {
				return err
			}
			s.Transitions = append(s.Transitions, tb.transition(edgeID(string(s.ID), "", dest, i), dest))
		}
	}

	for _, child := range mb.machines {
		if err := b.edges(child, path+"/"+child.name, built); err != nil {
			return err
		}
	}
	return nil
}

func (b *build) resolve(mb *MachineBuilder, target ref) (domain.Destination, error) {
	switch target.kind {
	case refExit:
		return domain.Destination{IsExit: true}, nil

	case refMachine:
		candidates := b.machines[target.name]
		switch len(candidates) {
		case 0:
			return domain.Destination{}, fmt.Errorf("unknown machine %q", target.name)
		case 1:
			return domain.Destination{Machine: candidates[0]}, nil
		default:
			return domain.Destination{}, fmt.Errorf("ambiguous machine name %q", target.name)
		}

	default:
		if s, ok := b.local[mb][target.name]; ok {
			return domain.Destination{State: s}, nil
		}
		candidates := b.global[target.name]
		switch len(candidates) {
		case 0:
			return domain.Destination{State: b.placeholder(target.name)}, nil
		case 1:
			return domain.Destination{State: candidates[0]}, nil
		default:
			return domain.Destination{}, fmt.Errorf("ambiguous state name %q referenced from machine %q", target.name, mb.name)
		}
	}
}

// placeholder returns the detached state standing in for an unknown name.
// Every reference to the same unknown name shares one placeholder.
func (b *build) placeholder(name string) *domain.State {
	if s, ok := b.placeholders[name]; ok {
		return s
	}
	s := &domain.State{ID: domain.ID("detached/" + name), Name: name}
	b.placeholders[name] = s
	return s
}

func (t *TransitionBuilder) transition(id domain.ID, dest domain.Destination) *domain.Transition {
	return &domain.Transition{
		ID:          id,
		Name:        t.name,
		Destination: dest,
		Conditions:  domain.CopyConditions(t.conditions),
		Settings:    t.settings,
		Mute:        t.mute,
		Solo:        t.solo,
	}
}

func edgeID(from, kind string, dest domain.Destination, i int) domain.ID {
	var sb strings.Builder
	sb.WriteString(from)
	if kind != "" {
		sb.WriteString("/" + kind)
	}
	fmt.Fprintf(&sb, "->%s#%d", dest.Label(), i)
	return domain.ID(sb.String())
}
