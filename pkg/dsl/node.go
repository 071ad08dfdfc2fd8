package dsl

import "github.com/aretw0/animclone/pkg/domain"

// StateBuilder provides a fluent API for configuring a state.
type StateBuilder struct {
	state   domain.State
	pos     domain.Vector3
	edges   []*TransitionBuilder
	machine *MachineBuilder
}

// Motion sets the animation played by the state.
func (s *StateBuilder) Motion(guid, name string) *StateBuilder {
	s.state.Motion = &domain.MotionRef{GUID: guid, Name: name}
	return s
}

// Speed sets the playback speed, optionally driven by a parameter.
func (s *StateBuilder) Speed(speed float64, parameter ...string) *StateBuilder {
	s.state.Speed = speed
	if len(parameter) > 0 {
		s.state.SpeedParameter = parameter[0]
		s.state.SpeedParameterActive = true
	}
	return s
}

// Tag sets the state tag.
func (s *StateBuilder) Tag(tag string) *StateBuilder {
	s.state.Tag = tag
	return s
}

// WriteDefaults enables write defaults on the state.
func (s *StateBuilder) WriteDefaults() *StateBuilder {
	s.state.WriteDefaultValues = true
	return s
}

// At sets the editor position of the state inside its machine.
func (s *StateBuilder) At(x, y float64) *StateBuilder {
	s.pos = domain.Vector3{X: x, Y: y}
	return s
}

// Attach appends a behaviour to the state.
func (s *StateBuilder) Attach(b domain.Behaviour) *StateBuilder {
	s.state.Behaviours = append(s.state.Behaviours, b)
	return s
}

// To adds a transition to the state called target.
func (s *StateBuilder) To(target string) *TransitionBuilder {
	return s.edge(ref{kind: refState, name: target})
}

// ToMachine adds a transition to the machine called target.
func (s *StateBuilder) ToMachine(target string) *TransitionBuilder {
	return s.edge(ref{kind: refMachine, name: target})
}

// ToExit adds a transition to the exit of the enclosing machine.
func (s *StateBuilder) ToExit() *TransitionBuilder {
	return s.edge(ref{kind: refExit})
}

// Default makes this state the default of its machine.
func (s *StateBuilder) Default() *StateBuilder {
	s.machine.Default(s.state.Name)
	return s
}

func (s *StateBuilder) edge(target ref) *TransitionBuilder {
	t := &TransitionBuilder{target: target}
	s.edges = append(s.edges, t)
	return t
}

type refKind int

const (
	refState refKind = iota
	refMachine
	refExit
)

type ref struct {
	kind refKind
	name string
}

// TransitionBuilder provides a fluent API for configuring an edge.
// Settings that do not apply to entry transitions are ignored for them.
type TransitionBuilder struct {
	name       string
	target     ref
	conditions []domain.Condition
	settings   domain.Settings
	mute       bool
	solo       bool
}

// Named sets the transition name.
func (t *TransitionBuilder) Named(name string) *TransitionBuilder {
	t.name = name
	return t
}

// When adds a condition clause.
func (t *TransitionBuilder) When(mode domain.ConditionMode, parameter string, threshold float64) *TransitionBuilder {
	t.conditions = append(t.conditions, domain.Condition{Mode: mode, Parameter: parameter, Threshold: threshold})
	return t
}

// If requires a bool parameter to be true.
func (t *TransitionBuilder) If(parameter string) *TransitionBuilder {
	return t.When(domain.ConditionIf, parameter, 0)
}

// IfNot requires a bool parameter to be false.
func (t *TransitionBuilder) IfNot(parameter string) *TransitionBuilder {
	return t.When(domain.ConditionIfNot, parameter, 0)
}

func (t *TransitionBuilder) Greater(parameter string, threshold float64) *TransitionBuilder {
	return t.When(domain.ConditionGreater, parameter, threshold)
}

func (t *TransitionBuilder) Less(parameter string, threshold float64) *TransitionBuilder {
	return t.When(domain.ConditionLess, parameter, threshold)
}

func (t *TransitionBuilder) Equals(parameter string, value float64) *TransitionBuilder {
	return t.When(domain.ConditionEquals, parameter, value)
}

func (t *TransitionBuilder) NotEqual(parameter string, value float64) *TransitionBuilder {
	return t.When(domain.ConditionNotEqual, parameter, value)
}

// Duration sets the blend duration in seconds.
func (t *TransitionBuilder) Duration(d float64) *TransitionBuilder {
	t.settings.Duration = d
	t.settings.HasFixedDuration = true
	return t
}

// ExitTime makes the transition wait for the normalized exit time.
func (t *TransitionBuilder) ExitTime(at float64) *TransitionBuilder {
	t.settings.ExitTime = at
	t.settings.HasExitTime = true
	return t
}

// Interrupt sets the interruption source.
func (t *TransitionBuilder) Interrupt(source domain.Interruption, ordered bool) *TransitionBuilder {
	t.settings.InterruptionSource = source
	t.settings.OrderedInterruption = ordered
	return t
}

// ToSelf allows an any-state transition to re-enter its current destination.
func (t *TransitionBuilder) ToSelf() *TransitionBuilder {
	t.settings.CanTransitionToSelf = true
	return t
}

func (t *TransitionBuilder) Mute() *TransitionBuilder {
	t.mute = true
	return t
}

func (t *TransitionBuilder) Solo() *TransitionBuilder {
	t.solo = true
	return t
}
