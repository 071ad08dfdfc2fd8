package domain

import "fmt"

// ConditionMode is the comparison applied by a Condition.
type ConditionMode int

const (
	ConditionIf ConditionMode = iota + 1
	ConditionIfNot
	ConditionGreater
	ConditionLess
	ConditionEquals
	ConditionNotEqual
)

var conditionModeNames = map[ConditionMode]string{
	ConditionIf:       "if",
	ConditionIfNot:    "if_not",
	ConditionGreater:  "greater",
	ConditionLess:     "less",
	ConditionEquals:   "equals",
	ConditionNotEqual: "not_equal",
}

func (c ConditionMode) String() string {
	if name, ok := conditionModeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("mode(%d)", int(c))
}

// ParseConditionMode converts the textual form of a mode back to its value.
func ParseConditionMode(s string) (ConditionMode, error) {
	for mode, name := range conditionModeNames {
		if name == s {
			return mode, nil
		}
	}
	return 0, fmt.Errorf("unknown condition mode: %q", s)
}

// Condition is one clause of a transition guard. All clauses of a transition must hold.
type Condition struct {
	Mode      ConditionMode
	Threshold float64
	Parameter string
}

// Interruption decides which transitions may interrupt a running transition.
type Interruption int

const (
	InterruptionNone Interruption = iota
	InterruptionSource
	InterruptionDestination
	InterruptionSourceThenDestination
	InterruptionDestinationThenSource
)

var interruptionNames = map[Interruption]string{
	InterruptionNone:                  "none",
	InterruptionSource:                "source",
	InterruptionDestination:           "destination",
	InterruptionSourceThenDestination: "source_then_destination",
	InterruptionDestinationThenSource: "destination_then_source",
}

func (i Interruption) String() string {
	if name, ok := interruptionNames[i]; ok {
		return name
	}
	return fmt.Sprintf("interruption(%d)", int(i))
}

// ParseInterruption converts the textual form of an interruption source.
// The empty string maps to InterruptionNone.
func ParseInterruption(s string) (Interruption, error) {
	if s == "" {
		return InterruptionNone, nil
	}
	for src, name := range interruptionNames {
		if name == s {
			return src, nil
		}
	}
	return 0, fmt.Errorf("unknown interruption source: %q", s)
}

// Destination describes where an edge leads.
// A well-formed edge sets exactly one field; source assets may set several, in which case
// State wins over Machine, which wins over IsExit.
type Destination struct {
	State   *State
	Machine *StateMachine
	IsExit  bool
}

// Label returns the name of the destination for diagnostics.
func (d Destination) Label() string {
	switch {
	case d.State != nil:
		return d.State.Name
	case d.Machine != nil:
		return d.Machine.Name
	case d.IsExit:
		return "<exit>"
	default:
		return "<none>"
	}
}

// Settings holds the timing and interruption properties of a transition.
type Settings struct {
	Duration            float64
	Offset              float64
	ExitTime            float64
	HasExitTime         bool
	HasFixedDuration    bool
	InterruptionSource  Interruption
	OrderedInterruption bool
	CanTransitionToSelf bool
}

// Transition is an edge sourced from a state, or from a machine's any-state node.
type Transition struct {
	ID   ID
	Name string

	Destination
	Conditions []Condition
	Settings

	Mute bool
	Solo bool
}

func (t *Transition) ObjectID() ID       { return t.ID }
func (t *Transition) ObjectKind() Kind   { return KindTransition }
func (t *Transition) ObjectName() string { return t.Name }

// EntryTransition is an edge evaluated when its machine is entered.
// It never targets the exit marker in a well-formed asset.
type EntryTransition struct {
	ID   ID
	Name string

	Destination
	Conditions []Condition

	Mute bool
	Solo bool
}

func (t *EntryTransition) ObjectID() ID       { return t.ID }
func (t *EntryTransition) ObjectKind() Kind   { return KindEntryTransition }
func (t *EntryTransition) ObjectName() string { return t.Name }

// CopyConditions returns a copy of cs with the same order and values.
func CopyConditions(cs []Condition) []Condition {
	if cs == nil {
		return nil
	}
	out := make([]Condition, len(cs))
	copy(out, cs)
	return out
}
