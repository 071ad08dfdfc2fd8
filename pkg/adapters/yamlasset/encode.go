package yamlasset

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/aretw0/animclone/pkg/domain"
	"gopkg.in/yaml.v3"
)

// encoder assigns document ids and tracks which nodes were already written inline.
type encoder struct {
	codec       *Codec
	stateIDs    map[*domain.State]string
	machineIDs  map[*domain.StateMachine]string
	usedStates  map[string]bool
	usedMachine map[string]bool
	emitted     map[any]bool
}

// Encode writes root as a YAML document. Nodes reachable through several links are written
// once and referenced afterwards.
func (c *Codec) Encode(root *domain.StateMachine) ([]byte, error) {
	if root == nil {
		return nil, domain.ErrNilRoot
	}
	e := &encoder{
		codec:       c,
		stateIDs:    make(map[*domain.State]string),
		machineIDs:  make(map[*domain.StateMachine]string),
		usedStates:  make(map[string]bool),
		usedMachine: make(map[string]bool),
		emitted:     make(map[any]bool),
	}

	domain.Walk(root, domain.Visitor{
		Machine: func(m *domain.StateMachine) {
			e.machineIDs[m] = unique(m.Name, e.usedMachine)
		},
		State: func(s *domain.State, _ *domain.StateMachine) {
			e.stateIDs[s] = unique(s.Name, e.usedStates)
		},
	})

	doc, err := e.machine(root)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to marshal asset: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to marshal asset: %w", err)
	}
	return buf.Bytes(), nil
}

// unique returns name, or name with a numeric suffix when name is taken.
func unique(name string, used map[string]bool) string {
	id := name
	for n := 2; used[id] || id == ""; n++ {
		id = name + "-" + strconv.Itoa(n)
	}
	used[id] = true
	return id
}

func (e *encoder) machine(m *domain.StateMachine) (machineDoc, error) {
	e.emitted[m] = true
	id := e.machineIDs[m]
	doc := machineDoc{Name: m.Name}
	if id != m.Name {
		doc.ID = id
	}
	if m.Layout != (domain.Layout{}) {
		layout := m.Layout
		doc.Layout = &layout
	}
	if m.DefaultState != nil {
		doc.Default = e.stateTarget(m.DefaultState)
	}

	behaviours, err := e.behaviours(m.Behaviours)
	if err != nil {
		return doc, err
	}
	doc.Behaviours = behaviours

	for _, cs := range m.States {
		if cs.State == nil {
			continue
		}
		if e.emitted[cs.State] {
			doc.States = append(doc.States, stateDoc{Ref: e.stateIDs[cs.State], Position: vector(cs.Position)})
			continue
		}
		sd, err := e.state(cs.State)
		if err != nil {
			return doc, err
		}
		sd.Position = vector(cs.Position)
		doc.States = append(doc.States, sd)
	}

	for _, cm := range m.Machines {
		if cm.Machine == nil {
			continue
		}
		if e.emitted[cm.Machine] {
			doc.Machines = append(doc.Machines, machineDoc{Ref: e.machineIDs[cm.Machine], Position: vector(cm.Position)})
			continue
		}
		md, err := e.machine(cm.Machine)
		if err != nil {
			return doc, err
		}
		md.Position = vector(cm.Position)
		doc.Machines = append(doc.Machines, md)
	}

	for _, t := range m.AnyStateTransitions {
		if t != nil {
			doc.AnyState = append(doc.AnyState, e.transition(t.Name, t.Destination, t.Conditions, t.Settings, t.Mute, t.Solo))
		}
	}
	for _, t := range m.EntryTransitions {
		if t != nil {
			doc.Entry = append(doc.Entry, e.transition(t.Name, t.Destination, t.Conditions, domain.Settings{}, t.Mute, t.Solo))
		}
	}
	return doc, nil
}

func (e *encoder) state(s *domain.State) (stateDoc, error) {
	e.emitted[s] = true
	id := e.stateIDs[s]
	doc := stateDoc{
		Name:                       s.Name,
		Motion:                     s.Motion,
		SpeedParameter:             s.SpeedParameter,
		SpeedParameterActive:       s.SpeedParameterActive,
		CycleOffset:                number(s.CycleOffset),
		CycleOffsetParameter:       s.CycleOffsetParameter,
		CycleOffsetParameterActive: s.CycleOffsetParameterActive,
		TimeParameter:              s.TimeParameter,
		TimeParameterActive:        s.TimeParameterActive,
		Mirror:                     s.Mirror,
		MirrorParameter:            s.MirrorParameter,
		MirrorParameterActive:      s.MirrorParameterActive,
		IKOnFeet:                   s.IKOnFeet,
		WriteDefaultValues:         s.WriteDefaultValues,
		Tag:                        s.Tag,
	}
	if id != s.Name {
		doc.ID = id
	}
	if s.Speed != 1 {
		speed := number(s.Speed)
		doc.Speed = &speed
	}

	behaviours, err := e.behaviours(s.Behaviours)
	if err != nil {
		return doc, err
	}
	doc.Behaviours = behaviours

	for _, t := range s.Transitions {
		if t != nil {
			doc.Transitions = append(doc.Transitions, e.transition(t.Name, t.Destination, t.Conditions, t.Settings, t.Mute, t.Solo))
		}
	}
	return doc, nil
}

func (e *encoder) behaviours(bs []domain.Behaviour) ([]behaviourDoc, error) {
	var out []behaviourDoc
	for _, b := range bs {
		if b == nil {
			continue
		}
		fields, err := e.codec.behaviours.Encode(b)
		if err != nil {
			return nil, err
		}
		if len(fields) == 0 {
			fields = nil
		}
		out = append(out, behaviourDoc{Type: b.TypeID(), Fields: fields})
	}
	return out, nil
}

func (e *encoder) transition(name string, dest domain.Destination, conditions []domain.Condition, settings domain.Settings, mute, solo bool) transitionDoc {
	doc := transitionDoc{
		Name:                name,
		Exit:                dest.IsExit,
		Duration:            number(settings.Duration),
		Offset:              number(settings.Offset),
		ExitTime:            number(settings.ExitTime),
		HasExitTime:         settings.HasExitTime,
		FixedDuration:       settings.HasFixedDuration,
		OrderedInterruption: settings.OrderedInterruption,
		CanTransitionToSelf: settings.CanTransitionToSelf,
		Mute:                mute,
		Solo:                solo,
	}
	if settings.InterruptionSource != domain.InterruptionNone {
		doc.Interruption = settings.InterruptionSource.String()
	}
	if dest.State != nil {
		doc.To = e.stateTarget(dest.State)
	}
	if dest.Machine != nil {
		doc.ToMachine = e.machineTarget(dest.Machine)
	}
	for _, c := range conditions {
		doc.Conditions = append(doc.Conditions, conditionDoc{Mode: c.Mode.String(), Parameter: c.Parameter, Threshold: number(c.Threshold)})
	}
	return doc
}

// stateTarget names a destination state, giving detached states an id that cannot collide
// with a declared one.
func (e *encoder) stateTarget(s *domain.State) string {
	if id, ok := e.stateIDs[s]; ok {
		return id
	}
	id := s.Name
	for e.usedStates[id] || id == "" {
		id += "~detached"
	}
	e.stateIDs[s] = id
	return id
}

func (e *encoder) machineTarget(m *domain.StateMachine) string {
	if id, ok := e.machineIDs[m]; ok {
		return id
	}
	id := m.Name
	for e.usedMachine[id] || id == "" {
		id += "~detached"
	}
	e.machineIDs[m] = id
	return id
}

func vector(v domain.Vector3) *domain.Vector3 {
	if v == (domain.Vector3{}) {
		return nil
	}
	return &v
}
