package yamlasset

import (
	"fmt"

	"github.com/aretw0/animclone/pkg/behaviour"
	"github.com/aretw0/animclone/pkg/domain"
	"gopkg.in/yaml.v3"
)

// Codec converts between YAML documents and machine trees.
type Codec struct {
	behaviours *behaviour.Registry
}

// NewCodec creates a codec that decodes behaviours through reg.
// A nil registry means behaviour.Default().
func NewCodec(reg *behaviour.Registry) *Codec {
	if reg == nil {
		reg = behaviour.Default()
	}
	return &Codec{behaviours: reg}
}

// decoder holds the id indexes of one Decode call.
type decoder struct {
	codec        *Codec
	states       map[string]*domain.State
	machines     map[string]*domain.StateMachine
	placeholders map[string]*domain.State
	ghostMachine map[string]*domain.StateMachine
}

// Decode parses a YAML document into a machine tree.
// Behaviour types missing from the registry are kept as behaviour.Raw so the tree still loads;
// cloning such a tree fails when the host cannot construct them.
func (c *Codec) Decode(data []byte) (*domain.StateMachine, error) {
	var doc machineDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse asset: %w", err)
	}
	if doc.Ref != "" {
		return nil, fmt.Errorf("root machine cannot be a reference")
	}

	d := &decoder{
		codec:        c,
		states:       make(map[string]*domain.State),
		machines:     make(map[string]*domain.StateMachine),
		placeholders: make(map[string]*domain.State),
		ghostMachine: make(map[string]*domain.StateMachine),
	}

	// Declarations first so edges and refs can point forward.
	if err := d.declareMachine(&doc); err != nil {
		return nil, err
	}
	root := d.machines[doc.key()]
	if err := d.linkMachine(&doc, root); err != nil {
		return nil, err
	}
	return root, nil
}

func (d *decoder) declareMachine(doc *machineDoc) error {
	key := doc.key()
	if key == "" {
		return fmt.Errorf("machine without name or id")
	}
	if _, ok := d.machines[key]; ok {
		return fmt.Errorf("duplicate machine id %q", key)
	}

	m := &domain.StateMachine{ID: domain.ID(key), Name: doc.Name}
	if doc.Layout != nil {
		m.Layout = *doc.Layout
	}
	behaviours, err := d.behaviours(doc.Behaviours, key)
	if err != nil {
		return err
	}
	m.Behaviours = behaviours
	d.machines[key] = m

	for i := range doc.States {
		sd := &doc.States[i]
		if sd.Ref != "" {
			continue
		}
		if err := d.declareState(sd); err != nil {
			return err
		}
	}
	for i := range doc.Machines {
		if doc.Machines[i].Ref != "" {
			continue
		}
		if err := d.declareMachine(&doc.Machines[i]); err != nil {
			return err
		}
	}
	return nil
}

func (d *decoder) declareState(doc *stateDoc) error {
	key := doc.key()
	if key == "" {
		return fmt.Errorf("state without name or id")
	}
	if _, ok := d.states[key]; ok {
		return fmt.Errorf("duplicate state id %q", key)
	}

	s := &domain.State{
		ID:                         domain.ID(key),
		Name:                       doc.Name,
		Motion:                     doc.Motion,
		Speed:                      1,
		SpeedParameter:             doc.SpeedParameter,
		SpeedParameterActive:       doc.SpeedParameterActive,
		CycleOffset:                float64(doc.CycleOffset),
		CycleOffsetParameter:       doc.CycleOffsetParameter,
		CycleOffsetParameterActive: doc.CycleOffsetParameterActive,
		TimeParameter:              doc.TimeParameter,
		TimeParameterActive:        doc.TimeParameterActive,
		Mirror:                     doc.Mirror,
		MirrorParameter:            doc.MirrorParameter,
		MirrorParameterActive:      doc.MirrorParameterActive,
		IKOnFeet:                   doc.IKOnFeet,
		WriteDefaultValues:         doc.WriteDefaultValues,
		Tag:                        doc.Tag,
	}
	if doc.Speed != nil {
		s.Speed = float64(*doc.Speed)
	}
	behaviours, err := d.behaviours(doc.Behaviours, key)
	if err != nil {
		return err
	}
	s.Behaviours = behaviours
	d.states[key] = s
	return nil
}

func (d *decoder) behaviours(docs []behaviourDoc, owner string) ([]domain.Behaviour, error) {
	if len(docs) == 0 {
		return nil, nil
	}
	reg := d.codec.behaviours
	out := make([]domain.Behaviour, 0, len(docs))
	for i, bd := range docs {
		if bd.Type == "" {
			return nil, fmt.Errorf("behaviour #%d on %q has no type", i, owner)
		}
		var (
			b   domain.Behaviour
			err error
		)
		if reg.Has(bd.Type) {
			b, err = reg.Decode(bd.Type, bd.Fields)
			if err != nil {
				return nil, fmt.Errorf("behaviour #%d on %q: %w", i, owner, err)
			}
		} else {
			b = &behaviour.Raw{TypeName: bd.Type, Fields: bd.Fields}
		}
		b.AssignID(domain.ID(fmt.Sprintf("%s#behaviour-%d", owner, i)))
		out = append(out, b)
	}
	return out, nil
}

func (d *decoder) linkMachine(doc *machineDoc, m *domain.StateMachine) error {
	key := doc.key()

	for i := range doc.States {
		sd := &doc.States[i]
		var s *domain.State
		if sd.Ref != "" {
			s = d.states[sd.Ref]
			if s == nil {
				return fmt.Errorf("machine %q links unknown state %q", key, sd.Ref)
			}
		} else {
			s = d.states[sd.key()]
		}
		m.AddState(s, position(sd.Position))
	}

	for i := range doc.Machines {
		md := &doc.Machines[i]
		if md.Ref != "" {
			child := d.machines[md.Ref]
			if child == nil {
				return fmt.Errorf("machine %q links unknown machine %q", key, md.Ref)
			}
			m.AddMachine(child, position(md.Position))
			continue
		}
		child := d.machines[md.key()]
		m.AddMachine(child, position(md.Position))
		if err := d.linkMachine(md, child); err != nil {
			return err
		}
	}

	if doc.Default != "" {
		m.DefaultState = d.stateRef(doc.Default)
	}

	for i, td := range doc.AnyState {
		t, err := d.transition(td, fmt.Sprintf("%s/any#%d", key, i))
		if err != nil {
			return fmt.Errorf("machine %q: %w", key, err)
		}
		m.AnyStateTransitions = append(m.AnyStateTransitions, t)
	}
	for i, td := range doc.Entry {
		t, err := d.transition(td, fmt.Sprintf("%s/entry#%d", key, i))
		if err != nil {
			return fmt.Errorf("machine %q: %w", key, err)
		}
		m.EntryTransitions = append(m.EntryTransitions, &domain.EntryTransition{
			ID:          t.ID,
			Name:        t.Name,
			Destination: t.Destination,
			Conditions:  t.Conditions,
			Mute:        t.Mute,
			Solo:        t.Solo,
		})
	}

	// Inline states own their transitions; a ref'd state is linked by its declaring machine.
	for i := range doc.States {
		sd := &doc.States[i]
		if sd.Ref != "" {
			continue
		}
		s := d.states[sd.key()]
		for j, td := range sd.Transitions {
			t, err := d.transition(td, fmt.Sprintf("%s->%d", s.ID, j))
			if err != nil {
				return fmt.Errorf("state %q: %w", s.ID, err)
			}
			s.Transitions = append(s.Transitions, t)
		}
	}
	return nil
}

func (d *decoder) transition(td transitionDoc, id string) (*domain.Transition, error) {
	t := &domain.Transition{
		ID:   domain.ID(id),
		Name: td.Name,
		Settings: domain.Settings{
			Duration:            float64(td.Duration),
			Offset:              float64(td.Offset),
			ExitTime:            float64(td.ExitTime),
			HasExitTime:         td.HasExitTime,
			HasFixedDuration:    td.FixedDuration,
			OrderedInterruption: td.OrderedInterruption,
			CanTransitionToSelf: td.CanTransitionToSelf,
		},
		Mute: td.Mute,
		Solo: td.Solo,
	}

	interruption, err := domain.ParseInterruption(td.Interruption)
	if err != nil {
		return nil, err
	}
	t.InterruptionSource = interruption

	for _, cd := range td.Conditions {
		mode, err := domain.ParseConditionMode(cd.Mode)
		if err != nil {
			return nil, err
		}
		t.Conditions = append(t.Conditions, domain.Condition{Mode: mode, Parameter: cd.Parameter, Threshold: float64(cd.Threshold)})
	}

	if td.To != "" {
		t.State = d.stateRef(td.To)
	}
	if td.ToMachine != "" {
		t.Machine = d.machineRef(td.ToMachine)
	}
	t.IsExit = td.Exit
	return t, nil
}

// stateRef returns the declared state or a shared detached placeholder.
func (d *decoder) stateRef(id string) *domain.State {
	if s, ok := d.states[id]; ok {
		return s
	}
	if s, ok := d.placeholders[id]; ok {
		return s
	}
	s := &domain.State{ID: domain.ID("detached/" + id), Name: id, Speed: 1}
	d.placeholders[id] = s
	return s
}

func (d *decoder) machineRef(id string) *domain.StateMachine {
	if m, ok := d.machines[id]; ok {
		return m
	}
	if m, ok := d.ghostMachine[id]; ok {
		return m
	}
	m := &domain.StateMachine{ID: domain.ID("detached/" + id), Name: id}
	d.ghostMachine[id] = m
	return m
}

func position(p *domain.Vector3) domain.Vector3 {
	if p == nil {
		return domain.Vector3{}
	}
	return *p
}
