package domain

// MotionRef points at an animation clip or blend tree owned by the asset database.
// States share it by pointer; cloning a state never clones its motion.
type MotionRef struct {
	GUID string `json:"guid" yaml:"guid"`
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
}

// State represents a leaf node of a state machine.
type State struct {
	ID   ID
	Name string

	Motion *MotionRef

	Speed                float64
	SpeedParameter       string
	SpeedParameterActive bool

	CycleOffset                float64
	CycleOffsetParameter       string
	CycleOffsetParameterActive bool

	TimeParameter       string
	TimeParameterActive bool

	Mirror                bool
	MirrorParameter       string
	MirrorParameterActive bool

	IKOnFeet           bool
	WriteDefaultValues bool
	Tag                string

	// Behaviours are kept in attachment order.
	Behaviours []Behaviour

	// Transitions are the outgoing edges of this state, in evaluation order.
	Transitions []*Transition
}

func (s *State) ObjectID() ID       { return s.ID }
func (s *State) ObjectKind() Kind   { return KindState }
func (s *State) ObjectName() string { return s.Name }

// CopyScalars copies every non-edge, non-behaviour field of src into s.
// Identity is left untouched.
func (s *State) CopyScalars(src *State) {
	id := s.ID
	behaviours, transitions := s.Behaviours, s.Transitions
	*s = *src
	s.ID = id
	s.Behaviours, s.Transitions = behaviours, transitions
}
