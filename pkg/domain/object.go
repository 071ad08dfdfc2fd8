package domain

// ID is the opaque identity of an object in a graph.
type ID string

// Kind classifies the objects that a container can own.
type Kind string

const (
	KindStateMachine    Kind = "state_machine"
	KindState           Kind = "state"
	KindTransition      Kind = "transition"
	KindEntryTransition Kind = "entry_transition"
	KindBehaviour       Kind = "behaviour"
)

// Object is anything with an identity that can be registered with a container.
type Object interface {
	ObjectID() ID
	ObjectKind() Kind
	ObjectName() string
}

// Vector3 is a layout position. It carries no semantic meaning for the engine.
type Vector3 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}
