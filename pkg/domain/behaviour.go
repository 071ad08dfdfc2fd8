package domain

// Behaviour is an opaque component attached to a state or a machine.
// The engine never interprets its fields; copying one means creating a fresh instance of the
// same concrete type and asking the source to copy its serialized fields into it.
type Behaviour interface {
	Object

	// TypeID names the concrete type. Factories are registered under this name.
	TypeID() string

	// CopyTo copies every serialized field into dst, which must have the same concrete type.
	CopyTo(dst Behaviour) error

	// AssignID sets the identity of a freshly created instance.
	AssignID(id ID)
}

// BehaviourBase provides the identity part of a Behaviour. Concrete types embed it.
type BehaviourBase struct {
	ID ID `json:"-" yaml:"-" mapstructure:"-"`
}

func (b *BehaviourBase) ObjectID() ID     { return b.ID }
func (b *BehaviourBase) ObjectKind() Kind { return KindBehaviour }
func (b *BehaviourBase) AssignID(id ID)   { b.ID = id }
