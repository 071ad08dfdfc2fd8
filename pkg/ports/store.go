package ports

import (
	"context"

	"github.com/aretw0/animclone/pkg/domain"
)

// GraphStore persists whole machine trees by name.
type GraphStore interface {
	// Load returns the tree stored under name, or domain.ErrGraphNotFound.
	Load(ctx context.Context, name string) (*domain.StateMachine, error)

	// Save replaces the tree stored under name.
	Save(ctx context.Context, name string, root *domain.StateMachine) error
}

// BehaviourFactory constructs empty behaviour instances by type id.
type BehaviourFactory interface {
	// Instantiate returns a new, zero-valued behaviour of the given type.
	// It fails when the host cannot construct the type.
	Instantiate(typeID string) (domain.Behaviour, error)
}
