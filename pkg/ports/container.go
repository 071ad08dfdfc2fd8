package ports

import (
	"context"

	"github.com/aretw0/animclone/pkg/domain"
)

// Container is the ownership scope that persists cloned objects.
// An object may be owned by at most one container of a backend.
type Container interface {
	// IsOwned reports whether obj is owned by any container of the backend.
	IsOwned(ctx context.Context, obj domain.Object) (bool, error)

	// AddOwned attaches obj to this container.
	// Returns domain.ErrAlreadyOwned if some container already owns it.
	AddOwned(ctx context.Context, obj domain.Object) error

	// MarkHidden flags an owned object as internal, hiding it from asset listings.
	// Returns domain.ErrNotOwned if this container does not own obj.
	MarkHidden(ctx context.Context, obj domain.Object) error
}

// ContainerInspector exposes read access to a container's contents.
// It is used by tests and tooling; the engine never calls it.
type ContainerInspector interface {
	Name() string
	Members(ctx context.Context) ([]domain.ID, error)
	IsHidden(ctx context.Context, id domain.ID) (bool, error)
}

// InspectableContainer is a Container that can also be inspected.
type InspectableContainer interface {
	Container
	ContainerInspector
}
