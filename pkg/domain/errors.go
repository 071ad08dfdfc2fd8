package domain

import "errors"

// ErrNilRoot is returned when a clone is requested without a source machine.
var ErrNilRoot = errors.New("nil root state machine")

// ErrBehaviourAttach is returned when an attached behaviour cannot be instantiated on the copy.
// It is the only condition that aborts a clone operation.
var ErrBehaviourAttach = errors.New("behaviour attach failure")

// ErrOperationReused is returned when a finished clone operation is run a second time.
var ErrOperationReused = errors.New("clone operation already used")

// ErrAlreadyOwned is returned by a container when an object already belongs to some container.
var ErrAlreadyOwned = errors.New("object already owned")

// ErrNotOwned is returned by a container when an object does not belong to it.
var ErrNotOwned = errors.New("object not owned by container")

// ErrGraphNotFound is returned when a named asset cannot be found in a graph store.
var ErrGraphNotFound = errors.New("graph not found")
