package domain

import "fmt"

// WarningKind categorizes a non-fatal clone diagnostic.
type WarningKind string

const (
	// WarningResolution: a destination did not resolve and a fallback was applied.
	WarningResolution WarningKind = "resolution"
	// WarningStructuralDrop: an edge kind could not represent the fallback and was removed.
	WarningStructuralDrop WarningKind = "structural_drop"
	// WarningOwnershipConflict: a node already belonged to some container and was skipped.
	WarningOwnershipConflict WarningKind = "ownership_conflict"
	// WarningRegistrationFailed: the container failed while registering a node.
	WarningRegistrationFailed WarningKind = "registration_failed"
)

// Warning is a diagnostic raised while copying or registering a graph.
type Warning struct {
	Kind WarningKind `json:"kind"`
	// Source names the object the edge or node came from (e.g. the state owning a transition).
	Source string `json:"source"`
	// Target names the unresolved or conflicting object, if any.
	Target  string `json:"target,omitempty"`
	Message string `json:"message"`
}

func (w Warning) String() string {
	if w.Target == "" {
		return fmt.Sprintf("[%s] %s: %s", w.Kind, w.Source, w.Message)
	}
	return fmt.Sprintf("[%s] %s -> %s: %s", w.Kind, w.Source, w.Target, w.Message)
}
