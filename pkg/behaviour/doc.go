// Package behaviour holds the concrete behaviour variants and the registry that constructs
// them by type id.
//
// The registry is the host side of behaviour cloning: a copy is only possible when the host
// can construct an empty instance of the source's type. Types the host does not know are
// reported as a fatal attach failure by the cloning engine.
package behaviour
