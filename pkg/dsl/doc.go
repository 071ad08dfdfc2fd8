/*
Package dsl provides a fluent builder for constructing state machine trees in Go code.

Edges name their targets; names are resolved when the tree is built, first among the states
of the edge's own machine and then across the whole tree. A name that matches nothing becomes
a detached placeholder state, which is how tests and tools model references to nodes outside
the tree.

Example usage:

	b := dsl.New("Locomotion")

	b.State("Idle").Motion("a1b2", "Idle").
		To("Walk").Greater("Speed", 0.1).Duration(0.25)

	b.State("Walk").
		To("Idle").Less("Speed", 0.1)

	b.Machine("Emotes").State("Wave").ToExit().ExitTime(1)

	b.Default("Idle")
	b.AnyStateTo("Wave").If("Emote")

	root, err := b.Build()
*/
package dsl
