/*
Package domain contains the core model of an animation state machine asset.

It describes the graph the cloning engine copies: machines that nest machines, the states
they hold, and the edges between them. The package is kept pure and free of I/O, following
the same Hexagonal Architecture split as the rest of the module.

# Key Entities

  - StateMachine: a container of states, nested machines and machine-level edges.
  - State: a leaf node holding one motion and its playback parameters.
  - Transition: a conditional edge to a state, a machine or the exit marker.
  - EntryTransition: an edge taken only when the owning machine is entered.
  - Behaviour: an opaque component attached to a state or a machine.
  - Warning: a non-fatal diagnostic raised while copying a graph.
*/
package domain
