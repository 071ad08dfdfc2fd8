/*
Package ports defines the driven ports (interfaces) of the cloning engine.

These interfaces decouple the core algorithm from the asset database, the ownership
container and the diagnostics backend, so the engine can run against Redis, SQL, memory or
a host editor without change.

# Key Interfaces

  - Container: registers ownership of freshly cloned objects.
  - DiagnosticsSink: receives non-fatal warnings raised during a clone.
  - GraphStore: loads and saves whole machine trees by name.
  - BehaviourFactory: constructs empty behaviour instances by type id.
*/
package ports
