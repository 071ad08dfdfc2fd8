/*
Package clone implements the graph deep-copy and reference-remapping engine.

A clone runs in three passes over the source tree:

  - Materialize: allocate a shell for every machine and state, copy scalar fields and
    attached behaviours, and record old→new identities in a NodeStore.
  - Wire: copy every edge (state transitions, any-state transitions, entry transitions and
    default states) by resolving destinations through the now complete NodeStore.
  - Register: hand every new object to the ownership container exactly once.

Only the first pass can fail. Edges that cannot be resolved degrade to a fallback or are
dropped, and each degradation is reported to the diagnostics sink.
*/
package clone
