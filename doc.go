/*
Package animclone deep-copies nested animation state machines.

A clone produces a structurally isomorphic machine tree with fresh identities: every state,
sub-machine, transition and attached behaviour is recreated, and every edge of the copy points
inside the copy. Edges whose destinations lie outside the source tree degrade instead of failing:
a state transition is redirected to the exit, while any-state and entry transitions are dropped.
Each degradation is reported as a domain.Warning.

# Usage

	b := dsl.New("Locomotion")
	b.State("Idle").Default().To("Walk").Greater("Speed", 0.1)
	b.State("Walk").To("Idle").Less("Speed", 0.1)
	root, _ := b.Build()

	cloner := animclone.New(
		animclone.WithLogger(logger),
		animclone.WithContainer(container),
	)
	res, err := cloner.Clone(ctx, root)
	if err != nil {
		// Only a behaviour that cannot be reconstructed aborts a clone.
	}
	for _, w := range res.Warnings {
		log.Println(w)
	}

When a container is configured, every new object is handed to it once and marked hidden.
Objects the container already owns are skipped, so registering a tree twice is harmless.
*/
package animclone
