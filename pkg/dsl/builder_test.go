package dsl

import (
	"testing"

	"github.com/aretw0/animclone/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_SimpleMachine(t *testing.T) {
	b := New("M")
	b.State("A").Default().At(10, 20).
		To("B").Greater("Speed", 0.5).Duration(0.25)
	b.State("B").Tag("moving")

	root, err := b.Build()
	require.NoError(t, err)

	assert.Equal(t, domain.ID("M"), root.ID)
	require.Len(t, root.States, 2)
	a, bs := root.States[0].State, root.States[1].State
	assert.Equal(t, domain.ID("M/A"), a.ID)
	assert.Equal(t, domain.Vector3{X: 10, Y: 20}, root.States[0].Position)
	assert.Same(t, a, root.DefaultState)
	assert.Equal(t, "moving", bs.Tag)
	assert.Equal(t, float64(1), bs.Speed)

	require.Len(t, a.Transitions, 1)
	tr := a.Transitions[0]
	assert.Same(t, bs, tr.State)
	assert.Equal(t, []domain.Condition{{Mode: domain.ConditionGreater, Parameter: "Speed", Threshold: 0.5}}, tr.Conditions)
	assert.Equal(t, 0.25, tr.Duration)
	assert.True(t, tr.HasFixedDuration)
	assert.Equal(t, domain.ID("M/A->B#0"), tr.ID)
}

func TestBuilder_NestedMachines(t *testing.T) {
	b := New("Root")
	b.State("Idle").ToMachine("Emotes").If("Emote")
	emotes := b.Machine("Emotes")
	emotes.State("Wave").Default().ToExit().ExitTime(1)
	emotes.State("Clap").To("Idle")
	b.EntryTo("Idle")
	b.AnyStateTo("Wave").ToSelf()

	assert.Same(t, b, emotes.Parent())
	assert.Same(t, emotes, b.Machine("Emotes"))

	root, err := b.Build()
	require.NoError(t, err)

	require.Len(t, root.Machines, 1)
	child := root.Machines[0].Machine
	assert.Equal(t, domain.ID("Root/Emotes"), child.ID)
	assert.Equal(t, "Wave", child.DefaultState.Name)

	idle := root.States[0].State
	assert.Same(t, child, idle.Transitions[0].Machine)

	wave := child.States[0].State
	assert.True(t, wave.Transitions[0].IsExit)
	assert.True(t, wave.Transitions[0].HasExitTime)

	// Names outside the local machine resolve across the tree.
	clap := child.States[1].State
	assert.Same(t, idle, clap.Transitions[0].State)
	assert.Same(t, wave, root.AnyStateTransitions[0].State)
	assert.True(t, root.AnyStateTransitions[0].CanTransitionToSelf)
	assert.Same(t, idle, root.EntryTransitions[0].State)

	assert.Equal(t, domain.Summary{Machines: 2, States: 3, Transitions: 3, AnyStateTransitions: 1, EntryTransitions: 1}, domain.Summarize(root))
}

func TestBuilder_UnknownNameBecomesPlaceholder(t *testing.T) {
	b := New("M")
	b.State("A").To("Ghost")
	b.State("B").To("Ghost")

	root, err := b.Build()
	require.NoError(t, err)

	ghost := root.States[0].State.Transitions[0].State
	require.NotNil(t, ghost)
	assert.Equal(t, "Ghost", ghost.Name)
	assert.False(t, root.Contains(ghost))
	assert.Same(t, ghost, root.States[1].State.Transitions[0].State)
}

func TestBuilder_Errors(t *testing.T) {
	t.Run("Default not local", func(t *testing.T) {
		b := New("M")
		b.Machine("Sub").State("X")
		b.Default("X")
		_, err := b.Build()
		assert.Error(t, err)
	})

	t.Run("Unknown machine", func(t *testing.T) {
		b := New("M")
		b.State("A").ToMachine("Nope")
		_, err := b.Build()
		assert.Error(t, err)
	})

	t.Run("Ambiguous state", func(t *testing.T) {
		b := New("M")
		b.Machine("L").State("X")
		b.Machine("R").State("X")
		b.State("A").To("X")
		_, err := b.Build()
		assert.Error(t, err)
	})
}

func TestBuilder_BuildTwice(t *testing.T) {
	b := New("M")
	b.State("A").To("A").If("Loop")

	first, err := b.Build()
	require.NoError(t, err)
	second, err := b.Build()
	require.NoError(t, err)

	assert.NotSame(t, first.States[0].State, second.States[0].State)
	assert.Equal(t, first.States[0].State.ID, second.States[0].State.ID)
	assert.Same(t, second.States[0].State, second.States[0].State.Transitions[0].State)
}
