package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/animclone/internal/presentation/graph"
	"github.com/aretw0/animclone/pkg/domain"
	"github.com/aretw0/animclone/pkg/dsl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildLocomotion(t *testing.T) *domain.StateMachine {
	t.Helper()
	b := dsl.New("M")
	b.State("A").Default().To("B").Greater("Speed", 0.5)
	b.State("B").ToExit()
	b.Machine("Sub").State("C")
	b.AnyStateTo("C").If("Hit")
	b.EntryTo("A")
	b.State("A").To("Ghost")

	root, err := b.Build()
	require.NoError(t, err)
	return root
}

func TestGenerateMermaid(t *testing.T) {
	got := graph.GenerateMermaid(buildLocomotion(t), nil)

	tests := []struct {
		name     string
		contains []string
	}{
		{
			name:     "Header",
			contains: []string{"stateDiagram-v2\n"},
		},
		{
			name: "States and Composite Machines",
			contains: []string{
				"    state \"A\" as M_A_A\n",
				"    state \"Sub\" as M_Sub_Sub {\n",
				"        state \"C\" as M_Sub_C_C\n",
				"    }\n",
			},
		},
		{
			name: "Default and Exit",
			contains: []string{
				"    [*] --> M_A_A\n",
				"    M_B_B --> [*]\n",
			},
		},
		{
			name: "Conditions",
			contains: []string{
				"    M_A_A --> M_B_B : Speed > 0.5\n",
				"    M_M__any --> M_Sub_C_C : Hit\n",
			},
		},
		{
			name: "Pseudo Nodes",
			contains: []string{
				"    state \"Any State\" as M_M__any\n",
				"    state \"Entry\" as M_M__entry\n",
				"    M_M__entry --> M_A_A\n",
			},
		},
		{
			name: "Detached Target",
			contains: []string{
				"    M_A_A --> detached_Ghost_Ghost\n",
				"    state \"Ghost (detached)\" as detached_Ghost_Ghost\n",
				"    class detached_Ghost_Ghost detached\n",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, want := range tt.contains {
				assert.Contains(t, got, want)
			}
		})
	}
}

func TestGenerateMermaid_Overlay(t *testing.T) {
	got := graph.GenerateMermaid(buildLocomotion(t), &graph.Overlay{Warned: []string{"B"}})
	assert.Contains(t, got, "classDef warned")
	assert.Contains(t, got, "    class M_B_B warned\n")
	assert.NotContains(t, got, "class M_A_A warned")
}

func TestGenerateMermaid_SharedStateDeclaredOnce(t *testing.T) {
	shared := &domain.State{ID: "shared", Name: "Shared"}
	left := &domain.StateMachine{ID: "left", Name: "Left"}
	left.AddState(shared, domain.Vector3{})
	root := &domain.StateMachine{ID: "root", Name: "Root"}
	root.AddState(shared, domain.Vector3{})
	root.AddMachine(left, domain.Vector3{})

	got := graph.GenerateMermaid(root, nil)
	assert.Equal(t, 1, strings.Count(got, "as shared_Shared\n"))
}

func TestGenerateMermaid_IDSanitization(t *testing.T) {
	root := &domain.StateMachine{ID: "a.b-c", Name: "Root"}
	root.AddState(&domain.State{ID: "x/y", Name: "Run \"fast\""}, domain.Vector3{})
	root.AddState(&domain.State{ID: "x.y", Name: "Run \"fast\""}, domain.Vector3{})

	got := graph.GenerateMermaid(root, nil)
	assert.Contains(t, got, "state \"Run 'fast'\" as x_y_Run__fast_\n")
	assert.Contains(t, got, "state \"Run 'fast'\" as x_y_Run__fast__2\n")
}

func TestGenerateMermaid_NilRoot(t *testing.T) {
	assert.Equal(t, "stateDiagram-v2\n", graph.GenerateMermaid(nil, nil))
}
