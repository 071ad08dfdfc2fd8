package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/animclone/pkg/domain"
)

// Overlay marks objects to highlight on the diagram.
type Overlay struct {
	// Warned holds the names of states and machines that raised a clone warning.
	Warned []string
}

// GenerateMermaid produces a Mermaid stateDiagram-v2 of the tree rooted at root.
// Nested machines become composite states:
// - Default state: [*] --> State
// - Exit edge: State --> [*]
// - Any-state and entry edges leave from "Any State" and "Entry" pseudo nodes
// Edges to objects outside the tree point at a "detached" node declared at the top level.
func GenerateMermaid(root *domain.StateMachine, overlay *Overlay) string {
	g := &generator{
		ids:      make(map[any]string),
		used:     make(map[string]bool),
		declared: make(map[any]bool),
		warned:   make(map[string]bool),
	}
	if overlay != nil {
		for _, name := range overlay.Warned {
			g.warned[name] = true
		}
	}

	var sb strings.Builder
	sb.WriteString("stateDiagram-v2\n")
	if root == nil {
		return sb.String()
	}

	// Declarations come first so that nested edges never create implicit nodes.
	g.machineBody(&sb, root, 1)
	g.detached(&sb)

	if len(g.classes) > 0 {
		sb.WriteString("\n    %% Overlay Styles\n")
		sb.WriteString("    classDef warned fill:#fff3e0,stroke:#e65100,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef detached fill:#eeeeee,stroke:#9e9e9e,stroke-dasharray:4 4,color:#000;\n")
		for _, c := range g.classes {
			sb.WriteString(fmt.Sprintf("    class %s %s\n", c.id, c.name))
		}
	}
	return sb.String()
}

type class struct {
	id, name string
}

type generator struct {
	ids      map[any]string
	used     map[string]bool
	declared map[any]bool
	pending  []*domain.State
	ghosts   []*domain.StateMachine
	warned   map[string]bool
	classes  []class
}

// id returns a stable Mermaid identifier for node. Collisions after sanitizing get a suffix.
func (g *generator) id(node any, raw string) string {
	if id, ok := g.ids[node]; ok {
		return id
	}
	base := sanitizeMermaidID(raw)
	if base == "" {
		base = "node"
	}
	id := base
	for n := 2; g.used[id]; n++ {
		id = fmt.Sprintf("%s_%d", base, n)
	}
	g.used[id] = true
	g.ids[node] = id
	return id
}

func (g *generator) stateID(s *domain.State) string {
	return g.id(s, string(s.ID)+"_"+s.Name)
}

func (g *generator) machineID(m *domain.StateMachine) string {
	return g.id(m, string(m.ID)+"_"+m.Name)
}

func (g *generator) machineBody(sb *strings.Builder, m *domain.StateMachine, depth int) {
	indent := strings.Repeat("    ", depth)
	self := g.machineID(m)

	for _, cs := range m.States {
		s := cs.State
		if s == nil || g.declared[s] {
			continue
		}
		g.declared[s] = true
		id := g.stateID(s)
		sb.WriteString(fmt.Sprintf("%sstate \"%s\" as %s\n", indent, escape(s.Name), id))
		if g.warned[s.Name] {
			g.classes = append(g.classes, class{id: id, name: "warned"})
		}
	}

	for _, cm := range m.Machines {
		child := cm.Machine
		if child == nil || g.declared[child] {
			continue
		}
		g.declared[child] = true
		id := g.machineID(child)
		sb.WriteString(fmt.Sprintf("%sstate \"%s\" as %s {\n", indent, escape(child.Name), id))
		g.machineBody(sb, child, depth+1)
		sb.WriteString(indent + "}\n")
		if g.warned[child.Name] {
			g.classes = append(g.classes, class{id: id, name: "warned"})
		}
	}

	if m.DefaultState != nil {
		sb.WriteString(fmt.Sprintf("%s[*] --> %s\n", indent, g.target(domain.Destination{State: m.DefaultState})))
	}

	if len(m.AnyStateTransitions) > 0 {
		anyID := self + "__any"
		sb.WriteString(fmt.Sprintf("%sstate \"Any State\" as %s\n", indent, anyID))
		for _, t := range m.AnyStateTransitions {
			if t != nil {
				g.edge(sb, indent, anyID, t.Destination, t.Conditions)
			}
		}
	}
	if len(m.EntryTransitions) > 0 {
		entryID := self + "__entry"
		sb.WriteString(fmt.Sprintf("%sstate \"Entry\" as %s\n", indent, entryID))
		for _, t := range m.EntryTransitions {
			if t != nil {
				g.edge(sb, indent, entryID, t.Destination, t.Conditions)
			}
		}
	}

	for _, cs := range m.States {
		if cs.State == nil {
			continue
		}
		from := g.stateID(cs.State)
		for _, t := range cs.State.Transitions {
			if t != nil {
				g.edge(sb, indent, from, t.Destination, t.Conditions)
			}
		}
	}
}

func (g *generator) edge(sb *strings.Builder, indent, from string, dest domain.Destination, conditions []domain.Condition) {
	line := fmt.Sprintf("%s%s --> %s", indent, from, g.target(dest))
	if label := conditionLabel(conditions); label != "" {
		line += " : " + label
	}
	sb.WriteString(line + "\n")
}

// target names the destination node, queueing detached nodes for declaration.
func (g *generator) target(dest domain.Destination) string {
	switch {
	case dest.State != nil:
		if !g.declared[dest.State] {
			if _, seen := g.ids[dest.State]; !seen {
				g.pending = append(g.pending, dest.State)
			}
		}
		return g.stateID(dest.State)
	case dest.Machine != nil:
		if !g.declared[dest.Machine] {
			if _, seen := g.ids[dest.Machine]; !seen {
				g.ghosts = append(g.ghosts, dest.Machine)
			}
		}
		return g.machineID(dest.Machine)
	default:
		return "[*]"
	}
}

func (g *generator) detached(sb *strings.Builder) {
	for _, s := range g.pending {
		if g.declared[s] {
			continue
		}
		id := g.stateID(s)
		sb.WriteString(fmt.Sprintf("    state \"%s (detached)\" as %s\n", escape(s.Name), id))
		g.classes = append(g.classes, class{id: id, name: "detached"})
	}
	for _, m := range g.ghosts {
		if g.declared[m] {
			continue
		}
		id := g.machineID(m)
		sb.WriteString(fmt.Sprintf("    state \"%s (detached)\" as %s\n", escape(m.Name), id))
		g.classes = append(g.classes, class{id: id, name: "detached"})
	}
}

func conditionLabel(conditions []domain.Condition) string {
	parts := make([]string, 0, len(conditions))
	for _, c := range conditions {
		switch c.Mode {
		case domain.ConditionIf:
			parts = append(parts, c.Parameter)
		case domain.ConditionIfNot:
			parts = append(parts, "!"+c.Parameter)
		case domain.ConditionGreater:
			parts = append(parts, fmt.Sprintf("%s > %g", c.Parameter, c.Threshold))
		case domain.ConditionLess:
			parts = append(parts, fmt.Sprintf("%s < %g", c.Parameter, c.Threshold))
		case domain.ConditionEquals:
			parts = append(parts, fmt.Sprintf("%s == %g", c.Parameter, c.Threshold))
		case domain.ConditionNotEqual:
			parts = append(parts, fmt.Sprintf("%s != %g", c.Parameter, c.Threshold))
		}
	}
	// Mermaid ends a transition label at ':' and breaks on '"'.
	label := strings.Join(parts, " && ")
	return strings.NewReplacer(":", " ", "\"", "'").Replace(label)
}

func escape(name string) string {
	return strings.ReplaceAll(name, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	var sb strings.Builder
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			sb.WriteRune(r)
		default:
			sb.WriteRune('_')
		}
	}
	return sb.String()
}
