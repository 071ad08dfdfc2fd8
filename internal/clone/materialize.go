package clone

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/animclone/pkg/domain"
	"github.com/aretw0/animclone/pkg/ports"
)

// NodeCloner allocates the node skeleton of a clone: machines, states and their behaviours.
// It never copies edges.
type NodeCloner struct {
	behaviours ports.BehaviourFactory
	newID      IDGenerator
	logger     *slog.Logger
	store      *NodeStore
}

// NewNodeCloner creates a cloner that instantiates behaviours through factory.
func NewNodeCloner(factory ports.BehaviourFactory, newID IDGenerator, logger *slog.Logger) *NodeCloner {
	return &NodeCloner{
		behaviours: factory,
		newID:      newID,
		logger:     logger,
	}
}

// CloneTree materializes every machine and state reachable from root.
// When it returns without error the store holds an entry for every node of the tree.
// A behaviour that cannot be instantiated aborts the whole tree with domain.ErrBehaviourAttach.
func (c *NodeCloner) CloneTree(root *domain.StateMachine) (*domain.StateMachine, *NodeStore, error) {
	if root == nil {
		return nil, nil, domain.ErrNilRoot
	}
	c.store = NewNodeStore()

	clone, err := c.machine(root)
	if err != nil {
		return nil, nil, err
	}
	return clone, c.store, nil
}

func (c *NodeCloner) machine(src *domain.StateMachine) (*domain.StateMachine, error) {
	if dst, ok := c.store.Machine(src); ok {
		c.logger.Debug("state machine linked more than once, reusing clone", "machine", src.Name)
		return dst, nil
	}

	dst := &domain.StateMachine{
		ID:     c.newID(),
		Name:   src.Name,
		Layout: src.Layout,
	}
	// Register before visiting children so nested links back to this machine resolve.
	if err := c.store.PutMachine(src, dst); err != nil {
		return nil, err
	}

	behaviours, err := c.cloneBehaviours(src.Behaviours, src.Name)
	if err != nil {
		return nil, err
	}
	dst.Behaviours = behaviours

	for _, child := range src.States {
		if child.State == nil {
			continue
		}
		s, err := c.state(child.State)
		if err != nil {
			return nil, err
		}
		dst.AddState(s, child.Position)
	}

	for _, child := range src.Machines {
		if child.Machine == nil {
			continue
		}
		m, err := c.machine(child.Machine)
		if err != nil {
			return nil, err
		}
		dst.AddMachine(m, child.Position)
	}

	return dst, nil
}

func (c *NodeCloner) state(src *domain.State) (*domain.State, error) {
	if dst, ok := c.store.State(src); ok {
		c.logger.Debug("state linked more than once, reusing clone", "state", src.Name)
		return dst, nil
	}

	dst := &domain.State{ID: c.newID()}
	dst.CopyScalars(src)

	behaviours, err := c.cloneBehaviours(src.Behaviours, src.Name)
	if err != nil {
		return nil, err
	}
	dst.Behaviours = behaviours

	if err := c.store.PutState(src, dst); err != nil {
		return nil, err
	}
	return dst, nil
}

func (c *NodeCloner) cloneBehaviours(src []domain.Behaviour, owner string) ([]domain.Behaviour, error) {
	if len(src) == 0 {
		return nil, nil
	}
	out := make([]domain.Behaviour, 0, len(src))
	for i, b := range src {
		if b == nil {
			return nil, fmt.Errorf("%w: missing behaviour #%d on %q", domain.ErrBehaviourAttach, i, owner)
		}
		dst, err := c.behaviours.Instantiate(b.TypeID())
		if err != nil {
			return nil, fmt.Errorf("%w: %s on %q: %v", domain.ErrBehaviourAttach, b.TypeID(), owner, err)
		}
		dst.AssignID(c.newID())
		if err := b.CopyTo(dst); err != nil {
			return nil, fmt.Errorf("%w: %s on %q: %v", domain.ErrBehaviourAttach, b.TypeID(), owner, err)
		}
		out = append(out, dst)
	}
	return out, nil
}
