package domain

// Summary counts the objects of a machine tree.
type Summary struct {
	Machines            int `json:"machines"`
	States              int `json:"states"`
	Transitions         int `json:"transitions"`
	AnyStateTransitions int `json:"any_state_transitions"`
	EntryTransitions    int `json:"entry_transitions"`
	Behaviours          int `json:"behaviours"`
}

// Summarize walks the tree rooted at root and counts its objects.
// Nodes reachable through several links are counted once.
func Summarize(root *StateMachine) Summary {
	var sum Summary
	Walk(root, Visitor{
		Machine: func(m *StateMachine) {
			sum.Machines++
			sum.AnyStateTransitions += len(m.AnyStateTransitions)
			sum.EntryTransitions += len(m.EntryTransitions)
			sum.Behaviours += len(m.Behaviours)
		},
		State: func(s *State, _ *StateMachine) {
			sum.States++
			sum.Transitions += len(s.Transitions)
			sum.Behaviours += len(s.Behaviours)
		},
	})
	return sum
}

// Total returns the number of registrable objects in the summary.
func (s Summary) Total() int {
	return s.Machines + s.States + s.Transitions + s.AnyStateTransitions + s.EntryTransitions + s.Behaviours
}
