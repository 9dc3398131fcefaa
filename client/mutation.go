package client

type mutationState int

const (
	mutationPending mutationState = iota
	mutationCommitted
	mutationRolledBack
)

// mutation tracks one optimistic local change. The change is applied before
// the server call; commit seals it, rollback runs the revert closure. Both
// are one-shot.
type mutation struct {
	state  mutationState
	revert func()
}

func beginMutation(revert func()) *mutation {
	return &mutation{state: mutationPending, revert: revert}
}

func (m *mutation) commit() {
	if m.state == mutationPending {
		m.state = mutationCommitted
	}
}

func (m *mutation) rollback() {
	if m.state == mutationPending {
		m.revert()
		m.state = mutationRolledBack
	}
}
