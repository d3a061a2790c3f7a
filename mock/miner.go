package mock

import "github.com/fwojciec/linkid"

var _ linkid.Miner = (*Miner)(nil)

// Miner is a mock implementation of linkid.Miner.
type Miner struct {
	MineFn func(token linkid.Token, body string) string
}

func (m *Miner) Mine(token linkid.Token, body string) string {
	return m.MineFn(token, body)
}
