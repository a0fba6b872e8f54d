package ledger

import (
	"sync"

	"github.com/SathemBite/tx-engine-example/txengine/transaction"
)

// SyncEngine serializes access to an Engine. Exactly one caller applies or
// reads at a time, so records from concurrent callers are applied in the order
// they acquire the lock.
type SyncEngine struct {
	mu     sync.Mutex
	engine *Engine
}

// NewSync wraps engine. A nil engine is replaced with an empty one.
func NewSync(engine *Engine) *SyncEngine {
	if engine == nil {
		engine = New()
	}

	return &SyncEngine{engine: engine}
}

// Apply applies tx under the lock.
func (s *SyncEngine) Apply(tx transaction.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.engine.Apply(tx)
}

// Snapshot returns the sorted balances under the lock.
func (s *SyncEngine) Snapshot() []ClientBalance {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.engine.Snapshot()
}

// Account returns a single client balance under the lock.
func (s *SyncEngine) Account(client transaction.ClientID) (ClientBalance, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.engine.Account(client)
}

// Len returns the number of known clients under the lock.
func (s *SyncEngine) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.engine.Len()
}
