package session

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// Step is where a user currently is in a conversation.
type Step int

const (
	StepIdle Step = iota
	StepAwaitName
	StepConfirmName
	StepAwaitAddress
	StepConfirmAddress
	StepAwaitTracking
	StepAwaitAmount
	StepConfirmPayment
	StepAwaitReceipt
)

// Session is one user's in-flight conversation state. It lives only in
// memory: a restart mid-flow drops the pending input and the user starts
// over, durable data is never touched until the commit step.
type Session struct {
	Step      Step
	Bank      string          // bank code while a payment is in flight
	Amount    decimal.Decimal // captured amount awaiting confirmation
	Pending   string          // captured name/address awaiting confirmation
	TxID      int64           // transaction awaiting a receipt
	Attempts  int             // failed receipt uploads so far
	UpdatedAt time.Time
}

// DefaultTTL is how long an abandoned conversation is kept before a later
// unrelated message can no longer be captured by a stale waiting state.
const DefaultTTL = 10 * time.Minute

// Manager holds sessions keyed by user id, safe for concurrent updates.
type Manager struct {
	mu   sync.Mutex
	ttl  time.Duration
	data map[int64]*Session
}

func NewManager(ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{ttl: ttl, data: make(map[int64]*Session)}
}

// Get returns the user's session, dropping it first if it went stale.
// Absent or expired sessions come back as the idle zero value.
func (m *Manager) Get(userID int64) Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.data[userID]
	if !ok {
		return Session{}
	}
	if time.Since(s.UpdatedAt) > m.ttl {
		delete(m.data, userID)
		return Session{}
	}
	return *s
}

func (m *Manager) Set(userID int64, s Session) {
	s.UpdatedAt = time.Now()
	m.mu.Lock()
	m.data[userID] = &s
	m.mu.Unlock()
}

// TakeIf atomically removes and returns the session when it sits at one of
// the given steps. Confirmation handlers commit only what they took, so two
// concurrent taps on the same button cannot both observe the pending state.
func (m *Manager) TakeIf(userID int64, steps ...Step) (Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.data[userID]
	if !ok {
		return Session{}, false
	}
	if time.Since(s.UpdatedAt) > m.ttl {
		delete(m.data, userID)
		return Session{}, false
	}
	for _, step := range steps {
		if s.Step == step {
			delete(m.data, userID)
			return *s, true
		}
	}
	return Session{}, false
}

func (m *Manager) Reset(userID int64) {
	m.mu.Lock()
	delete(m.data, userID)
	m.mu.Unlock()
}

// Sweep evicts sessions idle longer than the TTL and reports how many.
func (m *Manager) Sweep(now time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, s := range m.data {
		if now.Sub(s.UpdatedAt) > m.ttl {
			delete(m.data, id)
			n++
		}
	}
	return n
}
