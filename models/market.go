package models

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/stakecast/stakecast/internal/ledger"
)

// MarketState represents the lifecycle state of a market
type MarketState string

const (
	MarketStateOpen     MarketState = "open"
	MarketStateClosed   MarketState = "closed"
	MarketStateResolved MarketState = "resolved"
)

// MarketObserver receives lifecycle notifications from a market. Callbacks
// are invoked outside the market's critical section and must be idempotent;
// a retried notification must not corrupt the observer's indexes.
type MarketObserver interface {
	OnMarketClosed(marketID int64)
	OnMarketResolved(marketID int64)
}

// Market is a single pari-mutuel prediction market: a fixed outcome set,
// per-outcome stake pools, a one-way lifecycle, and per-account stakes.
//
// All state-changing operations on a market are serialized behind its
// mutex. Reads take a consistent snapshot and may run concurrently with
// each other. After every mutation the conservation invariant is rechecked:
// the sum of the outcome pools must equal the total pool.
type Market struct {
	mu sync.RWMutex

	id       int64
	question string
	outcomes []*Outcome
	index    map[int64]*Outcome
	stakes   map[stakeKey]*Stake

	state            MarketState
	winningOutcomeID int64
	totalPool        ledger.Amount

	createdAt  time.Time
	closedAt   *time.Time
	resolvedAt *time.Time

	observer MarketObserver
}

// NewMarket creates a market in the Open state with all pools at zero. The
// outcome set is fixed for the lifetime of the market: outcomes are never
// added, removed, or relabeled after this point.
func NewMarket(id int64, question string, defs []OutcomeDef) (*Market, error) {
	if strings.TrimSpace(question) == "" {
		return nil, ErrInvalidQuestion
	}
	if len(defs) < 2 {
		return nil, ErrInvalidOutcomeSet
	}

	m := &Market{
		id:        id,
		question:  strings.TrimSpace(question),
		outcomes:  make([]*Outcome, 0, len(defs)),
		index:     make(map[int64]*Outcome, len(defs)),
		stakes:    make(map[stakeKey]*Stake),
		state:     MarketStateOpen,
		createdAt: time.Now(),
	}

	for _, def := range defs {
		if err := def.Validate(); err != nil {
			return nil, err
		}
		if _, dup := m.index[def.ID]; dup {
			return nil, ErrInvalidOutcomeSet
		}
		o := &Outcome{ID: def.ID, Label: strings.TrimSpace(def.Label)}
		m.outcomes = append(m.outcomes, o)
		m.index[o.ID] = o
	}

	return m, nil
}

// SetObserver registers the lifecycle observer. Intended to be called once,
// by the registry that created the market, before the market is published.
func (m *Market) SetObserver(o MarketObserver) {
	m.mu.Lock()
	m.observer = o
	m.mu.Unlock()
}

// PlaceBet stakes amount on the given outcome for the account. The outcome
// pool, the total pool, and the account's stake all move by exactly the bet
// amount, as a single atomic unit.
func (m *Market) PlaceBet(account string, outcomeID int64, amount ledger.Amount) error {
	if strings.TrimSpace(account) == "" {
		return ErrInvalidAccount
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != MarketStateOpen {
		return ErrMarketNotOpen
	}
	if amount <= 0 {
		return ErrInvalidAmount
	}
	outcome, ok := m.index[outcomeID]
	if !ok {
		return ErrUnknownOutcome
	}

	newPool, err := ledger.Add(outcome.Pool, amount)
	if err != nil {
		return fmt.Errorf("outcome %d pool: %w", outcomeID, err)
	}
	newTotal, err := ledger.Add(m.totalPool, amount)
	if err != nil {
		return fmt.Errorf("total pool: %w", err)
	}

	key := stakeKey{account: account, outcomeID: outcomeID}
	stake := m.stakes[key]
	var newStake ledger.Amount
	if stake != nil {
		newStake, err = ledger.Add(stake.Amount, amount)
		if err != nil {
			return fmt.Errorf("stake for %s: %w", account, err)
		}
	} else {
		newStake = amount
	}

	outcome.Pool = newPool
	m.totalPool = newTotal
	if stake != nil {
		stake.Amount = newStake
	} else {
		m.stakes[key] = &Stake{Account: account, OutcomeID: outcomeID, Amount: newStake}
	}

	return m.checkConservation()
}

// Close transitions the market from Open to Closed and stamps closed_at.
// The observer is notified after the critical section is released.
func (m *Market) Close() error {
	m.mu.Lock()
	if m.state != MarketStateOpen {
		m.mu.Unlock()
		return ErrInvalidTransition
	}
	now := time.Now()
	m.state = MarketStateClosed
	m.closedAt = &now
	observer := m.observer
	id := m.id
	m.mu.Unlock()

	if observer != nil {
		observer.OnMarketClosed(id)
	}
	return nil
}

// Resolve transitions the market from Closed to Resolved, recording the
// winning outcome. This is terminal: a resolved market can never be
// reopened or re-resolved.
func (m *Market) Resolve(winningOutcomeID int64) error {
	m.mu.Lock()
	if m.state != MarketStateClosed {
		m.mu.Unlock()
		return ErrInvalidTransition
	}
	if _, ok := m.index[winningOutcomeID]; !ok {
		m.mu.Unlock()
		return ErrUnknownOutcome
	}
	now := time.Now()
	m.state = MarketStateResolved
	m.winningOutcomeID = winningOutcomeID
	m.resolvedAt = &now
	observer := m.observer
	id := m.id
	m.mu.Unlock()

	if observer != nil {
		observer.OnMarketResolved(id)
	}
	return nil
}

// ClaimableAmount reports what the account could claim right now without
// claiming it. Zero unless the market is resolved and the account holds an
// unclaimed stake on the winning outcome.
func (m *Market) ClaimableAmount(account string) ledger.Amount {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.state != MarketStateResolved {
		return 0
	}
	stake := m.stakes[stakeKey{account: account, outcomeID: m.winningOutcomeID}]
	if stake == nil || stake.Amount == 0 || stake.Claimed {
		return 0
	}
	winningPool := m.index[m.winningOutcomeID].Pool
	if winningPool == 0 {
		return 0
	}
	share, err := ledger.ProportionalShare(stake.Amount, winningPool, m.totalPool)
	if err != nil {
		return 0
	}
	return share
}

// Claim authorizes the account's payout exactly once and returns the amount
// the surrounding system should credit. The market only authorizes; moving
// the funds is the caller's responsibility.
func (m *Market) Claim(account string) (ledger.Amount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != MarketStateResolved {
		return 0, ErrInvalidTransition
	}

	stake := m.stakes[stakeKey{account: account, outcomeID: m.winningOutcomeID}]
	if stake == nil || stake.Amount == 0 {
		return 0, ErrNothingToClaim
	}
	if stake.Claimed {
		return 0, ErrAlreadyClaimed
	}

	winningPool := m.index[m.winningOutcomeID].Pool
	if winningPool == 0 {
		// Nobody staked on the eventual winner. The pool stays frozen
		// rather than guessing a refund policy.
		return 0, ErrNothingToClaim
	}

	share, err := ledger.ProportionalShare(stake.Amount, winningPool, m.totalPool)
	if err != nil {
		return 0, fmt.Errorf("compute payout share: %w", err)
	}

	stake.Claimed = true
	return share, nil
}

// ID returns the registry-assigned market identifier.
func (m *Market) ID() int64 {
	return m.id
}

// State returns the current lifecycle state.
func (m *Market) State() MarketState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// TotalPool returns the total staked across all outcomes.
func (m *Market) TotalPool() ledger.Amount {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalPool
}

// WinningOutcome returns the winning outcome id and true once resolved.
func (m *Market) WinningOutcome() (int64, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.state != MarketStateResolved {
		return 0, false
	}
	return m.winningOutcomeID, true
}

// Snapshot returns a consistent point-in-time view of the market. The copy
// shares no memory with the live market, so callers can hold it across
// concurrent writes.
func (m *Market) Snapshot() MarketSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snap := MarketSnapshot{
		ID:        m.id,
		Question:  m.question,
		State:     m.state,
		TotalPool: m.totalPool,
		CreatedAt: m.createdAt,
		Outcomes:  make([]OutcomeSnapshot, 0, len(m.outcomes)),
	}
	for _, o := range m.outcomes {
		snap.Outcomes = append(snap.Outcomes, OutcomeSnapshot{ID: o.ID, Label: o.Label, Pool: o.Pool})
	}
	if m.closedAt != nil {
		t := *m.closedAt
		snap.ClosedAt = &t
	}
	if m.resolvedAt != nil {
		t := *m.resolvedAt
		snap.ResolvedAt = &t
	}
	if m.state == MarketStateResolved {
		id := m.winningOutcomeID
		snap.WinningOutcomeID = &id
	}
	return snap
}

// Position returns the account's stakes across all outcomes, in outcome
// order. Outcomes the account never bet on are omitted.
func (m *Market) Position(account string) []StakeSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var position []StakeSnapshot
	for _, o := range m.outcomes {
		if stake := m.stakes[stakeKey{account: account, outcomeID: o.ID}]; stake != nil {
			position = append(position, StakeSnapshot{
				OutcomeID: stake.OutcomeID,
				Amount:    stake.Amount,
				Claimed:   stake.Claimed,
			})
		}
	}
	return position
}

// checkConservation re-derives the total pool from the outcome pools.
// Callers hold the write lock.
func (m *Market) checkConservation() error {
	var sum ledger.Amount
	var err error
	for _, o := range m.outcomes {
		sum, err = ledger.Add(sum, o.Pool)
		if err != nil {
			return ErrLedgerCorrupted
		}
	}
	if sum != m.totalPool {
		return ErrLedgerCorrupted
	}
	return nil
}

// MarketSnapshot is the consistent read-only view of a market.
type MarketSnapshot struct {
	ID               int64             `json:"id"`
	Question         string            `json:"question"`
	State            MarketState       `json:"state"`
	Outcomes         []OutcomeSnapshot `json:"outcomes"`
	TotalPool        ledger.Amount     `json:"total_pool"`
	WinningOutcomeID *int64            `json:"winning_outcome_id,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
	ClosedAt         *time.Time        `json:"closed_at,omitempty"`
	ResolvedAt       *time.Time        `json:"resolved_at,omitempty"`
}
