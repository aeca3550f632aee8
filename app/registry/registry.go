// Package registry owns market lifecycle bookkeeping: id assignment,
// creator permissions, the group index, and the open-market index fed by
// market lifecycle notifications.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/stakecast/stakecast/internal/logger"
	"github.com/stakecast/stakecast/models"
)

// AuthorizeFunc decides whether an account handle may create, close, or
// resolve markets. Policy is pluggable; the default comes from config.
type AuthorizeFunc func(handle string) bool

// Registry creates markets, indexes them, and tracks which are still
// accepting bets. It never mutates a market's betting state directly; it
// only observes transitions the markets report.
type Registry struct {
	mu        sync.RWMutex
	nextID    int64
	markets   map[int64]*models.Market
	groups    map[string][]int64
	marketOf  map[int64][]string
	open      map[int64]struct{}
	authorize AuthorizeFunc
	logger    logger.Logger
}

// New constructs a registry with the given authorization policy. Pass
// logger.NewNullLogger() in tests.
func New(authorize AuthorizeFunc, log logger.Logger) *Registry {
	if authorize == nil {
		authorize = func(string) bool { return false }
	}
	if log == nil {
		log = logger.NewNullLogger()
	}
	return &Registry{
		nextID:    1,
		markets:   make(map[int64]*models.Market),
		groups:    make(map[string][]int64),
		marketOf:  make(map[int64][]string),
		open:      make(map[int64]struct{}),
		authorize: authorize,
		logger:    log,
	}
}

// CreateMarket validates the creator's permission, assigns the next market
// id, and publishes the new market. Group keys are opaque correlation ids
// (e.g. a livestream id); the registry indexes them without interpreting
// them.
func (r *Registry) CreateMarket(creator, question string, outcomes []models.OutcomeDef, groupKeys []string) (*models.Market, error) {
	if !r.authorize(creator) {
		return nil, models.ErrNotAuthorized
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.nextID
	market, err := models.NewMarket(id, question, outcomes)
	if err != nil {
		return nil, fmt.Errorf("create market: %w", err)
	}
	r.nextID++

	market.SetObserver(r)
	r.markets[id] = market
	r.open[id] = struct{}{}
	for _, key := range groupKeys {
		if key == "" {
			continue
		}
		r.groups[key] = append(r.groups[key], id)
		r.marketOf[id] = append(r.marketOf[id], key)
	}

	r.logger.Info("market created", map[string]interface{}{
		"market_id": id,
		"creator":   creator,
		"outcomes":  len(outcomes),
		"groups":    groupKeys,
	})

	return market, nil
}

// Get returns the market for the id, or ErrMarketNotFound.
func (r *Registry) Get(id int64) (*models.Market, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	market, ok := r.markets[id]
	if !ok {
		return nil, models.ErrMarketNotFound
	}
	return market, nil
}

// IsValidMarket reports whether the id belongs to a market this registry
// created. External callers use it to reject spoofed identifiers.
func (r *Registry) IsValidMarket(id int64) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.markets[id]
	return ok
}

// CanManage reports whether the handle may close or resolve markets.
func (r *Registry) CanManage(handle string) bool {
	return r.authorize(handle)
}

// MarketsForGroup returns the ids of all markets associated with the group
// key, in creation order. The association is loose many-to-many; unknown
// keys yield an empty slice.
func (r *Registry) MarketsForGroup(key string) []int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]int64, len(r.groups[key]))
	copy(ids, r.groups[key])
	return ids
}

// GroupsForMarket returns the group keys a market was created under.
func (r *Registry) GroupsForMarket(id int64) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]string, len(r.marketOf[id]))
	copy(keys, r.marketOf[id])
	return keys
}

// OpenMarkets returns the ids of markets still accepting bets, ascending.
func (r *Registry) OpenMarkets() []int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]int64, 0, len(r.open))
	for id := range r.open {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// OnMarketClosed removes the market from the open index. Idempotent: a
// duplicate or late notification is a no-op.
func (r *Registry) OnMarketClosed(marketID int64) {
	r.mu.Lock()
	delete(r.open, marketID)
	r.mu.Unlock()

	r.logger.Info("market closed", map[string]interface{}{"market_id": marketID})
}

// OnMarketResolved removes the market from the open index if a close
// notification was lost. Idempotent.
func (r *Registry) OnMarketResolved(marketID int64) {
	r.mu.Lock()
	delete(r.open, marketID)
	r.mu.Unlock()

	r.logger.Info("market resolved", map[string]interface{}{"market_id": marketID})
}
