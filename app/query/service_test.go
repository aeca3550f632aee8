package query

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stakecast/stakecast/app/registry"
	"github.com/stakecast/stakecast/internal/cache"
	"github.com/stakecast/stakecast/internal/ledger"
	"github.com/stakecast/stakecast/internal/logger"
	"github.com/stakecast/stakecast/models"
)

func yesNoDefs() []models.OutcomeDef {
	return []models.OutcomeDef{
		{ID: 1, Label: "Yes"},
		{ID: 2, Label: "No"},
	}
}

func newTestQuery(t *testing.T) (Service, *registry.Registry) {
	t.Helper()
	reg := registry.New(func(string) bool { return true }, logger.NewNullLogger())
	svc := NewService(reg, cache.NewMemoryCache[OddsResponse](), logger.NewNullLogger())
	return svc, reg
}

func TestGetMarket(t *testing.T) {
	svc, reg := newTestQuery(t)
	_, err := reg.CreateMarket("admin", "Will the demo ship?", yesNoDefs(), []string{"stream-42"})
	require.NoError(t, err)

	t.Run("found", func(t *testing.T) {
		resp, err := svc.GetMarket(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, "Will the demo ship?", resp.Question)
		assert.Equal(t, []string{"stream-42"}, resp.GroupKeys)
	})

	t.Run("unknown id", func(t *testing.T) {
		resp, err := svc.GetMarket(context.Background(), 99)
		assert.Nil(t, resp)
		assert.ErrorIs(t, err, models.ErrMarketNotFound)
	})
}

func TestGetOdds(t *testing.T) {
	ctx := context.Background()

	t.Run("empty market has zero odds", func(t *testing.T) {
		svc, reg := newTestQuery(t)
		_, err := reg.CreateMarket("admin", "q?", yesNoDefs(), nil)
		require.NoError(t, err)

		resp, err := svc.GetOdds(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(0), resp.TotalPool)
		for _, o := range resp.Outcomes {
			assert.True(t, o.Share.IsZero())
			assert.True(t, o.Multiplier.IsZero())
		}
	})

	t.Run("funded market", func(t *testing.T) {
		svc, reg := newTestQuery(t)
		m, err := reg.CreateMarket("admin", "q?", yesNoDefs(), nil)
		require.NoError(t, err)
		require.NoError(t, m.PlaceBet("alice", 1, ledger.Amount(300)))
		require.NoError(t, m.PlaceBet("bob", 2, ledger.Amount(100)))

		resp, err := svc.GetOdds(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(400), resp.TotalPool)

		yes := resp.Outcomes[0]
		assert.Equal(t, int64(300), yes.Pool)
		assert.True(t, yes.Share.Equal(decimal.RequireFromString("0.75")))
		assert.True(t, yes.Multiplier.Equal(decimal.RequireFromString("1.3333")))

		no := resp.Outcomes[1]
		assert.True(t, no.Share.Equal(decimal.RequireFromString("0.25")))
		assert.True(t, no.Multiplier.Equal(decimal.RequireFromString("4")))
	})

	t.Run("unbacked outcome keeps zero multiplier", func(t *testing.T) {
		svc, reg := newTestQuery(t)
		m, err := reg.CreateMarket("admin", "q?", yesNoDefs(), nil)
		require.NoError(t, err)
		require.NoError(t, m.PlaceBet("alice", 1, ledger.Amount(500)))

		resp, err := svc.GetOdds(ctx, 1)
		require.NoError(t, err)
		assert.True(t, resp.Outcomes[1].Share.IsZero())
		assert.True(t, resp.Outcomes[1].Multiplier.IsZero())
	})

	t.Run("serves cached snapshot", func(t *testing.T) {
		svc, reg := newTestQuery(t)
		m, err := reg.CreateMarket("admin", "q?", yesNoDefs(), nil)
		require.NoError(t, err)
		require.NoError(t, m.PlaceBet("alice", 1, ledger.Amount(100)))

		first, err := svc.GetOdds(ctx, 1)
		require.NoError(t, err)

		// A bet placed inside the TTL is not reflected until expiry.
		require.NoError(t, m.PlaceBet("bob", 2, ledger.Amount(100)))
		second, err := svc.GetOdds(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, first.TotalPool, second.TotalPool)
	})
}

func TestGetPosition(t *testing.T) {
	svc, reg := newTestQuery(t)
	m, err := reg.CreateMarket("admin", "q?", yesNoDefs(), nil)
	require.NoError(t, err)
	require.NoError(t, m.PlaceBet("alice", 1, ledger.Amount(300)))
	require.NoError(t, m.PlaceBet("alice", 2, ledger.Amount(50)))

	resp, err := svc.GetPosition(context.Background(), "alice", 1)
	require.NoError(t, err)
	assert.Len(t, resp.Stakes, 2)
	assert.Equal(t, int64(0), resp.Claimable, "nothing claimable before resolution")

	require.NoError(t, m.Close())
	require.NoError(t, m.Resolve(1))

	resp, err = svc.GetPosition(context.Background(), "alice", 1)
	require.NoError(t, err)
	assert.Equal(t, int64(350), resp.Claimable)
}

func TestListings(t *testing.T) {
	svc, reg := newTestQuery(t)
	ctx := context.Background()

	m1, err := reg.CreateMarket("admin", "first?", yesNoDefs(), []string{"stream-42"})
	require.NoError(t, err)
	_, err = reg.CreateMarket("admin", "second?", yesNoDefs(), []string{"stream-42", "charity"})
	require.NoError(t, err)

	open, err := svc.ListOpenMarkets(ctx)
	require.NoError(t, err)
	assert.Len(t, open, 2)

	require.NoError(t, m1.Close())

	open, err = svc.ListOpenMarkets(ctx)
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, "second?", open[0].Question)

	group, err := svc.ListGroupMarkets(ctx, "stream-42")
	require.NoError(t, err)
	assert.Len(t, group, 2)

	group, err = svc.ListGroupMarkets(ctx, "charity")
	require.NoError(t, err)
	require.Len(t, group, 1)
	assert.Equal(t, int64(2), group[0].ID)

	group, err = svc.ListGroupMarkets(ctx, "unknown")
	require.NoError(t, err)
	assert.Empty(t, group)
}
