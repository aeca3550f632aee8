package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stakecast/stakecast/internal/logger"
	"github.com/stakecast/stakecast/models"
)

func allowAll(string) bool { return true }

func testOutcomes() []models.OutcomeDef {
	return []models.OutcomeDef{
		{ID: 1, Label: "Alpha"},
		{ID: 2, Label: "Beta"},
	}
}

func TestRegistryCreateMarket(t *testing.T) {
	t.Run("assigns monotonic ids", func(t *testing.T) {
		r := New(allowAll, logger.NewNullLogger())

		m1, err := r.CreateMarket("admin", "first?", testOutcomes(), nil)
		require.NoError(t, err)
		m2, err := r.CreateMarket("admin", "second?", testOutcomes(), nil)
		require.NoError(t, err)

		assert.Equal(t, int64(1), m1.ID())
		assert.Equal(t, int64(2), m2.ID())
	})

	t.Run("rejects unauthorized creator", func(t *testing.T) {
		r := New(func(h string) bool { return h == "owner" }, logger.NewNullLogger())

		_, err := r.CreateMarket("rando", "q", testOutcomes(), nil)
		assert.ErrorIs(t, err, models.ErrNotAuthorized)

		_, err = r.CreateMarket("owner", "q", testOutcomes(), nil)
		assert.NoError(t, err)
	})

	t.Run("invalid outcome set does not burn an id", func(t *testing.T) {
		r := New(allowAll, logger.NewNullLogger())

		_, err := r.CreateMarket("admin", "q", []models.OutcomeDef{{ID: 1, Label: "only"}}, nil)
		assert.ErrorIs(t, err, models.ErrInvalidOutcomeSet)

		m, err := r.CreateMarket("admin", "q", testOutcomes(), nil)
		require.NoError(t, err)
		assert.Equal(t, int64(1), m.ID())
	})

	t.Run("nil authorize denies everyone", func(t *testing.T) {
		r := New(nil, nil)
		_, err := r.CreateMarket("admin", "q", testOutcomes(), nil)
		assert.ErrorIs(t, err, models.ErrNotAuthorized)
	})
}

func TestRegistryLookup(t *testing.T) {
	r := New(allowAll, logger.NewNullLogger())
	m, err := r.CreateMarket("admin", "q", testOutcomes(), nil)
	require.NoError(t, err)

	got, err := r.Get(m.ID())
	require.NoError(t, err)
	assert.Same(t, m, got)

	_, err = r.Get(99)
	assert.ErrorIs(t, err, models.ErrMarketNotFound)

	assert.True(t, r.IsValidMarket(m.ID()))
	assert.False(t, r.IsValidMarket(99))
}

func TestRegistryGroupIndex(t *testing.T) {
	r := New(allowAll, logger.NewNullLogger())

	m1, err := r.CreateMarket("admin", "q1", testOutcomes(), []string{"stream-7"})
	require.NoError(t, err)
	m2, err := r.CreateMarket("admin", "q2", testOutcomes(), []string{"stream-7", "finals"})
	require.NoError(t, err)
	_, err = r.CreateMarket("admin", "q3", testOutcomes(), nil)
	require.NoError(t, err)

	assert.Equal(t, []int64{m1.ID(), m2.ID()}, r.MarketsForGroup("stream-7"))
	assert.Equal(t, []int64{m2.ID()}, r.MarketsForGroup("finals"))
	assert.Empty(t, r.MarketsForGroup("unknown"))

	assert.Equal(t, []string{"stream-7", "finals"}, r.GroupsForMarket(m2.ID()))
	assert.Empty(t, r.GroupsForMarket(42))

	// Empty keys are dropped, not indexed.
	m4, err := r.CreateMarket("admin", "q4", testOutcomes(), []string{""})
	require.NoError(t, err)
	assert.Empty(t, r.GroupsForMarket(m4.ID()))
}

func TestRegistryOpenIndex(t *testing.T) {
	r := New(allowAll, logger.NewNullLogger())
	m1, _ := r.CreateMarket("admin", "q1", testOutcomes(), nil)
	m2, _ := r.CreateMarket("admin", "q2", testOutcomes(), nil)

	assert.Equal(t, []int64{m1.ID(), m2.ID()}, r.OpenMarkets())

	require.NoError(t, m1.Close())
	assert.Equal(t, []int64{m2.ID()}, r.OpenMarkets())

	t.Run("idempotent notifications", func(t *testing.T) {
		r.OnMarketClosed(m1.ID())
		r.OnMarketClosed(m1.ID())
		assert.Equal(t, []int64{m2.ID()}, r.OpenMarkets())
	})

	t.Run("resolve also drops from open index", func(t *testing.T) {
		require.NoError(t, m2.Close())
		require.NoError(t, m2.Resolve(1))
		r.OnMarketResolved(m2.ID())
		assert.Empty(t, r.OpenMarkets())
	})
}

func TestConfigAuthorizer(t *testing.T) {
	cfg := &Config{AdminHandles: []string{"alice", "bob"}}
	require.NoError(t, cfg.Validate())

	auth := cfg.Authorizer()
	assert.True(t, auth("alice"))
	assert.True(t, auth("bob"))
	assert.False(t, auth("mallory"))

	empty := &Config{}
	assert.Error(t, empty.Validate())

	blank := &Config{AdminHandles: []string{"alice", ""}}
	assert.Error(t, blank.Validate())

	def := GetDefaultConfig()
	assert.NoError(t, def.Validate())
}
