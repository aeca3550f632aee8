package ledger

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdd(t *testing.T) {
	tests := []struct {
		name string
		a, b Amount
		want Amount
		err  error
	}{
		{"simple", 100, 300, 400, nil},
		{"zero", 0, 0, 0, nil},
		{"negative operand", 500, -200, 300, nil},
		{"positive overflow", MaxAmount, 1, 0, ErrOverflow},
		{"positive overflow large", MaxAmount - 10, 11, 0, ErrOverflow},
		{"negative overflow", Amount(math.MinInt64), -1, 0, ErrOverflow},
		{"at the boundary", MaxAmount - 1, 1, MaxAmount, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Add(tt.a, tt.b)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProportionalShare(t *testing.T) {
	t.Run("whole pool to single winner", func(t *testing.T) {
		got, err := ProportionalShare(300, 300, 400)
		require.NoError(t, err)
		assert.Equal(t, Amount(400), got)
	})

	t.Run("splits exactly", func(t *testing.T) {
		x, err := ProportionalShare(100, 400, 700)
		require.NoError(t, err)
		assert.Equal(t, Amount(175), x)

		z, err := ProportionalShare(300, 400, 700)
		require.NoError(t, err)
		assert.Equal(t, Amount(525), z)

		assert.Equal(t, Amount(700), x+z)
	})

	t.Run("floors the remainder", func(t *testing.T) {
		// 1*10/3 = 3.33.. -> 3; three winners of 1 each claim 9 of 10.
		got, err := ProportionalShare(1, 3, 10)
		require.NoError(t, err)
		assert.Equal(t, Amount(3), got)
	})

	t.Run("zero winning pool", func(t *testing.T) {
		_, err := ProportionalShare(100, 0, 400)
		assert.ErrorIs(t, err, ErrDivisionByZero)
	})

	t.Run("negative inputs rejected", func(t *testing.T) {
		_, err := ProportionalShare(-1, 10, 10)
		assert.ErrorIs(t, err, ErrNegativeAmount)
		_, err = ProportionalShare(1, 10, -10)
		assert.ErrorIs(t, err, ErrNegativeAmount)
	})

	t.Run("double-width intermediate survives huge pools", func(t *testing.T) {
		// stake*totalPool overflows int64 but the quotient does not.
		stake := Amount(math.MaxInt64 / 2)
		pool := Amount(math.MaxInt64 - 1)
		got, err := ProportionalShare(stake, pool, pool)
		require.NoError(t, err)
		assert.Equal(t, stake, got)
	})

	t.Run("quotient overflow detected", func(t *testing.T) {
		_, err := ProportionalShare(MaxAmount, 1, MaxAmount)
		assert.ErrorIs(t, err, ErrOverflow)
	})

	t.Run("payout bound", func(t *testing.T) {
		// Sum of shares over all winning stakes never exceeds the pool.
		stakes := []Amount{7, 13, 29, 51}
		var winning Amount
		for _, s := range stakes {
			winning += s
		}
		total := winning + 777

		var paid Amount
		for _, s := range stakes {
			share, err := ProportionalShare(s, winning, total)
			require.NoError(t, err)
			paid += share
		}
		assert.LessOrEqual(t, paid, total)
	})
}
