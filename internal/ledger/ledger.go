// Package ledger provides the money arithmetic used by the settlement core.
// All amounts are integers in minor currency units; no floating point is
// allowed anywhere near settlement math.
package ledger

import (
	"errors"
	"math"
	"math/bits"
)

var (
	ErrOverflow       = errors.New("ledger: amount overflow")
	ErrDivisionByZero = errors.New("ledger: division by zero")
	ErrNegativeAmount = errors.New("ledger: negative amount")
)

// Amount is a quantity of money in minor currency units (e.g. kobo, cents).
type Amount int64

// MaxAmount is the largest representable amount.
const MaxAmount = Amount(math.MaxInt64)

// Add returns a+b or ErrOverflow if the sum leaves the representable range.
func Add(a, b Amount) (Amount, error) {
	sum := a + b
	if (b > 0 && sum < a) || (b < 0 && sum > a) {
		return 0, ErrOverflow
	}
	return sum, nil
}

// ProportionalShare computes floor(stake * totalPool / winningPool), the
// pari-mutuel payout for a stake on the winning outcome. The product is
// carried in a 128-bit intermediate so totalPool-sized stakes cannot
// overflow. winningPool == 0 yields ErrDivisionByZero; callers are expected
// to short-circuit that case before money is at risk.
//
// Flooring means the sum of all shares never exceeds totalPool. The dust
// left behind by flooring stays in the pool and is not redistributed.
func ProportionalShare(stake, winningPool, totalPool Amount) (Amount, error) {
	if stake < 0 || winningPool < 0 || totalPool < 0 {
		return 0, ErrNegativeAmount
	}
	if winningPool == 0 {
		return 0, ErrDivisionByZero
	}

	hi, lo := bits.Mul64(uint64(stake), uint64(totalPool))
	if hi >= uint64(winningPool) {
		// Quotient would not fit in 64 bits.
		return 0, ErrOverflow
	}
	quo, _ := bits.Div64(hi, lo, uint64(winningPool))
	if quo > uint64(MaxAmount) {
		return 0, ErrOverflow
	}
	return Amount(quo), nil
}
