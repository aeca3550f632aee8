package models

import "errors"

var (
	ErrInvalidOutcomeSet   = errors.New("market requires at least two outcomes with unique ids")
	ErrInvalidQuestion     = errors.New("invalid market question")
	ErrInvalidOutcomeLabel = errors.New("invalid outcome label")

	ErrMarketNotOpen     = errors.New("market is not open for betting")
	ErrInvalidTransition = errors.New("invalid market state transition")
	ErrUnknownOutcome    = errors.New("outcome is not part of this market")
	ErrInvalidAmount     = errors.New("bet amount must be positive")

	ErrNothingToClaim = errors.New("no winning stake to claim")
	ErrAlreadyClaimed = errors.New("stake has already been claimed")

	ErrNotAuthorized  = errors.New("caller is not authorized for this operation")
	ErrMarketNotFound = errors.New("market not found")
	ErrInvalidAccount = errors.New("invalid account handle")

	ErrInvalidBetAmountLimits = errors.New("invalid bet amount limits")
	ErrInvalidMaxOutcomes     = errors.New("invalid maximum outcome count")

	ErrDatabaseCredentialNotConfigured = errors.New("database credentials not configured")
	ErrDuplicateIdempotencyKey         = errors.New("idempotency key already used")

	// ErrLedgerCorrupted signals a conservation invariant violation. It is
	// never returned for caller mistakes; if it surfaces, the market's books
	// no longer balance and the operation that detected it was refused.
	ErrLedgerCorrupted = errors.New("market ledger corrupted: pool sums diverged")
)
