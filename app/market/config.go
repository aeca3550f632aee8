package market

import "github.com/stakecast/stakecast/models"

// Config represents the configuration for the market module. Amounts are
// integer minor units of the platform's virtual currency.
type Config struct {
	MinBetAmount      int64 `env:"MARKET_MIN_BET_AMOUNT" env-default:"1"`
	MaxBetAmount      int64 `env:"MARKET_MAX_BET_AMOUNT" env-default:"100000000"`
	MaxOutcomes       int   `env:"MARKET_MAX_OUTCOMES" env-default:"32"`
	MaxQuestionLength int   `env:"MARKET_MAX_QUESTION_LENGTH" env-default:"300"`
}

// Validate validates the market configuration
func (c *Config) Validate() error {
	if c.MinBetAmount <= 0 || c.MaxBetAmount < c.MinBetAmount {
		return models.ErrInvalidBetAmountLimits
	}
	if c.MaxOutcomes < 2 {
		return models.ErrInvalidMaxOutcomes
	}
	if c.MaxQuestionLength <= 0 {
		return models.ErrInvalidQuestion
	}
	return nil
}

// GetDefaultConfig returns the default configuration
func GetDefaultConfig() *Config {
	return &Config{
		MinBetAmount:      1,
		MaxBetAmount:      1_000_000_00,
		MaxOutcomes:       32,
		MaxQuestionLength: 300,
	}
}
