package market

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stakecast/stakecast/internal/sanitizer"
	"github.com/stakecast/stakecast/internal/validator"
)

func TestCreateMarketRequestSanitizeAndValidate(t *testing.T) {
	cfg := GetDefaultConfig()
	s := sanitizer.NewHTMLStripper()

	t.Run("valid request", func(t *testing.T) {
		req := yesNoRequest()
		v := validator.New()
		assert.True(t, req.SanitizeAndValidate(v, s, cfg))
	})

	t.Run("strips markup from question and labels", func(t *testing.T) {
		req := yesNoRequest()
		req.Question = "<b>Will the demo ship?</b>"
		req.Outcomes[0].Label = "<i>Yes</i>"

		v := validator.New()
		assert.True(t, req.SanitizeAndValidate(v, s, cfg))
		assert.Equal(t, "Will the demo ship?", req.Question)
		assert.Equal(t, "Yes", req.Outcomes[0].Label)
	})

	t.Run("blank question", func(t *testing.T) {
		req := yesNoRequest()
		req.Question = "   "
		v := validator.New()
		assert.False(t, req.SanitizeAndValidate(v, s, cfg))
		assert.Contains(t, v.Errors, "question")
	})

	t.Run("single outcome", func(t *testing.T) {
		req := yesNoRequest()
		req.Outcomes = req.Outcomes[:1]
		v := validator.New()
		assert.False(t, req.SanitizeAndValidate(v, s, cfg))
		assert.Contains(t, v.Errors, "outcomes")
	})

	t.Run("duplicate outcome ids", func(t *testing.T) {
		req := yesNoRequest()
		req.Outcomes[1].ID = req.Outcomes[0].ID
		v := validator.New()
		assert.False(t, req.SanitizeAndValidate(v, s, cfg))
	})

	t.Run("blank group key", func(t *testing.T) {
		req := yesNoRequest()
		req.GroupKeys = []string{""}
		v := validator.New()
		assert.False(t, req.SanitizeAndValidate(v, s, cfg))
		assert.Contains(t, v.Errors, "group_keys")
	})
}

func TestPlaceBetRequestValidate(t *testing.T) {
	cfg := GetDefaultConfig()

	tests := []struct {
		name  string
		req   PlaceBetRequest
		valid bool
	}{
		{"valid", PlaceBetRequest{OutcomeID: 1, Amount: 100}, true},
		{"missing outcome", PlaceBetRequest{Amount: 100}, false},
		{"zero amount", PlaceBetRequest{OutcomeID: 1}, false},
		{"negative amount", PlaceBetRequest{OutcomeID: 1, Amount: -5}, false},
		{"above cap", PlaceBetRequest{OutcomeID: 1, Amount: cfg.MaxBetAmount + 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := validator.New()
			assert.Equal(t, tt.valid, tt.req.Validate(v, cfg))
		})
	}
}

func TestResolveMarketRequestValidate(t *testing.T) {
	v := validator.New()
	req := ResolveMarketRequest{}
	assert.False(t, req.Validate(v))

	v = validator.New()
	req = ResolveMarketRequest{WinningOutcomeID: 3}
	assert.True(t, req.Validate(v))
}
