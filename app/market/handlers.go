package market

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/stakecast/stakecast/app/api"
	"github.com/stakecast/stakecast/internal/sanitizer"
	"github.com/stakecast/stakecast/internal/validator"
	"github.com/stakecast/stakecast/models"
)

// Handler handles HTTP requests for markets
type Handler struct {
	service   Service
	config    *Config
	sanitizer sanitizer.HTMLStripperer
}

// NewHandler creates a new market handler
func NewHandler(service Service, config *Config, sanitizer sanitizer.HTMLStripperer) *Handler {
	return &Handler{
		service:   service,
		config:    config,
		sanitizer: sanitizer,
	}
}

func (h *Handler) marketIDFromParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		api.ErrorResponse(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid market id", nil)
		return 0, false
	}
	return id, true
}

func (h *Handler) accountFromContext(c *gin.Context) (string, bool) {
	handle, ok := api.AccountFromContext(c)
	if !ok {
		api.UnauthorizedResponse(c)
		return "", false
	}
	return handle, true
}

// handleDomainError maps domain errors to responses with stable codes.
func (h *Handler) handleDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrMarketNotFound):
		api.NotFoundResponse(c, "Market")
	case errors.Is(err, models.ErrNotAuthorized):
		api.ForbiddenResponse(c, "You are not allowed to manage markets")
	case errors.Is(err, models.ErrInvalidOutcomeSet):
		api.ErrorResponse(c, http.StatusBadRequest, "INVALID_OUTCOME_SET", err.Error(), nil)
	case errors.Is(err, models.ErrUnknownOutcome):
		api.ErrorResponse(c, http.StatusBadRequest, "UNKNOWN_OUTCOME", err.Error(), nil)
	case errors.Is(err, models.ErrInvalidAmount):
		api.ErrorResponse(c, http.StatusBadRequest, "INVALID_AMOUNT", err.Error(), nil)
	case errors.Is(err, models.ErrMarketNotOpen):
		api.ConflictResponse(c, "MARKET_NOT_OPEN", err.Error())
	case errors.Is(err, models.ErrInvalidTransition):
		api.ConflictResponse(c, "INVALID_TRANSITION", err.Error())
	case errors.Is(err, models.ErrNothingToClaim):
		api.ConflictResponse(c, "NOTHING_TO_CLAIM", err.Error())
	case errors.Is(err, models.ErrAlreadyClaimed):
		api.ConflictResponse(c, "ALREADY_CLAIMED", err.Error())
	default:
		api.InternalErrorResponse(c, "Operation failed")
	}
}

// CreateMarket handles POST /markets
func (h *Handler) CreateMarket(c *gin.Context) {
	account, ok := h.accountFromContext(c)
	if !ok {
		return
	}

	var req CreateMarketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.ValidationErrorResponse(c, err.Error())
		return
	}

	v := validator.New()
	if !req.SanitizeAndValidate(v, h.sanitizer, h.config) {
		api.ValidationErrorResponse(c, v.Errors)
		return
	}

	resp, err := h.service.CreateMarket(c.Request.Context(), account, &req)
	if err != nil {
		h.handleDomainError(c, err)
		return
	}
	api.CreatedResponse(c, "Market created", resp)
}

// PlaceBet handles POST /markets/:id/bets
func (h *Handler) PlaceBet(c *gin.Context) {
	account, ok := h.accountFromContext(c)
	if !ok {
		return
	}
	marketID, ok := h.marketIDFromParam(c)
	if !ok {
		return
	}

	var req PlaceBetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.ValidationErrorResponse(c, err.Error())
		return
	}

	v := validator.New()
	if !req.Validate(v, h.config) {
		api.ValidationErrorResponse(c, v.Errors)
		return
	}

	resp, err := h.service.PlaceBet(c.Request.Context(), account, marketID, &req)
	if err != nil {
		h.handleDomainError(c, err)
		return
	}
	api.CreatedResponse(c, "Bet accepted", resp)
}

// CloseMarket handles POST /markets/:id/close
func (h *Handler) CloseMarket(c *gin.Context) {
	account, ok := h.accountFromContext(c)
	if !ok {
		return
	}
	marketID, ok := h.marketIDFromParam(c)
	if !ok {
		return
	}

	resp, err := h.service.CloseMarket(c.Request.Context(), account, marketID)
	if err != nil {
		h.handleDomainError(c, err)
		return
	}
	api.SuccessResponse(c, http.StatusOK, "Market closed", resp)
}

// ResolveMarket handles POST /markets/:id/resolve
func (h *Handler) ResolveMarket(c *gin.Context) {
	account, ok := h.accountFromContext(c)
	if !ok {
		return
	}
	marketID, ok := h.marketIDFromParam(c)
	if !ok {
		return
	}

	var req ResolveMarketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.ValidationErrorResponse(c, err.Error())
		return
	}

	v := validator.New()
	if !req.Validate(v) {
		api.ValidationErrorResponse(c, v.Errors)
		return
	}

	resp, err := h.service.ResolveMarket(c.Request.Context(), account, marketID, &req)
	if err != nil {
		h.handleDomainError(c, err)
		return
	}
	api.SuccessResponse(c, http.StatusOK, "Market resolved", resp)
}

// Claim handles POST /markets/:id/claims
func (h *Handler) Claim(c *gin.Context) {
	account, ok := h.accountFromContext(c)
	if !ok {
		return
	}
	marketID, ok := h.marketIDFromParam(c)
	if !ok {
		return
	}

	resp, err := h.service.Claim(c.Request.Context(), account, marketID)
	if err != nil {
		h.handleDomainError(c, err)
		return
	}
	api.SuccessResponse(c, http.StatusOK, "Winnings claimed", resp)
}

// Claimable handles GET /markets/:id/claims
func (h *Handler) Claimable(c *gin.Context) {
	account, ok := h.accountFromContext(c)
	if !ok {
		return
	}
	marketID, ok := h.marketIDFromParam(c)
	if !ok {
		return
	}

	resp, err := h.service.Claimable(c.Request.Context(), account, marketID)
	if err != nil {
		h.handleDomainError(c, err)
		return
	}
	api.SuccessResponse(c, http.StatusOK, "Claimable amount", resp)
}
