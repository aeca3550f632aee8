package query

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/stakecast/stakecast/app/api"
	"github.com/stakecast/stakecast/internal/validator"
	"github.com/stakecast/stakecast/models"
)

// Handler handles public read requests for markets
type Handler struct {
	service Service
}

// NewHandler creates a new query handler
func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) marketIDFromParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		api.ErrorResponse(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid market id", nil)
		return 0, false
	}
	return id, true
}

func (h *Handler) handleError(c *gin.Context, err error) {
	if errors.Is(err, models.ErrMarketNotFound) {
		api.NotFoundResponse(c, "Market")
		return
	}
	api.InternalErrorResponse(c, "Query failed")
}

// GetMarket handles GET /markets/:id
func (h *Handler) GetMarket(c *gin.Context) {
	id, ok := h.marketIDFromParam(c)
	if !ok {
		return
	}

	resp, err := h.service.GetMarket(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	api.SuccessResponse(c, http.StatusOK, "Market retrieved", resp)
}

// GetOdds handles GET /markets/:id/odds
func (h *Handler) GetOdds(c *gin.Context) {
	id, ok := h.marketIDFromParam(c)
	if !ok {
		return
	}

	resp, err := h.service.GetOdds(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	api.SuccessResponse(c, http.StatusOK, "Odds retrieved", resp)
}

// GetPosition handles GET /markets/:id/positions/:account
func (h *Handler) GetPosition(c *gin.Context) {
	id, ok := h.marketIDFromParam(c)
	if !ok {
		return
	}

	account := c.Param("account")
	if !validator.IsHandle(account) {
		api.ErrorResponse(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid account handle", nil)
		return
	}

	resp, err := h.service.GetPosition(c.Request.Context(), account, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	api.SuccessResponse(c, http.StatusOK, "Position retrieved", resp)
}

// ListOpenMarkets handles GET /markets/open
func (h *Handler) ListOpenMarkets(c *gin.Context) {
	resp, err := h.service.ListOpenMarkets(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	api.ListResponse(c, "Open markets retrieved", resp, len(resp))
}

// ListGroupMarkets handles GET /groups/:key/markets
func (h *Handler) ListGroupMarkets(c *gin.Context) {
	key := c.Param("key")
	if key == "" {
		api.ErrorResponse(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid group key", nil)
		return
	}

	resp, err := h.service.ListGroupMarkets(c.Request.Context(), key)
	if err != nil {
		h.handleError(c, err)
		return
	}
	api.ListResponse(c, "Group markets retrieved", resp, len(resp))
}
