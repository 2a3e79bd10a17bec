package handler

import (
	"github.com/gin-gonic/gin"

	catalogapp "github.com/storefront/backend/internal/application/catalog"
)

// OfferHandler handles back office offer management
type OfferHandler struct {
	BaseHandler
	offerService *catalogapp.OfferService
}

// NewOfferHandler creates a new OfferHandler
func NewOfferHandler(offerService *catalogapp.OfferService) *OfferHandler {
	return &OfferHandler{offerService: offerService}
}

// Create creates a product or category offer
//
// @Summary      Create offer
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.CreateOfferRequest true "Offer to create"
// @Success      201 {object} dto.Response{data=catalogapp.OfferResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /admin/offers [post]
func (h *OfferHandler) Create(c *gin.Context) {
	var req catalogapp.CreateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.offerService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Update modifies an existing offer
//
// @Summary      Update offer
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id path string true "Offer ID" format(uuid)
// @Param        request body catalogapp.UpdateOfferRequest true "Fields to change"
// @Success      200 {object} dto.Response{data=catalogapp.OfferResponse}
// @Router       /admin/offers/{id} [patch]
func (h *OfferHandler) Update(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid offer ID")
		return
	}

	var req catalogapp.UpdateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.offerService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// GetByID returns an offer
//
// @Summary      Get offer by ID
// @Tags         admin
// @Produce      json
// @Param        id path string true "Offer ID" format(uuid)
// @Success      200 {object} dto.Response{data=catalogapp.OfferResponse}
// @Router       /admin/offers/{id} [get]
func (h *OfferHandler) GetByID(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid offer ID")
		return
	}

	resp, err := h.offerService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List returns offers with pagination
//
// @Summary      List offers
// @Tags         admin
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(20)
// @Success      200 {object} dto.Response
// @Router       /admin/offers [get]
func (h *OfferHandler) List(c *gin.Context) {
	filter, err := parseListFilter(c)
	if err != nil {
		h.BadRequest(c, "Invalid list parameters")
		return
	}
	if scope := c.Query("scope"); scope != "" {
		filter.Filters["scope"] = scope
	}

	offers, total, err := h.offerService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, offers, total, filter.Page, filter.PageSize)
}
