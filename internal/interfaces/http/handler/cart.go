package handler

import (
	"github.com/gin-gonic/gin"

	cartapp "github.com/storefront/backend/internal/application/cart"
)

// CartHandler handles the signed-in user's cart
type CartHandler struct {
	BaseHandler
	cartService *cartapp.Service
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cartService *cartapp.Service) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// Get returns the cart valuated at current prices and offers
//
// @Summary      Get cart
// @Tags         cart
// @Produce      json
// @Success      200 {object} dto.Response
// @Router       /cart [get]
func (h *CartHandler) Get(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Sign in to continue")
		return
	}

	summary, err := h.cartService.Valuate(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// AddLine adds a variant to the cart, merging with an existing line
//
// @Summary      Add to cart
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        request body cartapp.AddLineRequest true "Line to add"
// @Success      200 {object} dto.Response
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /cart/lines [post]
func (h *CartHandler) AddLine(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Sign in to continue")
		return
	}

	var req cartapp.AddLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.cartService.AddLine(c.Request.Context(), userID, req); err != nil {
		h.HandleError(c, err)
		return
	}

	summary, err := h.cartService.Valuate(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// UpdateQuantity changes a cart line's quantity
//
// @Summary      Update cart line quantity
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        id path string true "Line ID" format(uuid)
// @Param        request body cartapp.UpdateQuantityRequest true "New quantity"
// @Success      200 {object} dto.Response
// @Router       /cart/lines/{id} [patch]
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Sign in to continue")
		return
	}

	lineID, err := parseID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid line ID")
		return
	}

	var req cartapp.UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.cartService.UpdateQuantity(c.Request.Context(), userID, lineID, req.Quantity); err != nil {
		h.HandleError(c, err)
		return
	}

	summary, err := h.cartService.Valuate(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// RemoveLine removes a line from the cart
//
// @Summary      Remove cart line
// @Tags         cart
// @Produce      json
// @Param        id path string true "Line ID" format(uuid)
// @Success      204
// @Router       /cart/lines/{id} [delete]
func (h *CartHandler) RemoveLine(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Sign in to continue")
		return
	}

	lineID, err := parseID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid line ID")
		return
	}

	if err := h.cartService.RemoveLine(c.Request.Context(), userID, lineID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Clear empties the cart
//
// @Summary      Clear cart
// @Tags         cart
// @Produce      json
// @Success      204
// @Router       /cart [delete]
func (h *CartHandler) Clear(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Sign in to continue")
		return
	}

	if err := h.cartService.Clear(c.Request.Context(), userID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
