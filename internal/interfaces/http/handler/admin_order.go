package handler

import (
	"github.com/gin-gonic/gin"

	orderapp "github.com/storefront/backend/internal/application/order"
)

// AdminOrderHandler handles back office order operations
type AdminOrderHandler struct {
	BaseHandler
	lifecycleService *orderapp.LifecycleService
}

// NewAdminOrderHandler creates a new AdminOrderHandler
func NewAdminOrderHandler(lifecycleService *orderapp.LifecycleService) *AdminOrderHandler {
	return &AdminOrderHandler{lifecycleService: lifecycleService}
}

// ResolveReturn approves or rejects a pending return request.
// Approval restocks the item and credits the refund to the wallet.
//
// @Summary      Resolve return request
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Param        itemId path string true "Item ID" format(uuid)
// @Param        request body orderapp.ResolveReturnRequest true "approve or reject"
// @Success      200 {object} dto.Response{data=orderapp.OrderResponse}
// @Router       /admin/orders/{id}/items/{itemId}/return [post]
func (h *AdminOrderHandler) ResolveReturn(c *gin.Context) {
	orderID, err := parseID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}
	itemID, err := parseID(c, "itemId")
	if err != nil {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	var req orderapp.ResolveReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.lifecycleService.ResolveReturn(c.Request.Context(), orderID, itemID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// UpdateShipping advances the shipping status of an order's items
//
// @Summary      Update shipping status
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Param        request body orderapp.UpdateShippingRequest true "New status"
// @Success      200 {object} dto.Response{data=orderapp.OrderResponse}
// @Router       /admin/orders/{id}/shipping [patch]
func (h *AdminOrderHandler) UpdateShipping(c *gin.Context) {
	orderID, err := parseID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	var req orderapp.UpdateShippingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.lifecycleService.UpdateShipping(c.Request.Context(), orderID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
