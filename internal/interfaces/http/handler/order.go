package handler

import (
	"github.com/gin-gonic/gin"

	orderapp "github.com/storefront/backend/internal/application/order"
)

// OrderHandler handles the signed-in user's orders and their lifecycle
type OrderHandler struct {
	BaseHandler
	lifecycleService *orderapp.LifecycleService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(lifecycleService *orderapp.LifecycleService) *OrderHandler {
	return &OrderHandler{lifecycleService: lifecycleService}
}

// List returns the user's orders, newest first
//
// @Summary      List my orders
// @Tags         orders
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(20)
// @Success      200 {object} dto.Response
// @Router       /orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Sign in to continue")
		return
	}

	filter, err := parseListFilter(c)
	if err != nil {
		h.BadRequest(c, "Invalid list parameters")
		return
	}
	if status := c.Query("status"); status != "" {
		filter.Filters["status"] = status
	}

	orders, total, err := h.lifecycleService.ListByUser(c.Request.Context(), userID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, orders, total, filter.Page, filter.PageSize)
}

// GetByID returns one of the user's orders
//
// @Summary      Get order by ID
// @Tags         orders
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Success      200 {object} dto.Response{data=orderapp.OrderResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /orders/{id} [get]
func (h *OrderHandler) GetByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Sign in to continue")
		return
	}

	orderID, err := parseID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	resp, err := h.lifecycleService.GetByID(c.Request.Context(), userID, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// cancelRequest carries the optional comment on a cancellation
type cancelRequest struct {
	Comment string `json:"comment"`
}

// Cancel cancels the whole order, restocking and refunding as the
// refund policy dictates
//
// @Summary      Cancel order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Success      200 {object} dto.Response{data=orderapp.OrderResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /orders/{id}/cancel [post]
func (h *OrderHandler) Cancel(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Sign in to continue")
		return
	}

	orderID, err := parseID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	var req cancelRequest
	_ = c.ShouldBindJSON(&req)

	resp, err := h.lifecycleService.CancelOrder(c.Request.Context(), userID, orderID, req.Comment)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// CancelItem cancels a single order item
//
// @Summary      Cancel order item
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Param        itemId path string true "Item ID" format(uuid)
// @Success      200 {object} dto.Response{data=orderapp.OrderResponse}
// @Router       /orders/{id}/items/{itemId}/cancel [post]
func (h *OrderHandler) CancelItem(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Sign in to continue")
		return
	}

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

	var req cancelRequest
	_ = c.ShouldBindJSON(&req)

	resp, err := h.lifecycleService.CancelItem(c.Request.Context(), userID, orderID, itemID, req.Comment)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// RequestReturn asks to return a delivered item
//
// @Summary      Request item return
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Param        itemId path string true "Item ID" format(uuid)
// @Param        request body orderapp.RequestReturnRequest true "Return reason"
// @Success      200 {object} dto.Response{data=orderapp.OrderResponse}
// @Router       /orders/{id}/items/{itemId}/return [post]
func (h *OrderHandler) RequestReturn(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Sign in to continue")
		return
	}

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

	var req orderapp.RequestReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.lifecycleService.RequestReturn(c.Request.Context(), userID, orderID, itemID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// RequestReturnOrder asks to return every returnable item on the order
//
// @Summary      Request order return
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Param        request body orderapp.RequestReturnRequest true "Return reason"
// @Success      200 {object} dto.Response{data=orderapp.OrderResponse}
// @Router       /orders/{id}/return [post]
func (h *OrderHandler) RequestReturnOrder(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Sign in to continue")
		return
	}

	orderID, err := parseID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	var req orderapp.RequestReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.lifecycleService.RequestReturnOrder(c.Request.Context(), userID, orderID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
