package handler

import (
	"github.com/gin-gonic/gin"

	checkoutapp "github.com/storefront/backend/internal/application/checkout"
)

// CheckoutHandler handles order placement and payment verification
type CheckoutHandler struct {
	BaseHandler
	checkoutService *checkoutapp.Service
}

// NewCheckoutHandler creates a new CheckoutHandler
func NewCheckoutHandler(checkoutService *checkoutapp.Service) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

// PlaceOrder converts the user's cart into an order
//
// @Summary      Place order
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Param        request body checkoutapp.PlaceOrderRequest true "Checkout request"
// @Success      201 {object} dto.Response{data=checkoutapp.PlaceOrderResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /checkout [post]
func (h *CheckoutHandler) PlaceOrder(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Sign in to continue")
		return
	}

	var req checkoutapp.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.checkoutService.PlaceOrder(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// VerifyPayment checks the gateway signature after an online payment
//
// @Summary      Verify payment
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Param        request body checkoutapp.VerifyPaymentRequest true "Gateway callback payload"
// @Success      200 {object} dto.Response{data=checkoutapp.VerifyPaymentResponse}
// @Router       /checkout/{id}/verify [post]
func (h *CheckoutHandler) VerifyPayment(c *gin.Context) {
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

	var req checkoutapp.VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.checkoutService.VerifyPayment(c.Request.Context(), userID, orderID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
