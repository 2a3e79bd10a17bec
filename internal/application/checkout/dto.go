package checkout

import (
	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/order"
)

// PlaceOrderRequest is the input for placing an order
type PlaceOrderRequest struct {
	AddressID      uuid.UUID `json:"address_id" binding:"required"`
	PaymentMethod  string    `json:"payment_method" binding:"required,oneof=COD RAZORPAY WALLET"`
	CouponCode     string    `json:"coupon_code"`
	IdempotencyKey string    `json:"idempotency_key"`
}

// GatewayOrderResponse is the gateway-side order handed to the client
// to collect an online payment against
type GatewayOrderResponse struct {
	ID       string `json:"id"`
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

// PlaceOrderResponse is the result of a successful placement
type PlaceOrderResponse struct {
	OrderID       uuid.UUID             `json:"order_id"`
	OrderNumber   string                `json:"order_number"`
	Status        string                `json:"status"`
	PaymentMethod string                `json:"payment_method"`
	PaymentStatus string                `json:"payment_status"`
	Subtotal      string                `json:"subtotal"`
	Discount      string                `json:"discount"`
	Tax           string                `json:"tax"`
	Shipping      string                `json:"shipping"`
	FinalAmount   string                `json:"final_amount"`
	GatewayOrder  *GatewayOrderResponse `json:"gateway_order,omitempty"`
}

// VerifyPaymentRequest carries what the gateway returns to the client
// after a payment attempt
type VerifyPaymentRequest struct {
	PaymentID string `json:"payment_id" binding:"required"`
	Signature string `json:"signature" binding:"required"`
}

// VerifyPaymentResponse is the outcome of signature verification
type VerifyPaymentResponse struct {
	OrderID       uuid.UUID `json:"order_id"`
	PaymentStatus string    `json:"payment_status"`
	Verified      bool      `json:"verified"`
}

// ToPlaceOrderResponse converts a persisted order to the placement response
func ToPlaceOrderResponse(o *order.Order) PlaceOrderResponse {
	return PlaceOrderResponse{
		OrderID:       o.ID,
		OrderNumber:   o.OrderNumber,
		Status:        string(o.Status),
		PaymentMethod: string(o.PaymentMethod),
		PaymentStatus: string(o.PaymentStatus),
		Subtotal:      o.Subtotal.Amount().String(),
		Discount:      o.Discount.Amount().String(),
		Tax:           o.Tax.Amount().String(),
		Shipping:      o.Shipping.Amount().String(),
		FinalAmount:   o.FinalAmount.Amount().String(),
	}
}
