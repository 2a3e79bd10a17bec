package order

import (
	"time"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// ItemResponse is the API representation of an ordered line
type ItemResponse struct {
	ID            uuid.UUID  `json:"id"`
	ProductID     uuid.UUID  `json:"product_id"`
	VariantID     uuid.UUID  `json:"variant_id"`
	ProductName   string     `json:"product_name"`
	Image         string     `json:"image"`
	UnitPrice     string     `json:"unit_price"`
	Quantity      int        `json:"quantity"`
	LineTotal     string     `json:"line_total"`
	Status        string     `json:"status"`
	OfferID       *uuid.UUID `json:"offer_id,omitempty"`
	ReturnReason  string     `json:"return_reason,omitempty"`
	ReturnComment string     `json:"return_comment,omitempty"`
	ReturnImage   string     `json:"return_image,omitempty"`
}

// HistoryResponse is one order history record
type HistoryResponse struct {
	Status    string    `json:"status"`
	Date      time.Time `json:"date"`
	Comment   string    `json:"comment,omitempty"`
	ChangedBy string    `json:"changed_by,omitempty"`
}

// OrderResponse is the API representation of an order
type OrderResponse struct {
	ID              uuid.UUID           `json:"id"`
	OrderNumber     string              `json:"order_number"`
	UserID          uuid.UUID           `json:"user_id"`
	Items           []ItemResponse      `json:"items"`
	ShippingAddress valueobject.Address `json:"shipping_address"`
	CouponCode      string              `json:"coupon_code,omitempty"`
	Subtotal        string              `json:"subtotal"`
	Discount        string              `json:"discount"`
	Tax             string              `json:"tax"`
	Shipping        string              `json:"shipping"`
	FinalAmount     string              `json:"final_amount"`
	PaymentMethod   string              `json:"payment_method"`
	PaymentStatus   string              `json:"payment_status"`
	Status          string              `json:"status"`
	History         []HistoryResponse   `json:"history"`
	CreatedAt       time.Time           `json:"created_at"`
}

// ToOrderResponse converts an order to its API representation
func ToOrderResponse(o *order.Order) OrderResponse {
	items := make([]ItemResponse, len(o.Items))
	for i := range o.Items {
		item := &o.Items[i]
		items[i] = ItemResponse{
			ID:            item.ID,
			ProductID:     item.ProductID,
			VariantID:     item.VariantID,
			ProductName:   item.ProductName,
			Image:         item.Image,
			UnitPrice:     item.UnitPrice.Amount().String(),
			Quantity:      item.Quantity,
			LineTotal:     item.LineTotal().Amount().String(),
			Status:        string(item.Status),
			OfferID:       item.OfferID,
			ReturnReason:  item.ReturnReason,
			ReturnComment: item.ReturnComment,
			ReturnImage:   item.ReturnImage,
		}
	}
	history := make([]HistoryResponse, len(o.History))
	for i, h := range o.History {
		history[i] = HistoryResponse{
			Status:    string(h.Status),
			Date:      h.Date,
			Comment:   h.Comment,
			ChangedBy: h.ChangedBy,
		}
	}
	return OrderResponse{
		ID:              o.ID,
		OrderNumber:     o.OrderNumber,
		UserID:          o.UserID,
		Items:           items,
		ShippingAddress: o.ShippingAddress,
		CouponCode:      o.CouponCode,
		Subtotal:        o.Subtotal.Amount().String(),
		Discount:        o.Discount.Amount().String(),
		Tax:             o.Tax.Amount().String(),
		Shipping:        o.Shipping.Amount().String(),
		FinalAmount:     o.FinalAmount.Amount().String(),
		PaymentMethod:   string(o.PaymentMethod),
		PaymentStatus:   string(o.PaymentStatus),
		Status:          string(o.Status),
		History:         history,
		CreatedAt:       o.CreatedAt,
	}
}

// RequestReturnRequest is the customer input for a return request.
// EvidenceImage is a reference to an already uploaded image; uploads
// themselves are handled upstream.
type RequestReturnRequest struct {
	Reason        string `json:"reason" binding:"required"`
	Comment       string `json:"comment"`
	EvidenceImage string `json:"evidence_image" binding:"omitempty,url"`
}

// ResolveReturnRequest is the admin decision on a pending return
type ResolveReturnRequest struct {
	Action  string `json:"action" binding:"required,oneof=approve reject"`
	Comment string `json:"comment"`
}

// UpdateShippingRequest is the admin input for a fulfilment update
type UpdateShippingRequest struct {
	Status  string `json:"status" binding:"required,oneof=processing shipped out_for_delivery delivered"`
	Comment string `json:"comment"`
}
