package payment

import (
	"context"

	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// GatewayOrder is the gateway-side order a payment is collected against
type GatewayOrder struct {
	ID       string
	Amount   valueobject.Money
	Currency string
}

// Gateway is the outbound port to the payment provider. The checkout
// flow creates a gateway order for online payments and verifies the
// returned signature before marking an order paid.
type Gateway interface {
	// CreateOrder registers an amount to collect with the gateway and
	// returns the gateway order to hand to the client
	CreateOrder(ctx context.Context, receipt string, amount valueobject.Money) (*GatewayOrder, error)

	// VerifySignature checks the signature the client returns after a
	// successful payment. True means the payment is authentic.
	VerifySignature(gatewayOrderID, paymentID, signature string) bool
}
