package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	appcart "github.com/storefront/backend/internal/application/cart"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/customer"
	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/payment"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
	"github.com/storefront/backend/internal/domain/wallet"
	"github.com/storefront/backend/internal/infrastructure/notification"
)

// ErrOutOfStock builds the rejection for a line whose variant can no
// longer cover the ordered quantity. The product name tells the
// customer which line sank the placement.
func ErrOutOfStock(productName string) *shared.DomainError {
	return shared.NewDomainError("OUT_OF_STOCK", fmt.Sprintf("%s is out of stock", productName))
}

// ErrPaymentNotVerifiable is returned when verification is attempted
// on an order that has no gateway order attached
var ErrPaymentNotVerifiable = shared.NewDomainError("PAYMENT_NOT_VERIFIABLE", "Order has no pending gateway payment")

// Service orchestrates order placement. Everything between the stock
// re-check and the cart clear runs inside one TransactionScope so a
// failed placement leaves no partial side effects.
type Service struct {
	scope       TransactionScope
	addressRepo customer.AddressRepository
	orderRepo   order.Repository
	gateway     payment.Gateway
	notifier    notification.Sender
	idempotency shared.IdempotencyStore
	idemConfig  shared.IdempotencyConfig
	policy      appcart.PricingPolicy
	metrics     MetricsRecorder
}

// NewService creates a new checkout Service
func NewService(
	scope TransactionScope,
	addressRepo customer.AddressRepository,
	orderRepo order.Repository,
	gateway payment.Gateway,
	notifier notification.Sender,
	idempotency shared.IdempotencyStore,
	idemConfig shared.IdempotencyConfig,
	policy appcart.PricingPolicy,
) *Service {
	return &Service{
		scope:       scope,
		addressRepo: addressRepo,
		orderRepo:   orderRepo,
		gateway:     gateway,
		notifier:    notifier,
		idempotency: idempotency,
		idemConfig:  idemConfig,
		policy:      policy,
	}
}

// PlaceOrder turns the user's cart into an immutable order. The steps
// run in strict sequence: cart load, address load, per-line stock
// re-check, re-pricing through the offer resolver, coupon validation
// against the fresh subtotal, totals, optional wallet debit, order
// persistence, and finally the derived side effects (usage counters,
// stock decrements, cart clear). Client-supplied prices and discounts
// are never trusted.
//
// A retried request with the same idempotency key returns the order
// created by the first attempt instead of placing a second one.
func (s *Service) PlaceOrder(ctx context.Context, userID uuid.UUID, req PlaceOrderRequest) (*PlaceOrderResponse, error) {
	if req.IdempotencyKey != "" && s.idemConfig.Enabled {
		if resp, err := s.replayIfProcessed(ctx, userID, req.IdempotencyKey); resp != nil || err != nil {
			return resp, err
		}
	}

	address, err := s.addressRepo.FindByIDForUser(ctx, req.AddressID, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrAddressNotFound
		}
		return nil, err
	}

	method := order.PaymentMethod(req.PaymentMethod)
	now := time.Now()

	var placed *order.Order
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		lines, err := repos.CartRepo().FindByUser(ctx, userID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return shared.ErrEmptyCart
		}

		seq, err := repos.OrderRepo().NextOrderSequence(ctx)
		if err != nil {
			return err
		}
		o, err := order.NewOrder(order.NewOrderNumber(seq, now), userID, address.Address, method, req.IdempotencyKey)
		if err != nil {
			return err
		}

		subtotal := valueobject.ZeroINR()
		appliedOffers := make([]uuid.UUID, 0, len(lines))
		type decrement struct {
			variantID   uuid.UUID
			productName string
			quantity    int
		}
		decrements := make([]decrement, 0, len(lines))

		for i := range lines {
			line := &lines[i]
			product, err := repos.ProductRepo().FindByID(ctx, line.ProductID)
			if err != nil {
				if errors.Is(err, shared.ErrNotFound) {
					continue
				}
				return err
			}
			variant := product.FindVariant(line.VariantID)
			if variant == nil {
				continue
			}

			if !variant.CanFulfill(line.Quantity) {
				return ErrOutOfStock(product.Name)
			}

			productOffers, err := repos.OfferRepo().FindLiveProductOffers(ctx, product.ID, now)
			if err != nil {
				return err
			}
			categoryOffers, err := repos.OfferRepo().FindLiveCategoryOffers(ctx, product.CategoryID, now)
			if err != nil {
				return err
			}
			quote := catalog.ResolveBestDiscount(productOffers, categoryOffers, variant.SalePrice, now)

			if err := o.AddItem(product.ID, variant.ID, product.Name, variant.Image, quote.FinalPrice, line.Quantity, quote.OfferID); err != nil {
				return err
			}
			subtotal = subtotal.MustAdd(quote.FinalPrice.MultiplyByInt(int64(line.Quantity)))
			if quote.OfferID != nil {
				appliedOffers = append(appliedOffers, *quote.OfferID)
			}
			decrements = append(decrements, decrement{variant.ID, product.Name, line.Quantity})
		}
		if len(o.Items) == 0 {
			return shared.ErrEmptyCart
		}

		discount := valueobject.ZeroINR()
		if req.CouponCode != "" {
			coupon, err := repos.CouponRepo().FindByCode(ctx, req.CouponCode)
			if err != nil {
				return err
			}
			priorUses, err := repos.OrderRepo().CountUserOrdersWithCoupon(ctx, userID, coupon.Code)
			if err != nil {
				return err
			}
			if err := coupon.ValidateFor(userID, subtotal, priorUses, now); err != nil {
				return err
			}
			discount = coupon.ComputeDiscount(subtotal)
			o.ApplyCoupon(coupon.ID, coupon.Code)
		}

		tax := s.policy.TaxOn(subtotal)
		shipping := s.policy.ShippingOn(subtotal)
		finalAmount := subtotal.MustAdd(tax).MustAdd(shipping).MustSubtract(discount).RoundUnit().ClampZero()
		o.SetAmounts(subtotal, discount, tax, shipping, finalAmount)

		// Wallet payments debit before the order is persisted as paid;
		// the debit fails closed on insufficient balance and aborts the
		// whole placement.
		if method == order.PaymentMethodWallet {
			w, err := repos.WalletRepo().FindOrCreateByUser(ctx, userID)
			if err != nil {
				return err
			}
			version := w.Version
			if _, err := w.Debit(finalAmount, wallet.ReasonOrderPayment, &o.ID, o.OrderNumber); err != nil {
				return err
			}
			if err := repos.WalletRepo().SaveWithLock(ctx, w, version); err != nil {
				return err
			}
			o.MarkPaid("")
		}

		if err := repos.OrderRepo().Save(ctx, o); err != nil {
			return err
		}

		// Derived side effects fire only with a persisted order, in the
		// same transaction.
		if o.CouponID != nil {
			if err := repos.CouponRepo().IncrementUsage(ctx, *o.CouponID); err != nil {
				return err
			}
		}
		for _, offerID := range appliedOffers {
			if err := repos.OfferRepo().IncrementUsage(ctx, offerID); err != nil {
				return err
			}
		}
		for _, d := range decrements {
			if err := repos.ProductRepo().DecrementVariantStock(ctx, d.variantID, d.quantity); err != nil {
				if errors.Is(err, shared.ErrInsufficientStock) {
					// A concurrent placement claimed the stock between the
					// read and the decrement.
					if s.metrics != nil {
						s.metrics.RecordStockConflict(ctx)
					}
					return ErrOutOfStock(d.productName)
				}
				return err
			}
		}
		if err := repos.CartRepo().DeleteByUser(ctx, userID); err != nil {
			return err
		}

		placed = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := ToPlaceOrderResponse(placed)

	if placed.PaymentMethod == order.PaymentMethodRazorpay {
		gatewayOrder, err := s.gateway.CreateOrder(ctx, placed.OrderNumber, placed.FinalAmount)
		if err != nil {
			// The order stays pending; the client can retry the payment
			// against the persisted order.
			return &resp, err
		}
		placed.GatewayOrderID = gatewayOrder.ID
		if err := s.orderRepo.Save(ctx, placed); err != nil {
			return &resp, err
		}
		resp.GatewayOrder = &GatewayOrderResponse{
			ID:       gatewayOrder.ID,
			Amount:   gatewayOrder.Amount.Amount().String(),
			Currency: gatewayOrder.Currency,
		}
	}

	if req.IdempotencyKey != "" && s.idemConfig.Enabled {
		// Best effort; the unique idempotency key column on orders is
		// the durable guard.
		_, _ = s.idempotency.MarkProcessed(ctx, checkoutKey(userID, req.IdempotencyKey), s.idemConfig.TTL)
	}

	if s.metrics != nil {
		s.metrics.RecordOrderPlaced(ctx, string(placed.PaymentMethod), placed.FinalAmount)
		if placed.CouponCode != "" {
			s.metrics.RecordCouponRedemption(ctx, placed.CouponCode)
		}
	}

	go s.notifier.SendOrderPlaced(context.WithoutCancel(ctx), notification.OrderPlacedNotice{
		UserID:      userID.String(),
		OrderNumber: placed.OrderNumber,
		FinalAmount: placed.FinalAmount.Amount().String(),
	})

	return &resp, nil
}

// VerifyPayment checks the gateway signature for an online payment and
// settles the order's payment status accordingly
func (s *Service) VerifyPayment(ctx context.Context, userID, orderID uuid.UUID, req VerifyPaymentRequest) (*VerifyPaymentResponse, error) {
	o, err := s.orderRepo.FindByIDForUser(ctx, orderID, userID)
	if err != nil {
		return nil, err
	}
	if o.PaymentMethod != order.PaymentMethodRazorpay || o.GatewayOrderID == "" {
		return nil, ErrPaymentNotVerifiable
	}

	version := o.Version
	verified := s.gateway.VerifySignature(o.GatewayOrderID, req.PaymentID, req.Signature)
	if verified {
		o.MarkPaid(o.GatewayOrderID)
	} else {
		o.MarkPaymentFailed()
		if s.metrics != nil {
			s.metrics.RecordPaymentFailure(ctx)
		}
	}
	if err := s.orderRepo.SaveWithLock(ctx, o, version); err != nil {
		return nil, err
	}

	return &VerifyPaymentResponse{
		OrderID:       o.ID,
		PaymentStatus: string(o.PaymentStatus),
		Verified:      verified,
	}, nil
}

// replayIfProcessed returns the order already created for this
// idempotency key. The persisted order is checked even when the store
// misses, so a first attempt that committed but never marked the key
// (gateway failure, crash) still replays instead of finding the
// emptied cart. A processed key without a matching order means the
// first attempt is still in flight.
func (s *Service) replayIfProcessed(ctx context.Context, userID uuid.UUID, key string) (*PlaceOrderResponse, error) {
	processed, err := s.idempotency.IsProcessed(ctx, checkoutKey(userID, key))
	if err != nil {
		processed = false
	}
	existing, err := s.orderRepo.FindByIdempotencyKey(ctx, userID, key)
	if err == nil {
		resp := ToPlaceOrderResponse(existing)
		return &resp, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if processed {
		return nil, shared.ErrDuplicateRequest
	}
	return nil, nil
}

func checkoutKey(userID uuid.UUID, key string) string {
	return fmt.Sprintf("checkout:%s:%s", userID, key)
}
