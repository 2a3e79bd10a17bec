package order

import (
	"context"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
	"github.com/storefront/backend/internal/domain/wallet"
	"github.com/storefront/backend/internal/infrastructure/notification"
)

// LifecycleService mutates orders after placement: cancellations,
// returns and fulfilment updates. Every money-moving operation runs in
// a TransactionScope so the restock, the wallet credit and the order
// update land together or not at all.
type LifecycleService struct {
	scope     TransactionScope
	orderRepo order.Repository
	notifier  notification.Sender
	policy    RefundPolicy
	metrics   RefundMetricsRecorder
}

// RefundMetricsRecorder receives the amounts credited back to wallets.
// Recording is optional; an unset recorder is skipped.
type RefundMetricsRecorder interface {
	RecordRefund(ctx context.Context, reason string, amount valueobject.Money)
}

// SetMetrics injects the metrics recorder after construction
func (s *LifecycleService) SetMetrics(m RefundMetricsRecorder) {
	s.metrics = m
}

// NewLifecycleService creates a new LifecycleService
func NewLifecycleService(scope TransactionScope, orderRepo order.Repository, notifier notification.Sender, policy RefundPolicy) *LifecycleService {
	return &LifecycleService{
		scope:     scope,
		orderRepo: orderRepo,
		notifier:  notifier,
		policy:    policy,
	}
}

// GetByID retrieves one of the user's orders
func (s *LifecycleService) GetByID(ctx context.Context, userID, orderID uuid.UUID) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByIDForUser(ctx, orderID, userID)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(o)
	return &response, nil
}

// ListByUser retrieves the user's orders, newest first
func (s *LifecycleService) ListByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]OrderResponse, int64, error) {
	page, err := s.orderRepo.FindByUser(ctx, userID, filter)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]OrderResponse, len(page.Items))
	for i := range page.Items {
		responses[i] = ToOrderResponse(&page.Items[i])
	}
	return responses, page.Total, nil
}

// CancelItem cancels a single item: restocks the variant, refunds the
// tax-inclusive line amount plus the shipping refund to the wallet when
// the order was paid, or shrinks the order totals when it was not.
func (s *LifecycleService) CancelItem(ctx context.Context, userID, orderID, itemID uuid.UUID, comment string) (*OrderResponse, error) {
	var result *order.Order
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		o, err := repos.OrderRepo().FindByIDForUser(ctx, orderID, userID)
		if err != nil {
			return err
		}
		version := o.Version

		item, err := o.CancelItem(itemID, comment)
		if err != nil {
			return err
		}
		if err := repos.ProductRepo().IncrementVariantStock(ctx, item.VariantID, item.Quantity); err != nil {
			return err
		}

		if o.PaymentStatus == order.PaymentStatusPaid {
			refund := s.policy.CancelRefund(item.LineTotal())
			if err := s.creditWallet(ctx, repos, userID, refund, &o.ID, "cancellation", "Item cancellation refund"); err != nil {
				return err
			}
		} else {
			s.shrinkUnpaidTotals(o)
		}

		if err := repos.OrderRepo().SaveWithLock(ctx, o, version); err != nil {
			return err
		}
		result = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifyEvent(ctx, result, "item_cancelled", comment)
	response := ToOrderResponse(result)
	return &response, nil
}

// CancelOrder cancels every remaining item while the order is still
// pending or processing. Paid orders get the full final amount back on
// the wallet and flip to refunded.
func (s *LifecycleService) CancelOrder(ctx context.Context, userID, orderID uuid.UUID, comment string) (*OrderResponse, error) {
	var result *order.Order
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		o, err := repos.OrderRepo().FindByIDForUser(ctx, orderID, userID)
		if err != nil {
			return err
		}
		version := o.Version

		cancelled, err := o.CancelAll(comment)
		if err != nil {
			return err
		}
		for i := range cancelled {
			if err := repos.ProductRepo().IncrementVariantStock(ctx, cancelled[i].VariantID, cancelled[i].Quantity); err != nil {
				return err
			}
		}

		if o.PaymentStatus == order.PaymentStatusPaid {
			if err := s.creditWallet(ctx, repos, userID, o.FinalAmount, &o.ID, "cancellation", "Order cancellation refund"); err != nil {
				return err
			}
			o.MarkRefunded()
		}

		if err := repos.OrderRepo().SaveWithLock(ctx, o, version); err != nil {
			return err
		}
		result = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifyEvent(ctx, result, "order_cancelled", comment)
	response := ToOrderResponse(result)
	return &response, nil
}

// RequestReturn files a return request for one item. No money moves
// until an admin approves it.
func (s *LifecycleService) RequestReturn(ctx context.Context, userID, orderID, itemID uuid.UUID, req RequestReturnRequest) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByIDForUser(ctx, orderID, userID)
	if err != nil {
		return nil, err
	}
	version := o.Version

	if _, err := o.RequestReturn(itemID, req.Reason, req.Comment, req.EvidenceImage); err != nil {
		return nil, err
	}
	if err := s.orderRepo.SaveWithLock(ctx, o, version); err != nil {
		return nil, err
	}

	s.notifyEvent(ctx, o, "return_requested", req.Reason)
	response := ToOrderResponse(o)
	return &response, nil
}

// RequestReturnOrder files return requests for every eligible item
func (s *LifecycleService) RequestReturnOrder(ctx context.Context, userID, orderID uuid.UUID, req RequestReturnRequest) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByIDForUser(ctx, orderID, userID)
	if err != nil {
		return nil, err
	}
	version := o.Version

	requested := 0
	for i := range o.Items {
		if o.Items[i].Status.CanTransitionTo(order.ItemStatusReturnRequested) {
			if _, err := o.RequestReturn(o.Items[i].ID, req.Reason, req.Comment, req.EvidenceImage); err != nil {
				return nil, err
			}
			requested++
		}
	}
	if requested == 0 {
		return nil, order.ErrItemNotReturnable
	}
	if err := s.orderRepo.SaveWithLock(ctx, o, version); err != nil {
		return nil, err
	}

	s.notifyEvent(ctx, o, "return_requested", req.Reason)
	response := ToOrderResponse(o)
	return &response, nil
}

// ResolveReturn is the admin decision on a pending return request.
// Approval restocks the variant and credits the tax-inclusive line
// amount minus the convenience fee; rejection only flips the status.
func (s *LifecycleService) ResolveReturn(ctx context.Context, orderID, itemID uuid.UUID, req ResolveReturnRequest) (*OrderResponse, error) {
	var result *order.Order
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		o, err := repos.OrderRepo().FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		version := o.Version

		switch req.Action {
		case "approve":
			item, err := o.ApproveReturn(itemID, req.Comment)
			if err != nil {
				return err
			}
			if err := repos.ProductRepo().IncrementVariantStock(ctx, item.VariantID, item.Quantity); err != nil {
				return err
			}
			if o.PaymentStatus == order.PaymentStatusPaid || o.PaymentStatus == order.PaymentStatusRefunded {
				refund := s.policy.ReturnRefund(item.LineTotal())
				if refund.IsPositive() {
					if err := s.creditWallet(ctx, repos, o.UserID, refund, &o.ID, "return", "Return refund"); err != nil {
						return err
					}
				}
			}
		case "reject":
			if _, err := o.RejectReturn(itemID, req.Comment); err != nil {
				return err
			}
		default:
			return shared.ErrInvalidInput
		}

		if err := repos.OrderRepo().SaveWithLock(ctx, o, version); err != nil {
			return err
		}
		result = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifyEvent(ctx, result, "return_"+req.Action+"d", req.Comment)
	response := ToOrderResponse(result)
	return &response, nil
}

// UpdateShipping is the back-office fulfilment update, moving every
// active item forward to the target status
func (s *LifecycleService) UpdateShipping(ctx context.Context, orderID uuid.UUID, req UpdateShippingRequest) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	version := o.Version

	if err := o.AdvanceShipping(order.ItemStatus(req.Status), req.Comment); err != nil {
		return nil, err
	}
	if err := s.orderRepo.SaveWithLock(ctx, o, version); err != nil {
		return nil, err
	}
	response := ToOrderResponse(o)
	return &response, nil
}

func (s *LifecycleService) creditWallet(ctx context.Context, repos TransactionalRepositories, userID uuid.UUID, amount valueobject.Money, orderID *uuid.UUID, reason, note string) error {
	w, err := repos.WalletRepo().FindOrCreateByUser(ctx, userID)
	if err != nil {
		return err
	}
	version := w.Version
	if _, err := w.Credit(amount, wallet.ReasonRefund, orderID, note); err != nil {
		return err
	}
	if err := repos.WalletRepo().SaveWithLock(ctx, w, version); err != nil {
		return err
	}
	if s.metrics != nil {
		s.metrics.RecordRefund(ctx, reason, amount)
	}
	return nil
}

// shrinkUnpaidTotals recomputes an unpaid order's amounts from the
// items still active after a cancellation. The shipping charge comes
// from the checkout fee, never from the refund constants.
func (s *LifecycleService) shrinkUnpaidTotals(o *order.Order) {
	subtotal := valueobject.ZeroINR()
	for _, item := range o.ActiveItems() {
		subtotal = subtotal.MustAdd(item.LineTotal())
	}
	tax := subtotal.Multiply(s.policy.TaxRate).RoundUnit()
	shipping := valueobject.ZeroINR()
	if !subtotal.IsZero() {
		if over, _ := subtotal.GreaterThan(s.policy.FreeShippingThreshold); !over {
			shipping = s.policy.ShippingFee
		}
	}
	final := subtotal.MustAdd(tax).MustAdd(shipping).MustSubtract(o.Discount).RoundUnit()
	o.ReduceAmounts(subtotal, tax, shipping, final)
}

func (s *LifecycleService) notifyEvent(ctx context.Context, o *order.Order, event, detail string) {
	go s.notifier.SendOrderEvent(context.WithoutCancel(ctx), notification.OrderEventNotice{
		UserID:      o.UserID.String(),
		OrderNumber: o.OrderNumber,
		Event:       event,
		Detail:      detail,
	})
}
