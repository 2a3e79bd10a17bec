package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// BusinessMetrics tracks storefront activity: orders placed, revenue,
// coupon redemptions and refunds credited back to wallets.
type BusinessMetrics struct {
	ordersPlaced      metric.Int64Counter
	orderValue        metric.Float64Histogram
	couponRedemptions metric.Int64Counter
	refundsCredited   metric.Float64Counter
	paymentFailures   metric.Int64Counter
	stockConflicts    metric.Int64Counter
}

// NewBusinessMetrics registers the storefront instruments on the meter
func NewBusinessMetrics(meter metric.Meter) (*BusinessMetrics, error) {
	bm := &BusinessMetrics{}
	var err error

	bm.ordersPlaced, err = meter.Int64Counter(
		"storefront_orders_placed_total",
		metric.WithDescription("Total number of orders placed"),
		metric.WithUnit("{orders}"),
	)
	if err != nil {
		return nil, err
	}

	bm.orderValue, err = meter.Float64Histogram(
		"storefront_order_value",
		metric.WithDescription("Final payable amount per order"),
		metric.WithUnit("{inr}"),
	)
	if err != nil {
		return nil, err
	}

	bm.couponRedemptions, err = meter.Int64Counter(
		"storefront_coupon_redemptions_total",
		metric.WithDescription("Total number of coupon redemptions at checkout"),
		metric.WithUnit("{redemptions}"),
	)
	if err != nil {
		return nil, err
	}

	bm.refundsCredited, err = meter.Float64Counter(
		"storefront_refunds_credited_total",
		metric.WithDescription("Total amount credited to wallets for cancellations and returns"),
		metric.WithUnit("{inr}"),
	)
	if err != nil {
		return nil, err
	}

	bm.paymentFailures, err = meter.Int64Counter(
		"storefront_payment_failures_total",
		metric.WithDescription("Total number of failed gateway payment verifications"),
		metric.WithUnit("{payments}"),
	)
	if err != nil {
		return nil, err
	}

	bm.stockConflicts, err = meter.Int64Counter(
		"storefront_stock_conflicts_total",
		metric.WithDescription("Checkouts rejected because stock ran out under contention"),
		metric.WithUnit("{checkouts}"),
	)
	if err != nil {
		return nil, err
	}

	return bm, nil
}

// RecordOrderPlaced records a placed order and its final amount
func (bm *BusinessMetrics) RecordOrderPlaced(ctx context.Context, paymentMethod string, finalAmount valueobject.Money) {
	attrs := metric.WithAttributes(attribute.String("payment_method", paymentMethod))
	bm.ordersPlaced.Add(ctx, 1, attrs)
	bm.orderValue.Record(ctx, finalAmount.Float64(), attrs)
}

// RecordCouponRedemption records a coupon redeemed at checkout
func (bm *BusinessMetrics) RecordCouponRedemption(ctx context.Context, code string) {
	bm.couponRedemptions.Add(ctx, 1, metric.WithAttributes(attribute.String("code", code)))
}

// RecordRefund records an amount credited back to a wallet
func (bm *BusinessMetrics) RecordRefund(ctx context.Context, reason string, amount valueobject.Money) {
	bm.refundsCredited.Add(ctx, amount.Float64(), metric.WithAttributes(attribute.String("reason", reason)))
}

// RecordPaymentFailure records a failed gateway signature verification
func (bm *BusinessMetrics) RecordPaymentFailure(ctx context.Context) {
	bm.paymentFailures.Add(ctx, 1)
}

// RecordStockConflict records a checkout lost to a concurrent stock claim
func (bm *BusinessMetrics) RecordStockConflict(ctx context.Context) {
	bm.stockConflicts.Add(ctx, 1)
}
