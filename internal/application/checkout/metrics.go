package checkout

import (
	"context"

	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// MetricsRecorder receives business-level checkout measurements. The
// zero value of Service records nothing; wiring is optional.
type MetricsRecorder interface {
	RecordOrderPlaced(ctx context.Context, paymentMethod string, finalAmount valueobject.Money)
	RecordCouponRedemption(ctx context.Context, code string)
	RecordPaymentFailure(ctx context.Context)
	RecordStockConflict(ctx context.Context)
}

// SetMetrics injects the metrics recorder after construction
func (s *Service) SetMetrics(m MetricsRecorder) {
	s.metrics = m
}
