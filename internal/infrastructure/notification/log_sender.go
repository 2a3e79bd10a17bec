package notification

import (
	"context"

	"go.uber.org/zap"
)

// LogSender writes notifications to the structured log instead of an
// external channel. Used in development and as the default until a
// real mail provider is wired in.
type LogSender struct {
	logger *zap.Logger
}

// NewLogSender creates a new LogSender
func NewLogSender(logger *zap.Logger) *LogSender {
	return &LogSender{logger: logger.Named("notification")}
}

// SendOrderPlaced logs an order confirmation
func (s *LogSender) SendOrderPlaced(_ context.Context, notice OrderPlacedNotice) {
	s.logger.Info("order placed notification",
		zap.String("user_id", notice.UserID),
		zap.String("order_number", notice.OrderNumber),
		zap.String("final_amount", notice.FinalAmount),
	)
}

// SendOrderEvent logs a lifecycle notification
func (s *LogSender) SendOrderEvent(_ context.Context, notice OrderEventNotice) {
	s.logger.Info("order event notification",
		zap.String("user_id", notice.UserID),
		zap.String("order_number", notice.OrderNumber),
		zap.String("event", notice.Event),
		zap.String("detail", notice.Detail),
	)
}

var _ Sender = (*LogSender)(nil)
