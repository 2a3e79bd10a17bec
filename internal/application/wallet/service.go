package wallet

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
	"github.com/storefront/backend/internal/domain/wallet"
)

// Service exposes the wallet to the storefront and the back office.
// Order placement and refunds move wallet money through their own
// transactional flows; this service covers reads and admin credits.
type Service struct {
	walletRepo wallet.Repository
}

// NewService creates a new wallet Service
func NewService(walletRepo wallet.Repository) *Service {
	return &Service{walletRepo: walletRepo}
}

// BalanceResponse is the user's wallet balance
type BalanceResponse struct {
	WalletID uuid.UUID `json:"wallet_id"`
	Balance  string    `json:"balance"`
	Currency string    `json:"currency"`
}

// TransactionResponse is one ledger record
type TransactionResponse struct {
	ID        uuid.UUID  `json:"id"`
	Type      string     `json:"type"`
	Amount    string     `json:"amount"`
	Reason    string     `json:"reason"`
	OrderID   *uuid.UUID `json:"order_id,omitempty"`
	Note      string     `json:"note,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// GetBalance returns the user's balance, lazily creating the wallet on
// first reference
func (s *Service) GetBalance(ctx context.Context, userID uuid.UUID) (*BalanceResponse, error) {
	w, err := s.walletRepo.FindOrCreateByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &BalanceResponse{
		WalletID: w.ID,
		Balance:  w.Balance.Amount().String(),
		Currency: string(w.Balance.Currency()),
	}, nil
}

// ListTransactions returns the user's ledger, newest first
func (s *Service) ListTransactions(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]TransactionResponse, int64, error) {
	w, err := s.walletRepo.FindOrCreateByUser(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	page, err := s.walletRepo.FindTransactions(ctx, w.ID, filter)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]TransactionResponse, len(page.Items))
	for i := range page.Items {
		tx := &page.Items[i]
		responses[i] = TransactionResponse{
			ID:        tx.ID,
			Type:      string(tx.Type),
			Amount:    tx.Amount.Amount().String(),
			Reason:    string(tx.Reason),
			OrderID:   tx.OrderID,
			Note:      tx.Note,
			CreatedAt: tx.CreatedAt,
		}
	}
	return responses, page.Total, nil
}

// CreditRequest is the admin input for crediting a wallet
type CreditRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
	Reason string          `json:"reason" binding:"required,oneof=referral_bonus admin_adjustment"`
	Note   string          `json:"note"`
}

// Credit adds money to a user's wallet from the back office, e.g. a
// referral bonus or a manual adjustment
func (s *Service) Credit(ctx context.Context, userID uuid.UUID, req CreditRequest) (*BalanceResponse, error) {
	w, err := s.walletRepo.FindOrCreateByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	version := w.Version
	if _, err := w.Credit(valueobject.NewMoneyINR(req.Amount), wallet.Reason(req.Reason), nil, req.Note); err != nil {
		return nil, err
	}
	if err := s.walletRepo.SaveWithLock(ctx, w, version); err != nil {
		return nil, err
	}
	return &BalanceResponse{
		WalletID: w.ID,
		Balance:  w.Balance.Amount().String(),
		Currency: string(w.Balance.Currency()),
	}, nil
}
