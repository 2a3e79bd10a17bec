package wallet

import (
	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// TransactionType is the direction of a wallet transaction
type TransactionType string

const (
	TransactionTypeCredit TransactionType = "credit"
	TransactionTypeDebit  TransactionType = "debit"
)

// Reason tags why money moved. Every transaction carries one.
type Reason string

const (
	ReasonOrderPayment    Reason = "order_payment"
	ReasonRefund          Reason = "refund"
	ReasonReferralBonus   Reason = "referral_bonus"
	ReasonAdminAdjustment Reason = "admin_adjustment"
)

// IsValid checks if the reason is known
func (r Reason) IsValid() bool {
	switch r {
	case ReasonOrderPayment, ReasonRefund, ReasonReferralBonus, ReasonAdminAdjustment:
		return true
	}
	return false
}

// Transaction is an immutable ledger record. The wallet balance is
// always the signed sum of its transactions.
type Transaction struct {
	shared.BaseEntity
	WalletID uuid.UUID
	Type     TransactionType
	Amount   valueobject.Money
	Reason   Reason
	OrderID  *uuid.UUID
	Note     string
}

// SignedAmount returns the amount with a negative sign for debits
func (t *Transaction) SignedAmount() valueobject.Money {
	if t.Type == TransactionTypeDebit {
		return t.Amount.Negate()
	}
	return t.Amount
}

// Wallet is the aggregate root for a user's internal balance. Every
// balance mutation appends exactly one transaction in the same call;
// persisting wallet and transactions separately would break the ledger
// invariant, so the repository writes them in one transaction.
type Wallet struct {
	shared.BaseAggregateRoot
	UserID       uuid.UUID
	Balance      valueobject.Money
	Transactions []Transaction
}

// New creates an empty wallet for a user
func New(userID uuid.UUID) (*Wallet, error) {
	if userID == uuid.Nil {
		return nil, shared.ErrInvalidInput
	}
	return &Wallet{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		Balance:           valueobject.ZeroINR(),
		Transactions:      []Transaction{},
	}, nil
}

// Credit adds money to the wallet and appends the matching ledger record
func (w *Wallet) Credit(amount valueobject.Money, reason Reason, orderID *uuid.UUID, note string) (*Transaction, error) {
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Credit amount must be positive")
	}
	if !reason.IsValid() {
		return nil, shared.NewDomainError("INVALID_REASON", "Unknown wallet transaction reason")
	}

	newBalance, err := w.Balance.Add(amount)
	if err != nil {
		return nil, err
	}
	w.Balance = newBalance
	tx := w.appendTransaction(TransactionTypeCredit, amount, reason, orderID, note)
	w.IncrementVersion()
	return tx, nil
}

// Debit removes money from the wallet. Fails closed with
// shared.ErrInsufficientBalance when the balance does not cover the
// amount; no partial debit ever happens.
func (w *Wallet) Debit(amount valueobject.Money, reason Reason, orderID *uuid.UUID, note string) (*Transaction, error) {
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Debit amount must be positive")
	}
	if !reason.IsValid() {
		return nil, shared.NewDomainError("INVALID_REASON", "Unknown wallet transaction reason")
	}
	if covered, err := w.Balance.GreaterThanOrEqual(amount); err != nil {
		return nil, err
	} else if !covered {
		return nil, shared.ErrInsufficientBalance
	}

	newBalance, err := w.Balance.Subtract(amount)
	if err != nil {
		return nil, err
	}
	w.Balance = newBalance
	tx := w.appendTransaction(TransactionTypeDebit, amount, reason, orderID, note)
	w.IncrementVersion()
	return tx, nil
}

func (w *Wallet) appendTransaction(txType TransactionType, amount valueobject.Money, reason Reason, orderID *uuid.UUID, note string) *Transaction {
	w.Transactions = append(w.Transactions, Transaction{
		BaseEntity: shared.NewBaseEntity(),
		WalletID:   w.ID,
		Type:       txType,
		Amount:     amount,
		Reason:     reason,
		OrderID:    orderID,
		Note:       note,
	})
	return &w.Transactions[len(w.Transactions)-1]
}
