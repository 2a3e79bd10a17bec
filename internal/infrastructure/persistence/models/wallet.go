package models

import (
	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/shared/valueobject"
	"github.com/storefront/backend/internal/domain/wallet"
)

// WalletModel is the persistence model for the Wallet aggregate.
type WalletModel struct {
	AggregateModel
	UserID       uuid.UUID                `gorm:"type:uuid;not null;uniqueIndex"`
	Balance      valueobject.Money        `gorm:"type:decimal(12,2);not null;default:0"`
	Transactions []WalletTransactionModel `gorm:"foreignKey:WalletID"`
}

// TableName returns the table name for GORM
func (WalletModel) TableName() string {
	return "wallets"
}

// ToDomain converts the persistence model to a domain Wallet.
func (m *WalletModel) ToDomain() *wallet.Wallet {
	transactions := make([]wallet.Transaction, len(m.Transactions))
	for i := range m.Transactions {
		transactions[i] = m.Transactions[i].ToDomain()
	}
	return &wallet.Wallet{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		UserID:            m.UserID,
		Balance:           m.Balance,
		Transactions:      transactions,
	}
}

// FromDomain populates the persistence model from a domain Wallet.
func (m *WalletModel) FromDomain(w *wallet.Wallet) {
	m.FromDomainAggregateRoot(w.BaseAggregateRoot)
	m.UserID = w.UserID
	m.Balance = w.Balance
	m.Transactions = make([]WalletTransactionModel, len(w.Transactions))
	for i := range w.Transactions {
		m.Transactions[i].FromDomain(&w.Transactions[i])
	}
}

// WalletModelFromDomain creates a new persistence model from a domain Wallet.
func WalletModelFromDomain(w *wallet.Wallet) *WalletModel {
	m := &WalletModel{}
	m.FromDomain(w)
	return m
}

// WalletTransactionModel is the persistence model for an immutable
// wallet ledger record. Rows are only ever inserted.
type WalletTransactionModel struct {
	BaseModel
	WalletID uuid.UUID         `gorm:"type:uuid;not null;index"`
	Type     string            `gorm:"type:varchar(10);not null"`
	Amount   valueobject.Money `gorm:"type:decimal(12,2);not null"`
	Reason   string            `gorm:"type:varchar(30);not null"`
	OrderID  *uuid.UUID        `gorm:"type:uuid;index"`
	Note     string            `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (WalletTransactionModel) TableName() string {
	return "wallet_transactions"
}

// ToDomain converts the persistence model to a domain Transaction.
func (m *WalletTransactionModel) ToDomain() wallet.Transaction {
	return wallet.Transaction{
		BaseEntity: m.BaseModel.ToDomain(),
		WalletID:   m.WalletID,
		Type:       wallet.TransactionType(m.Type),
		Amount:     m.Amount,
		Reason:     wallet.Reason(m.Reason),
		OrderID:    m.OrderID,
		Note:       m.Note,
	}
}

// FromDomain populates the persistence model from a domain Transaction.
func (m *WalletTransactionModel) FromDomain(t *wallet.Transaction) {
	m.FromDomainBaseEntity(t.BaseEntity)
	m.WalletID = t.WalletID
	m.Type = string(t.Type)
	m.Amount = t.Amount
	m.Reason = string(t.Reason)
	m.OrderID = t.OrderID
	m.Note = t.Note
}
