package wallet

import (
	"context"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/shared"
)

// Repository provides access to wallets and their ledgers
type Repository interface {
	// FindByUser loads a user's wallet with its transactions, or
	// shared.ErrNotFound when the user has none yet
	FindByUser(ctx context.Context, userID uuid.UUID) (*Wallet, error)

	// FindOrCreateByUser loads a user's wallet, lazily creating an
	// empty one on first reference
	FindOrCreateByUser(ctx context.Context, userID uuid.UUID) (*Wallet, error)

	// FindTransactions returns a wallet's ledger, newest first
	FindTransactions(ctx context.Context, walletID uuid.UUID, filter shared.Filter) (shared.Paginated[Transaction], error)

	// SaveWithLock persists the wallet and any newly appended
	// transactions atomically, with an optimistic version check.
	// Returns shared.ErrConcurrencyConflict when another writer moved
	// the balance first.
	SaveWithLock(ctx context.Context, w *Wallet, expectedVersion int) error
}
