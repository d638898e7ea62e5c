package receiving

import (
	"context"

	"github.com/erp/warehouse-bot/internal/domain/receiving"
)

// TransactionScope provides transactional access to the receiving repositories.
// When a function is executed within a transaction scope, all repository
// operations are part of the same database transaction and are committed or
// rolled back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to all receiving repositories
// within a transaction. All repositories returned share the same underlying
// database transaction.
type TransactionalRepositories interface {
	// ReceiptRepo returns the receipt repository scoped to the current transaction
	ReceiptRepo() receiving.ReceiptRepository
	// StockRepo returns the inventory stock repository scoped to the current transaction
	StockRepo() receiving.StockRepository
	// DebtRepo returns the supplier debt repository scoped to the current transaction
	DebtRepo() receiving.SupplierDebtRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. This is useful for testing.
type NoOpTransactionScope struct {
	receiptRepo receiving.ReceiptRepository
	stockRepo   receiving.StockRepository
	debtRepo    receiving.SupplierDebtRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	receiptRepo receiving.ReceiptRepository,
	stockRepo receiving.StockRepository,
	debtRepo receiving.SupplierDebtRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		receiptRepo: receiptRepo,
		stockRepo:   stockRepo,
		debtRepo:    debtRepo,
	}
}

// Execute runs the function without a real transaction (for testing).
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// ReceiptRepo returns the receipt repository.
func (s *NoOpTransactionScope) ReceiptRepo() receiving.ReceiptRepository {
	return s.receiptRepo
}

// StockRepo returns the inventory stock repository.
func (s *NoOpTransactionScope) StockRepo() receiving.StockRepository {
	return s.stockRepo
}

// DebtRepo returns the supplier debt repository.
func (s *NoOpTransactionScope) DebtRepo() receiving.SupplierDebtRepository {
	return s.debtRepo
}

// Ensure NoOpTransactionScope implements both interfaces
var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
