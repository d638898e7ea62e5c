package persistence

import (
	"context"

	apprecv "github.com/erp/warehouse-bot/internal/application/receiving"
	"github.com/erp/warehouse-bot/internal/domain/receiving"
	"gorm.io/gorm"
)

// GormTransactionScope implements TransactionScope using GORM transactions.
// It provides atomic execution of multiple repository operations.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope.
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
// If the function succeeds, the transaction is committed.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos apprecv.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormTransactionalRepositories{tx: tx}
		return fn(repos)
	})
}

// gormTransactionalRepositories provides access to all repositories within a transaction.
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// ReceiptRepo returns the receipt repository scoped to the current transaction.
func (r *gormTransactionalRepositories) ReceiptRepo() receiving.ReceiptRepository {
	return NewGormReceiptRepository(r.tx)
}

// StockRepo returns the inventory stock repository scoped to the current transaction.
func (r *gormTransactionalRepositories) StockRepo() receiving.StockRepository {
	return NewGormStockRepository(r.tx)
}

// DebtRepo returns the supplier debt repository scoped to the current transaction.
func (r *gormTransactionalRepositories) DebtRepo() receiving.SupplierDebtRepository {
	return NewGormSupplierDebtRepository(r.tx)
}

// Ensure GormTransactionScope implements TransactionScope
var _ apprecv.TransactionScope = (*GormTransactionScope)(nil)

// Ensure gormTransactionalRepositories implements TransactionalRepositories
var _ apprecv.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
