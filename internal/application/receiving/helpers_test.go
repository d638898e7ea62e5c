package receiving

import (
	"context"
	"time"

	"github.com/erp/warehouse-bot/internal/domain/catalog"
	"github.com/erp/warehouse-bot/internal/domain/receiving"
	"github.com/erp/warehouse-bot/internal/domain/shared"
	"github.com/erp/warehouse-bot/internal/domain/workflow"
	"github.com/google/uuid"
)

// fakeCatalog serves canned suppliers and items with injectable failures.
type fakeCatalog struct {
	suppliers    []catalog.Supplier
	items        map[uuid.UUID][]catalog.Item
	suppliersErr error
	itemsErr     error
}

func (f *fakeCatalog) ListSuppliers(_ context.Context) ([]catalog.Supplier, error) {
	if f.suppliersErr != nil {
		return nil, f.suppliersErr
	}
	return f.suppliers, nil
}

func (f *fakeCatalog) ListItemsForSupplier(_ context.Context, supplierID uuid.UUID) ([]catalog.Item, error) {
	if f.itemsErr != nil {
		return nil, f.itemsErr
	}
	return f.items[supplierID], nil
}

var _ catalog.Reader = (*fakeCatalog)(nil)

// memSessionStore is a plain map-backed session store for single-goroutine tests.
type memSessionStore struct {
	sessions map[int64]*workflow.Session
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{sessions: make(map[int64]*workflow.Session)}
}

func (s *memSessionStore) Get(userID int64) *workflow.Session {
	return s.sessions[userID]
}

func (s *memSessionStore) Put(userID int64, session *workflow.Session) {
	s.sessions[userID] = session
}

func (s *memSessionStore) Clear(userID int64) {
	delete(s.sessions, userID)
}

var _ workflow.SessionStore = (*memSessionStore)(nil)

// memReceiptRepo stores receipts and lines in memory.
type memReceiptRepo struct {
	receipts   map[uuid.UUID]*receiving.Receipt
	lines      []receiving.ReceiptLine
	createErr  error
	addLineErr error
}

func newMemReceiptRepo() *memReceiptRepo {
	return &memReceiptRepo{receipts: make(map[uuid.UUID]*receiving.Receipt)}
}

func (r *memReceiptRepo) FindByID(_ context.Context, id uuid.UUID) (*receiving.Receipt, error) {
	receipt, ok := r.receipts[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return receipt, nil
}

func (r *memReceiptRepo) Create(_ context.Context, receipt *receiving.Receipt) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.receipts[receipt.ID] = receipt
	return nil
}

func (r *memReceiptRepo) AddLine(_ context.Context, line *receiving.ReceiptLine) error {
	if r.addLineErr != nil {
		return r.addLineErr
	}
	r.lines = append(r.lines, *line)
	return nil
}

var _ receiving.ReceiptRepository = (*memReceiptRepo)(nil)

// memStockRepo stores stock records keyed by item.
type memStockRepo struct {
	stocks    map[uuid.UUID]*receiving.InventoryStock
	findErr   error
	createErr error
	saveErr   error
}

func newMemStockRepo() *memStockRepo {
	return &memStockRepo{stocks: make(map[uuid.UUID]*receiving.InventoryStock)}
}

func (r *memStockRepo) FindByItem(ctx context.Context, itemID uuid.UUID) (*receiving.InventoryStock, error) {
	return r.FindByItemForUpdate(ctx, itemID)
}

func (r *memStockRepo) FindByItemForUpdate(_ context.Context, itemID uuid.UUID) (*receiving.InventoryStock, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	stock, ok := r.stocks[itemID]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return stock, nil
}

func (r *memStockRepo) Create(_ context.Context, stock *receiving.InventoryStock) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.stocks[stock.ItemID] = stock
	return nil
}

func (r *memStockRepo) Save(_ context.Context, stock *receiving.InventoryStock) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.stocks[stock.ItemID] = stock
	return nil
}

var _ receiving.StockRepository = (*memStockRepo)(nil)

// memDebtRepo stores debt records keyed by receipt.
type memDebtRepo struct {
	debts     map[uuid.UUID]*receiving.SupplierDebt
	createErr error
	saveErr   error
}

func newMemDebtRepo() *memDebtRepo {
	return &memDebtRepo{debts: make(map[uuid.UUID]*receiving.SupplierDebt)}
}

func (r *memDebtRepo) FindByReceipt(ctx context.Context, receiptID uuid.UUID) (*receiving.SupplierDebt, error) {
	return r.FindByReceiptForUpdate(ctx, receiptID)
}

func (r *memDebtRepo) FindByReceiptForUpdate(_ context.Context, receiptID uuid.UUID) (*receiving.SupplierDebt, error) {
	debt, ok := r.debts[receiptID]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return debt, nil
}

func (r *memDebtRepo) Create(_ context.Context, debt *receiving.SupplierDebt) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.debts[debt.ReceiptID] = debt
	return nil
}

func (r *memDebtRepo) Save(_ context.Context, debt *receiving.SupplierDebt) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.debts[debt.ReceiptID] = debt
	return nil
}

var _ receiving.SupplierDebtRepository = (*memDebtRepo)(nil)

// memIdempotency marks tokens in a plain map.
type memIdempotency struct {
	seen    map[string]bool
	markErr error
}

func newMemIdempotency() *memIdempotency {
	return &memIdempotency{seen: make(map[string]bool)}
}

func (s *memIdempotency) MarkProcessed(_ context.Context, token string, _ time.Duration) (bool, error) {
	if s.markErr != nil {
		return false, s.markErr
	}
	if s.seen[token] {
		return false, nil
	}
	s.seen[token] = true
	return true, nil
}

func (s *memIdempotency) IsProcessed(_ context.Context, token string) (bool, error) {
	return s.seen[token], nil
}

func (s *memIdempotency) Close() error { return nil }

var _ shared.IdempotencyStore = (*memIdempotency)(nil)

// capturingPublisher records every published event.
type capturingPublisher struct {
	events []shared.DomainEvent
}

func (p *capturingPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	p.events = append(p.events, events...)
	return nil
}

func (p *capturingPublisher) eventTypes() []string {
	types := make([]string, 0, len(p.events))
	for _, e := range p.events {
		types = append(types, e.EventType())
	}
	return types
}

var _ shared.EventPublisher = (*capturingPublisher)(nil)
