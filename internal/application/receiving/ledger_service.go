package receiving

import (
	"context"
	"errors"

	"github.com/erp/warehouse-bot/internal/domain/receiving"
	"github.com/erp/warehouse-bot/internal/domain/shared"
	"github.com/erp/warehouse-bot/internal/domain/workflow"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CommitResult reports the outcome of one committed receipt line
type CommitResult struct {
	ReceiptID uuid.UUID
	LineTotal decimal.Decimal
	AmountDue decimal.Decimal
}

// LedgerService applies one staged receipt line to all derived records in a
// single atomic unit of work: the receipt document, the per-item stock with
// its weighted-average purchase price, and the supplier debt. Either all of
// them change or none of them do.
type LedgerService struct {
	scope          TransactionScope
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(scope TransactionScope, logger *zap.Logger) *LedgerService {
	return &LedgerService{
		scope:  scope,
		logger: logger,
	}
}

// SetEventPublisher sets the publisher for domain events emitted on commit
func (s *LedgerService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// CommitLine writes the session's staged (item, quantity, price) line.
// On the first line of a conversation it also creates the receipt header and
// its debt record; receipt id and debt row therefore exist together or not
// at all. The stock row is read under a row-level write lock so concurrent
// commits for the same item serialize at the storage layer.
func (s *LedgerService) CommitLine(ctx context.Context, sess *workflow.Session) (*CommitResult, error) {
	var (
		result CommitResult
		events []shared.DomainEvent
	)

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		receiptID := sess.ReceiptID

		var receipt *receiving.Receipt
		if receiptID == uuid.Nil {
			created, err := receiving.NewReceipt(sess.SupplierID, sess.UserID)
			if err != nil {
				return err
			}
			if err := repos.ReceiptRepo().Create(ctx, created); err != nil {
				s.logger.Error("receipt header insert failed",
					zap.String("supplier_id", sess.SupplierID.String()),
					zap.Int64("user_id", sess.UserID),
					zap.Error(err),
				)
				return shared.ErrReceiptCreationFailed
			}

			debt, err := receiving.NewSupplierDebt(created.ID)
			if err != nil {
				return err
			}
			if err := repos.DebtRepo().Create(ctx, debt); err != nil {
				return err
			}

			receipt = created
			receiptID = created.ID
		} else {
			found, err := repos.ReceiptRepo().FindByID(ctx, receiptID)
			if err != nil {
				return err
			}
			receipt = found
		}

		line, err := receipt.AddLine(sess.ItemID, sess.Quantity, sess.Price)
		if err != nil {
			return err
		}
		if err := repos.ReceiptRepo().AddLine(ctx, line); err != nil {
			return err
		}

		if err := s.applyToStock(ctx, repos, sess.ItemID, sess.Quantity, sess.Price, &events); err != nil {
			return err
		}

		debt, err := repos.DebtRepo().FindByReceiptForUpdate(ctx, receiptID)
		if err != nil {
			return err
		}
		if err := debt.Accrue(line.Total()); err != nil {
			return err
		}
		if err := repos.DebtRepo().Save(ctx, debt); err != nil {
			return err
		}

		events = append(events, receipt.GetDomainEvents()...)
		events = append(events, debt.GetDomainEvents()...)
		receipt.ClearDomainEvents()
		debt.ClearDomainEvents()

		result = CommitResult{
			ReceiptID: receiptID,
			LineTotal: line.Total(),
			AmountDue: debt.AmountDue,
		}
		return nil
	})
	if err != nil {
		var domainErr *shared.DomainError
		if errors.As(err, &domainErr) {
			return nil, err
		}
		s.logger.Error("ledger commit failed",
			zap.Int64("user_id", sess.UserID),
			zap.String("item_id", sess.ItemID.String()),
			zap.Error(err),
		)
		return nil, shared.ErrLedgerCommitFailed
	}

	s.publishEvents(ctx, events)

	return &result, nil
}

// applyToStock upserts the per-item stock record under a row lock. A missing
// row means this is the item's first receipt.
func (s *LedgerService) applyToStock(
	ctx context.Context,
	repos TransactionalRepositories,
	itemID uuid.UUID,
	quantity, price decimal.Decimal,
	events *[]shared.DomainEvent,
) error {
	stock, err := repos.StockRepo().FindByItemForUpdate(ctx, itemID)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return err
		}
		stock, err = receiving.NewInventoryStock(itemID)
		if err != nil {
			return err
		}
		if err := stock.Receive(quantity, price); err != nil {
			return err
		}
		if err := repos.StockRepo().Create(ctx, stock); err != nil {
			return err
		}
	} else {
		if err := stock.Receive(quantity, price); err != nil {
			return err
		}
		if err := repos.StockRepo().Save(ctx, stock); err != nil {
			return err
		}
	}

	*events = append(*events, stock.GetDomainEvents()...)
	stock.ClearDomainEvents()
	return nil
}

// publishEvents publishes events collected during a successful commit.
// Publishing happens after the transaction; handler errors are logged by
// the bus, not propagated.
func (s *LedgerService) publishEvents(ctx context.Context, events []shared.DomainEvent) {
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
}
