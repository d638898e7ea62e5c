package receiving

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/erp/warehouse-bot/internal/domain/catalog"
	"github.com/erp/warehouse-bot/internal/domain/identity"
	"github.com/erp/warehouse-bot/internal/domain/shared"
	"github.com/erp/warehouse-bot/internal/domain/workflow"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// WorkflowService is the receipt-intake state machine. It consumes inbound
// user events, advances the per-user conversation session and, when a line
// is fully confirmed, hands it to the LedgerService for the atomic write.
//
// Events for one user are serialized: two rapid triggers from the same chat
// are processed one after the other against the same session, never
// concurrently. Events from different users proceed in parallel.
type WorkflowService struct {
	catalog     catalog.Reader
	sessions    workflow.SessionStore
	ledger      *LedgerService
	idempotency shared.IdempotencyStore
	idemCfg     shared.IdempotencyConfig
	logger      *zap.Logger

	userLocks sync.Map // userID -> *sync.Mutex
}

// NewWorkflowService creates a new WorkflowService
func NewWorkflowService(
	catalogReader catalog.Reader,
	sessions workflow.SessionStore,
	ledger *LedgerService,
	idempotency shared.IdempotencyStore,
	logger *zap.Logger,
) *WorkflowService {
	return &WorkflowService{
		catalog:     catalogReader,
		sessions:    sessions,
		ledger:      ledger,
		idempotency: idempotency,
		idemCfg:     shared.DefaultIdempotencyConfig(),
		logger:      logger,
	}
}

// SetIdempotencyConfig overrides the default save-token idempotency settings
func (s *WorkflowService) SetIdempotencyConfig(cfg shared.IdempotencyConfig) {
	s.idemCfg = cfg
}

// lockUser serializes event handling per user
func (s *WorkflowService) lockUser(userID int64) func() {
	muIface, _ := s.userLocks.LoadOrStore(userID, &sync.Mutex{})
	mu := muIface.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// Start begins a new receiving workflow for the user. Any previous session
// is discarded. The caller supplies the user's role; only roles permitted to
// receive goods may proceed.
func (s *WorkflowService) Start(ctx context.Context, userID int64, role identity.Role) (*Prompt, error) {
	defer s.lockUser(userID)()

	if !role.CanReceiveGoods() {
		return nil, shared.ErrUnauthorized
	}

	suppliers, err := s.catalog.ListSuppliers(ctx)
	if err != nil {
		s.sessions.Clear(userID)
		return nil, s.asStoreError(err)
	}
	if len(suppliers) == 0 {
		s.sessions.Clear(userID)
		return nil, shared.ErrNoSuppliersConfigured
	}

	s.sessions.Put(userID, workflow.NewSession(userID))

	s.logger.Info("receiving workflow started",
		zap.Int64("user_id", userID),
		zap.String("role", string(role)),
	)

	return NewSelectionPrompt("Let's receive goods. Pick a supplier:", supplierNames(suppliers)), nil
}

// HandleSelection processes free-text input (option picks and numeric
// entries), routed by the session's current state. Unrecognized input never
// fails the workflow: the same prompt is re-issued so the user always has a
// valid next action.
func (s *WorkflowService) HandleSelection(ctx context.Context, userID int64, text string) (*Prompt, error) {
	defer s.lockUser(userID)()

	sess := s.sessions.Get(userID)
	if sess == nil {
		return noWorkflowPrompt(), nil
	}

	switch sess.State {
	case workflow.StateSelectingSupplier:
		return s.selectSupplier(ctx, sess, text)
	case workflow.StateSelectingItem:
		return s.selectItem(sess, text)
	case workflow.StateEnteringQuantity:
		return s.enterQuantity(sess, text)
	case workflow.StateEnteringPrice:
		return s.enterPrice(sess, text)
	default:
		// Waiting on a button press; free text just re-issues the prompt.
		return s.currentPrompt(sess), nil
	}
}

// HandleConfirmAction processes confirm/edit/save/finish button presses.
// A stale or repeated action for an already-processed step is a no-op that
// re-issues the current prompt.
func (s *WorkflowService) HandleConfirmAction(ctx context.Context, userID int64, action Action) (*Prompt, error) {
	defer s.lockUser(userID)()

	sess := s.sessions.Get(userID)
	if sess == nil {
		return noWorkflowPrompt(), nil
	}

	switch action {
	case ActionConfirmQuantity:
		if err := sess.ConfirmQuantity(); err != nil {
			return s.currentPrompt(sess), nil
		}
		s.sessions.Put(userID, sess)
		return pricePrompt(sess), nil

	case ActionEditQuantity:
		if err := sess.EditQuantity(); err != nil {
			return s.currentPrompt(sess), nil
		}
		s.sessions.Put(userID, sess)
		return quantityPrompt(sess), nil

	case ActionEditPrice:
		if err := sess.EditPrice(); err != nil {
			return s.currentPrompt(sess), nil
		}
		s.sessions.Put(userID, sess)
		return pricePrompt(sess), nil

	case ActionSave:
		return s.saveLine(ctx, sess)

	case ActionFinishReceipt:
		return s.finishReceipt(sess)

	default:
		return s.currentPrompt(sess), nil
	}
}

// Cancel aborts the workflow from any state and discards the session
func (s *WorkflowService) Cancel(ctx context.Context, userID int64) (*Prompt, error) {
	defer s.lockUser(userID)()

	s.sessions.Clear(userID)
	s.logger.Info("receiving workflow cancelled", zap.Int64("user_id", userID))
	return NewInfoPrompt("Receiving cancelled."), nil
}

// selectSupplier matches the picked name against the catalog
func (s *WorkflowService) selectSupplier(ctx context.Context, sess *workflow.Session, text string) (*Prompt, error) {
	suppliers, err := s.catalog.ListSuppliers(ctx)
	if err != nil {
		s.sessions.Clear(sess.UserID)
		return nil, s.asStoreError(err)
	}

	var picked *catalog.Supplier
	for i := range suppliers {
		if suppliers[i].Name == text {
			picked = &suppliers[i]
			break
		}
	}
	if picked == nil {
		return NewSelectionPrompt("Please pick a supplier from the list:", supplierNames(suppliers)), nil
	}

	items, err := s.catalog.ListItemsForSupplier(ctx, picked.ID)
	if err != nil {
		s.sessions.Clear(sess.UserID)
		return nil, s.asStoreError(err)
	}
	if len(items) == 0 {
		s.sessions.Clear(sess.UserID)
		return nil, shared.ErrNoItemsForSupplier
	}

	options := make(map[string]workflow.ItemOption, len(items))
	for i := range items {
		options[items[i].Name] = workflow.ItemOption{
			ID:           items[i].ID,
			DefaultPrice: items[i].DefaultPrice,
		}
	}

	if err := sess.ChooseSupplier(picked.ID, picked.Name, options); err != nil {
		return s.currentPrompt(sess), nil
	}
	s.sessions.Put(sess.UserID, sess)

	return itemPrompt(sess), nil
}

// selectItem matches the picked item name against the staged supplier catalog
func (s *WorkflowService) selectItem(sess *workflow.Session, text string) (*Prompt, error) {
	ok, err := sess.ChooseItem(text)
	if err != nil {
		return s.currentPrompt(sess), nil
	}
	if !ok {
		return NewSelectionPrompt(
			fmt.Sprintf("Please pick an item from %s's list:", sess.SupplierName),
			sess.ItemNames(),
			ActionFinishReceipt,
		), nil
	}
	s.sessions.Put(sess.UserID, sess)

	return quantityPrompt(sess), nil
}

// enterQuantity parses and stages the quantity
func (s *WorkflowService) enterQuantity(sess *workflow.Session, text string) (*Prompt, error) {
	quantity, err := workflow.ParseAmount(text)
	if err != nil {
		return NewInputPrompt("Invalid format. Enter the quantity as a number (for example 10 or 5.5):"), nil
	}
	if err := sess.StageQuantity(quantity); err != nil {
		return s.currentPrompt(sess), nil
	}
	s.sessions.Put(sess.UserID, sess)

	return quantityConfirmPrompt(sess), nil
}

// enterPrice parses and stages the unit price
func (s *WorkflowService) enterPrice(sess *workflow.Session, text string) (*Prompt, error) {
	price, err := workflow.ParseAmount(text)
	if err != nil {
		return NewInputPrompt("Invalid format. Enter the price as a number (for example 50.00):"), nil
	}
	if err := sess.StagePrice(price); err != nil {
		return s.currentPrompt(sess), nil
	}
	s.sessions.Put(sess.UserID, sess)

	return saveConfirmPrompt(sess), nil
}

// saveLine commits the staged line through the ledger. The save token makes
// a repeated trigger for the same staged line a no-op instead of a second
// commit.
func (s *WorkflowService) saveLine(ctx context.Context, sess *workflow.Session) (*Prompt, error) {
	if sess.State != workflow.StateConfirmingSave {
		return s.currentPrompt(sess), nil
	}

	fresh, err := s.idempotency.MarkProcessed(ctx, saveTokenKey(sess.SaveToken), s.idemCfg.TTL)
	if err != nil {
		s.logger.Warn("idempotency check failed, proceeding", zap.Error(err))
	} else if !fresh {
		s.logger.Info("duplicate save trigger ignored",
			zap.Int64("user_id", sess.UserID),
			zap.String("save_token", sess.SaveToken),
		)
		return s.currentPrompt(sess), nil
	}

	itemName := sess.ItemName
	result, err := s.ledger.CommitLine(ctx, sess)
	if err != nil {
		s.sessions.Clear(sess.UserID)
		return nil, err
	}

	sess.AttachReceipt(result.ReceiptID)
	if err := sess.CompleteLine(); err != nil {
		return s.currentPrompt(sess), nil
	}
	s.sessions.Put(sess.UserID, sess)

	s.logger.Info("receipt line committed",
		zap.Int64("user_id", sess.UserID),
		zap.String("receipt_id", result.ReceiptID.String()),
		zap.String("line_total", result.LineTotal.String()),
	)

	return NewSelectionPrompt(
		fmt.Sprintf("%s added to receipt %s (line total %s). Pick the next item from %s:",
			itemName, shortID(result.ReceiptID), result.LineTotal.StringFixed(2), sess.SupplierName),
		sess.ItemNames(),
		ActionFinishReceipt,
	), nil
}

// finishReceipt ends the conversation and emits a summary
func (s *WorkflowService) finishReceipt(sess *workflow.Session) (*Prompt, error) {
	if sess.State != workflow.StateSelectingItem {
		return s.currentPrompt(sess), nil
	}

	var text string
	if sess.HasReceipt() {
		text = fmt.Sprintf("Receipt %s finished: %d line(s) recorded, stock and supplier debt updated.",
			shortID(sess.ReceiptID), sess.LinesCommitted)
	} else {
		text = "Receiving finished. No lines were recorded."
	}

	s.sessions.Clear(sess.UserID)
	s.logger.Info("receiving workflow finished",
		zap.Int64("user_id", sess.UserID),
		zap.Int("lines", sess.LinesCommitted),
	)

	return NewInfoPrompt(text), nil
}

// currentPrompt re-issues the prompt matching the session's current state
func (s *WorkflowService) currentPrompt(sess *workflow.Session) *Prompt {
	switch sess.State {
	case workflow.StateSelectingSupplier:
		return NewSelectionPrompt("Pick a supplier:", nil)
	case workflow.StateSelectingItem:
		return itemPrompt(sess)
	case workflow.StateEnteringQuantity:
		return quantityPrompt(sess)
	case workflow.StateConfirmingQuantity:
		return quantityConfirmPrompt(sess)
	case workflow.StateEnteringPrice:
		return pricePrompt(sess)
	case workflow.StateConfirmingSave:
		return saveConfirmPrompt(sess)
	default:
		return noWorkflowPrompt()
	}
}

// asStoreError maps infrastructure failures to the transient store error,
// passing domain errors through untouched
func (s *WorkflowService) asStoreError(err error) error {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return err
	}
	s.logger.Error("catalog read failed", zap.Error(err))
	return shared.ErrStoreUnavailable
}

func supplierNames(suppliers []catalog.Supplier) []string {
	names := make([]string, 0, len(suppliers))
	for i := range suppliers {
		names = append(names, suppliers[i].Name)
	}
	sort.Strings(names)
	return names
}

func itemPrompt(sess *workflow.Session) *Prompt {
	return NewSelectionPrompt(
		fmt.Sprintf("You picked %s. Pick an item to receive:", sess.SupplierName),
		sess.ItemNames(),
		ActionFinishReceipt,
	)
}

func quantityPrompt(sess *workflow.Session) *Prompt {
	return NewInputPrompt(fmt.Sprintf("Item: %s. Enter the quantity (for example 10.5):", sess.ItemName))
}

func quantityConfirmPrompt(sess *workflow.Session) *Prompt {
	return NewConfirmationPrompt(
		fmt.Sprintf("Item %s: quantity %s. Correct?", sess.ItemName, sess.Quantity.String()),
		ActionConfirmQuantity, ActionEditQuantity,
	)
}

func pricePrompt(sess *workflow.Session) *Prompt {
	return NewInputPrompt(fmt.Sprintf(
		"Enter the unit price for %s (reference price %s):",
		sess.ItemName, sess.DefaultPrice.StringFixed(2),
	))
}

func saveConfirmPrompt(sess *workflow.Session) *Prompt {
	return NewConfirmationPrompt(
		fmt.Sprintf("Check before saving:\nItem: %s\nQuantity: %s\nPrice: %s per unit\nTotal: %s",
			sess.ItemName, sess.Quantity.String(), sess.Price.String(), sess.LineTotal().StringFixed(2)),
		ActionSave, ActionEditQuantity, ActionEditPrice,
	)
}

func noWorkflowPrompt() *Prompt {
	return NewInfoPrompt("No receiving in progress. Start a new one first.")
}

func saveTokenKey(token string) string {
	return "receiving:save:" + token
}

func shortID(id uuid.UUID) string {
	return id.String()[:8]
}
