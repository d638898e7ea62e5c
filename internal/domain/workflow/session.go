package workflow

import (
	"sort"
	"strings"

	"github.com/erp/warehouse-bot/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// State identifies the current step of a receiving conversation
type State string

const (
	// StateSelectingSupplier waits for the user to pick a supplier
	StateSelectingSupplier State = "selecting_supplier"
	// StateSelectingItem waits for the user to pick an item or finish
	StateSelectingItem State = "selecting_item"
	// StateEnteringQuantity waits for a numeric quantity
	StateEnteringQuantity State = "entering_quantity"
	// StateConfirmingQuantity waits for the user to confirm or edit the quantity
	StateConfirmingQuantity State = "confirming_quantity"
	// StateEnteringPrice waits for a numeric unit price
	StateEnteringPrice State = "entering_price"
	// StateConfirmingSave waits for the user to save the staged line or edit it
	StateConfirmingSave State = "confirming_save"
)

// ItemOption is one selectable catalog item within the chosen supplier
type ItemOption struct {
	ID           uuid.UUID
	DefaultPrice decimal.Decimal
}

// Session holds the per-user conversation context of one receiving workflow.
// It lives in process memory only and is destroyed on completion, cancellation
// or reset. Staged fields are only meaningful in the states that set them;
// every transition method guards against being called out of order.
type Session struct {
	UserID int64
	State  State

	SupplierID   uuid.UUID
	SupplierName string
	Items        map[string]ItemOption // item name -> option, for the chosen supplier

	ItemID       uuid.UUID
	ItemName     string
	DefaultPrice decimal.Decimal
	Quantity     decimal.Decimal
	Price        decimal.Decimal

	// ReceiptID is assigned by the ledger on the first committed line and
	// reused for every following line of the same conversation.
	ReceiptID uuid.UUID

	// SaveToken is rotated on every entry into StateConfirmingSave so that a
	// replayed save trigger for an already-processed line is a no-op.
	SaveToken string

	// LinesCommitted counts lines written for the current receipt.
	LinesCommitted int
}

// NewSession starts a fresh conversation in the supplier-selection step
func NewSession(userID int64) *Session {
	return &Session{
		UserID: userID,
		State:  StateSelectingSupplier,
	}
}

// ChooseSupplier stages the picked supplier and its item options
func (s *Session) ChooseSupplier(supplierID uuid.UUID, name string, items map[string]ItemOption) error {
	if s.State != StateSelectingSupplier {
		return shared.ErrInvalidState
	}
	s.SupplierID = supplierID
	s.SupplierName = name
	s.Items = items
	s.State = StateSelectingItem
	return nil
}

// ChooseItem stages the picked item by name. Returns false without a state
// change when the name does not match any option, so the caller re-prompts.
func (s *Session) ChooseItem(name string) (bool, error) {
	if s.State != StateSelectingItem {
		return false, shared.ErrInvalidState
	}
	opt, ok := s.Items[name]
	if !ok {
		return false, nil
	}
	s.ItemID = opt.ID
	s.ItemName = name
	s.DefaultPrice = opt.DefaultPrice
	s.State = StateEnteringQuantity
	return true, nil
}

// StageQuantity stores a validated quantity and moves to confirmation
func (s *Session) StageQuantity(quantity decimal.Decimal) error {
	if s.State != StateEnteringQuantity {
		return shared.ErrInvalidState
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	s.Quantity = quantity
	s.State = StateConfirmingQuantity
	return nil
}

// ConfirmQuantity accepts the staged quantity and asks for the price
func (s *Session) ConfirmQuantity() error {
	if s.State != StateConfirmingQuantity {
		return shared.ErrInvalidState
	}
	s.State = StateEnteringPrice
	return nil
}

// EditQuantity discards the staged quantity and re-asks for it
func (s *Session) EditQuantity() error {
	if s.State != StateConfirmingQuantity && s.State != StateConfirmingSave {
		return shared.ErrInvalidState
	}
	s.Quantity = decimal.Zero
	s.SaveToken = ""
	s.State = StateEnteringQuantity
	return nil
}

// StagePrice stores a validated unit price and moves to the final
// confirmation. A fresh save token is issued for the staged line.
func (s *Session) StagePrice(price decimal.Decimal) error {
	if s.State != StateEnteringPrice {
		return shared.ErrInvalidState
	}
	if price.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_PRICE", "Price must be positive")
	}
	s.Price = price
	s.SaveToken = uuid.NewString()
	s.State = StateConfirmingSave
	return nil
}

// EditPrice discards the staged price and re-asks for it
func (s *Session) EditPrice() error {
	if s.State != StateConfirmingSave {
		return shared.ErrInvalidState
	}
	s.Price = decimal.Zero
	s.SaveToken = ""
	s.State = StateEnteringPrice
	return nil
}

// LineTotal returns quantity * price rounded to 2 places
func (s *Session) LineTotal() decimal.Decimal {
	return s.Quantity.Mul(s.Price).Round(2)
}

// AttachReceipt records the receipt id assigned on the first committed line
func (s *Session) AttachReceipt(receiptID uuid.UUID) {
	s.ReceiptID = receiptID
}

// HasReceipt reports whether a receipt header has been created for this session
func (s *Session) HasReceipt() bool {
	return s.ReceiptID != uuid.Nil
}

// CompleteLine clears the staged line after a successful commit and loops
// back to item selection for the same supplier
func (s *Session) CompleteLine() error {
	if s.State != StateConfirmingSave {
		return shared.ErrInvalidState
	}
	s.ItemID = uuid.Nil
	s.ItemName = ""
	s.DefaultPrice = decimal.Zero
	s.Quantity = decimal.Zero
	s.Price = decimal.Zero
	s.SaveToken = ""
	s.LinesCommitted++
	s.State = StateSelectingItem
	return nil
}

// ItemNames returns the selectable item names sorted alphabetically
func (s *Session) ItemNames() []string {
	names := make([]string, 0, len(s.Items))
	for name := range s.Items {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseAmount parses a positive decimal amount from user input.
// Both comma and period are accepted as the decimal separator.
func ParseAmount(text string) (decimal.Decimal, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(text), ",", ".")
	value, err := decimal.NewFromString(normalized)
	if err != nil {
		return decimal.Zero, shared.NewDomainError("INVALID_NUMBER", "Input is not a number")
	}
	if value.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, shared.NewDomainError("INVALID_NUMBER", "Value must be positive")
	}
	return value, nil
}
