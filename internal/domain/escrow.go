package domain

import "time"

type EscrowState string

const (
	EscrowHeld     EscrowState = "HELD"
	EscrowReleased EscrowState = "RELEASED"
	EscrowRefunded EscrowState = "REFUNDED"
)

type EscrowEntry struct {
	ID        string
	OrderID   string
	BuyerID   string
	SellerID  string
	Amount    float64
	Currency  string
	State     EscrowState
	CreatedAt time.Time
	UpdatedAt time.Time
	SettledAt *time.Time
}

type EscrowRepository interface {
	CreateEntry(entry *EscrowEntry) error
	GetEntryByOrderID(orderID string) (*EscrowEntry, error)
	// SettleEntry moves the entry from one state to another with a guarded
	// update. Returns ErrAlreadySettled when the entry is no longer in from.
	SettleEntry(orderID string, from, to EscrowState) error
}

// EscrowUsecase is the fund ledger of an order. Every operation is idempotent
// keyed by order id: repeating a settled operation returns the original entry,
// and release/refund exclude each other.
type EscrowUsecase interface {
	Hold(orderID, buyerID, sellerID string, amount float64, currency string) (*EscrowEntry, error)
	Release(orderID string) (*EscrowEntry, error)
	Refund(orderID string) (*EscrowEntry, error)
	GetByOrderID(orderID string) (*EscrowEntry, error)
}
