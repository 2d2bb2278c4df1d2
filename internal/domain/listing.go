package domain

// Listing is the read-only snapshot the catalog collaborator exposes.
type Listing struct {
	ID        string
	SellerID  string
	Title     string
	Price     float64
	Currency  string
	Available bool
}

type ListingCatalog interface {
	GetListing(listingID string) (*Listing, error)
	SetAvailability(listingID string, available bool) error
}

// PaymentProvider is the opaque fund-movement collaborator behind the escrow
// ledger. Calls are expected to be idempotent on orderID.
type PaymentProvider interface {
	GetBalance(userID string) (float64, error)
	Hold(userID, orderID string, amount float64) error
	Release(userID, orderID string, amount float64) error
	Refund(userID, orderID string, amount float64) error
}
