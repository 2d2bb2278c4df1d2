package kafka

// Topics consumed by the storefront and notification services.
const (
	OrderEventsTopic   = "order-events"
	DisputeEventsTopic = "dispute-events"
)

type OrderEvent struct {
	OrderID      string  `json:"order_id"`
	ListingID    string  `json:"listing_id"`
	BuyerID      string  `json:"buyer_id"`
	SellerID     string  `json:"seller_id"`
	Status       string  `json:"status"`
	CancelReason string  `json:"cancel_reason,omitempty"`
	Price        float64 `json:"price"`
	Currency     string  `json:"currency"`
}
