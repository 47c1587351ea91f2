package events

import (
	"encoding/json"
	"time"
)

// Routing keys publicadas por el checkout.
const (
	RKPurchaseCompleted = "purchase.completed"
	RKPurchaseFailed    = "purchase.failed"
	RKStockLow          = "inventory.stock.low"
)

type PurchaseCompleted struct {
	OrderID       string    `json:"order_id"`
	Items         []ItemEvt `json:"items"`
	Total         float64   `json:"total"`
	PaymentMethod string    `json:"payment_method"`
	CouponCode    string    `json:"coupon_code,omitempty"`
}

type ItemEvt struct {
	BookID    int64   `json:"book_id"`
	Title     string  `json:"title"`
	Qty       int     `json:"qty"`
	UnitPrice float64 `json:"unit_price"`
}

type PurchaseFailed struct {
	Query  string `json:"query"`
	BookID int64  `json:"book_id"`
	Qty    int    `json:"qty"`
	Reason string `json:"reason"`
}

type StockLow struct {
	BookID  int64  `json:"book_id"`
	Title   string `json:"title"`
	Stock   int    `json:"stock"`
	Message string `json:"message"`
}

type Envelope struct {
	Type      string          `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   json.RawMessage `json:"payload"`
}

// Encode wraps payload in an Envelope tagged with the routing key.
func Encode(key string, payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil { return nil, err }
	return json.Marshal(Envelope{Type: key, Timestamp: time.Now().UTC(), Payload: raw})
}
