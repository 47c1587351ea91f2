package purchase

import (
	"errors"

	"github.com/ahinestrog/mybookstore-checkout/internal/cart"
)

const SuccessMessage = "Purchase completed successfully!"

var (
	ErrNoResults     = errors.New("No books found")
	ErrPaymentFailed = errors.New("Payment failed")
)

type Request struct {
	Query         string
	BookID        int64
	Quantity      int
	PaymentMethod string
	CouponCode    string // opcional
}

type Order struct {
	OrderID        string      `json:"orderId"`
	Items          []cart.Item `json:"items"`
	Total          float64     `json:"total"`
	PaymentMethod  string      `json:"paymentMethod"`
	Message        string      `json:"message"`
	LowStockAlerts []string    `json:"lowStockAlerts"`
}

// Result holds either an Order or an Error message, never both. Encoded as
// JSON it is the order's fields inline, or {"error": "..."}.
type Result struct {
	*Order
	Error string `json:"error,omitempty"`
}

func (r Result) OK() bool { return r.Order != nil && r.Error == "" }

// Stage is a step of CompletePurchase, used in logs.
type Stage string

const (
	StageSearching       Stage = "searching"
	StageCartUpdate      Stage = "cart_update"
	StagePricing         Stage = "pricing"
	StagePaying          Stage = "paying"
	StageInventoryUpdate Stage = "inventory_update"
	StageCompleted       Stage = "completed"
	StageFailed          Stage = "failed"
)
