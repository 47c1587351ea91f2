package payment

type Result struct {
	Success       bool    `json:"success"`
	TransactionID string  `json:"transactionId,omitempty"`
	PaymentMethod string  `json:"paymentMethod"`
	Amount        float64 `json:"amount"`
}

type State int

const (
	StateUnspecified State = iota
	StateSucceeded
	StateFailed
)

func (r Result) State() State {
	if r.Success { return StateSucceeded }
	return StateFailed
}

func (s State) String() string {
	switch s {
	case StateSucceeded:
		return "SUCCEEDED"
	case StateFailed:
		return "FAILED"
	default:
		return "UNSPECIFIED"
	}
}
