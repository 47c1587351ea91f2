package payment

import (
	"context"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

const DefaultSuccessRate = 0.8

type Gateway interface {
	Charge(ctx context.Context, amount float64, method string) Result
}

// GatewayFunc lets a plain function act as a Gateway.
type GatewayFunc func(ctx context.Context, amount float64, method string) Result

func (f GatewayFunc) Charge(ctx context.Context, amount float64, method string) Result {
	return f(ctx, amount, method)
}

// Simulated approves a charge with probability SuccessRate. Not safe for
// concurrent use because *rand.Rand is not.
type Simulated struct {
	SuccessRate float64
	rnd         *rand.Rand
}

// NewSimulated seeds from the clock when seed is 0.
func NewSimulated(successRate float64, seed int64) *Simulated {
	if seed == 0 { seed = time.Now().UnixNano() }
	return &Simulated{SuccessRate: successRate, rnd: rand.New(rand.NewSource(seed))}
}

func (s *Simulated) Charge(ctx context.Context, amount float64, method string) Result {
	res := Result{PaymentMethod: method, Amount: amount}
	if s.rnd.Float64() < s.SuccessRate {
		res.Success = true
		res.TransactionID = NewTransactionID()
	}
	return res
}

func NewTransactionID() string { return "TXN-" + uuid.NewString() }

// Approve and Decline are fixed gateways for tests and dry runs.
var (
	Approve Gateway = GatewayFunc(func(_ context.Context, amount float64, method string) Result {
		return Result{Success: true, TransactionID: NewTransactionID(), PaymentMethod: method, Amount: amount}
	})
	Decline Gateway = GatewayFunc(func(_ context.Context, amount float64, method string) Result {
		return Result{PaymentMethod: method, Amount: amount}
	})
)
