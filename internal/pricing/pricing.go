package pricing

import (
	"math"
	"strings"

	"github.com/ahinestrog/mybookstore-checkout/internal/cart"
)

const TaxRate = 0.10

// Coupons maps an upper-case coupon code to its discount rate.
var Coupons = map[string]float64{
	"SAVE10": 0.10,
	"SAVE20": 0.20,
}

// CalculateTotal returns the subtotal of lines plus tax, rounded to cents.
func CalculateTotal(lines []cart.Item) float64 {
	var subtotal float64
	for _, it := range lines { subtotal += it.LineTotal() }
	return Round2(subtotal * (1 + TaxRate))
}

// ApplyDiscount leaves total untouched when code is empty. Unknown codes
// discount nothing.
func ApplyDiscount(total float64, code string) float64 {
	if code == "" { return total }
	rate := Coupons[strings.ToUpper(code)]
	return Round2(total * (1 - rate))
}

// Round2 rounds half away from zero to two decimals.
func Round2(x float64) float64 { return math.Round(x*100) / 100 }
