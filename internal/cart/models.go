package cart

import "github.com/ahinestrog/mybookstore-checkout/internal/catalog"

// Item is a cart line: the book as it was when first added, plus quantity.
// Stock is not refreshed on later adds.
type Item struct {
	catalog.Book
	Quantity int `json:"quantity"`
}

func (it Item) LineTotal() float64 { return it.Price * float64(it.Quantity) }
