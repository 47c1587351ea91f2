// Operaciones de carrito
package cart

import (
	"context"
	"errors"

	"github.com/ahinestrog/mybookstore-checkout/internal/catalog"
)

var (
	ErrBookNotFound    = errors.New("Book not found")
	ErrNotEnoughStock  = errors.New("Not enough stock")
	ErrInvalidQuantity = errors.New("Quantity must be positive")
)

// Cart is not safe for concurrent use.
type Cart struct {
	books catalog.Repository
	items []Item
}

func New(books catalog.Repository) *Cart { return &Cart{books: books} }

// Add validates quantity against the current catalog stock only, not against
// what is already in the cart, and merges repeated adds into one line.
func (c *Cart) Add(ctx context.Context, bookID int64, quantity int) ([]Item, error) {
	if quantity <= 0 { return nil, ErrInvalidQuantity }
	book, err := c.books.Get(ctx, bookID)
	if errors.Is(err, catalog.ErrNotFound) { return nil, ErrBookNotFound }
	if err != nil { return nil, err }
	if book.Stock < quantity { return nil, ErrNotEnoughStock }

	if i := c.index(bookID); i >= 0 {
		c.items[i].Quantity += quantity
	} else {
		c.items = append(c.items, Item{Book: book, Quantity: quantity})
	}
	return c.Items(), nil
}

// Items returns a snapshot of the lines in insertion order.
func (c *Cart) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) Len() int { return len(c.items) }

func (c *Cart) Clear() { c.items = nil }

func (c *Cart) index(bookID int64) int {
	for i := range c.items {
		if c.items[i].ID == bookID { return i }
	}
	return -1
}
