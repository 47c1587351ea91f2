package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ahinestrog/mybookstore-checkout/internal/cart"
	"github.com/ahinestrog/mybookstore-checkout/internal/catalog"
)

var (
	ErrNotInInventory = errors.New("Book not found in inventory")
	ErrOutOfStock     = errors.New("out of stock")
)

type OutOfStockError struct {
	BookID int64
	Title  string
	Need   int
	Avail  int
}

func (e *OutOfStockError) Error() string { return e.Title + " is out of stock" }

func (e *OutOfStockError) Is(target error) bool { return target == ErrOutOfStock }

type Service struct {
	repo catalog.Repository
	log  zerolog.Logger
}

func NewService(repo catalog.Repository, log zerolog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Update decrements stock line by line in cart order. There is no rollback:
// lines processed before a failing one stay decremented.
func (s *Service) Update(ctx context.Context, lines []cart.Item) ([]catalog.Book, error) {
	for _, it := range lines {
		book, err := s.repo.Get(ctx, it.ID)
		if errors.Is(err, catalog.ErrNotFound) { return nil, ErrNotInInventory }
		if err != nil { return nil, fmt.Errorf("load book %d: %w", it.ID, err) }

		if book.Stock < it.Quantity {
			return nil, &OutOfStockError{BookID: book.ID, Title: book.Title, Need: it.Quantity, Avail: book.Stock}
		}
		left := book.Stock - it.Quantity
		if err := s.repo.SetStock(ctx, book.ID, left); err != nil {
			return nil, fmt.Errorf("update stock %d: %w", book.ID, err)
		}
		s.log.Debug().Int64("book", book.ID).Int("qty", it.Quantity).Int("left", left).Msg("stock decremented")
	}
	return s.repo.List(ctx)
}
