package purchase

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/ahinestrog/mybookstore-checkout/internal/cart"
	"github.com/ahinestrog/mybookstore-checkout/internal/catalog"
	"github.com/ahinestrog/mybookstore-checkout/internal/inventory"
	"github.com/ahinestrog/mybookstore-checkout/internal/payment"
	"github.com/ahinestrog/mybookstore-checkout/internal/pricing"
)

type Events interface {
	Publish(ctx context.Context, routingKey string, body []byte) error
}

type Config struct {
	LowStockThreshold int
	SearchCacheSize   int
}

func DefaultConfig() Config {
	return Config{LowStockThreshold: 2, SearchCacheSize: 128}
}

// Store owns one catalog, one cart and one payment gateway. It is meant for a
// single caller at a time; nothing here is locked.
type Store struct {
	cfg       Config
	books     catalog.Repository
	searcher  *catalog.Searcher
	cart      *cart.Cart
	inventory *inventory.Service
	gateway   payment.Gateway
	events    Events
	log       zerolog.Logger
}

// New builds a Store. events may be nil.
func New(books catalog.Repository, gateway payment.Gateway, cfg Config, events Events, log zerolog.Logger) (*Store, error) {
	searcher, err := catalog.NewSearcher(books, cfg.SearchCacheSize)
	if err != nil { return nil, err }
	return &Store{
		cfg:       cfg,
		books:     books,
		searcher:  searcher,
		cart:      cart.New(books),
		inventory: inventory.NewService(books, log),
		gateway:   gateway,
		events:    events,
		log:       log,
	}, nil
}

func (s *Store) Catalog(ctx context.Context) ([]catalog.Book, error) { return s.books.List(ctx) }

func (s *Store) SearchBooks(ctx context.Context, query string) ([]catalog.Book, error) {
	return s.searcher.Search(ctx, query)
}

func (s *Store) AddToCart(ctx context.Context, bookID int64, quantity int) ([]cart.Item, error) {
	return s.cart.Add(ctx, bookID, quantity)
}

// Cart returns a snapshot of the current cart.
func (s *Store) Cart() []cart.Item { return s.cart.Items() }

func (s *Store) CalculateTotal(lines []cart.Item) float64 { return pricing.CalculateTotal(lines) }

func (s *Store) ApplyDiscount(total float64, couponCode string) float64 {
	return pricing.ApplyDiscount(total, couponCode)
}

func (s *Store) ProcessPayment(ctx context.Context, total float64, method string) payment.Result {
	return s.gateway.Charge(ctx, total, method)
}

func (s *Store) UpdateInventory(ctx context.Context, lines []cart.Item) ([]catalog.Book, error) {
	return s.inventory.Update(ctx, lines)
}
