package catalog

import (
	"context"
)

// Repository is the catalog store. List preserves catalog order.
type Repository interface {
	List(ctx context.Context) ([]Book, error)
	Get(ctx context.Context, id int64) (Book, error)
	SetStock(ctx context.Context, id int64, stock int) error
}

type memoryRepo struct {
	books []Book
}

// NewMemoryRepository keeps its own copy of books.
func NewMemoryRepository(books []Book) Repository {
	cp := make([]Book, len(books))
	copy(cp, books)
	return &memoryRepo{books: cp}
}

func (r *memoryRepo) List(ctx context.Context) ([]Book, error) {
	out := make([]Book, len(r.books))
	copy(out, r.books)
	return out, nil
}

func (r *memoryRepo) Get(ctx context.Context, id int64) (Book, error) {
	i := r.index(id)
	if i < 0 { return Book{}, ErrNotFound }
	return r.books[i], nil
}

func (r *memoryRepo) SetStock(ctx context.Context, id int64, stock int) error {
	i := r.index(id)
	if i < 0 { return ErrNotFound }
	r.books[i].Stock = stock
	return nil
}

func (r *memoryRepo) index(id int64) int {
	for i := range r.books {
		if r.books[i].ID == id { return i }
	}
	return -1
}
