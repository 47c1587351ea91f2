package catalog

import (
	"context"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Searcher matches queries against title and author, case-insensitively.
// Only the matching IDs are cached; records are always re-read so stock is
// current.
type Searcher struct {
	repo  Repository
	cache *lru.Cache[string, []int64]
}

// NewSearcher with cacheSize <= 0 disables the query cache.
func NewSearcher(repo Repository, cacheSize int) (*Searcher, error) {
	s := &Searcher{repo: repo}
	if cacheSize > 0 {
		c, err := lru.New[string, []int64](cacheSize)
		if err != nil { return nil, err }
		s.cache = c
	}
	return s, nil
}

func (s *Searcher) Search(ctx context.Context, query string) ([]Book, error) {
	q := strings.ToLower(query)
	books, err := s.repo.List(ctx)
	if err != nil { return nil, err }

	if s.cache != nil {
		if ids, ok := s.cache.Get(q); ok {
			return pick(books, ids), nil
		}
	}

	out := make([]Book, 0)
	ids := make([]int64, 0)
	for _, b := range books {
		if Matches(b, q) {
			out = append(out, b)
			ids = append(ids, b.ID)
		}
	}
	if s.cache != nil { s.cache.Add(q, ids) }
	return out, nil
}

// Matches reports whether lowerQuery is a substring of the lower-cased title
// or author.
func Matches(b Book, lowerQuery string) bool {
	return strings.Contains(strings.ToLower(b.Title), lowerQuery) ||
		strings.Contains(strings.ToLower(b.Author), lowerQuery)
}

func pick(books []Book, ids []int64) []Book {
	want := make(map[int64]struct{}, len(ids))
	for _, id := range ids { want[id] = struct{}{} }
	out := make([]Book, 0, len(ids))
	for _, b := range books {
		if _, ok := want[b.ID]; ok { out = append(out, b) }
	}
	return out
}
