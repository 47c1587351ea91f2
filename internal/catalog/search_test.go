package catalog

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func titles(books []Book) []string {
	out := make([]string, 0, len(books))
	for _, b := range books { out = append(out, b.Title) }
	return out
}

func TestSearch(t *testing.T) {
	s, err := NewSearcher(NewMemoryRepository(SeedBooks()), 16)
	require.NoError(t, err)

	tests := []struct {
		query string
		want  []string
	}{
		{"Eloquent", []string{"Eloquent JavaScript"}},
		{"eLoQuEnT", []string{"Eloquent JavaScript"}},
		{"lindgren", []string{"Pippi Långstrump"}},
		{"LÅNGSTRUMP", []string{"Pippi Långstrump"}},
		{"the", []string{"The Godfather"}},
		{"s", []string{"Eloquent JavaScript", "Star Wars", "Pippi Långstrump", "Pettson får julbesök", "The Godfather"}},
		{"Unknown Book", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got, err := s.Search(context.Background(), tt.query)
			require.NoError(t, err)
			assert.NotNil(t, got)
			assert.Equal(t, tt.want, titles(got))
		})
	}
}

func TestSearch_CachedResultsSeeCurrentStock(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository(SeedBooks())
	s, err := NewSearcher(repo, 4)
	require.NoError(t, err)

	first, err := s.Search(ctx, "pettson")
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, 8, first[0].Stock)

	require.NoError(t, repo.SetStock(ctx, 4, 2))

	second, err := s.Search(ctx, "PETTSON")
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, 2, second[0].Stock)
}

func TestSearch_NoCache(t *testing.T) {
	s, err := NewSearcher(NewMemoryRepository(SeedBooks()), 0)
	require.NoError(t, err)
	got, err := s.Search(context.Background(), "seal")
	require.NoError(t, err)
	assert.Equal(t, []string{"The Godfather"}, titles(got))
}

func TestSearch_Properties(t *testing.T) {
	s, err := NewSearcher(NewMemoryRepository(SeedBooks()), 8)
	require.NoError(t, err)
	all := SeedBooks()

	rapid.Check(t, func(t *rapid.T) {
		b := all[rapid.IntRange(0, len(all)-1).Draw(t, "book")]
		field := b.Title
		if rapid.Bool().Draw(t, "author") { field = b.Author }
		runes := []rune(field)
		i := rapid.IntRange(0, len(runes)-1).Draw(t, "start")
		j := rapid.IntRange(i+1, len(runes)).Draw(t, "end")
		q := string(runes[i:j])
		if rapid.Bool().Draw(t, "upper") { q = strings.ToUpper(q) }

		got, err := s.Search(context.Background(), q)
		if err != nil { t.Fatalf("search: %v", err) }
		found := false
		for _, g := range got {
			if !Matches(g, strings.ToLower(q)) {
				t.Fatalf("%q returned non-matching %q", q, g.Title)
			}
			if g.ID == b.ID { found = true }
		}
		if !found { t.Fatalf("%q did not return %q", q, b.Title) }
	})
}
