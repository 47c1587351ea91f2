package catalog

import "errors"

var ErrNotFound = errors.New("book not found")

type Book struct {
	ID     int64   `json:"id"`
	Title  string  `json:"title"`
	Author string  `json:"author"`
	Price  float64 `json:"price"`
	Stock  int     `json:"stock"`
}

// Catálogo inicial de la tienda.
func SeedBooks() []Book {
	return []Book{
		{ID: 1, Title: "Eloquent JavaScript", Author: "Marijn Haverbeke", Price: 32, Stock: 6},
		{ID: 2, Title: "Star Wars", Author: "Jonathan Rinzler", Price: 40, Stock: 5},
		{ID: 3, Title: "Pippi Långstrump", Author: "Astrid Lindgren", Price: 38, Stock: 7},
		{ID: 4, Title: "Pettson får julbesök", Author: "Sven Nordqvist", Price: 28, Stock: 8},
		{ID: 5, Title: "The Godfather", Author: "Mark Seal", Price: 30, Stock: 9},
	}
}
