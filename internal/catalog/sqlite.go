package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite" // driver 100% Go
)

// DefaultSQLiteDSN is a private in-memory database; it lives as long as the
// single pooled connection does.
const DefaultSQLiteDSN = ":memory:"

const schema = `
CREATE TABLE IF NOT EXISTS books(
  id     INTEGER PRIMARY KEY,
  title  TEXT    NOT NULL,
  author TEXT    NOT NULL,
  price  REAL    NOT NULL,
  stock  INTEGER NOT NULL DEFAULT 0
);
`

type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository opens dsn, migrates the schema and seeds books that are
// not present yet.
func NewSQLiteRepository(ctx context.Context, dsn string, seed []Book) (*SQLiteRepository, error) {
	if dsn == "" { dsn = DefaultSQLiteDSN }
	db, err := sql.Open("sqlite", dsn)
	if err != nil { return nil, fmt.Errorf("open catalog db: %w", err) }
	// una sola conexión: con :memory: cada conexión es una base distinta
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	r := &SQLiteRepository{db: db}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate catalog: %w", err)
	}
	if err := r.seed(ctx, seed); err != nil {
		db.Close()
		return nil, fmt.Errorf("seed catalog: %w", err)
	}
	return r, nil
}

func (r *SQLiteRepository) Close() error { return r.db.Close() }

func (r *SQLiteRepository) seed(ctx context.Context, books []Book) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil { return err }
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO books(id,title,author,price,stock) VALUES(?,?,?,?,?)
ON CONFLICT(id) DO NOTHING`)
	if err != nil { return err }
	defer stmt.Close()

	for _, b := range books {
		if _, err := stmt.ExecContext(ctx, b.ID, b.Title, b.Author, b.Price, b.Stock); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *SQLiteRepository) List(ctx context.Context) ([]Book, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id,title,author,price,stock FROM books ORDER BY id`)
	if err != nil { return nil, err }
	defer rows.Close()

	var out []Book
	for rows.Next() {
		var b Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.Price, &b.Stock); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) Get(ctx context.Context, id int64) (Book, error) {
	var b Book
	err := r.db.QueryRowContext(ctx, `
		SELECT id,title,author,price,stock FROM books WHERE id=?`, id).
		Scan(&b.ID, &b.Title, &b.Author, &b.Price, &b.Stock)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Book{}, ErrNotFound
		}
		return Book{}, err
	}
	return b, nil
}

func (r *SQLiteRepository) SetStock(ctx context.Context, id int64, stock int) error {
	res, err := r.db.ExecContext(ctx, `UPDATE books SET stock=? WHERE id=?`, stock, id)
	if err != nil { return err }
	n, err := res.RowsAffected()
	if err != nil { return err }
	if n == 0 { return ErrNotFound }
	return nil
}
