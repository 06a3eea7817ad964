package bookmarks

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/bookshelf/internal/dbx"
)

// SQLiteRepository implements Repository over the saved_book_ids table.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) SaveBookID(ctx context.Context, bookID string) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO saved_book_ids (book_id) VALUES (?) ON CONFLICT(book_id) DO NOTHING`, bookID)
	if err != nil {
		return fmt.Errorf("failed to save book id %s: %w", bookID, err)
	}
	return nil
}

func (r *SQLiteRepository) RemoveBookID(ctx context.Context, bookID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM saved_book_ids WHERE book_id = ?`, bookID); err != nil {
		return fmt.Errorf("failed to remove book id %s: %w", bookID, err)
	}
	return nil
}

func (r *SQLiteRepository) SavedBookIDs(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT book_id FROM saved_book_ids ORDER BY book_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list book ids: %w", err)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan book id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate book ids: %w", err)
	}
	return ids, nil
}

func (r *SQLiteRepository) Replace(ctx context.Context, ids []string) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM saved_book_ids`); err != nil {
			return fmt.Errorf("failed to clear book ids: %w", err)
		}
		for _, id := range ids {
			if _, err := tx.ExecContext(ctx, `INSERT INTO saved_book_ids (book_id) VALUES (?) ON CONFLICT(book_id) DO NOTHING`, id); err != nil {
				return fmt.Errorf("failed to save book id %s: %w", id, err)
			}
		}
		return nil
	})
}
