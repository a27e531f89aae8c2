package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Thatkidtk/packtrack-pro/internal/domain"
)

// ItemRepository implements domain.ItemRepository using SQLite. Every query
// against existing rows includes the owning user_id in its predicate; a row
// that belongs to another user is indistinguishable from one that does not
// exist.
type ItemRepository struct {
	db *sql.DB
}

// NewItemRepository creates a new SQLite-backed ItemRepository.
func NewItemRepository(db *DB) *ItemRepository {
	return &ItemRepository{db: db.SqlDB}
}

func (r *ItemRepository) Create(ctx context.Context, item *domain.Item) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO items (user_id, name, box, category, description, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		item.UserID, item.Name, item.Box, item.Category, item.Description, now, now,
	)
	if err != nil {
		return fmt.Errorf("insert item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	item.ID = id
	item.CreatedAt = now
	item.UpdatedAt = now
	return nil
}

func (r *ItemRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Item, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, name, box, category, description, created_at, updated_at
		 FROM items WHERE user_id = ? ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		var it domain.Item
		if err := rows.Scan(&it.ID, &it.UserID, &it.Name, &it.Box, &it.Category,
			&it.Description, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *ItemRepository) Update(ctx context.Context, userID int64, item *domain.Item) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE items SET name = ?, box = ?, category = ?, description = ?, updated_at = ?
		 WHERE id = ? AND user_id = ?`,
		item.Name, item.Box, item.Category, item.Description, now, item.ID, userID,
	)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}

	item.UserID = userID
	item.UpdatedAt = now
	return nil
}

func (r *ItemRepository) Delete(ctx context.Context, userID, id int64) error {
	affected, err := r.DeleteOwned(ctx, userID, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ItemRepository) DeleteOwned(ctx context.Context, userID, id int64) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM items WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return 0, fmt.Errorf("delete item: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("get rows affected: %w", err)
	}
	return affected, nil
}

// CreateBatch inserts all items in one transaction. If any insert fails the
// transaction is rolled back and none of the rows exist afterwards.
func (r *ItemRepository) CreateBatch(ctx context.Context, userID int64, items []domain.Item) ([]domain.Item, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO items (user_id, name, box, category, description, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return nil, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	created := make([]domain.Item, 0, len(items))
	for _, it := range items {
		result, err := stmt.ExecContext(ctx, userID, it.Name, it.Box, it.Category, it.Description, now, now)
		if err != nil {
			return nil, fmt.Errorf("insert item %q: %w", it.Name, err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("get last insert id: %w", err)
		}

		it.ID = id
		it.UserID = userID
		it.CreatedAt = now
		it.UpdatedAt = now
		created = append(created, it)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return created, nil
}

var _ domain.ItemRepository = (*ItemRepository)(nil)
