package domain

import (
	"context"
	"time"
)

// Item is a single inventory record. Items belong to exactly one user and
// are grouped by a free-text box label.
type Item struct {
	ID          int64
	UserID      int64
	Name        string
	Box         string
	Category    string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ItemRepository defines persistence operations for items. Every operation
// that touches existing rows carries the owning user's ID so a caller can
// never observe or affect another user's items.
type ItemRepository interface {
	Create(ctx context.Context, item *Item) error
	ListByUser(ctx context.Context, userID int64) ([]Item, error)
	// Update modifies name, box, category, and description of the row
	// matching (id, userID). Returns ErrNotFound when no such row exists,
	// whether because the ID is unknown or belongs to another user.
	Update(ctx context.Context, userID int64, item *Item) error
	// Delete removes the row matching (id, userID). Returns ErrNotFound
	// when no such row exists.
	Delete(ctx context.Context, userID, id int64) error
	// CreateBatch inserts all items in a single transaction. Either every
	// item is committed or, if the transaction fails, none are.
	CreateBatch(ctx context.Context, userID int64, items []Item) ([]Item, error)
	// DeleteOwned removes the row matching (id, userID) and reports the
	// number of rows removed (0 or 1). Unlike Delete it does not map a
	// miss to ErrNotFound; the bulk path aggregates counts instead.
	DeleteOwned(ctx context.Context, userID, id int64) (int64, error)
}
