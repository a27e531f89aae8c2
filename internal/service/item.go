package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Thatkidtk/packtrack-pro/internal/domain"
)

// MaxBulkItems caps how many entries a single bulk create may carry.
const MaxBulkItems = 100

// DefaultCategory is assigned to items created without a category.
const DefaultCategory = "Uncategorized"

// ItemInput is the caller-supplied shape of an item, before validation.
type ItemInput struct {
	Name        string
	Box         string
	Category    string
	Description string
}

// ItemService handles item CRUD and bulk operations. Every method takes the
// caller's user ID as its authorization scope; no item belonging to another
// user can be observed or affected through any path here.
type ItemService struct {
	items domain.ItemRepository
}

// NewItemService creates a new ItemService.
func NewItemService(items domain.ItemRepository) *ItemService {
	return &ItemService{items: items}
}

// Create validates and inserts a single item.
func (s *ItemService) Create(ctx context.Context, userID int64, input ItemInput) (*domain.Item, error) {
	item, err := validateItem(input)
	if err != nil {
		return nil, err
	}
	item.UserID = userID

	if err := s.items.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}
	return item, nil
}

// List returns all of the user's items, newest first.
func (s *ItemService) List(ctx context.Context, userID int64) ([]domain.Item, error) {
	return s.items.ListByUser(ctx, userID)
}

// Update validates the input and updates the item with the given ID, if it
// belongs to the user. Returns ErrNotFound otherwise.
func (s *ItemService) Update(ctx context.Context, userID, id int64, input ItemInput) (*domain.Item, error) {
	item, err := validateItem(input)
	if err != nil {
		return nil, err
	}
	item.ID = id

	if err := s.items.Update(ctx, userID, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Delete removes the item with the given ID, if it belongs to the user.
// Returns ErrNotFound otherwise.
func (s *ItemService) Delete(ctx context.Context, userID, id int64) error {
	return s.items.Delete(ctx, userID, id)
}

// BulkCreate inserts up to MaxBulkItems items in one transaction. Entries
// that fail validation are dropped silently before the transaction starts;
// the returned slice holds exactly the rows that were committed. An empty or
// oversized batch is rejected outright.
func (s *ItemService) BulkCreate(ctx context.Context, userID int64, inputs []ItemInput) ([]domain.Item, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("%w: items array required", domain.ErrInvalidInput)
	}
	if len(inputs) > MaxBulkItems {
		return nil, fmt.Errorf("%w: maximum %d items per bulk operation", domain.ErrInvalidInput, MaxBulkItems)
	}

	valid := make([]domain.Item, 0, len(inputs))
	for _, input := range inputs {
		item, err := validateItem(input)
		if err != nil {
			slog.Debug("dropping invalid bulk entry", "name", input.Name, "error", err)
			continue
		}
		valid = append(valid, *item)
	}
	if len(valid) == 0 {
		return []domain.Item{}, nil
	}

	created, err := s.items.CreateBatch(ctx, userID, valid)
	if err != nil {
		return nil, fmt.Errorf("bulk create: %w", err)
	}
	return created, nil
}

// BulkDelete attempts to delete every given ID and returns how many rows
// were actually removed. The attempts run concurrently and may complete in
// any order; the count is aggregated only after all of them have resolved,
// by draining the results channel exactly once per attempt. Individual
// failures are logged and excluded from the count but never abort the rest.
// This is deliberately best-effort, in contrast to BulkCreate's single
// transaction.
func (s *ItemService) BulkDelete(ctx context.Context, userID int64, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, fmt.Errorf("%w: item IDs array required", domain.ErrInvalidInput)
	}

	results := make(chan int64, len(ids))
	for _, id := range ids {
		go func(id int64) {
			n, err := s.items.DeleteOwned(ctx, userID, id)
			if err != nil {
				slog.Error("bulk delete item", "user_id", userID, "item_id", id, "error", err)
				results <- 0
				return
			}
			results <- n
		}(id)
	}

	var deleted int64
	for range ids {
		deleted += <-results
	}
	return deleted, nil
}

// validateItem trims and checks a single item input, returning the first
// violated rule. Category defaults to DefaultCategory when absent.
func validateItem(input ItemInput) (*domain.Item, error) {
	name := strings.TrimSpace(input.Name)
	if len(name) < 1 || len(name) > 200 {
		return nil, fmt.Errorf("%w: item name required (max 200 chars)", domain.ErrInvalidInput)
	}

	box := strings.TrimSpace(input.Box)
	if len(box) < 1 || len(box) > 100 {
		return nil, fmt.Errorf("%w: box name required (max 100 chars)", domain.ErrInvalidInput)
	}

	category := strings.TrimSpace(input.Category)
	if len(category) > 50 {
		return nil, fmt.Errorf("%w: category must be at most 50 characters", domain.ErrInvalidInput)
	}
	if category == "" {
		category = DefaultCategory
	}

	description := strings.TrimSpace(input.Description)
	if len(description) > 500 {
		return nil, fmt.Errorf("%w: description must be at most 500 characters", domain.ErrInvalidInput)
	}

	return &domain.Item{
		Name:        name,
		Box:         box,
		Category:    category,
		Description: description,
	}, nil
}
