package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Thatkidtk/packtrack-pro/internal/domain"
	"github.com/Thatkidtk/packtrack-pro/internal/repository/sqlite"
	"github.com/Thatkidtk/packtrack-pro/internal/service"
)

func newTestItemService(t *testing.T) (*service.ItemService, *sqlite.DB) {
	t.Helper()
	db := newTestDB(t)
	return service.NewItemService(db.Items()), db
}

func createItemUser(t *testing.T, db *sqlite.DB, email string) int64 {
	t.Helper()
	user := &domain.User{Name: "Owner", Email: email, PasswordHash: "hash"}
	if err := db.Users().Create(context.Background(), user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user.ID
}

func TestItemService_Create(t *testing.T) {
	items, db := newTestItemService(t)
	userID := createItemUser(t, db, "create@example.com")
	ctx := context.Background()

	item, err := items.Create(ctx, userID, service.ItemInput{
		Name: "  Rain jacket  ",
		Box:  " Closet 2 ",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if item.Name != "Rain jacket" || item.Box != "Closet 2" {
		t.Fatalf("expected trimmed fields, got %q / %q", item.Name, item.Box)
	}
	if item.Category != service.DefaultCategory {
		t.Fatalf("expected default category, got %q", item.Category)
	}
	if item.ID == 0 {
		t.Fatal("expected generated ID")
	}
}

func TestItemService_Create_Validation(t *testing.T) {
	items, db := newTestItemService(t)
	userID := createItemUser(t, db, "validate@example.com")
	ctx := context.Background()

	tests := []struct {
		name  string
		input service.ItemInput
	}{
		{"missing name", service.ItemInput{Box: "Box"}},
		{"blank name", service.ItemInput{Name: "   ", Box: "Box"}},
		{"long name", service.ItemInput{Name: strings.Repeat("x", 201), Box: "Box"}},
		{"missing box", service.ItemInput{Name: "Thing"}},
		{"long box", service.ItemInput{Name: "Thing", Box: strings.Repeat("x", 101)}},
		{"long category", service.ItemInput{Name: "Thing", Box: "Box", Category: strings.Repeat("x", 51)}},
		{"long description", service.ItemInput{Name: "Thing", Box: "Box", Description: strings.Repeat("x", 501)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := items.Create(ctx, userID, tt.input)
			if !errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestItemService_RoundTrip(t *testing.T) {
	items, db := newTestItemService(t)
	userID := createItemUser(t, db, "roundtrip@example.com")
	ctx := context.Background()

	created, err := items.Create(ctx, userID, service.ItemInput{Name: "Charger", Box: "Desk"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	listed, err := items.List(ctx, userID)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != created.ID {
		t.Fatalf("expected the created item back, got %+v", listed)
	}

	if _, err := items.Update(ctx, userID, created.ID, service.ItemInput{Name: "USB-C charger", Box: "Desk"}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	listed, _ = items.List(ctx, userID)
	if listed[0].Name != "USB-C charger" {
		t.Fatalf("update not reflected: %+v", listed[0])
	}

	if err := items.Delete(ctx, userID, created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	listed, _ = items.List(ctx, userID)
	if len(listed) != 0 {
		t.Fatalf("expected empty list after delete, got %d items", len(listed))
	}
}

func TestItemService_TenantIsolation(t *testing.T) {
	items, db := newTestItemService(t)
	u1 := createItemUser(t, db, "u1@example.com")
	u2 := createItemUser(t, db, "u2@example.com")
	ctx := context.Background()

	item, err := items.Create(ctx, u1, service.ItemInput{Name: "Private", Box: "Safe"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// u2 cannot see, update, or delete u1's item.
	listed, err := items.List(ctx, u2)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(listed) != 0 {
		t.Fatalf("u2 can see u1's items: %+v", listed)
	}

	if _, err := items.Update(ctx, u2, item.ID, service.ItemInput{Name: "Stolen", Box: "Bag"}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for cross-user update, got %v", err)
	}
	if err := items.Delete(ctx, u2, item.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for cross-user delete, got %v", err)
	}
}

func TestItemService_BulkCreate_DropsInvalidEntries(t *testing.T) {
	items, db := newTestItemService(t)
	userID := createItemUser(t, db, "bulk@example.com")
	ctx := context.Background()

	created, err := items.BulkCreate(ctx, userID, []service.ItemInput{
		{Name: "Tent", Box: "Camping"},
		{Name: "Stove", Box: "Camping"},
		{Name: "Lantern", Box: "Camping"},
		{Box: "Camping"}, // missing name, silently dropped
	})
	if err != nil {
		t.Fatalf("BulkCreate: %v", err)
	}
	if len(created) != 3 {
		t.Fatalf("expected 3 created items, got %d", len(created))
	}

	listed, _ := items.List(ctx, userID)
	if len(listed) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(listed))
	}
}

func TestItemService_BulkCreate_AllInvalid(t *testing.T) {
	items, db := newTestItemService(t)
	userID := createItemUser(t, db, "allinvalid@example.com")

	created, err := items.BulkCreate(context.Background(), userID, []service.ItemInput{
		{Box: "No name"},
		{Name: "No box"},
	})
	if err != nil {
		t.Fatalf("BulkCreate: %v", err)
	}
	if len(created) != 0 {
		t.Fatalf("expected zero created items, got %d", len(created))
	}
}

func TestItemService_BulkCreate_BatchLimits(t *testing.T) {
	items, db := newTestItemService(t)
	userID := createItemUser(t, db, "limits@example.com")
	ctx := context.Background()

	if _, err := items.BulkCreate(ctx, userID, nil); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty batch, got %v", err)
	}

	oversized := make([]service.ItemInput, service.MaxBulkItems+1)
	for i := range oversized {
		oversized[i] = service.ItemInput{Name: "Item", Box: "Box"}
	}
	if _, err := items.BulkCreate(ctx, userID, oversized); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for oversized batch, got %v", err)
	}

	// Nothing may have been written by the rejected batches.
	listed, _ := items.List(ctx, userID)
	if len(listed) != 0 {
		t.Fatalf("rejected batches wrote %d rows", len(listed))
	}
}

func TestItemService_BulkDelete_CountsOnlyOwnedExisting(t *testing.T) {
	items, db := newTestItemService(t)
	owner := createItemUser(t, db, "bd-owner@example.com")
	other := createItemUser(t, db, "bd-other@example.com")
	ctx := context.Background()

	mine1, err := items.Create(ctx, owner, service.ItemInput{Name: "Mine 1", Box: "Box"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	mine2, err := items.Create(ctx, owner, service.ItemInput{Name: "Mine 2", Box: "Box"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	theirs, err := items.Create(ctx, other, service.ItemInput{Name: "Theirs", Box: "Box"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Two owned ids, one foreign id, one nonexistent id.
	deleted, err := items.BulkDelete(ctx, owner, []int64{mine1.ID, mine2.ID, theirs.ID, 99999})
	if err != nil {
		t.Fatalf("BulkDelete: %v", err)
	}
	if deleted != 2 {
		t.Fatalf("expected deleted=2, got %d", deleted)
	}

	// The foreign row must still exist.
	otherItems, _ := items.List(ctx, other)
	if len(otherItems) != 1 {
		t.Fatal("bulk delete removed another user's row")
	}
}

func TestItemService_BulkDelete_ManyConcurrentAttempts(t *testing.T) {
	items, db := newTestItemService(t)
	userID := createItemUser(t, db, "bd-many@example.com")
	ctx := context.Background()

	inputs := make([]service.ItemInput, 50)
	for i := range inputs {
		inputs[i] = service.ItemInput{Name: "Bulk item", Box: "Box"}
	}
	created, err := items.BulkCreate(ctx, userID, inputs)
	if err != nil {
		t.Fatalf("BulkCreate: %v", err)
	}

	ids := make([]int64, 0, len(created)+10)
	for _, it := range created {
		ids = append(ids, it.ID)
	}
	// Pad with ids that do not exist; they must not affect the count.
	for i := 0; i < 10; i++ {
		ids = append(ids, int64(100000+i))
	}

	deleted, err := items.BulkDelete(ctx, userID, ids)
	if err != nil {
		t.Fatalf("BulkDelete: %v", err)
	}
	if deleted != int64(len(created)) {
		t.Fatalf("expected deleted=%d, got %d", len(created), deleted)
	}

	listed, _ := items.List(ctx, userID)
	if len(listed) != 0 {
		t.Fatalf("expected all rows gone, %d remain", len(listed))
	}
}

func TestItemService_BulkDelete_EmptyIDs(t *testing.T) {
	items, db := newTestItemService(t)
	userID := createItemUser(t, db, "bd-empty@example.com")

	_, err := items.BulkDelete(context.Background(), userID, nil)
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
