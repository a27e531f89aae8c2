package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Thatkidtk/packtrack-pro/internal/domain"
	"github.com/Thatkidtk/packtrack-pro/internal/service"
)

// ItemHandler handles item HTTP requests. All routes here sit behind
// RequireAuth, so IdentityFromContext is always set.
type ItemHandler struct {
	items *service.ItemService
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(items *service.ItemService) *ItemHandler {
	return &ItemHandler{items: items}
}

// itemRequest is the JSON shape shared by create, update, and bulk create.
type itemRequest struct {
	Name        string `json:"name"`
	Box         string `json:"box"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

func (req itemRequest) input() service.ItemInput {
	return service.ItemInput{
		Name:        req.Name,
		Box:         req.Box,
		Category:    req.Category,
		Description: req.Description,
	}
}

// HandleList returns all of the caller's items, newest first.
// GET /api/items
// Response: [{...}, ...]
func (h *ItemHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	identity := IdentityFromContext(r.Context())

	items, err := h.items.List(r.Context(), identity.UserID)
	if err != nil {
		slog.Error("list items", "user_id", identity.UserID, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch items")
		return
	}

	writeJSON(w, http.StatusOK, toItemDTOs(items))
}

// HandleCreate inserts a single item.
// POST /api/items
// Request:  {"name":"...","box":"...","category":"...","description":"..."}
// Response: the created item row
func (h *ItemHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	identity := IdentityFromContext(r.Context())

	var req itemRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	item, err := h.items.Create(r.Context(), identity.UserID, req.input())
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, validationMessage(err))
			return
		}
		slog.Error("create item", "user_id", identity.UserID, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to create item")
		return
	}

	writeJSON(w, http.StatusOK, toItemDTO(item))
}

// HandleUpdate updates the caller's item with the given ID.
// PUT /api/items/{id}
// Response: {"success":true}
func (h *ItemHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	identity := IdentityFromContext(r.Context())

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Numeric item ID required")
		return
	}

	var req itemRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if _, err := h.items.Update(r.Context(), identity.UserID, id, req.input()); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, validationMessage(err))
			return
		}
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Item not found")
			return
		}
		slog.Error("update item", "user_id", identity.UserID, "item_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to update item")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// HandleDelete removes the caller's item with the given ID.
// DELETE /api/items/{id}
// Response: {"success":true}
func (h *ItemHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	identity := IdentityFromContext(r.Context())

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Numeric item ID required")
		return
	}

	if err := h.items.Delete(r.Context(), identity.UserID, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Item not found")
			return
		}
		slog.Error("delete item", "user_id", identity.UserID, "item_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to delete item")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// HandleBulkCreate inserts up to 100 items in one transaction. Invalid
// entries are dropped; the response lists exactly the committed rows.
// POST /api/items/bulk
// Request:  {"items":[{...}, ...]}
// Response: {"success":true,"created":N,"items":[...]}
func (h *ItemHandler) HandleBulkCreate(w http.ResponseWriter, r *http.Request) {
	identity := IdentityFromContext(r.Context())

	var req struct {
		Items []itemRequest `json:"items"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	inputs := make([]service.ItemInput, len(req.Items))
	for i, it := range req.Items {
		inputs[i] = it.input()
	}

	created, err := h.items.BulkCreate(r.Context(), identity.UserID, inputs)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, validationMessage(err))
			return
		}
		slog.Error("bulk create items", "user_id", identity.UserID, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to create items")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"created": len(created),
		"items":   toItemDTOs(created),
	})
}

// HandleBulkDelete deletes every listed ID that belongs to the caller and
// reports how many rows were removed. IDs may arrive as JSON numbers or
// numeric strings; anything else is dropped before execution.
// DELETE /api/items/bulk
// Request:  {"ids":[1,2,"3",...]}
// Response: {"success":true,"deleted":N}
func (h *ItemHandler) HandleBulkDelete(w http.ResponseWriter, r *http.Request) {
	identity := IdentityFromContext(r.Context())

	var req struct {
		IDs []any `json:"ids"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if len(req.IDs) == 0 {
		writeError(w, http.StatusBadRequest, "Item IDs array required")
		return
	}

	ids := coerceIDs(req.IDs)
	if len(ids) == 0 {
		writeError(w, http.StatusBadRequest, "Valid numeric IDs required")
		return
	}

	deleted, err := h.items.BulkDelete(r.Context(), identity.UserID, ids)
	if err != nil {
		slog.Error("bulk delete items", "user_id", identity.UserID, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to delete items")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"deleted": deleted,
	})
}

// coerceIDs converts raw JSON values to integer IDs, dropping anything
// non-numeric.
func coerceIDs(raw []any) []int64 {
	ids := make([]int64, 0, len(raw))
	for _, v := range raw {
		switch n := v.(type) {
		case float64:
			if n == float64(int64(n)) {
				ids = append(ids, int64(n))
			}
		case string:
			if id, err := strconv.ParseInt(n, 10, 64); err == nil {
				ids = append(ids, id)
			}
		}
	}
	return ids
}
