package handler

import (
	"time"

	"github.com/Thatkidtk/packtrack-pro/internal/domain"
)

// UserDTO is the JSON representation of a user. Password material never
// crosses this boundary.
type UserDTO struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func toUserDTO(u *domain.User) UserDTO {
	return UserDTO{ID: u.ID, Name: u.Name, Email: u.Email}
}

func identityDTO(id *domain.Identity) UserDTO {
	return UserDTO{ID: id.UserID, Name: id.Name, Email: id.Email}
}

// ItemDTO is the JSON representation of an item. Field names match the
// database columns the frontend has always consumed.
type ItemDTO struct {
	ID          int64  `json:"id"`
	UserID      int64  `json:"user_id"`
	Name        string `json:"name"`
	Box         string `json:"box"`
	Category    string `json:"category"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

func toItemDTO(it *domain.Item) ItemDTO {
	return ItemDTO{
		ID:          it.ID,
		UserID:      it.UserID,
		Name:        it.Name,
		Box:         it.Box,
		Category:    it.Category,
		Description: it.Description,
		CreatedAt:   it.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   it.UpdatedAt.Format(time.RFC3339),
	}
}

func toItemDTOs(items []domain.Item) []ItemDTO {
	dtos := make([]ItemDTO, len(items))
	for i := range items {
		dtos[i] = toItemDTO(&items[i])
	}
	return dtos
}
