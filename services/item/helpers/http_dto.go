package helpers

import "auction-services/internal/models"

// ItemRequest is the body of both POST /items and PUT /items/:id
type ItemRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	CategoryID  string `json:"category_id"`
	OwnerID     string `json:"owner_id"`
}

func (r ItemRequest) ToModel() models.Item {
	return models.Item{
		Name:        r.Name,
		Description: r.Description,
		CategoryID:  r.CategoryID,
		OwnerID:     r.OwnerID,
	}
}
