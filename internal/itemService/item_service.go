package item

import (
	"context"
	"fmt"
	"strings"
	"time"

	"auction-services/internal/auctionerrors"
	"auction-services/internal/models"
	"auction-services/internal/repository"
	"auction-services/utils"
)

// ItemService is the item registry. It is a leaf service with no outbound calls.
type ItemService struct {
	repo repository.ItemStore
	now  func() time.Time
}

// NewItemService creates a new ItemService instance
func NewItemService(repo repository.ItemStore) *ItemService {
	return &ItemService{
		repo: repo,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

func validateItem(item models.Item) error {
	if strings.TrimSpace(item.Name) == "" {
		return fmt.Errorf("service: %w - name is required", auctionerrors.ErrInvalidItem)
	}
	return nil
}

// CreateItem stores a new item
func (s *ItemService) CreateItem(ctx context.Context, item models.Item) (models.Item, error) {
	if err := validateItem(item); err != nil {
		return models.Item{}, err
	}

	now := s.now()
	item.ID = utils.GenerateID()
	item.Name = strings.TrimSpace(item.Name)
	item.CreatedAt = now
	item.UpdatedAt = now

	if err := s.repo.CreateItem(ctx, item); err != nil {
		return models.Item{}, fmt.Errorf("service: failed to create item %q: %w", item.Name, err)
	}
	return item, nil
}

// GetItem returns a single item
func (s *ItemService) GetItem(ctx context.Context, id string) (models.Item, error) {
	item, err := s.repo.GetItem(ctx, id)
	if err != nil {
		return models.Item{}, fmt.Errorf("service: failed to get item %s: %w", id, err)
	}
	return item, nil
}

// ListItems returns every item
func (s *ItemService) ListItems(ctx context.Context) ([]models.Item, error) {
	items, err := s.repo.ListItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list items: %w", err)
	}
	return items, nil
}

// UpdateItem replaces an item's name, description, category and owner
func (s *ItemService) UpdateItem(ctx context.Context, id string, item models.Item) (models.Item, error) {
	if err := validateItem(item); err != nil {
		return models.Item{}, err
	}

	item.ID = id
	item.Name = strings.TrimSpace(item.Name)
	if err := s.repo.UpdateItem(ctx, item); err != nil {
		return models.Item{}, fmt.Errorf("service: failed to update item %s: %w", id, err)
	}
	return s.GetItem(ctx, id)
}

// DeleteItem removes an item
func (s *ItemService) DeleteItem(ctx context.Context, id string) error {
	if err := s.repo.DeleteItem(ctx, id); err != nil {
		return fmt.Errorf("service: failed to delete item %s: %w", id, err)
	}
	return nil
}

func (s *ItemService) ListItemsByCategory(ctx context.Context, categoryID string) ([]models.Item, error) {
	items, err := s.repo.ListItemsByCategory(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list items in category %s: %w", categoryID, err)
	}
	return items, nil
}

func (s *ItemService) ListItemsByOwner(ctx context.Context, ownerID string) ([]models.Item, error) {
	items, err := s.repo.ListItemsByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list items of user %s: %w", ownerID, err)
	}
	return items, nil
}
