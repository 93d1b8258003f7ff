package items

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bluething/boostpo/internal/shared"
)

const maxTextLength = 500

// AuditPort records catalog mutations.
type AuditPort interface {
	Record(ctx context.Context, log shared.AuditLog) error
}

// Service implements the item catalog operations.
type Service struct {
	repo   Repository
	audit  AuditPort
	logger *slog.Logger
}

// NewService constructs the catalog service.
func NewService(repo Repository, audit AuditPort, logger *slog.Logger) *Service {
	return &Service{repo: repo, audit: audit, logger: logger}
}

// CreateItemInput describes a new catalog entry.
type CreateItemInput struct {
	Name        string
	Description string
	Price       int64
	Cost        int64
	Actor       string
}

// UpdateItemInput fully replaces the mutable fields of an item.
type UpdateItemInput struct {
	Name        string
	Description string
	Price       int64
	Cost        int64
	Actor       string
}

// List returns one page of items with the total count.
func (s *Service) List(ctx context.Context, req shared.PageRequest) ([]Item, int64, error) {
	return s.repo.List(ctx, req)
}

// Get fetches one item by id.
func (s *Service) Get(ctx context.Context, id int64) (Item, error) {
	item, err := s.repo.Get(ctx, id)
	if err != nil {
		return Item{}, fmt.Errorf("item %d: %w", id, err)
	}
	return item, nil
}

// FindByIDs batch-loads items for the purchase order manager.
func (s *Service) FindByIDs(ctx context.Context, ids []int64) (map[int64]Item, error) {
	return s.repo.FindByIDs(ctx, ids)
}

// Create validates and persists a new item with both audit stamps set.
func (s *Service) Create(ctx context.Context, input CreateItemInput) (Item, error) {
	if err := validateFields(input.Name, input.Description, input.Price, input.Cost); err != nil {
		return Item{}, err
	}
	now := time.Now().UTC()
	actor := shared.ActorOrSystem(input.Actor)
	item := Item{
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		Price:       input.Price,
		Cost:        input.Cost,
		CreatedBy:   actor,
		UpdatedBy:   actor,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	created, err := s.repo.Create(ctx, item)
	if err != nil {
		return Item{}, err
	}
	s.logger.Info("item created", slog.Int64("id", created.ID))
	s.recordAudit(ctx, "ITEM_CREATE", created.ID, actor, map[string]any{"name": created.Name})
	return created, nil
}

// Update replaces name, description, price and cost wholesale while
// preserving the creation audit fields.
func (s *Service) Update(ctx context.Context, id int64, input UpdateItemInput) (Item, error) {
	if err := validateFields(input.Name, input.Description, input.Price, input.Cost); err != nil {
		return Item{}, err
	}
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return Item{}, fmt.Errorf("item %d: %w", id, err)
	}
	actor := shared.ActorOrSystem(input.Actor)
	existing.Name = strings.TrimSpace(input.Name)
	existing.Description = input.Description
	existing.Price = input.Price
	existing.Cost = input.Cost
	existing.UpdatedBy = actor
	existing.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, existing); err != nil {
		return Item{}, fmt.Errorf("item %d: %w", id, err)
	}
	s.logger.Info("item updated", slog.Int64("id", id))
	s.recordAudit(ctx, "ITEM_UPDATE", id, actor, map[string]any{"name": existing.Name})
	return existing, nil
}

// Delete removes an item. A missing id is reported as not found so every
// entity deletes the same way.
func (s *Service) Delete(ctx context.Context, id int64, actor string) error {
	existed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !existed {
		return fmt.Errorf("item %d: %w", id, shared.ErrNotFound)
	}
	s.logger.Info("item deleted", slog.Int64("id", id))
	s.recordAudit(ctx, "ITEM_DELETE", id, shared.ActorOrSystem(actor), nil)
	return nil
}

func validateFields(name, description string, price, cost int64) error {
	switch {
	case strings.TrimSpace(name) == "":
		return fmt.Errorf("item name is required: %w", shared.ErrValidation)
	case len(name) > maxTextLength:
		return fmt.Errorf("item name must not exceed %d characters: %w", maxTextLength, shared.ErrValidation)
	case len(description) > maxTextLength:
		return fmt.Errorf("description must not exceed %d characters: %w", maxTextLength, shared.ErrValidation)
	case price < 0:
		return fmt.Errorf("price must be zero or positive: %w", shared.ErrValidation)
	case cost < 0:
		return fmt.Errorf("cost must be zero or positive: %w", shared.ErrValidation)
	}
	return nil
}

func (s *Service) recordAudit(ctx context.Context, action string, id int64, actor string, meta map[string]any) {
	if s.audit == nil {
		return
	}
	err := s.audit.Record(ctx, shared.AuditLog{
		Actor:    actor,
		Action:   action,
		Entity:   "item",
		EntityID: fmt.Sprintf("%d", id),
		Ref:      shared.EventRef("item", id),
		Meta:     meta,
	})
	if err != nil {
		s.logger.Warn("audit record failed",
			slog.String("action", action), slog.Int64("id", id), slog.Any("error", err))
	}
}
