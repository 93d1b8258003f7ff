package purchaseorders

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/bluething/boostpo/internal/items"
	"github.com/bluething/boostpo/internal/shared"
)

const maxTextLength = 500

// ItemPort exposes the catalog lookups the order manager needs.
type ItemPort interface {
	FindByIDs(ctx context.Context, ids []int64) (map[int64]items.Item, error)
}

// AuditPort records order mutations.
type AuditPort interface {
	Record(ctx context.Context, log shared.AuditLog) error
}

// Service orchestrates the purchase order aggregate.
type Service struct {
	repo   RepositoryPort
	items  ItemPort
	audit  AuditPort
	logger *slog.Logger
}

// NewService constructs the order service.
func NewService(repo RepositoryPort, items ItemPort, audit AuditPort, logger *slog.Logger) *Service {
	return &Service{repo: repo, items: items, audit: audit, logger: logger}
}

// DetailInput is one requested line. Nil UnitPrice or Cost means "snapshot
// the item's current value"; an explicit value, including zero, wins.
type DetailInput struct {
	ItemID    int64
	Quantity  int
	UnitPrice *int64
	Cost      *int64
}

// CreateOrderInput describes a new order. Datetime is already a UTC
// instant; the API edge owns zone conversion.
type CreateOrderInput struct {
	Datetime    time.Time
	Description string
	Details     []DetailInput
	Actor       string
}

// UpdateOrderInput patches an order. Nil Datetime/Description keep stored
// values. A nil Details slice leaves lines and totals untouched; a non-nil
// slice, empty included, replaces the full set and recomputes totals.
type UpdateOrderInput struct {
	Datetime    *time.Time
	Description *string
	Details     []DetailInput
	Actor       string
}

// List returns one page of order headers, newest first.
func (s *Service) List(ctx context.Context, req shared.PageRequest) ([]PurchaseOrder, int64, error) {
	return s.repo.List(ctx, req)
}

// Get fetches the full aggregate.
func (s *Service) Get(ctx context.Context, id int64) (PurchaseOrder, error) {
	po, err := s.repo.Get(ctx, id)
	if err != nil {
		return PurchaseOrder{}, fmt.Errorf("purchase order %d: %w", id, err)
	}
	return po, nil
}

// Create validates the lines against the catalog, snapshots pricing and
// writes header plus details in one transaction.
func (s *Service) Create(ctx context.Context, input CreateOrderInput) (PurchaseOrder, error) {
	if input.Datetime.IsZero() {
		return PurchaseOrder{}, fmt.Errorf("datetime is required: %w", shared.ErrValidation)
	}
	if len(input.Details) == 0 {
		return PurchaseOrder{}, fmt.Errorf("at least one detail is required: %w", shared.ErrValidation)
	}
	if err := validateHeader(input.Description); err != nil {
		return PurchaseOrder{}, err
	}

	now := time.Now().UTC()
	actor := shared.ActorOrSystem(input.Actor)
	details, totalPrice, totalCost, err := s.buildDetails(ctx, input.Details, actor, now)
	if err != nil {
		return PurchaseOrder{}, err
	}

	po := PurchaseOrder{
		Datetime:    input.Datetime.UTC(),
		Description: input.Description,
		TotalPrice:  totalPrice,
		TotalCost:   totalCost,
		CreatedBy:   actor,
		UpdatedBy:   actor,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		id, err := tx.InsertHeader(ctx, po)
		if err != nil {
			return err
		}
		po.ID = id
		for i := range details {
			details[i].OrderID = id
			if err := tx.InsertDetail(ctx, details[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return PurchaseOrder{}, err
	}
	po.Details = details

	s.logger.Info("purchase order created",
		slog.Int64("id", po.ID), slog.Int("lines", len(details)), slog.Int64("total_price", totalPrice))
	s.recordAudit(ctx, "PO_CREATE", po.ID, actor, map[string]any{"lines": len(details), "total_price": totalPrice})
	return po, nil
}

// Update patches the header and, when a details list is supplied, replaces
// every line and recomputes the totals.
func (s *Service) Update(ctx context.Context, id int64, input UpdateOrderInput) (PurchaseOrder, error) {
	po, err := s.repo.Get(ctx, id)
	if err != nil {
		return PurchaseOrder{}, fmt.Errorf("purchase order %d: %w", id, err)
	}

	if input.Datetime != nil {
		if input.Datetime.IsZero() {
			return PurchaseOrder{}, fmt.Errorf("datetime must not be empty: %w", shared.ErrValidation)
		}
		po.Datetime = input.Datetime.UTC()
	}
	if input.Description != nil {
		po.Description = *input.Description
	}
	if err := validateHeader(po.Description); err != nil {
		return PurchaseOrder{}, err
	}

	now := time.Now().UTC()
	actor := shared.ActorOrSystem(input.Actor)
	po.UpdatedBy = actor
	po.UpdatedAt = now

	replaceDetails := input.Details != nil
	var details []Detail
	if replaceDetails {
		details, po.TotalPrice, po.TotalCost, err = s.buildDetails(ctx, input.Details, actor, now)
		if err != nil {
			return PurchaseOrder{}, err
		}
	}

	err = s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		if err := tx.UpdateHeader(ctx, po); err != nil {
			return err
		}
		if !replaceDetails {
			return nil
		}
		if err := tx.DeleteDetails(ctx, id); err != nil {
			return err
		}
		for i := range details {
			details[i].OrderID = id
			if err := tx.InsertDetail(ctx, details[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return PurchaseOrder{}, err
	}
	if replaceDetails {
		po.Details = details
	}

	s.logger.Info("purchase order updated", slog.Int64("id", id), slog.Bool("details_replaced", replaceDetails))
	s.recordAudit(ctx, "PO_UPDATE", id, actor, map[string]any{"details_replaced": replaceDetails})
	return po, nil
}

// Delete removes the header and its lines in one transaction. A missing id
// is reported as not found, matching the other entities.
func (s *Service) Delete(ctx context.Context, id int64, actor string) error {
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		if err := tx.DeleteDetails(ctx, id); err != nil {
			return err
		}
		existed, err := tx.DeleteHeader(ctx, id)
		if err != nil {
			return err
		}
		if !existed {
			return fmt.Errorf("purchase order %d: %w", id, shared.ErrNotFound)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.Info("purchase order deleted", slog.Int64("id", id))
	s.recordAudit(ctx, "PO_DELETE", id, shared.ActorOrSystem(actor), nil)
	return nil
}

// buildDetails validates the requested lines, batch-loads the referenced
// items and materialises the pricing snapshot. Totals come back alongside
// so callers never derive them separately.
func (s *Service) buildDetails(ctx context.Context, inputs []DetailInput, actor string, now time.Time) ([]Detail, int64, int64, error) {
	ids := make([]int64, 0, len(inputs))
	seen := make(map[int64]struct{}, len(inputs))
	for _, in := range inputs {
		if in.ItemID <= 0 {
			return nil, 0, 0, fmt.Errorf("detail item id must be positive: %w", shared.ErrValidation)
		}
		if in.Quantity < 1 {
			return nil, 0, 0, fmt.Errorf("detail quantity must be at least 1: %w", shared.ErrValidation)
		}
		if in.UnitPrice != nil && *in.UnitPrice < 0 {
			return nil, 0, 0, fmt.Errorf("detail unit price must be zero or positive: %w", shared.ErrValidation)
		}
		if in.Cost != nil && *in.Cost < 0 {
			return nil, 0, 0, fmt.Errorf("detail cost must be zero or positive: %w", shared.ErrValidation)
		}
		if _, ok := seen[in.ItemID]; !ok {
			seen[in.ItemID] = struct{}{}
			ids = append(ids, in.ItemID)
		}
	}

	if len(inputs) == 0 {
		return []Detail{}, 0, 0, nil
	}

	catalog, err := s.items.FindByIDs(ctx, ids)
	if err != nil {
		return nil, 0, 0, err
	}
	var missing []int64
	for _, id := range ids {
		if _, ok := catalog[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		sort.Slice(missing, func(i, j int) bool { return missing[i] < missing[j] })
		return nil, 0, 0, fmt.Errorf("items %v: %w", missing, shared.ErrNotFound)
	}

	details := make([]Detail, 0, len(inputs))
	var totalPrice, totalCost int64
	for _, in := range inputs {
		item := catalog[in.ItemID]
		price := item.Price
		if in.UnitPrice != nil {
			price = *in.UnitPrice
		}
		cost := item.Cost
		if in.Cost != nil {
			cost = *in.Cost
		}
		d := Detail{
			ItemID:          in.ItemID,
			ItemName:        item.Name,
			ItemDescription: item.Description,
			Quantity:        in.Quantity,
			UnitPrice:       price,
			Cost:            cost,
			CreatedBy:       actor,
			UpdatedBy:       actor,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		totalPrice += d.LineTotalPrice()
		totalCost += d.LineTotalCost()
		details = append(details, d)
	}
	return details, totalPrice, totalCost, nil
}

func validateHeader(description string) error {
	if len(description) > maxTextLength {
		return fmt.Errorf("description must not exceed %d characters: %w", maxTextLength, shared.ErrValidation)
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
		Entity:   "purchase_order",
		EntityID: fmt.Sprintf("%d", id),
		Ref:      shared.EventRef("purchase_order", id),
		Meta:     meta,
	})
	if err != nil {
		s.logger.Warn("audit record failed",
			slog.String("action", action), slog.Int64("id", id), slog.Any("error", err))
	}
}
