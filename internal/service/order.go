package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/romanwintercz/kniha-jizd-api/internal/domain"
	"github.com/romanwintercz/kniha-jizd-api/internal/store"
)

// OrderUpdate carries a partial order update; nil fields are left as they
// are.
type OrderUpdate struct {
	Name *string
	Code *string
}

// OrderService implements the cost-center lifecycle: add, update, archive
// toggle.
type OrderService struct {
	store *store.Store
}

// NewOrderService constructs an OrderService backed by the provided store.
func NewOrderService(s *store.Store) *OrderService {
	return &OrderService{store: s}
}

// List returns all orders, active and archived.
func (s *OrderService) List(ctx context.Context) ([]domain.Order, error) {
	return s.store.Orders(), nil
}

// Create validates and persists a new active order. The accounting code is
// optional.
func (s *OrderService) Create(ctx context.Context, name, code string) (domain.Order, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Order{}, fmt.Errorf("service.OrderService.Create: %w: name is required", domain.ErrValidation)
	}

	o := domain.Order{
		ID:       uuid.NewString(),
		Name:     name,
		Code:     strings.TrimSpace(code),
		IsActive: true,
	}
	err := s.store.MutateOrders(ctx, func(orders []domain.Order) ([]domain.Order, error) {
		return append(orders, o), nil
	})
	if err != nil {
		return domain.Order{}, fmt.Errorf("service.OrderService.Create: %w", err)
	}
	return o, nil
}

// Update applies a partial update to the order with the given ID.
func (s *OrderService) Update(ctx context.Context, id string, upd OrderUpdate) (domain.Order, error) {
	if upd.Name != nil && strings.TrimSpace(*upd.Name) == "" {
		return domain.Order{}, fmt.Errorf("service.OrderService.Update: %w: name is required", domain.ErrValidation)
	}

	var out domain.Order
	err := s.store.MutateOrders(ctx, func(orders []domain.Order) ([]domain.Order, error) {
		for i, o := range orders {
			if o.ID != id {
				continue
			}
			if upd.Name != nil {
				o.Name = strings.TrimSpace(*upd.Name)
			}
			if upd.Code != nil {
				o.Code = strings.TrimSpace(*upd.Code)
			}
			orders[i] = o
			out = o
			return orders, nil
		}
		return nil, domain.ErrNotFound
	})
	if err != nil {
		return domain.Order{}, fmt.Errorf("service.OrderService.Update: %w", err)
	}
	return out, nil
}

// ToggleArchive flips the order's active flag and returns the new state.
func (s *OrderService) ToggleArchive(ctx context.Context, id string) (domain.Order, error) {
	var out domain.Order
	err := s.store.MutateOrders(ctx, func(orders []domain.Order) ([]domain.Order, error) {
		for i, o := range orders {
			if o.ID != id {
				continue
			}
			o.IsActive = !o.IsActive
			orders[i] = o
			out = o
			return orders, nil
		}
		return nil, domain.ErrNotFound
	})
	if err != nil {
		return domain.Order{}, fmt.Errorf("service.OrderService.ToggleArchive: %w", err)
	}
	return out, nil
}
