package store

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"milling-shop-backend/internal/model"
)

// ListOrders returns orders, newest first.
func (s *gormStore) ListOrders(ctx context.Context, f OrderFilter) ([]model.Order, error) {
	q := s.db.WithContext(ctx)
	if f.Material != "" {
		q = q.Where("material = ?", f.Material)
	}
	if f.Shade != "" {
		q = q.Where("shade = ?", f.Shade)
	}
	if f.Machine != "" {
		q = q.Where("machine = ?", f.Machine)
	}

	var orders []model.Order
	if err := q.Order("created_at DESC, id DESC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// EditOrder overwrites an order's editable fields. Block and tool counters are
// left as they are.
func (s *gormStore) EditOrder(ctx context.Context, id int64, in OrderEdit) (model.Order, error) {
	code := strings.TrimSpace(in.OrderCode)
	material := strings.TrimSpace(in.Material)
	if code == "" || material == "" {
		return model.Order{}, validationf("order code and material are required")
	}
	if in.ModelCount < 0 {
		return model.Order{}, validationf("model count cannot be negative")
	}

	var order model.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, id).Error; err != nil {
			return lookupErr(err, "order", id)
		}
		order.OrderCode = code
		order.Material = material
		order.Brand = strings.TrimSpace(in.Brand)
		order.Shade = strings.TrimSpace(in.Shade)
		order.Machine = strings.TrimSpace(in.Machine)
		order.ModelCount = in.ModelCount
		if err := tx.Save(&order).Error; err != nil {
			return fmt.Errorf("failed to update order %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return model.Order{}, err
	}
	return order, nil
}

// DeleteOrder removes an order. The models it added to its block and tool are
// not subtracted.
func (s *gormStore) DeleteOrder(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).Delete(&model.Order{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete order %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return notFound("order", id)
	}
	return nil
}
