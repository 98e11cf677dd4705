package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"milling-shop-backend/internal/model"
)

// AddPending queues a scanned code. Scanning a code that is already queued is
// not an error: the existing entry is returned with created=false.
func (s *gormStore) AddPending(ctx context.Context, code string) (model.PendingOrder, bool, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return model.PendingOrder{}, false, validationf("order code is required")
	}

	var pending model.PendingOrder
	created := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("order_code = ?", code).First(&pending).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to look up pending code %q: %w", code, err)
		}

		pending = model.PendingOrder{OrderCode: code, ScannedAt: s.now()}
		if err := tx.Create(&pending).Error; err != nil {
			return fmt.Errorf("failed to queue pending code %q: %w", code, err)
		}
		created = true
		return nil
	})
	if err != nil {
		return model.PendingOrder{}, false, err
	}
	if !created {
		s.log.WithField("order_code", code).Info("pending code already queued")
	}
	return pending, created, nil
}

// ListPending returns queued codes, oldest scan first.
func (s *gormStore) ListPending(ctx context.Context) ([]model.PendingOrder, error) {
	var pending []model.PendingOrder
	if err := s.db.WithContext(ctx).Order("scanned_at ASC, id ASC").Find(&pending).Error; err != nil {
		return nil, fmt.Errorf("failed to list pending codes: %w", err)
	}
	return pending, nil
}

// EditPending replaces the code of a queued entry.
func (s *gormStore) EditPending(ctx context.Context, id int64, code string) (model.PendingOrder, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return model.PendingOrder{}, validationf("order code cannot be empty")
	}

	var pending model.PendingOrder
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&pending, id).Error; err != nil {
			return lookupErr(err, "pending order", id)
		}
		if pending.OrderCode == code {
			return nil
		}

		var clash int64
		if err := tx.Model(&model.PendingOrder{}).Where("order_code = ? AND id <> ?", code, id).Count(&clash).Error; err != nil {
			return fmt.Errorf("failed to check pending code %q: %w", code, err)
		}
		if clash > 0 {
			return validationf("order code %q is already pending", code)
		}

		pending.OrderCode = code
		if err := tx.Save(&pending).Error; err != nil {
			return fmt.Errorf("failed to update pending order %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return model.PendingOrder{}, err
	}
	return pending, nil
}

// DeletePending removes a queued entry by id.
func (s *gormStore) DeletePending(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).Delete(&model.PendingOrder{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete pending order %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return notFound("pending order", id)
	}
	return nil
}

// DeletePendingByCode removes a queued entry by its code.
func (s *gormStore) DeletePendingByCode(ctx context.Context, code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return validationf("order code is required")
	}
	res := s.db.WithContext(ctx).Where("order_code = ?", code).Delete(&model.PendingOrder{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete pending code %q: %w", code, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: pending code %q", ErrNotFound, code)
	}
	return nil
}
