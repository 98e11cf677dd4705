package store

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"milling-shop-backend/internal/model"
)

// CreateNewBlock adds stock of unused blocks.
func (s *gormStore) CreateNewBlock(ctx context.Context, in NewBlockInput) (model.Block, error) {
	material := strings.TrimSpace(in.Material)
	shade := strings.TrimSpace(in.Shade)
	if material == "" || shade == "" || in.Thickness <= 0 || in.Quantity <= 0 {
		return model.Block{}, validationf("material, shade, thickness and quantity are required")
	}

	block := model.Block{
		Material:         material,
		Brand:            brandFor(material, in.Brand),
		Shade:            shade,
		Thickness:        in.Thickness,
		Quantity:         in.Quantity,
		State:            model.BlockStateNew,
		FresedOrderCodes: model.CodeList{},
		CreatedAt:        s.now(),
	}
	if err := s.db.WithContext(ctx).Create(&block).Error; err != nil {
		return model.Block{}, fmt.Errorf("failed to create block: %w", err)
	}
	return block, nil
}

// ListBlocks returns used and new blocks matching the filter.
func (s *gormStore) ListBlocks(ctx context.Context, f BlockFilter) (BlockListing, error) {
	listing := BlockListing{Used: []model.Block{}, New: []model.Block{}}

	query := func(state model.BlockState) ([]model.Block, error) {
		q := s.db.WithContext(ctx).Where("state = ?", state)
		if f.Material != "" {
			q = q.Where("material = ?", f.Material)
		}
		if f.Shade != "" {
			q = q.Where("shade = ?", f.Shade)
		}
		var blocks []model.Block
		if err := q.Order("id").Find(&blocks).Error; err != nil {
			return nil, fmt.Errorf("failed to list %s blocks: %w", state, err)
		}
		return blocks, nil
	}

	var err error
	if f.State != model.BlockStateNew {
		if listing.Used, err = query(model.BlockStateUsed); err != nil {
			return BlockListing{}, err
		}
	}
	if f.State != model.BlockStateUsed {
		if listing.New, err = query(model.BlockStateNew); err != nil {
			return BlockListing{}, err
		}
	}
	return listing, nil
}

// GetBlock loads a live block.
func (s *gormStore) GetBlock(ctx context.Context, id int64) (model.Block, error) {
	var block model.Block
	if err := s.db.WithContext(ctx).First(&block, id).Error; err != nil {
		return model.Block{}, lookupErr(err, "block", id)
	}
	return block, nil
}

// EditBlock overwrites a block's attributes. Used blocks need a barcode no
// other live block carries; new blocks lose their barcode and order codes. The
// brand only survives on the branded material.
func (s *gormStore) EditBlock(ctx context.Context, id int64, in BlockEdit) (model.Block, error) {
	material := strings.TrimSpace(in.Material)
	if material == "" || strings.TrimSpace(in.Shade) == "" || in.Thickness <= 0 || in.Quantity < 0 {
		return model.Block{}, validationf("material, shade, thickness and quantity are required")
	}
	if !in.State.Valid() {
		return model.Block{}, validationf("unknown block state %q", in.State)
	}
	if in.FresedModelCount < 0 {
		return model.Block{}, validationf("fresed model count cannot be negative")
	}
	barcode := strings.TrimSpace(in.Barcode)
	if in.State == model.BlockStateUsed && barcode == "" {
		return model.Block{}, validationf("used blocks need a barcode")
	}

	var block model.Block
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&block, id).Error; err != nil {
			return lookupErr(err, "block", id)
		}

		block.Material = material
		block.Brand = brandFor(material, in.Brand)
		block.Shade = strings.TrimSpace(in.Shade)
		block.Thickness = in.Thickness
		block.Quantity = in.Quantity
		block.State = in.State
		block.Barcode = nil
		block.FresedModelCount = in.FresedModelCount
		if in.FresedOrderCodes != nil {
			block.FresedOrderCodes = model.CodeList(model.SplitList(strings.Join(in.FresedOrderCodes, ",")))
		}
		if in.State == model.BlockStateNew {
			block.FresedOrderCodes = model.CodeList{}
		} else {
			var taken int64
			if err := tx.Model(&model.Block{}).Where("barcode = ? AND id <> ?", barcode, id).Count(&taken).Error; err != nil {
				return fmt.Errorf("failed to check barcode %q: %w", barcode, err)
			}
			if taken > 0 {
				return validationf("barcode %q is already in use", barcode)
			}
			block.Barcode = &barcode
		}

		if err := tx.Save(&block).Error; err != nil {
			return fmt.Errorf("failed to update block %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return model.Block{}, err
	}
	return block, nil
}

// DeleteBlock snapshots a block into history and removes it, atomically.
func (s *gormStore) DeleteBlock(ctx context.Context, id int64) (model.BlockHistory, error) {
	var snapshot model.BlockHistory
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var block model.Block
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&block, id).Error; err != nil {
			return lookupErr(err, "block", id)
		}

		snapshot = model.SnapshotBlock(block, s.now())
		if err := tx.Create(&snapshot).Error; err != nil {
			return fmt.Errorf("failed to archive block %d: %w", id, err)
		}
		if err := tx.Delete(&model.Block{}, block.ID).Error; err != nil {
			return fmt.Errorf("failed to delete block %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return model.BlockHistory{}, err
	}
	return snapshot, nil
}

// ListBlockHistory returns snapshots, most recently deleted first.
func (s *gormStore) ListBlockHistory(ctx context.Context) ([]model.BlockHistory, error) {
	var history []model.BlockHistory
	if err := s.db.WithContext(ctx).Order("deleted_at DESC, id DESC").Find(&history).Error; err != nil {
		return nil, fmt.Errorf("failed to list block history: %w", err)
	}
	return history, nil
}

func brandFor(material, brand string) string {
	if material != model.BrandedMaterial {
		return ""
	}
	return strings.TrimSpace(brand)
}
