package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"milling-shop-backend/internal/model"
)

// Reconcile turns pending codes into orders milled from one block. It resolves
// the block (an existing used block, or one unit converted from new stock),
// splits the model count across the codes, records the block's usage, removes
// the codes from the pending queue, and credits the newest matching installed
// tool. Everything commits in one transaction.
func (s *gormStore) Reconcile(ctx context.Context, req ReconcileRequest) (ReconcileResult, error) {
	codes := model.SplitList(strings.Join(req.Codes, ","))
	if len(codes) == 0 {
		return ReconcileResult{}, validationf("at least one order code is required")
	}
	if req.ModelCount < 0 {
		return ReconcileResult{}, validationf("model count cannot be negative")
	}

	counts, warning := DistributeModels(req.ModelCount, len(codes), req.Overrides)
	result := ReconcileResult{Counts: counts}
	if warning != "" {
		result.Warnings = append(result.Warnings, warning)
		s.log.WithFields(logrus.Fields{"codes": len(codes), "overrides": len(req.Overrides)}).Warn(warning)
	}
	total := sum(counts)
	now := s.now()
	machine := strings.TrimSpace(req.Machine)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var (
			block *model.Block
			err   error
		)
		switch {
		case req.UsedBlockID != 0:
			block, err = s.consumeUsedBlock(tx, req.UsedBlockID, codes, total)
		case req.NewBlockID != 0:
			block, result.SourceExhausted, err = s.consumeNewBlock(tx, req.NewBlockID, codes, total, now)
		}
		if err != nil {
			return err
		}
		if block == nil {
			return ErrNoBlockSelected
		}
		result.Block = *block

		barcode := ""
		if block.Barcode != nil {
			barcode = *block.Barcode
		}
		result.Orders = make([]model.Order, 0, len(codes))
		for i, code := range codes {
			order := model.Order{
				OrderCode:  code,
				Material:   block.Material,
				Brand:      block.Brand,
				Shade:      block.Shade,
				Barcode:    barcode,
				Machine:    machine,
				ModelCount: counts[i],
				CreatedAt:  now,
			}
			if err := tx.Create(&order).Error; err != nil {
				return fmt.Errorf("failed to create order %q: %w", code, err)
			}
			result.Orders = append(result.Orders, order)

			if err := tx.Where("order_code = ?", code).Delete(&model.PendingOrder{}).Error; err != nil {
				return fmt.Errorf("failed to clear pending code %q: %w", code, err)
			}
		}

		tool, err := creditInstalledTool(tx, machine, block.Material, total)
		if err != nil {
			return err
		}
		result.Tool = tool
		return nil
	})
	if err != nil {
		return ReconcileResult{}, err
	}

	fields := logrus.Fields{"block_id": result.Block.ID, "orders": len(result.Orders), "models": total}
	if result.Tool == nil {
		s.log.WithFields(fields).WithField("machine", machine).Info("no installed tool matched; tool usage unchanged")
	} else {
		s.log.WithFields(fields).WithField("tool_id", result.Tool.ID).Info("reconciled orders")
	}
	return result, nil
}

// consumeUsedBlock adds usage to an existing used block. A missing block, or
// one that is not in the used state, resolves to nil.
func (s *gormStore) consumeUsedBlock(tx *gorm.DB, id int64, codes []string, total int) (*model.Block, error) {
	var block model.Block
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&block, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load used block %d: %w", id, err)
	}
	if block.State != model.BlockStateUsed {
		return nil, nil
	}

	block.FresedModelCount += total
	block.FresedOrderCodes = append(block.FresedOrderCodes, codes...)
	if err := tx.Save(&block).Error; err != nil {
		return nil, fmt.Errorf("failed to update used block %d: %w", id, err)
	}
	return &block, nil
}

// consumeNewBlock takes one unit from new stock and creates the used block it
// becomes. Stock that reaches zero is removed without a history snapshot.
func (s *gormStore) consumeNewBlock(tx *gorm.DB, id int64, codes []string, total int, now time.Time) (*model.Block, bool, error) {
	var source model.Block
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&source, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, ErrNoNewBlocks
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to load new block %d: %w", id, err)
	}
	if source.State != model.BlockStateNew || source.Quantity <= 0 {
		return nil, false, ErrNoNewBlocks
	}

	barcode, err := s.nextBarcode(tx, source.Thickness)
	if err != nil {
		return nil, false, err
	}
	used := model.Block{
		Material:         source.Material,
		Brand:            source.Brand,
		Shade:            source.Shade,
		Thickness:        source.Thickness,
		Quantity:         1,
		Barcode:          &barcode,
		State:            model.BlockStateUsed,
		FresedModelCount: total,
		FresedOrderCodes: append(model.CodeList{}, codes...),
		CreatedAt:        now,
	}
	if err := tx.Create(&used).Error; err != nil {
		return nil, false, fmt.Errorf("failed to create used block from %d: %w", id, err)
	}

	source.Quantity--
	if source.Quantity == 0 {
		if err := tx.Delete(&model.Block{}, source.ID).Error; err != nil {
			return nil, false, fmt.Errorf("failed to remove exhausted block %d: %w", id, err)
		}
		return &used, true, nil
	}
	if err := tx.Model(&source).Update("quantity", source.Quantity).Error; err != nil {
		return nil, false, fmt.Errorf("failed to decrement block %d: %w", id, err)
	}
	return &used, false, nil
}

// creditInstalledTool adds models to the most recently installed tool on the
// machine that is compatible with material. No match is not an error.
func creditInstalledTool(tx *gorm.DB, machine, material string, models int) (*model.InstalledTool, error) {
	var tools []model.InstalledTool
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("machine = ?", machine).
		Order("installed_at DESC, id DESC").
		Find(&tools).Error; err != nil {
		return nil, fmt.Errorf("failed to load installed tools for machine %q: %w", machine, err)
	}

	for _, tool := range tools {
		if !tool.Materials.Contains(material) {
			continue
		}
		tool.FresedModelCount += models
		if err := tx.Model(&tool).Update("fresed_model_count", tool.FresedModelCount).Error; err != nil {
			return nil, fmt.Errorf("failed to credit installed tool %d: %w", tool.ID, err)
		}
		return &tool, nil
	}
	return nil, nil
}
