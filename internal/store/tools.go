package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"milling-shop-backend/internal/model"
)

// AddStock adds spare bits. Rows are keyed by type and compatible materials;
// adding to an existing combination increments its quantity.
func (s *gormStore) AddStock(ctx context.Context, in StockInput) (model.ToolStock, error) {
	toolType := strings.TrimSpace(in.Type)
	if toolType == "" || in.Quantity <= 0 {
		return model.ToolStock{}, validationf("tool type and a positive quantity are required")
	}
	materials := model.NewMaterialSet(in.Materials...)

	var row model.ToolStock
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var candidates []model.ToolStock
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("type = ? AND materials = ?", toolType, materials).
			Order("id").
			Find(&candidates).Error; err != nil {
			return fmt.Errorf("failed to look up stock for %q: %w", toolType, err)
		}

		if len(candidates) > 0 {
			row = candidates[0]
			row.Quantity += in.Quantity
			if err := tx.Model(&row).Update("quantity", row.Quantity).Error; err != nil {
				return fmt.Errorf("failed to increment stock %d: %w", row.ID, err)
			}
			return nil
		}

		row = model.ToolStock{
			Type:      toolType,
			Diameter:  in.Diameter,
			Quantity:  in.Quantity,
			Materials: materials,
			CreatedAt: s.now(),
		}
		if err := tx.Create(&row).Error; err != nil {
			return fmt.Errorf("failed to create stock for %q: %w", toolType, err)
		}
		return nil
	})
	if err != nil {
		return model.ToolStock{}, err
	}
	return row, nil
}

// ListStock returns stock rows ordered by type.
func (s *gormStore) ListStock(ctx context.Context) ([]model.ToolStock, error) {
	var rows []model.ToolStock
	if err := s.db.WithContext(ctx).Order("type, id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list tool stock: %w", err)
	}
	return rows, nil
}

// EditStock overwrites a stock row.
func (s *gormStore) EditStock(ctx context.Context, id int64, in StockInput) (model.ToolStock, error) {
	toolType := strings.TrimSpace(in.Type)
	if toolType == "" || in.Quantity < 0 {
		return model.ToolStock{}, validationf("tool type is required and quantity cannot be negative")
	}

	var row model.ToolStock
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&row, id).Error; err != nil {
			return lookupErr(err, "tool stock", id)
		}
		row.Type = toolType
		row.Diameter = in.Diameter
		row.Quantity = in.Quantity
		row.Materials = model.NewMaterialSet(in.Materials...)
		if err := tx.Save(&row).Error; err != nil {
			return fmt.Errorf("failed to update tool stock %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return model.ToolStock{}, err
	}
	return row, nil
}

// InstallFromStock mounts one bit of toolType on machine, taking it from the
// lowest-id stock row of that type that still has units.
func (s *gormStore) InstallFromStock(ctx context.Context, toolType, machine string) (model.InstalledTool, error) {
	toolType = strings.TrimSpace(toolType)
	machine = strings.TrimSpace(machine)
	if toolType == "" || machine == "" {
		return model.InstalledTool{}, validationf("tool type and machine are required")
	}

	var installed model.InstalledTool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rows []model.ToolStock
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("type = ? AND quantity > 0", toolType).
			Order("id").
			Limit(1).
			Find(&rows).Error; err != nil {
			return fmt.Errorf("failed to look up stock for %q: %w", toolType, err)
		}
		if len(rows) == 0 {
			return fmt.Errorf("%w: no %q bits in stock", ErrInsufficientInventory, toolType)
		}

		var err error
		installed, err = s.installFrom(tx, rows[0], machine)
		return err
	})
	if err != nil {
		return model.InstalledTool{}, err
	}
	return installed, nil
}

// installFrom decrements row and records the mounted tool.
func (s *gormStore) installFrom(tx *gorm.DB, row model.ToolStock, machine string) (model.InstalledTool, error) {
	if err := tx.Model(&row).Update("quantity", row.Quantity-1).Error; err != nil {
		return model.InstalledTool{}, fmt.Errorf("failed to decrement stock %d: %w", row.ID, err)
	}
	installed := model.InstalledTool{
		Type:        row.Type,
		Diameter:    row.Diameter,
		Machine:     machine,
		Materials:   row.Materials,
		InstalledAt: s.now(),
	}
	if err := tx.Create(&installed).Error; err != nil {
		return model.InstalledTool{}, fmt.Errorf("failed to install %q on %q: %w", row.Type, machine, err)
	}
	return installed, nil
}

// ListInstalled returns mounted tools, most recently installed first.
func (s *gormStore) ListInstalled(ctx context.Context) ([]model.InstalledTool, error) {
	var tools []model.InstalledTool
	if err := s.db.WithContext(ctx).Order("installed_at DESC, id DESC").Find(&tools).Error; err != nil {
		return nil, fmt.Errorf("failed to list installed tools: %w", err)
	}
	return tools, nil
}

// EditInstalled overwrites a mounted tool's description. Its usage count is kept.
func (s *gormStore) EditInstalled(ctx context.Context, id int64, in InstalledEdit) (model.InstalledTool, error) {
	toolType := strings.TrimSpace(in.Type)
	machine := strings.TrimSpace(in.Machine)
	if toolType == "" || machine == "" {
		return model.InstalledTool{}, validationf("tool type and machine are required")
	}

	var tool model.InstalledTool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&tool, id).Error; err != nil {
			return lookupErr(err, "installed tool", id)
		}
		tool.Type = toolType
		tool.Diameter = in.Diameter
		tool.Machine = machine
		tool.Materials = model.NewMaterialSet(in.Materials...)
		if err := tx.Save(&tool).Error; err != nil {
			return fmt.Errorf("failed to update installed tool %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return model.InstalledTool{}, err
	}
	return tool, nil
}

// Uninstall removes a mounted tool. With reinstall set, a fresh bit of the same
// type, diameter and materials is mounted in its place when stock allows; the
// replacement is returned, or nil when none was mounted.
func (s *gormStore) Uninstall(ctx context.Context, id int64, reinstall bool) (*model.InstalledTool, error) {
	var replacement *model.InstalledTool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var tool model.InstalledTool
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&tool, id).Error; err != nil {
			return lookupErr(err, "installed tool", id)
		}
		if err := tx.Delete(&model.InstalledTool{}, tool.ID).Error; err != nil {
			return fmt.Errorf("failed to uninstall tool %d: %w", id, err)
		}
		if !reinstall {
			return nil
		}

		row, ok, err := matchingStock(tx, tool.Type, tool.Diameter, tool.Materials)
		if err != nil || !ok {
			return err
		}
		installed, err := s.installFrom(tx, row, tool.Machine)
		if err != nil {
			return err
		}
		replacement = &installed
		return nil
	})
	if err != nil {
		return nil, err
	}
	if reinstall && replacement == nil {
		s.log.WithField("tool_id", id).Info("no matching stock to reinstall from")
	}
	return replacement, nil
}

// matchingStock finds a stock row with units left that matches type, diameter
// and materials exactly.
func matchingStock(tx *gorm.DB, toolType string, diameter decimal.NullDecimal, materials model.MaterialSet) (model.ToolStock, bool, error) {
	var rows []model.ToolStock
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("type = ? AND quantity > 0", toolType).
		Order("id").
		Find(&rows).Error; err != nil {
		return model.ToolStock{}, false, fmt.Errorf("failed to look up stock for %q: %w", toolType, err)
	}
	for _, row := range rows {
		if model.SameDiameter(row.Diameter, diameter) && row.Materials.Equal(materials) {
			return row, true, nil
		}
	}
	return model.ToolStock{}, false, nil
}
