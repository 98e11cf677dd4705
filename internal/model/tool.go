package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ToolStock is a row of spare mill bits of one type and material compatibility.
type ToolStock struct {
	ID        int64               `gorm:"primaryKey" json:"id"`
	Type      string              `gorm:"size:50;not null;index" json:"type"`
	Diameter  decimal.NullDecimal `gorm:"type:numeric(6,2)" json:"diameter"`
	Quantity  int                 `gorm:"not null" json:"quantity"`
	Materials MaterialSet         `gorm:"size:200" json:"compatible_materials"`
	CreatedAt time.Time           `json:"created_at"`
}

// InstalledTool is a mill bit mounted on a machine.
type InstalledTool struct {
	ID               int64               `gorm:"primaryKey" json:"id"`
	Type             string              `gorm:"size:50;not null" json:"type"`
	Diameter         decimal.NullDecimal `gorm:"type:numeric(6,2)" json:"diameter"`
	Machine          string              `gorm:"size:50;not null;index" json:"machine"`
	Materials        MaterialSet         `gorm:"size:200" json:"compatible_materials"`
	InstalledAt      time.Time           `gorm:"not null;index" json:"installed_at"`
	FresedModelCount int                 `gorm:"not null" json:"fresed_model_count"`
}

// SameDiameter reports whether two optional diameters are equal.
func SameDiameter(a, b decimal.NullDecimal) bool {
	if a.Valid != b.Valid {
		return false
	}
	return !a.Valid || a.Decimal.Equal(b.Decimal)
}
