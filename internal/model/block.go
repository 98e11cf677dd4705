package model

import "time"

// BlockState is the lifecycle state of a material block.
type BlockState string

const (
	BlockStateNew  BlockState = "new"
	BlockStateUsed BlockState = "used"
)

// Valid reports whether the state is a known one.
func (s BlockState) Valid() bool {
	return s == BlockStateNew || s == BlockStateUsed
}

// BrandedMaterial is the only material whose blocks carry a brand.
const BrandedMaterial = "Zirconia"

// Block is a slab of restoration material. New blocks count stock units;
// used blocks are single slabs with a barcode and milling history.
type Block struct {
	ID               int64      `gorm:"primaryKey" json:"id"`
	Material         string     `gorm:"size:50;not null;index" json:"material"`
	Brand            string     `gorm:"size:50" json:"brand,omitempty"`
	Shade            string     `gorm:"size:20;index" json:"shade"`
	Thickness        int        `json:"thickness"`
	Quantity         int        `gorm:"not null" json:"quantity"`
	Barcode          *string    `gorm:"size:100;uniqueIndex" json:"barcode,omitempty"`
	State            BlockState `gorm:"size:20;not null;index" json:"state"`
	FresedModelCount int        `gorm:"not null" json:"fresed_model_count"`
	FresedOrderCodes CodeList   `gorm:"type:text" json:"fresed_order_codes"`
	CreatedAt        time.Time  `gorm:"not null" json:"created_at"`
}

// BlockHistory is an immutable snapshot of a block taken when it was deleted.
type BlockHistory struct {
	ID               int64      `gorm:"primaryKey" json:"id"`
	BlockID          int64      `gorm:"index" json:"block_id"`
	Material         string     `gorm:"size:50" json:"material"`
	Brand            string     `gorm:"size:50" json:"brand,omitempty"`
	Shade            string     `gorm:"size:20" json:"shade"`
	Thickness        int        `json:"thickness"`
	Quantity         int        `json:"quantity"`
	Barcode          *string    `gorm:"size:100" json:"barcode,omitempty"`
	State            BlockState `gorm:"size:20" json:"state"`
	FresedModelCount int        `json:"fresed_model_count"`
	FresedOrderCodes CodeList   `gorm:"type:text" json:"fresed_order_codes"`
	CreatedAt        time.Time  `json:"created_at"`
	DeletedAt        time.Time  `gorm:"not null;index" json:"deleted_at"`
}

// SnapshotBlock copies b into a history record stamped with deletedAt.
func SnapshotBlock(b Block, deletedAt time.Time) BlockHistory {
	codes := make(CodeList, len(b.FresedOrderCodes))
	copy(codes, b.FresedOrderCodes)
	return BlockHistory{
		BlockID:          b.ID,
		Material:         b.Material,
		Brand:            b.Brand,
		Shade:            b.Shade,
		Thickness:        b.Thickness,
		Quantity:         b.Quantity,
		Barcode:          b.Barcode,
		State:            b.State,
		FresedModelCount: b.FresedModelCount,
		FresedOrderCodes: codes,
		CreatedAt:        b.CreatedAt,
		DeletedAt:        deletedAt,
	}
}
