package model

import "time"

// Order is one milled case, created by reconciling a pending code against a block.
type Order struct {
	ID         int64     `gorm:"primaryKey" json:"id"`
	OrderCode  string    `gorm:"size:100;index" json:"order_code"`
	Material   string    `gorm:"size:50" json:"material"`
	Brand      string    `gorm:"size:50" json:"brand,omitempty"`
	Shade      string    `gorm:"size:20" json:"shade"`
	Barcode    string    `gorm:"size:100;index" json:"barcode"`
	Machine    string    `gorm:"size:50;index" json:"machine"`
	ModelCount int       `json:"model_count"`
	CreatedAt  time.Time `gorm:"not null;index" json:"created_at"`
}

// PendingOrder is a scanned order code waiting to be assigned to a block.
type PendingOrder struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	OrderCode string    `gorm:"size:100;uniqueIndex;not null" json:"order_code"`
	ScannedAt time.Time `gorm:"not null;index" json:"scanned_at"`
}
