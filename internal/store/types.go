package store

import (
	"github.com/shopspring/decimal"

	"milling-shop-backend/internal/model"
)

// NewBlockInput describes new stock to add to the block ledger.
type NewBlockInput struct {
	Material  string
	Shade     string
	Thickness int
	Quantity  int
	Brand     string
}

// BlockFilter narrows a block listing by equality on each non-empty field.
type BlockFilter struct {
	Material string
	Shade    string
	State    model.BlockState
}

// BlockListing partitions blocks by state.
type BlockListing struct {
	Used []model.Block `json:"used"`
	New  []model.Block `json:"new"`
}

// BlockEdit overwrites every mutable attribute of a block.
type BlockEdit struct {
	Material         string
	Brand            string
	Shade            string
	Thickness        int
	Quantity         int
	State            model.BlockState
	Barcode          string
	FresedModelCount int
	// Nil keeps the current codes.
	FresedOrderCodes []string
}

// ReconcileRequest assigns pending codes to a block and records one order per code.
type ReconcileRequest struct {
	Codes       []string
	UsedBlockID int64
	NewBlockID  int64
	Machine     string
	ModelCount  int
	// Overrides are per-code counts; nil entries are filled from the remainder.
	// A nil slice means no override was supplied.
	Overrides []*int
}

// ReconcileResult reports what a reconciliation created and changed.
type ReconcileResult struct {
	Block    model.Block          `json:"block"`
	Orders   []model.Order        `json:"orders"`
	Counts   []int                `json:"counts"`
	Tool     *model.InstalledTool `json:"tool,omitempty"`
	Warnings []string             `json:"warnings,omitempty"`
	// SourceExhausted is set when the consumed new block reached zero and was removed.
	SourceExhausted bool `json:"source_exhausted,omitempty"`
}

// OrderFilter narrows an order listing.
type OrderFilter struct {
	Material string
	Shade    string
	Machine  string
}

// OrderEdit overwrites the editable fields of an order.
type OrderEdit struct {
	OrderCode  string
	Material   string
	Brand      string
	Shade      string
	Machine    string
	ModelCount int
}

// StockInput describes spare mill bits.
type StockInput struct {
	Type      string
	Diameter  decimal.NullDecimal
	Quantity  int
	Materials []string
}

// InstalledEdit overwrites the editable fields of an installed tool.
type InstalledEdit struct {
	Type      string
	Diameter  decimal.NullDecimal
	Machine   string
	Materials []string
}

// ActivityInput describes a maintenance activity.
type ActivityInput struct {
	Machine       string
	Activity      string
	IntervalCount int
	IntervalUnit  string
	Description   string
}

// MachineDoc is the documentation kept for one configured machine.
type MachineDoc struct {
	Category string `json:"category"`
	Name     string `json:"name"`
	Model    string `json:"model"`
	Serial   string `json:"serial"`
	Link     string `json:"link"`
}
