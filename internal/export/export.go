// Package export writes store tables to an xlsx workbook, one sheet per table.
package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"milling-shop-backend/internal/model"
	"milling-shop-backend/internal/store"
)

// FileName is the download name of every export.
const FileName = "milling_export.xlsx"

// ContentType is the MIME type of the workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Exportable tables, in workbook order.
const (
	TableBlockHistory   = "block_history"
	TableOrders         = "orders"
	TableBlocks         = "blocks"
	TableToolStock      = "tool_stock"
	TableInstalledTools = "installed_tools"
	TableMaintenance    = "maintenance"
	TablePendingOrders  = "pending_orders"
)

// Tables lists every exportable table.
var Tables = []string{
	TableBlockHistory,
	TableOrders,
	TableBlocks,
	TableToolStock,
	TableInstalledTools,
	TableMaintenance,
	TablePendingOrders,
}

// ErrUnknownTable is returned for a table name outside Tables.
var ErrUnknownTable = errors.New("unknown export table")

// Source is the read side of the store an export needs.
type Source interface {
	ListBlockHistory(ctx context.Context) ([]model.BlockHistory, error)
	ListOrders(ctx context.Context, f store.OrderFilter) ([]model.Order, error)
	ListBlocks(ctx context.Context, f store.BlockFilter) (store.BlockListing, error)
	ListStock(ctx context.Context) ([]model.ToolStock, error)
	ListInstalled(ctx context.Context) ([]model.InstalledTool, error)
	ListMaintenance(ctx context.Context) ([]model.MaintenanceRecord, error)
	ListPending(ctx context.Context) ([]model.PendingOrder, error)
}

// ParseTables selects tables from a comma-separated list. An empty selection or
// full set to true selects every table. The result follows Tables order.
func ParseTables(raw string, full bool) ([]string, error) {
	names := model.SplitList(raw)
	if full || len(names) == 0 {
		return append([]string{}, Tables...), nil
	}

	want := make(map[string]bool, len(names))
	for _, n := range names {
		n = strings.ToLower(n)
		if !isTable(n) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownTable, n)
		}
		want[n] = true
	}
	selected := make([]string, 0, len(want))
	for _, t := range Tables {
		if want[t] {
			selected = append(selected, t)
		}
	}
	return selected, nil
}

func isTable(name string) bool {
	for _, t := range Tables {
		if t == name {
			return true
		}
	}
	return false
}

// Write builds a workbook holding the given tables and writes it to w.
func Write(ctx context.Context, src Source, tables []string, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, table := range tables {
		rows, err := tableRows(ctx, src, table)
		if err != nil {
			return err
		}
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), table); err != nil {
				return fmt.Errorf("failed to name sheet %q: %w", table, err)
			}
		} else if _, err := f.NewSheet(table); err != nil {
			return fmt.Errorf("failed to add sheet %q: %w", table, err)
		}
		for r, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(table, cell, &row); err != nil {
				return fmt.Errorf("failed to write %s row %d: %w", table, r+1, err)
			}
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// tableRows returns a header row followed by one row per record.
func tableRows(ctx context.Context, src Source, table string) ([][]any, error) {
	switch table {
	case TableBlockHistory:
		history, err := src.ListBlockHistory(ctx)
		if err != nil {
			return nil, err
		}
		rows := [][]any{{"id", "block_id", "material", "brand", "shade", "thickness", "quantity", "barcode", "state", "fresed_model_count", "fresed_order_codes", "created_at", "deleted_at"}}
		for _, h := range history {
			rows = append(rows, []any{h.ID, h.BlockID, h.Material, h.Brand, h.Shade, h.Thickness, h.Quantity, deref(h.Barcode), string(h.State), h.FresedModelCount, strings.Join(h.FresedOrderCodes, ","), stamp(h.CreatedAt), stamp(h.DeletedAt)})
		}
		return rows, nil

	case TableOrders:
		orders, err := src.ListOrders(ctx, store.OrderFilter{})
		if err != nil {
			return nil, err
		}
		rows := [][]any{{"id", "order_code", "material", "brand", "shade", "barcode", "machine", "model_count", "created_at"}}
		for _, o := range orders {
			rows = append(rows, []any{o.ID, o.OrderCode, o.Material, o.Brand, o.Shade, o.Barcode, o.Machine, o.ModelCount, stamp(o.CreatedAt)})
		}
		return rows, nil

	case TableBlocks:
		listing, err := src.ListBlocks(ctx, store.BlockFilter{})
		if err != nil {
			return nil, err
		}
		rows := [][]any{{"id", "material", "brand", "shade", "thickness", "quantity", "barcode", "state", "fresed_model_count", "fresed_order_codes", "created_at"}}
		for _, b := range append(listing.Used, listing.New...) {
			rows = append(rows, []any{b.ID, b.Material, b.Brand, b.Shade, b.Thickness, b.Quantity, deref(b.Barcode), string(b.State), b.FresedModelCount, strings.Join(b.FresedOrderCodes, ","), stamp(b.CreatedAt)})
		}
		return rows, nil

	case TableToolStock:
		stock, err := src.ListStock(ctx)
		if err != nil {
			return nil, err
		}
		rows := [][]any{{"id", "type", "diameter", "quantity", "compatible_materials", "created_at"}}
		for _, t := range stock {
			rows = append(rows, []any{t.ID, t.Type, diameterText(t.Diameter), t.Quantity, t.Materials.String(), stamp(t.CreatedAt)})
		}
		return rows, nil

	case TableInstalledTools:
		tools, err := src.ListInstalled(ctx)
		if err != nil {
			return nil, err
		}
		rows := [][]any{{"id", "type", "diameter", "machine", "compatible_materials", "installed_at", "fresed_model_count"}}
		for _, t := range tools {
			rows = append(rows, []any{t.ID, t.Type, diameterText(t.Diameter), t.Machine, t.Materials.String(), stamp(t.InstalledAt), t.FresedModelCount})
		}
		return rows, nil

	case TableMaintenance:
		recs, err := src.ListMaintenance(ctx)
		if err != nil {
			return nil, err
		}
		rows := [][]any{{"id", "machine", "activity", "interval_count", "interval_unit", "activity_text", "description", "performed_at"}}
		for _, m := range recs {
			rows = append(rows, []any{m.ID, m.Machine, m.Activity, m.IntervalCount, m.IntervalUnit, m.ActivityText, m.Description, stamp(m.PerformedAt)})
		}
		return rows, nil

	case TablePendingOrders:
		pending, err := src.ListPending(ctx)
		if err != nil {
			return nil, err
		}
		rows := [][]any{{"id", "order_code", "scanned_at"}}
		for _, p := range pending {
			rows = append(rows, []any{p.ID, p.OrderCode, stamp(p.ScannedAt)})
		}
		return rows, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownTable, table)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func diameterText(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return d.Decimal.String()
}

func stamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
