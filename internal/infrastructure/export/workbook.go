// Package export writes inventory spreadsheets with excelize.
package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/application/inventory"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/domain/entity"
)

const inventorySheet = "Inventory"

var inventoryHeaders = []string{
	"SKU", "Name", "Category", "Supplier", "Current Stock", "Min Stock",
	"Max Stock", "Unit Cost", "Total Value", "Location", "Status",
}

var _ inventory.WorkbookWriter = (*Workbook)(nil)

// Workbook implements inventory.WorkbookWriter.
type Workbook struct{}

// NewWorkbook builds the writer.
func NewWorkbook() *Workbook { return &Workbook{} }

// InventoryWorkbook one header row plus one row per item, totals at the bottom.
func (w *Workbook) InventoryWorkbook(items []entity.InventoryItem) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", inventorySheet); err != nil {
		return nil, fmt.Errorf("export: rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"00467F"}},
	})
	if err != nil {
		return nil, fmt.Errorf("export: header style: %w", err)
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		return nil, fmt.Errorf("export: money style: %w", err)
	}

	for i, h := range inventoryHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(inventorySheet, cell, h); err != nil {
			return nil, fmt.Errorf("export: header %s: %w", h, err)
		}
	}
	lastCol, _ := excelize.ColumnNumberToName(len(inventoryHeaders))
	_ = f.SetCellStyle(inventorySheet, "A1", lastCol+"1", headerStyle)

	for i := range items {
		it := &items[i]
		r := i + 2
		supplier := ""
		if it.Supplier != nil {
			supplier = it.Supplier.Name
		}
		values := []any{
			it.SKU, it.Name, it.Category, supplier,
			it.CurrentStock, it.MinStockLevel, it.MaxStockLevel,
			it.UnitCost.InexactFloat64(), it.TotalValue.InexactFloat64(),
			it.Location, StockStatus(it),
		}
		start, _ := excelize.CoordinatesToCellName(1, r)
		if err := f.SetSheetRow(inventorySheet, start, &values); err != nil {
			return nil, fmt.Errorf("export: row %d: %w", r, err)
		}
	}

	if len(items) > 0 {
		last := len(items) + 1
		totalRow := last + 1
		_ = f.SetCellValue(inventorySheet, fmt.Sprintf("H%d", totalRow), "Total")
		if err := f.SetCellFormula(inventorySheet, fmt.Sprintf("I%d", totalRow), fmt.Sprintf("SUM(I2:I%d)", last)); err != nil {
			return nil, fmt.Errorf("export: total formula: %w", err)
		}
		_ = f.SetCellStyle(inventorySheet, "H2", fmt.Sprintf("I%d", totalRow), moneyStyle)
	}

	_ = f.SetColWidth(inventorySheet, "A", "A", 14)
	_ = f.SetColWidth(inventorySheet, "B", "B", 32)
	_ = f.SetColWidth(inventorySheet, "C", "D", 22)
	_ = f.SetPanes(inventorySheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("export: write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// StockStatus OUT at zero, LOW at or below minimum, OK otherwise.
func StockStatus(it *entity.InventoryItem) string {
	switch {
	case it.IsOutOfStock():
		return "OUT"
	case it.IsLowStock():
		return "LOW"
	default:
		return "OK"
	}
}
