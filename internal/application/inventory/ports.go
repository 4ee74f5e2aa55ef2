package inventory

import (
	"context"

	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/domain/entity"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/domain/repository"
)

// TxRunner runs fn inside one store transaction with repos bound to it.
// Stock adjustments use it so the item write and the KPI refresh commit together.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		items repository.InventoryRepository,
		kpis repository.KPIRepository,
	) error) error
}

// WorkbookWriter renders inventory items as a spreadsheet.
type WorkbookWriter interface {
	InventoryWorkbook(items []entity.InventoryItem) ([]byte, error)
}
