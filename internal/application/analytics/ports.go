package analytics

import (
	"context"
	"time"

	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/application/dto"
)

// SupplierReport content of the supplier scorecard document.
type SupplierReport struct {
	GeneratedAt time.Time
	Overview    dto.OverviewResponse
	Suppliers   []dto.SupplierAnalyticsDTO
}

// ReportRenderer renders the supplier scorecard as PDF.
type ReportRenderer interface {
	SupplierScorecardPDF(ctx context.Context, report SupplierReport) ([]byte, error)
}
