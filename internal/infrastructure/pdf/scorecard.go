// Package pdf renders the supplier scorecard report with Maroto v2.
//
// Page layout (A4):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: report title          │  generated at              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  OVERVIEW: performance / savings / quality / delivery        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLE: Supplier | Score | Orders | On time | Quality |      │
//	│         Savings | Risk | Alerts                              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: totals line                                         │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/application/analytics"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/application/dto"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/domain/metric"
)

// ── Palette ───────────────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorRisk    = &props.Color{Red: 180, Green: 30, Blue: 30}
)

var printer = message.NewPrinter(language.AmericanEnglish)

// ── Renderer ──────────────────────────────────────────────────────────────────

var _ analytics.ReportRenderer = (*ScorecardRenderer)(nil)

// ScorecardRenderer implements analytics.ReportRenderer.
type ScorecardRenderer struct {
	author string
}

// NewScorecardRenderer builds the renderer; author lands in the PDF metadata.
func NewScorecardRenderer(author string) *ScorecardRenderer {
	return &ScorecardRenderer{author: author}
}

// SupplierScorecardPDF renders the report and returns the document bytes.
func (r *ScorecardRenderer) SupplierScorecardPDF(_ context.Context, report analytics.SupplierReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Supplier Scorecard", true).
		WithAuthor(r.author, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(overviewRows(report.Overview)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(report.Suppliers)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(report))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate scorecard: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Sections ──────────────────────────────────────────────────────────────────

func headerRow(report analytics.SupplierReport) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New("SUPPLIER SCORECARD", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%d suppliers", len(report.Suppliers)), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generated", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(report.GeneratedAt.UTC().Format("2006-01-02 15:04 MST"), props.Text{
				Size: 8, Align: align.Right, Top: 7, Color: colorGray,
			}),
		),
	)
}

func overviewRows(o dto.OverviewResponse) []core.Row {
	cell := func(label, value string) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Top: 1, Align: align.Center}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 12, Top: 5, Align: align.Center, Color: colorPrimary}),
		)
	}
	return []core.Row{
		row.New(14).Add(
			cell("Overall performance", Percent(o.OverallPerformance)),
			cell("Cost savings", Money(o.CostSavings)),
			cell("Quality score", Percent(o.QualityScore)),
			cell("On-time delivery", Percent(o.DeliveryPerformance)),
		),
		row.New(14).Add(
			cell("Suppliers", printer.Sprintf("%d", o.TotalSuppliers)),
			cell("Inventory value", Money(o.TotalInventoryValue)),
			cell("Low stock items", printer.Sprintf("%d", o.LowStockItems)),
			cell("Critical / high alerts", fmt.Sprintf("%d / %d", o.CriticalAlerts, o.HighAlerts)),
		),
	}
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Supplier", 3, align.Left),
		h("Score", 1, align.Right),
		h("Orders", 1, align.Right),
		h("On time", 1, align.Right),
		h("Quality", 1, align.Right),
		h("Savings", 2, align.Right),
		h("Risk", 2, align.Center),
		h("Alerts", 1, align.Right),
	)
}

func tableRows(suppliers []dto.SupplierAnalyticsDTO) []core.Row {
	rows := make([]core.Row, 0, len(suppliers))
	for _, s := range suppliers {
		cellText := func(v string, size int, a align.Type) core.Col {
			return col.New(size).Add(text.New(v, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
		}
		riskProps := props.Text{Size: 8, Align: align.Center, Top: 1}
		if s.RiskCategory == string(metric.RiskHigh) {
			riskProps.Color = colorRisk
			riskProps.Style = fontstyle.Bold
		}
		rows = append(rows, row.New(7).Add(
			cellText(s.Name, 3, align.Left),
			cellText(fmt.Sprintf("%.1f", s.Score), 1, align.Right),
			cellText(printer.Sprintf("%d", s.Orders), 1, align.Right),
			cellText(Percent(s.OnTime), 1, align.Right),
			cellText(fmt.Sprintf("%.1f", s.Quality), 1, align.Right),
			cellText(Money(s.Savings), 2, align.Right),
			col.New(2).Add(text.New(fmt.Sprintf("%s (%d)", s.RiskCategory, s.RiskScore), riskProps)),
			cellText(fmt.Sprintf("%d", s.Alerts), 1, align.Right),
		))
	}
	return rows
}

func footerRow(report analytics.SupplierReport) core.Row {
	total := decimal.Zero
	for _, s := range report.Suppliers {
		total = total.Add(s.Savings)
	}
	return row.New(8).Add(col.New(12).Add(
		text.New("Total supplier savings: "+Money(total), props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2, Color: colorPrimary,
		}),
	))
}

// ── Formatting ────────────────────────────────────────────────────────────────

// Money formats a USD amount with thousands separators, e.g. "$12,345.60".
func Money(d decimal.Decimal) string {
	f := d.Round(2).InexactFloat64()
	if f < 0 {
		return printer.Sprintf("-$%.2f", -f)
	}
	return printer.Sprintf("$%.2f", f)
}

// Percent formats a 0..100 figure with one decimal.
func Percent(v float64) string {
	return printer.Sprintf("%.1f%%", v)
}
