package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/application/analytics"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/application/dto"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/infrastructure/pdf"
)

// ─── Formatting ──────────────────────────────────────────────────────────────

func TestMoney(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0", "$0.00"},
		{"200", "$200.00"},
		{"12345.6", "$12,345.60"},
		{"1234567.891", "$1,234,567.89"},
		{"-500", "-$500.00"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, pdf.Money(decimal.RequireFromString(tc.in)))
		})
	}
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "66.7%", pdf.Percent(66.666))
	assert.Equal(t, "100.0%", pdf.Percent(100))
}

// ─── Rendering ───────────────────────────────────────────────────────────────

func TestSupplierScorecardPDF(t *testing.T) {
	r := pdf.NewScorecardRenderer("Manufacturing Dashboard")
	report := analytics.SupplierReport{
		GeneratedAt: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
		Overview: dto.OverviewResponse{
			OverallPerformance: 91,
			CostSavings:        decimal.NewFromInt(2000),
			TotalSuppliers:     2,
		},
		Suppliers: []dto.SupplierAnalyticsDTO{
			{ID: "a", Name: "Steel Corp Industries", Score: 92.5, Orders: 10, OnTime: 90, Quality: 4.5,
				Savings: decimal.NewFromInt(1500), RiskScore: 10, RiskCategory: "Low Risk"},
			{ID: "b", Name: "Precision Parts Co", Score: 40, Orders: 3, OnTime: 33.3, Quality: 2.1,
				Savings: decimal.NewFromInt(500), RiskScore: 95, RiskCategory: "High Risk", Alerts: 3},
		},
	}

	out, err := r.SupplierScorecardPDF(context.Background(), report)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestSupplierScorecardPDF_EmptyReport(t *testing.T) {
	out, err := pdf.NewScorecardRenderer("").SupplierScorecardPDF(context.Background(), analytics.SupplierReport{})
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}
