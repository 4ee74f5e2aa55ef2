package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/application/analytics"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/application/dto"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/domain"
)

// AnalyticsHandler read-only aggregate endpoints.
type AnalyticsHandler struct {
	uc *analytics.UseCase
}

// NewAnalyticsHandler builds the handler.
func NewAnalyticsHandler(uc *analytics.UseCase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

// Overview godoc
// @Summary      Overall performance index
// @Description  Weighted delivery, quality, cost and inventory scores plus headline figures and trends.
// @Tags         analytics
// @Produce      json
// @Success      200  {object}  dto.OverviewResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/analytics/overview [get]
func (h *AnalyticsHandler) Overview(c *fiber.Ctx) error {
	out, err := h.uc.Overview(c.Context())
	if err != nil {
		return respondError(c, err, "", "Failed to fetch analytics overview")
	}
	return c.JSON(out)
}

// Performance godoc
// @Summary      Performance time series
// @Tags         analytics
// @Produce      json
// @Param        timeframe  query  string  false  "monthly (default) | quarterly"
// @Success      200  {array}   dto.PerformancePointDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/analytics/performance [get]
func (h *AnalyticsHandler) Performance(c *fiber.Ctx) error {
	out, err := h.uc.Performance(c.Context(), c.Query("timeframe"))
	if errors.Is(err, domain.ErrInvalidInput) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "timeframe must be monthly or quarterly", Code: "INVALID_PARAMS"})
	}
	if err != nil {
		return respondError(c, err, "", "Failed to fetch performance data")
	}
	return c.JSON(out)
}

// Suppliers godoc
// @Summary      Supplier risk table
// @Description  Active suppliers with on-time rate, open severe alerts and risk score.
// @Tags         analytics
// @Produce      json
// @Success      200  {array}   dto.SupplierAnalyticsDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/analytics/suppliers [get]
func (h *AnalyticsHandler) Suppliers(c *fiber.Ctx) error {
	out, err := h.uc.Suppliers(c.Context())
	if err != nil {
		return respondError(c, err, "", "Failed to fetch supplier analytics")
	}
	return c.JSON(out)
}

// SupplierReport godoc
// @Summary      Supplier scorecard PDF
// @Tags         analytics
// @Produce      application/pdf
// @Success      200  {file}    binary
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/analytics/suppliers/report.pdf [get]
func (h *AnalyticsHandler) SupplierReport(c *fiber.Ctx) error {
	data, err := h.uc.SupplierReportPDF(c.Context())
	if err != nil {
		return respondError(c, err, "", "Failed to render supplier report")
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="supplier-scorecard.pdf"`)
	return c.Send(data)
}
