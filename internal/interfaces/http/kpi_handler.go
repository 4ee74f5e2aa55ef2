package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/application/usecase"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/domain/entity"
)

// KPIHandler dashboard KPI endpoints.
type KPIHandler struct {
	uc *usecase.KPIUseCase
}

// NewKPIHandler builds the handler.
func NewKPIHandler(uc *usecase.KPIUseCase) *KPIHandler {
	return &KPIHandler{uc: uc}
}

// Snapshot godoc
// @Summary      KPI snapshot
// @Description  Always 200. When the store is unreachable or uninitialized the figures are zero
// @Description  and setupRequired is true.
// @Tags         kpis
// @Produce      json
// @Success      200  {object}  dto.KPISnapshotResponse
// @Router       /api/kpis [get]
func (h *KPIHandler) Snapshot(c *fiber.Ctx) error {
	return c.JSON(h.uc.Snapshot(c.Context()))
}

// History godoc
// @Summary      Stored KPI rows
// @Tags         kpis
// @Produce      json
// @Param        category  query  string  false  "inventory | cost | performance | suppliers | alerts"
// @Param        period    query  string  false  "daily | monthly | quarterly"
// @Success      200  {array}   dto.KPIResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/kpis/history [get]
func (h *KPIHandler) History(c *fiber.Ctx) error {
	out, err := h.uc.History(c.Context(), c.Query("category"), entity.KPIPeriod(c.Query("period")))
	if err != nil {
		return respondError(c, err, "", "Failed to fetch KPI history")
	}
	return c.JSON(out)
}
