package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/application/dto"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/application/usecase"
)

const alertNotFound = "Alert not found"

// AlertHandler alert feed endpoints.
type AlertHandler struct {
	uc *usecase.AlertUseCase
}

// NewAlertHandler builds the handler.
func NewAlertHandler(uc *usecase.AlertUseCase) *AlertHandler {
	return &AlertHandler{uc: uc}
}

// List godoc
// @Summary      List alerts
// @Description  Unresolved first, then by severity and recency. "all" disables a filter.
// @Tags         alerts
// @Produce      json
// @Param        severity    query  string  false  "LOW | MEDIUM | HIGH | CRITICAL | all"
// @Param        type        query  string  false  "alert type or all"
// @Param        isRead      query  string  false  "true | false | all"
// @Param        isResolved  query  string  false  "true | false | all"
// @Success      200  {array}   dto.AlertResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/alerts [get]
func (h *AlertHandler) List(c *fiber.Ctx) error {
	var q dto.AlertListQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid query parameters", Code: "INVALID_PARAMS"})
	}
	list, err := h.uc.List(c.Context(), q)
	if err != nil {
		return respondError(c, err, alertNotFound, "Failed to fetch alerts")
	}
	return c.JSON(list)
}

// Create godoc
// @Summary      Create a manual alert
// @Tags         alerts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAlertRequest  true  "type, severity, title, message, optional refs"
// @Success      201  {object}  dto.AlertResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/alerts [post]
func (h *AlertHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateAlertRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err, alertNotFound, "Failed to create alert")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Mark an alert read or resolved
// @Tags         alerts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "Alert ID (UUID)"
// @Param        body  body  dto.UpdateAlertRequest  true  "isRead, isResolved"
// @Success      200  {object}  dto.AlertResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/alerts/{id} [put]
func (h *AlertHandler) Update(c *fiber.Ctx) error {
	id, ok := pathID(c, alertNotFound)
	if !ok {
		return nil
	}
	var in dto.UpdateAlertRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.uc.Update(c.Context(), id, in)
	if err != nil {
		return respondError(c, err, alertNotFound, "Failed to update alert")
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Delete an alert
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Alert ID (UUID)"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse  "operator or admin role required"
// @Router       /api/alerts/{id} [delete]
func (h *AlertHandler) Delete(c *fiber.Ctx) error {
	id, ok := pathID(c, alertNotFound)
	if !ok {
		return nil
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return respondError(c, err, alertNotFound, "Failed to delete alert")
	}
	return c.JSON(dto.MessageResponse{Message: "Alert deleted successfully"})
}

// Bulk godoc
// @Summary      Bulk alert action
// @Description  markAsRead, markAsUnread, resolve (also marks read) or unresolve.
// @Tags         alerts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BulkAlertRequest  true  "alertIds, action"
// @Success      200  {object}  dto.BulkAlertResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse  "operator or admin role required"
// @Router       /api/alerts/bulk [put]
func (h *AlertHandler) Bulk(c *fiber.Ctx) error {
	var in dto.BulkAlertRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.uc.Bulk(c.Context(), in)
	if err != nil {
		return respondError(c, err, alertNotFound, "Failed to update alerts")
	}
	return c.JSON(out)
}
