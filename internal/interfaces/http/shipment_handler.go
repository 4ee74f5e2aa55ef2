package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/application/dto"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/application/shipment"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/domain/entity"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/domain/repository"
)

const shipmentNotFound = "Shipment not found"

// ShipmentHandler shipment endpoints. PUT with status DELIVERED runs the delivery rule.
type ShipmentHandler struct {
	uc *shipment.UseCase
}

// NewShipmentHandler builds the handler.
func NewShipmentHandler(uc *shipment.UseCase) *ShipmentHandler {
	return &ShipmentHandler{uc: uc}
}

// List godoc
// @Summary      List shipments
// @Tags         shipments
// @Produce      json
// @Param        status      query  string  false  "PENDING | IN_TRANSIT | DELIVERED | DELAYED | CANCELLED | RETURNED"
// @Param        supplierId  query  string  false  "Supplier ID (UUID)"
// @Success      200  {array}   dto.ShipmentResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/shipments [get]
func (h *ShipmentHandler) List(c *fiber.Ctx) error {
	supplierID, ok := queryID(c, "supplierId")
	if !ok {
		return nil
	}
	list, err := h.uc.List(c.Context(), repository.ShipmentFilter{
		Status:     entity.ShipmentStatus(c.Query("status")),
		SupplierID: supplierID,
	})
	if err != nil {
		return respondError(c, err, shipmentNotFound, "Failed to fetch shipments")
	}
	return c.JSON(list)
}

// Create godoc
// @Summary      Create a shipment
// @Description  Starts in PENDING and counts toward the supplier's total orders.
// @Tags         shipments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateShipmentRequest  true  "shipment"
// @Success      201  {object}  dto.ShipmentResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/shipments [post]
func (h *ShipmentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateShipmentRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err, supplierNotFound, "Failed to create shipment")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Shipment detail
// @Tags         shipments
// @Produce      json
// @Param        id  path  string  true  "Shipment ID (UUID)"
// @Success      200  {object}  dto.ShipmentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/shipments/{id} [get]
func (h *ShipmentHandler) GetByID(c *fiber.Ctx) error {
	id, ok := pathID(c, shipmentNotFound)
	if !ok {
		return nil
	}
	out, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return respondError(c, err, shipmentNotFound, "Failed to fetch shipment")
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Update shipment status
// @Description  DELIVERED requires actualDate and rescores the supplier; late deliveries raise an alert.
// @Tags         shipments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "Shipment ID (UUID)"
// @Param        body  body  dto.UpdateShipmentRequest  true  "status, actualDate, notes"
// @Success      200  {object}  dto.ShipmentResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/shipments/{id} [put]
func (h *ShipmentHandler) Update(c *fiber.Ctx) error {
	id, ok := pathID(c, shipmentNotFound)
	if !ok {
		return nil
	}
	var in dto.UpdateShipmentRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.uc.Update(c.Context(), id, in)
	if err != nil {
		return respondError(c, err, shipmentNotFound, "Failed to update shipment")
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Delete a shipment
// @Tags         shipments
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Shipment ID (UUID)"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse  "operator or admin role required"
// @Router       /api/shipments/{id} [delete]
func (h *ShipmentHandler) Delete(c *fiber.Ctx) error {
	id, ok := pathID(c, shipmentNotFound)
	if !ok {
		return nil
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return respondError(c, err, shipmentNotFound, "Failed to delete shipment")
	}
	return c.JSON(dto.MessageResponse{Message: "Shipment deleted successfully"})
}
