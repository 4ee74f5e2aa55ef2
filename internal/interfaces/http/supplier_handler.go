package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/application/dto"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/application/usecase"
)

const supplierNotFound = "Supplier not found"

// SupplierHandler supplier endpoints.
type SupplierHandler struct {
	uc *usecase.SupplierUseCase
}

// NewSupplierHandler builds the handler.
func NewSupplierHandler(uc *usecase.SupplierUseCase) *SupplierHandler {
	return &SupplierHandler{uc: uc}
}

// List godoc
// @Summary      List suppliers
// @Description  Ordered by performance score, with shipment, item and alert counts.
// @Tags         suppliers
// @Produce      json
// @Success      200  {array}   dto.SupplierListItemResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/suppliers [get]
func (h *SupplierHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.Context())
	if err != nil {
		return respondError(c, err, supplierNotFound, "Failed to fetch suppliers")
	}
	return c.JSON(list)
}

// Create godoc
// @Summary      Create a supplier
// @Tags         suppliers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSupplierRequest  true  "name, contactEmail, optional phone/address/status"
// @Success      201  {object}  dto.SupplierResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/suppliers [post]
func (h *SupplierHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSupplierRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err, supplierNotFound, "Failed to create supplier")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Supplier detail
// @Description  Supplier with its last 10 shipments, last 10 inventory items and unresolved alerts.
// @Tags         suppliers
// @Produce      json
// @Param        id  path  string  true  "Supplier ID (UUID)"
// @Success      200  {object}  dto.SupplierDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/suppliers/{id} [get]
func (h *SupplierHandler) GetByID(c *fiber.Ctx) error {
	id, ok := pathID(c, supplierNotFound)
	if !ok {
		return nil
	}
	out, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return respondError(c, err, supplierNotFound, "Failed to fetch supplier")
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Update a supplier
// @Tags         suppliers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "Supplier ID (UUID)"
// @Param        body  body  dto.UpdateSupplierRequest  true  "fields to change"
// @Success      200  {object}  dto.SupplierResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/suppliers/{id} [put]
func (h *SupplierHandler) Update(c *fiber.Ctx) error {
	id, ok := pathID(c, supplierNotFound)
	if !ok {
		return nil
	}
	var in dto.UpdateSupplierRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.uc.Update(c.Context(), id, in)
	if err != nil {
		return respondError(c, err, supplierNotFound, "Failed to update supplier")
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Delete a supplier
// @Tags         suppliers
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Supplier ID (UUID)"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse  "operator or admin role required"
// @Router       /api/suppliers/{id} [delete]
func (h *SupplierHandler) Delete(c *fiber.Ctx) error {
	id, ok := pathID(c, supplierNotFound)
	if !ok {
		return nil
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return respondError(c, err, supplierNotFound, "Failed to delete supplier")
	}
	return c.JSON(dto.MessageResponse{Message: "Supplier deleted successfully"})
}
