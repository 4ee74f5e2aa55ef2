package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/application/dto"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/application/inventory"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/domain/repository"
)

const inventoryNotFound = "Inventory item not found"

// InventoryHandler inventory endpoints. POST /:id/adjust runs the stock adjustment rule.
type InventoryHandler struct {
	uc *inventory.UseCase
}

// NewInventoryHandler builds the handler.
func NewInventoryHandler(uc *inventory.UseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// List godoc
// @Summary      List inventory items
// @Tags         inventory
// @Produce      json
// @Param        category    query  string  false  "Category"
// @Param        supplierId  query  string  false  "Supplier ID (UUID)"
// @Param        lowStock    query  bool    false  "Only items at or below minimum"
// @Success      200  {array}   dto.InventoryItemResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	supplierID, ok := queryID(c, "supplierId")
	if !ok {
		return nil
	}
	list, err := h.uc.List(c.Context(), repository.InventoryFilter{
		Category:     c.Query("category"),
		SupplierID:   supplierID,
		LowStockOnly: c.QueryBool("lowStock", false),
	})
	if err != nil {
		return respondError(c, err, inventoryNotFound, "Failed to fetch inventory")
	}
	return c.JSON(list)
}

// Create godoc
// @Summary      Create an inventory item
// @Description  Items created at or below their minimum raise a HIGH low-stock alert.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInventoryItemRequest  true  "item"
// @Success      201  {object}  dto.InventoryItemResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory [post]
func (h *InventoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInventoryItemRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err, supplierNotFound, "Failed to create inventory item")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Inventory item detail
// @Tags         inventory
// @Produce      json
// @Param        id  path  string  true  "Item ID (UUID)"
// @Success      200  {object}  dto.InventoryItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory/{id} [get]
func (h *InventoryHandler) GetByID(c *fiber.Ctx) error {
	id, ok := pathID(c, inventoryNotFound)
	if !ok {
		return nil
	}
	out, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return respondError(c, err, inventoryNotFound, "Failed to fetch inventory item")
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Update an inventory item
// @Description  Stock changes go through /adjust; this edits descriptive fields, levels and cost.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                          true  "Item ID (UUID)"
// @Param        body  body  dto.UpdateInventoryItemRequest  true  "fields to change"
// @Success      200  {object}  dto.InventoryItemResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory/{id} [put]
func (h *InventoryHandler) Update(c *fiber.Ctx) error {
	id, ok := pathID(c, inventoryNotFound)
	if !ok {
		return nil
	}
	var in dto.UpdateInventoryItemRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.uc.Update(c.Context(), id, in)
	if err != nil {
		return respondError(c, err, inventoryNotFound, "Failed to update inventory item")
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Delete an inventory item
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Item ID (UUID)"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse  "operator or admin role required"
// @Router       /api/inventory/{id} [delete]
func (h *InventoryHandler) Delete(c *fiber.Ctx) error {
	id, ok := pathID(c, inventoryNotFound)
	if !ok {
		return nil
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return respondError(c, err, inventoryNotFound, "Failed to delete inventory item")
	}
	return c.JSON(dto.MessageResponse{Message: "Inventory item deleted successfully"})
}

// Adjust godoc
// @Summary      Adjust stock
// @Description  Applies a signed delta (floored at zero), refreshes inventory KPIs and may raise a stock alert.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "Item ID (UUID)"
// @Param        body  body  dto.AdjustStockRequest  true  "adjustment, reason, notes"
// @Success      200  {object}  dto.AdjustStockResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory/{id}/adjust [post]
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	id, ok := pathID(c, inventoryNotFound)
	if !ok {
		return nil
	}
	var in dto.AdjustStockRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.uc.Adjust(c.Context(), id, in)
	if err != nil {
		return respondError(c, err, inventoryNotFound, "Failed to adjust inventory")
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Export inventory as XLSX
// @Tags         inventory
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}    binary
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory/export.xlsx [get]
func (h *InventoryHandler) Export(c *fiber.Ctx) error {
	data, err := h.uc.ExportXLSX(c.Context())
	if err != nil {
		return respondError(c, err, inventoryNotFound, "Failed to export inventory")
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="inventory.xlsx"`)
	return c.Send(data)
}
