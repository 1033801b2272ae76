package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Ananth-NQI/tokopesan-backend/internal/models"
	"github.com/Ananth-NQI/tokopesan-backend/internal/services"
	"github.com/Ananth-NQI/tokopesan-backend/internal/storage"
)

// InventoryHandler serves the stock and order service contracts from a local store
type InventoryHandler struct {
	store storage.Store
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(store storage.Store) *InventoryHandler {
	return &InventoryHandler{
		store: store,
	}
}

// CheckStock answers GET /api/v1/stock?item=
func (h *InventoryHandler) CheckStock(c *fiber.Ctx) error {
	item := strings.TrimSpace(c.Query("item"))
	if item == "" {
		return c.Status(fiber.StatusBadRequest).JSON(models.StockQuery{
			Status:  models.StatusError,
			Message: "Parameter item wajib diisi",
		})
	}

	result, err := services.StockQueryFor(h.store, item)
	return c.Status(statusFor(err, fiber.StatusOK)).JSON(result)
}

// CreateOrder answers POST /api/v1/new-order
func (h *InventoryHandler) CreateOrder(c *fiber.Ctx) error {
	var record models.OrderRecord
	if err := c.BodyParser(&record); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.OrderResult{
			Status:  models.StatusError,
			Message: "Invalid request body",
		})
	}
	if strings.TrimSpace(record.Product) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(models.OrderResult{
			Status:  models.StatusError,
			Message: "Produk wajib diisi",
		})
	}

	result, err := services.CreateOrderIn(h.store, record)
	return c.Status(statusFor(err, fiber.StatusCreated)).JSON(result)
}

// ListProducts answers GET /api/v1/products
func (h *InventoryHandler) ListProducts(c *fiber.Ctx) error {
	products, err := h.store.ListProducts()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list products",
		})
	}

	snapshots := make([]models.ProductSnapshot, 0, len(products))
	for _, p := range products {
		snapshots = append(snapshots, models.ProductSnapshot{
			Name:      p.Name,
			Price:     p.Price,
			Stock:     p.Stock,
			UpdatedAt: p.UpdatedAt,
		})
	}
	return c.JSON(fiber.Map{
		"products": snapshots,
		"count":    len(snapshots),
	})
}

// ListOrders answers GET /api/v1/orders?product=
func (h *InventoryHandler) ListOrders(c *fiber.Ctx) error {
	product := strings.TrimSpace(c.Query("product"))
	if product == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Parameter product wajib diisi",
		})
	}

	orders, err := h.store.GetOrdersByProduct(product)
	if err != nil {
		return c.Status(statusFor(err, fiber.StatusOK)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"orders": orders,
		"count":  len(orders),
	})
}

func statusFor(err error, success int) int {
	switch {
	case err == nil:
		return success
	case errors.Is(err, storage.ErrProductNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, storage.ErrInsufficientStock):
		return fiber.StatusConflict
	case errors.Is(err, storage.ErrInvalidQuantity):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}
