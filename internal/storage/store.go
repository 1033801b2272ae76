package storage

import (
	"errors"

	"github.com/Ananth-NQI/tokopesan-backend/internal/models"
)

// Errors returned by every Store implementation
var (
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidQuantity   = errors.New("quantity must be positive")
)

// Store defines the interface for inventory storage operations
type Store interface {
	// Product operations
	UpsertProduct(product *models.Product) error
	GetProduct(name string) (*models.Product, error)
	ListProducts() ([]*models.Product, error)

	// Order operations. CreateOrder deducts stock and fails without side
	// effects when the product is unknown or short.
	CreateOrder(record models.OrderRecord) (*models.Order, error)
	GetOrdersByProduct(product string) ([]*models.Order, error)
}
