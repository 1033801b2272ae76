package storage

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Ananth-NQI/tokopesan-backend/internal/models"
)

// MemoryStore holds all inventory data in memory
type MemoryStore struct {
	products map[string]*models.Product
	orders   []*models.Order

	mu sync.RWMutex

	productCounter uint
}

// NewMemoryStore creates a new in-memory storage
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		products: make(map[string]*models.Product),
	}
}

func (m *MemoryStore) UpsertProduct(product *models.Product) error {
	name := normalizeName(product.Name)
	if name == "" {
		return fmt.Errorf("product name is required")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	if existing, ok := m.products[name]; ok {
		existing.Price = product.Price
		existing.Stock = product.Stock
		existing.UpdatedAt = now
		return nil
	}

	m.productCounter++
	p := *product
	p.ID = m.productCounter
	p.Name = name
	p.CreatedAt = now
	p.UpdatedAt = now
	m.products[name] = &p
	return nil
}

func (m *MemoryStore) GetProduct(name string) (*models.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.products[normalizeName(name)]
	if !ok {
		return nil, ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *MemoryStore) ListProducts() ([]*models.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	products := make([]*models.Product, 0, len(m.products))
	for _, p := range m.products {
		cp := *p
		products = append(products, &cp)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products, nil
}

func (m *MemoryStore) CreateOrder(record models.OrderRecord) (*models.Order, error) {
	if record.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.products[normalizeName(record.Product)]
	if !ok {
		return nil, ErrProductNotFound
	}
	if p.Stock < record.Quantity {
		return nil, ErrInsufficientStock
	}

	now := time.Now()
	p.Stock -= record.Quantity
	p.UpdatedAt = now

	order := &models.Order{
		OrderID:   uuid.NewString(),
		Product:   p.Name,
		Quantity:  record.Quantity,
		UnitPrice: p.Price,
		Customer:  record.Customer,
		OrderedAt: parseOrderDate(record.Date, now),
	}
	order.ID = uint(len(m.orders) + 1)
	order.CreatedAt = now
	order.UpdatedAt = now
	m.orders = append(m.orders, order)
	return order, nil
}

func (m *MemoryStore) GetOrdersByProduct(product string) ([]*models.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	name := normalizeName(product)
	var orders []*models.Order
	for _, o := range m.orders {
		if o.Product == name {
			orders = append(orders, o)
		}
	}
	return orders, nil
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func parseOrderDate(date string, fallback time.Time) time.Time {
	if t, err := time.Parse(time.RFC3339, date); err == nil {
		return t
	}
	return fallback
}
