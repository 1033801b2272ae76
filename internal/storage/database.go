package storage

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Ananth-NQI/tokopesan-backend/internal/models"
)

// DatabaseStore implements Store on top of gorm
type DatabaseStore struct {
	db *gorm.DB
}

// NewDatabaseStore creates a new database-backed store
func NewDatabaseStore(db *gorm.DB) *DatabaseStore {
	return &DatabaseStore{db: db}
}

func (d *DatabaseStore) UpsertProduct(product *models.Product) error {
	product.Name = normalizeName(product.Name)
	if product.Name == "" {
		return fmt.Errorf("product name is required")
	}
	return d.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"price", "stock", "updated_at"}),
	}).Create(product).Error
}

func (d *DatabaseStore) GetProduct(name string) (*models.Product, error) {
	var product models.Product
	err := d.db.Where("name = ?", normalizeName(name)).First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (d *DatabaseStore) ListProducts() ([]*models.Product, error) {
	var products []*models.Product
	if err := d.db.Order("id asc").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (d *DatabaseStore) CreateOrder(record models.OrderRecord) (*models.Order, error) {
	if record.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	var order *models.Order
	err := d.db.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("name = ?", normalizeName(record.Product)).
			First(&product).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		if err != nil {
			return err
		}
		if product.Stock < record.Quantity {
			return ErrInsufficientStock
		}

		if err := tx.Model(&product).Update("stock", product.Stock-record.Quantity).Error; err != nil {
			return err
		}

		order = &models.Order{
			OrderID:   uuid.NewString(),
			Product:   product.Name,
			Quantity:  record.Quantity,
			UnitPrice: product.Price,
			Customer:  record.Customer,
			OrderedAt: parseOrderDate(record.Date, time.Now()),
		}
		return tx.Create(order).Error
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (d *DatabaseStore) GetOrdersByProduct(product string) ([]*models.Order, error) {
	var orders []*models.Order
	err := d.db.Where("product = ?", normalizeName(product)).Order("id asc").Find(&orders).Error
	return orders, err
}
