package models

import (
	"time"

	"gorm.io/gorm"
)

// OrderRecord is what the order service receives for every cart line
type OrderRecord struct {
	Product  string `json:"product"`
	Quantity int    `json:"quantity"`
	Customer string `json:"customer"`
	Date     string `json:"date"` // RFC3339
}

// OrderResult is the answer of the order service
type OrderResult struct {
	Status  string `json:"status"`
	OrderID string `json:"order_id,omitempty"`
	Message string `json:"message,omitempty"`
}

// OK reports whether the order service accepted the order
func (r OrderResult) OK() bool {
	return r.Status == StatusSuccess
}

// Order is a persisted order line of the local inventory service
type Order struct {
	gorm.Model
	OrderID   string    `json:"order_id" gorm:"uniqueIndex;not null"`
	Product   string    `json:"product" gorm:"index;not null"`
	Quantity  int       `json:"quantity" gorm:"not null"`
	UnitPrice int64     `json:"unit_price"`
	Customer  string    `json:"customer"`
	OrderedAt time.Time `json:"ordered_at"`
}
