package models

import (
	"time"

	"gorm.io/gorm"
)

// Product is a stocked item of the store inventory
type Product struct {
	gorm.Model
	Name  string `json:"name" gorm:"uniqueIndex;not null"` // lower-case, e.g. "buku"
	Price int64  `json:"price" gorm:"not null"`            // rupiah per unit
	Stock int    `json:"stock" gorm:"default:0"`
}

// StockQuery is the answer of the stock service for a single item
type StockQuery struct {
	Status  string `json:"status"` // "success" or "error"
	Item    string `json:"item,omitempty"`
	Stock   int    `json:"stock,omitempty"`
	Price   int64  `json:"price,omitempty"`
	Message string `json:"message,omitempty"`
}

// OK reports whether the stock service found the item
func (q StockQuery) OK() bool {
	return q.Status == StatusSuccess
}

// Gateway status values
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// StockEntry is one line of an aggregate stock report
type StockEntry struct {
	Name  string
	Emoji string
	Stock int
}

// ProductSnapshot is used by the inventory API
type ProductSnapshot struct {
	Name      string    `json:"name"`
	Price     int64     `json:"price"`
	Stock     int       `json:"stock"`
	UpdatedAt time.Time `json:"updated_at"`
}
