package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Ananth-NQI/tokopesan-backend/internal/models"
	"github.com/Ananth-NQI/tokopesan-backend/internal/storage"
)

// DefaultGatewayTimeout bounds every stock and order round-trip
const DefaultGatewayTimeout = 5 * time.Second

// StockGateway looks up price and stock. Failures come back as a result with
// Status "error", never as a Go error.
type StockGateway interface {
	CheckStock(ctx context.Context, product string) models.StockQuery
}

// OrderGateway records one order line
type OrderGateway interface {
	CreateOrder(ctx context.Context, record models.OrderRecord) models.OrderResult
}

// HTTPGateway talks to the remote stock and order services
type HTTPGateway struct {
	stockURL string
	orderURL string
	timeout  time.Duration
}

// NewHTTPGateway creates a gateway for the stock (query) and order (modify) services
func NewHTTPGateway(stockURL, orderURL string, timeout time.Duration) *HTTPGateway {
	if timeout <= 0 {
		timeout = DefaultGatewayTimeout
	}
	return &HTTPGateway{
		stockURL: strings.TrimRight(stockURL, "/"),
		orderURL: strings.TrimRight(orderURL, "/"),
		timeout:  timeout,
	}
}

// budget shrinks the configured timeout to the context deadline
func (g *HTTPGateway) budget(ctx context.Context) (time.Duration, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	timeout := g.timeout
	if dl, ok := ctx.Deadline(); ok {
		left := time.Until(dl)
		if left <= 0 {
			return 0, context.DeadlineExceeded
		}
		if left < timeout {
			timeout = left
		}
	}
	return timeout, nil
}

func (g *HTTPGateway) CheckStock(ctx context.Context, product string) models.StockQuery {
	endpoint := fmt.Sprintf("%s/api/v1/stock?item=%s", g.stockURL, url.QueryEscape(product))
	log.Printf("📦 Checking stock for %q", product)

	timeout, err := g.budget(ctx)
	if err != nil {
		return stockError(err)
	}

	agent := fiber.Get(endpoint)
	agent.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	agent.Timeout(timeout)
	if err := agent.Parse(); err != nil {
		return stockError(err)
	}

	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		log.Printf("❌ Stock service error for %q: %v", product, errs[0])
		return stockError(errs[0])
	}
	// 4xx bodies still carry a structured answer
	if code >= fiber.StatusInternalServerError {
		log.Printf("❌ Stock service returned %d for %q", code, product)
		return stockError(fmt.Errorf("status %d", code))
	}

	var result models.StockQuery
	if err := json.Unmarshal(body, &result); err != nil {
		return stockError(fmt.Errorf("invalid response: %w", err))
	}
	if result.Status == "" {
		result.Status = models.StatusError
	}
	return result
}

func (g *HTTPGateway) CreateOrder(ctx context.Context, record models.OrderRecord) models.OrderResult {
	log.Printf("🛒 Creating order: %s x%d", record.Product, record.Quantity)

	timeout, err := g.budget(ctx)
	if err != nil {
		return orderError(err)
	}

	agent := fiber.Post(g.orderURL + "/api/v1/new-order")
	agent.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	agent.JSON(record)
	agent.Timeout(timeout)
	if err := agent.Parse(); err != nil {
		return orderError(err)
	}

	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		log.Printf("❌ Order service error for %s: %v", record.Product, errs[0])
		return orderError(errs[0])
	}

	var result models.OrderResult
	var decodeErr error
	if len(body) > 0 {
		decodeErr = json.Unmarshal(body, &result)
	}
	if decodeErr != nil {
		log.Printf("⚠️ Order service returned %d with an unreadable body for %s: %v", code, record.Product, decodeErr)
	}
	if code < fiber.StatusOK || code >= fiber.StatusMultipleChoices {
		reason := fmt.Sprintf("status %d", code)
		if result.Message != "" {
			reason = result.Message
		}
		return orderError(errors.New(reason))
	}
	if decodeErr != nil {
		return orderError(fmt.Errorf("invalid response: %w", decodeErr))
	}
	if result.Status == "" {
		result.Status = models.StatusSuccess
	}
	return result
}

func stockError(err error) models.StockQuery {
	return models.StockQuery{Status: models.StatusError, Message: fmt.Sprintf("Gagal memeriksa stok: %v", err)}
}

func orderError(err error) models.OrderResult {
	return models.OrderResult{Status: models.StatusError, Message: fmt.Sprintf("Gagal membuat pesanan: %v", err)}
}

// StoreGateway serves both contracts from a local inventory store
type StoreGateway struct {
	store storage.Store
}

// NewStoreGateway creates an in-process gateway
func NewStoreGateway(store storage.Store) *StoreGateway {
	return &StoreGateway{store: store}
}

func (g *StoreGateway) CheckStock(_ context.Context, product string) models.StockQuery {
	q, _ := StockQueryFor(g.store, product)
	return q
}

func (g *StoreGateway) CreateOrder(_ context.Context, record models.OrderRecord) models.OrderResult {
	r, _ := CreateOrderIn(g.store, record)
	return r
}

// StockQueryFor answers a stock query from the store. The store error, if
// any, is returned alongside the error result.
func StockQueryFor(store storage.Store, product string) (models.StockQuery, error) {
	p, err := store.GetProduct(product)
	if errors.Is(err, storage.ErrProductNotFound) {
		return models.StockQuery{Status: models.StatusError, Message: fmt.Sprintf("Item '%s' tidak ditemukan", product)}, err
	}
	if err != nil {
		return stockError(err), err
	}
	return models.StockQuery{Status: models.StatusSuccess, Item: p.Name, Stock: p.Stock, Price: p.Price}, nil
}

// CreateOrderIn records an order line in the store and decrements its stock
func CreateOrderIn(store storage.Store, record models.OrderRecord) (models.OrderResult, error) {
	order, err := store.CreateOrder(record)
	switch {
	case errors.Is(err, storage.ErrProductNotFound):
		return models.OrderResult{Status: models.StatusError, Message: fmt.Sprintf("Item '%s' tidak ditemukan", record.Product)}, err
	case errors.Is(err, storage.ErrInsufficientStock):
		return models.OrderResult{Status: models.StatusError, Message: fmt.Sprintf("Stok %s tidak mencukupi", record.Product)}, err
	case errors.Is(err, storage.ErrInvalidQuantity):
		return models.OrderResult{Status: models.StatusError, Message: "Jumlah pesanan tidak valid"}, err
	case err != nil:
		return orderError(err), err
	}
	return models.OrderResult{
		Status:  models.StatusSuccess,
		OrderID: order.OrderID,
		Message: fmt.Sprintf("Pesanan %s x%d berhasil dibuat", order.Product, order.Quantity),
	}, nil
}
