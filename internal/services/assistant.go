package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Ananth-NQI/tokopesan-backend/internal/models"
)

// ErrEmptyMessage rejects blank chat input before any session is touched
var ErrEmptyMessage = errors.New("message is empty")

// DefaultCustomerLabel is sent to the order service for every line
const DefaultCustomerLabel = "Pelanggan"

// AssistantDeps wires the orchestrator
type AssistantDeps struct {
	Sessions SessionStore
	Catalog  *Catalog
	Stock    StockGateway
	Orders   OrderGateway
	Oracle   CompletionOracle // nil answers unknown messages with static help
	Picker   Picker
	Customer string
}

// Assistant classifies each message and produces the reply, mutating the
// user's session under its lock
type Assistant struct {
	sessions   SessionStore
	catalog    *Catalog
	classifier *Classifier
	cart       *CartEngine
	stock      StockGateway
	orders     OrderGateway
	fallback   *FallbackResponder
	picker     Picker
	customer   string
	now        func() time.Time
}

// NewAssistant creates the order-taking assistant
func NewAssistant(deps AssistantDeps) *Assistant {
	if deps.Catalog == nil {
		deps.Catalog = DefaultCatalog()
	}
	if deps.Picker == nil {
		deps.Picker = NewPicker(0)
	}
	if deps.Customer == "" {
		deps.Customer = DefaultCustomerLabel
	}
	if deps.Sessions == nil {
		deps.Sessions = NewSessionManager()
	}

	a := &Assistant{
		sessions:   deps.Sessions,
		catalog:    deps.Catalog,
		classifier: NewClassifier(deps.Catalog),
		cart:       NewCartEngine(deps.Catalog),
		stock:      deps.Stock,
		orders:     deps.Orders,
		picker:     deps.Picker,
		customer:   deps.Customer,
		now:        time.Now,
	}
	a.fallback = NewFallbackResponder(deps.Oracle, deps.Picker, a.systemPrompt(), a.staticHelpMessage())
	return a
}

// Sessions exposes the session store (for monitoring)
func (a *Assistant) Sessions() SessionStore {
	return a.sessions
}

// ProcessMessage handles one inbound message for userID and returns the reply
func (a *Assistant) ProcessMessage(ctx context.Context, userID, msg string) (string, error) {
	if strings.TrimSpace(msg) == "" {
		return "", ErrEmptyMessage
	}

	var reply string
	err := a.sessions.WithSession(userID, func(s *Session) error {
		cl := a.classifier.Classify(msg, ConversationState{
			CartSize:             len(s.Cart),
			AwaitingConfirmation: s.AwaitingConfirmation,
		})
		log.Printf("💬 %s: %q classified as %s", userID, msg, cl.Intent)

		if cl.Intent == IntentFallback {
			reply = a.fallback.Respond(ctx, s, msg)
			return nil
		}
		reply = a.handle(ctx, s, cl)
		s.AddToHistory(models.RoleUser, msg)
		s.AddToHistory(models.RoleAssistant, reply)
		return nil
	})
	return reply, err
}

func (a *Assistant) handle(ctx context.Context, s *Session, cl Classification) string {
	switch cl.Intent {
	case IntentConfirm:
		return a.confirm(ctx, s)
	case IntentViewCart:
		return a.viewCart(s)
	case IntentCancel:
		a.cart.Clear(s)
		return msgCancelled
	case IntentCatalog:
		return a.catalogMessage()
	case IntentPrice:
		return a.price(ctx, cl.Product)
	case IntentStock:
		return a.stockReport(ctx, cl)
	case IntentAvailability:
		return a.availability(ctx, cl.Product)
	case IntentOrder:
		if len(cl.Lines) > 0 {
			return a.orderLines(ctx, s, cl.Lines)
		}
		return a.orderSingle(ctx, s, cl.Single)
	case IntentGreeting:
		return pick(a.picker, greetingResponses)
	}
	return a.staticHelpMessage()
}

// confirm submits every cart line best-effort, renders the paid receipt and
// clears the cart. A failed line is logged and does not stop the others.
func (a *Assistant) confirm(ctx context.Context, s *Session) string {
	now := a.now()
	s.OrderNumber = fmt.Sprintf("ORD-%d", now.UnixMilli())

	for _, item := range s.Cart {
		result := a.orders.CreateOrder(ctx, models.OrderRecord{
			Product:  item.Product,
			Quantity: item.Quantity,
			Customer: a.customer,
			Date:     now.UTC().Format(time.RFC3339),
		})
		if !result.OK() {
			log.Printf("❌ Order line %s x%d for %s failed: %s", item.Product, item.Quantity, s.OrderNumber, result.Message)
			continue
		}
		log.Printf("✅ Order line %s x%d for %s created", item.Product, item.Quantity, s.OrderNumber)
	}

	receipt := a.cart.RenderReceipt(s.Cart, true, s.OrderNumber)
	a.cart.Clear(s)
	return receipt
}

func (a *Assistant) viewCart(s *Session) string {
	if len(s.Cart) == 0 {
		return msgEmptyCartWithHint
	}
	s.AwaitingConfirmation = true
	return a.cart.RenderReceipt(s.Cart, false, "")
}

func (a *Assistant) price(ctx context.Context, product string) string {
	if product == "" {
		return a.priceListMessage()
	}
	p, _ := a.catalog.Find(product)
	q := a.stock.CheckStock(ctx, product)
	if !q.OK() {
		return a.priceUnavailableMessage(p)
	}
	return a.priceMessage(p, q.Price)
}

func (a *Assistant) stockReport(ctx context.Context, cl Classification) string {
	if cl.AllStock {
		var lines []models.StockEntry
		for _, p := range a.catalog.Products {
			q := a.stock.CheckStock(ctx, p.Name)
			if !q.OK() {
				continue
			}
			lines = append(lines, models.StockEntry{Name: p.Name, Emoji: p.Emoji, Stock: q.Stock})
		}
		return a.aggregateStockMessage(lines)
	}

	item := a.catalog.Resolve(cl.StockItem)
	q := a.stock.CheckStock(ctx, item)
	if !q.OK() {
		return fmt.Sprintf("Mohon maaf, stok %s tidak dapat ditemukan.", cl.StockItem)
	}
	name := q.Item
	if name == "" {
		name = item
	}
	return fmt.Sprintf("Stok %s saat ini tersedia %d unit.", name, q.Stock)
}

// availability answers "ada buku?" style questions without touching the cart
func (a *Assistant) availability(ctx context.Context, product string) string {
	q := a.stock.CheckStock(ctx, product)
	if !q.OK() {
		return a.notAvailableListMessage(product)
	}
	return pick(a.picker, availabilityMessages(a.catalog.Emoji(product), product, q.Price, q.Stock))
}

type pricedLine struct {
	OrderLine
	price int64
}

// orderLines validates every line before committing any of them
func (a *Assistant) orderLines(ctx context.Context, s *Session, lines []OrderLine) string {
	var problems []string
	priced := make([]pricedLine, 0, len(lines))

	for _, line := range lines {
		if line.Quantity <= 0 {
			return msgInvalidQuantity
		}
	}
	for _, line := range lines {
		q := a.stock.CheckStock(ctx, line.Product)
		switch {
		case !q.OK():
			problems = append(problems, fmt.Sprintf("%s tidak tersedia", line.Product))
		case q.Stock < line.Quantity:
			problems = append(problems, fmt.Sprintf("Stok %s hanya %d unit (diminta %d)", line.Product, q.Stock, line.Quantity))
		default:
			priced = append(priced, pricedLine{OrderLine: line, price: q.Price})
		}
	}

	if len(problems) > 0 {
		return fmt.Sprintf("Maaf, ada masalah dengan stok:\n\n%s\n\nSilakan coba lagi dengan jumlah yang tersedia.",
			strings.Join(problems, "\n"))
	}

	for _, line := range priced {
		a.cart.AddItem(s, models.NewCartItem(line.Product, line.Quantity, line.price))
	}
	s.AwaitingConfirmation = true
	return a.cart.RenderReceipt(s.Cart, false, "")
}

func (a *Assistant) orderSingle(ctx context.Context, s *Session, line *OrderLine) string {
	if line == nil || len([]rune(line.Product)) < 2 {
		return msgSpecifyProduct
	}
	if line.Quantity <= 0 {
		return msgInvalidQuantity
	}

	product := a.catalog.Resolve(line.Product)
	q := a.stock.CheckStock(ctx, product)
	if !q.OK() {
		return fmt.Sprintf("Maaf, produk \"%s\" tidak tersedia. Produk yang tersedia: %s", line.Product, a.productNamesLine())
	}
	if q.Stock < line.Quantity {
		return fmt.Sprintf("Maaf, stok %s tidak mencukupi. Stok tersedia hanya %d unit.", product, q.Stock)
	}

	a.cart.AddItem(s, models.NewCartItem(product, line.Quantity, q.Price))
	s.AwaitingConfirmation = true
	return a.cart.RenderReceipt(s.Cart, false, "")
}

func (a *Assistant) staticHelpMessage() string {
	return fmt.Sprintf("Halo! Anda bisa: 1) Cek stok: \"Cek stok %s\" 2) Buat pesanan: \"Pesan 2 %s\".",
		strings.Join(a.catalog.Names(), "/"), a.catalog.Products[0].Name)
}
