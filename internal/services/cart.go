package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/Ananth-NQI/tokopesan-backend/internal/models"
)

// CartEngine prices and renders carts
type CartEngine struct {
	catalog *Catalog
	now     func() time.Time
}

// NewCartEngine creates a cart engine. Receipts use catalog emojis.
func NewCartEngine(catalog *Catalog) *CartEngine {
	return &CartEngine{catalog: catalog, now: time.Now}
}

// AddItem appends an item, preserving insertion order
func (e *CartEngine) AddItem(session *Session, item models.CartItem) {
	session.Cart = append(session.Cart, item)
}

// ComputeTotal sums stored subtotals
func ComputeTotal(cart []models.CartItem) int64 {
	var total int64
	for _, item := range cart {
		total += item.Subtotal
	}
	return total
}

// Clear empties the cart and leaves the confirmation window
func (e *CartEngine) Clear(session *Session) {
	session.Cart = []models.CartItem{}
	session.AwaitingConfirmation = false
	session.OrderNumber = ""
}

// RenderReceipt renders an unpaid receipt (with a confirmation prompt) or a
// paid one (with order number and timestamp)
func (e *CartEngine) RenderReceipt(cart []models.CartItem, paid bool, orderNumber string) string {
	if len(cart) == 0 {
		return msgEmptyCart
	}

	var b strings.Builder
	if paid {
		b.WriteString("✅ PEMBAYARAN BERHASIL\n\n")
		if orderNumber != "" {
			fmt.Fprintf(&b, "No. Pesanan: #%s\n", orderNumber)
			fmt.Fprintf(&b, "Tanggal: %s\n\n", formatReceiptTime(e.now()))
		}
	} else {
		b.WriteString("📋 NOTA PESANAN\n\n")
	}

	b.WriteString("Barang:\n")
	for _, item := range cart {
		fmt.Fprintf(&b, "%s %dx %s @ %s = %s\n",
			e.catalog.Emoji(item.Product), item.Quantity, titleCase(item.Product),
			FormatRupiah(item.Price), FormatRupiah(item.Subtotal))
	}
	b.WriteString("─────────────────────────\n")
	fmt.Fprintf(&b, "TOTAL: %s\n\n", FormatRupiah(ComputeTotal(cart)))

	if paid {
		b.WriteString("Status: LUNAS ✅\n\n")
		b.WriteString("Terima kasih atas pesanan Anda! 🙏")
	} else {
		b.WriteString("Apakah pesanan sudah benar?\n")
		b.WriteString("Silakan ketik \"iya\" untuk konfirmasi atau\n")
		b.WriteString("\"tambah [jumlah] [item]\" untuk menambah pesanan")
	}
	return b.String()
}

var indonesianMonths = [...]string{"Jan", "Feb", "Mar", "Apr", "Mei", "Jun", "Jul", "Agu", "Sep", "Okt", "Nov", "Des"}

// formatReceiptTime renders e.g. "19 Okt 2026, 14.05"
func formatReceiptTime(t time.Time) string {
	return fmt.Sprintf("%d %s %d, %02d.%02d", t.Day(), indonesianMonths[t.Month()-1], t.Year(), t.Hour(), t.Minute())
}
