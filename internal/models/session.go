package models

// CartItem is a priced order line. Subtotal is fixed when the item is added.
type CartItem struct {
	Product  string `json:"product"`
	Quantity int    `json:"quantity"`
	Price    int64  `json:"price"`
	Subtotal int64  `json:"subtotal"`
}

// NewCartItem prices a line at add time
func NewCartItem(product string, quantity int, price int64) CartItem {
	return CartItem{
		Product:  product,
		Quantity: quantity,
		Price:    price,
		Subtotal: int64(quantity) * price,
	}
}

// Conversation roles
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ConversationTurn is one message of the conversation window
type ConversationTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
