package services

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Intent is the classified purpose of a message
type Intent string

const (
	IntentConfirm      Intent = "confirm"
	IntentViewCart     Intent = "view_cart"
	IntentCancel       Intent = "cancel"
	IntentCatalog      Intent = "catalog"
	IntentPrice        Intent = "price"
	IntentStock        Intent = "stock"
	IntentAvailability Intent = "availability"
	IntentOrder        Intent = "order"
	IntentGreeting     Intent = "greeting"
	IntentFallback     Intent = "fallback"
)

// Classification is the winning intent plus what it extracted
type Classification struct {
	Intent Intent

	// Product is the catalog product named in the message (price, availability)
	Product string
	// StockItem is the raw item token of a single-item stock question
	StockItem string
	// AllStock asks for the whole catalog's stock
	AllStock bool
	// Lines holds multi-item order pairs; Single is the loose fallback parse
	Lines  []OrderLine
	Single *OrderLine
}

// ConversationState is the part of the session the cascade depends on
type ConversationState struct {
	CartSize             int
	AwaitingConfirmation bool
}

var (
	confirmKeywords  = []string{"iya", "ya", "ok", "oke", "confirm", "benar", "betul", "lanjut", "setuju", "yes", "yup", "sip"}
	negationWords    = wordSet("tidak", "gak", "nggak", "enggak", "ga", "jangan", "bukan", "no", "nope")
	cartKeywords     = []string{"total", "keranjang", "pesanan", "lihat pesanan", "cek pesanan", "nota"}
	cancelKeywords   = []string{"batal", "cancel", "hapus pesanan", "kosongkan", "reset"}
	catalogPhrases   = []string{"produk apa", "apa saja", "yang tersedia", "list produk", "daftar produk", "katalog", "produk tersedia", "barang apa", "jualan apa", "apa produk", "produk yang ada"}
	stockWords       = []string{"stok", "sisa", "jumlah"}
	priceKeywords    = []string{"harga", "berapa", "price", "biaya", "bayar"}
	priceExclusions  = []string{"total", "stok", "sisa", "jumlah"}
	stockKeywords    = []string{"stok", "ada", "berapa", "sisa", "tersedia", "jumlah"}
	allStockKeywords = []string{"semua", "setiap", "seluruh", "total", "all", "barang"}
	inquiryKeywords  = []string{"ada", "pesan", "beli", "mau", "order"}
	orderKeywords    = []string{"pesan", "order", "beli", "mau", "ingin", "membeli", "memesan", "tambah"}
	greetingKeywords = []string{"halo", "hai", "hello", "hi", "allo", "hola", "hey", "selamat", "hallo"}

	stockPhrase = regexp.MustCompile(`(cek|lihat|tampilkan|info)\s+(stok|barang|produk)`)
	desire      = regexp.MustCompile(`(saya|aku|gue|gw|kami|kita)\s+(mau|ingin|pengen|pengin|mohon|minta|butuh|perlu)`)
)

// message is a normalized inbound message
type message struct {
	text     string   // lower-cased, trimmed
	fields   []string // whitespace separated
	tokens   []token  // alphanumeric
	hasDigit bool
}

func normalize(raw string) *message {
	text := strings.ToLower(strings.TrimSpace(raw))
	return &message{
		text:     text,
		fields:   strings.Fields(text),
		tokens:   tokenize(text),
		hasDigit: strings.IndexFunc(text, unicode.IsDigit) >= 0,
	}
}

func (m *message) containsAny(words []string) bool {
	for _, w := range words {
		if strings.Contains(m.text, w) {
			return true
		}
	}
	return false
}

// hasPhrase reports whether phrase occurs on word boundaries
func (m *message) hasPhrase(phrase string) bool {
	parts := strings.Fields(phrase)
	for i := 0; i+len(parts) <= len(m.tokens); i++ {
		match := true
		for k, p := range parts {
			if m.tokens[i+k].text != p {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

// rule is one (predicate, extraction) stage of the cascade
type rule struct {
	intent Intent
	match  func(c *Classifier, m *message, st ConversationState) (Classification, bool)
}

// cascade is evaluated first-match-wins. The order is part of the observable
// behavior: e.g. "total" never reaches the price stage because it is either a
// cart view or excluded there, and cancel only fires with a non-empty cart.
var cascade = []rule{
	{IntentConfirm, matchConfirm},
	{IntentViewCart, matchViewCart},
	{IntentCancel, matchCancel},
	{IntentCatalog, matchCatalog},
	{IntentPrice, matchPrice},
	{IntentStock, matchStock},
	{IntentAvailability, matchAvailability},
	{IntentOrder, matchOrder},
	{IntentGreeting, matchGreeting},
}

// Classifier runs the intent cascade against a catalog
type Classifier struct {
	catalog   *Catalog
	threshold int
}

// NewClassifier creates a classifier with the default fuzzy threshold
func NewClassifier(catalog *Catalog) *Classifier {
	return &Classifier{catalog: catalog, threshold: DefaultFuzzyThreshold}
}

// Classify returns the first matching intent, or IntentFallback
func (c *Classifier) Classify(raw string, st ConversationState) Classification {
	m := normalize(raw)
	for _, r := range cascade {
		if cl, ok := r.match(c, m, st); ok {
			cl.Intent = r.intent
			return cl
		}
	}
	return Classification{Intent: IntentFallback}
}

func matchConfirm(c *Classifier, m *message, st ConversationState) (Classification, bool) {
	if !st.AwaitingConfirmation || st.CartSize == 0 {
		return Classification{}, false
	}
	return Classification{}, c.isConfirmation(m)
}

// isConfirmation accepts short replies naming a confirmation keyword exactly
// or within its fuzzy budget. Replies that cancel, negate, carry a quantity or
// name a product are never confirmations.
func (c *Classifier) isConfirmation(m *message) bool {
	if len(m.fields) == 0 || len(m.fields) > 3 || m.hasDigit || m.containsAny(cancelKeywords) {
		return false
	}
	if _, named := c.catalog.Mentioned(m.text); named {
		return false
	}
	for _, t := range m.tokens {
		if negationWords[t.text] {
			return false
		}
	}
	for _, kw := range confirmKeywords {
		if m.text == kw || m.hasPhrase(kw) {
			return true
		}
	}
	for _, t := range m.tokens {
		if utf8.RuneCountInString(t.text) <= c.threshold {
			continue
		}
		for _, kw := range confirmKeywords {
			if budget := c.fuzzyBudget(kw); budget > 0 && FuzzyEquals(t.text, kw, budget) {
				return true
			}
		}
	}
	return false
}

// fuzzyBudget is the edit budget for a keyword. Keywords of threshold length
// or less must match exactly and one rune longer tolerate a single typo, so
// "saya" is not "iya" and "3" is not "ok".
func (c *Classifier) fuzzyBudget(kw string) int {
	switch n := utf8.RuneCountInString(kw); {
	case n <= c.threshold:
		return 0
	case n == c.threshold+1:
		return 1
	}
	return c.threshold
}

// matchViewCart leaves "batal pesanan" to the cancel stage while there is
// something to cancel; with an empty cart it shows the empty cart.
func matchViewCart(_ *Classifier, m *message, st ConversationState) (Classification, bool) {
	ok := m.containsAny(cartKeywords) &&
		!strings.Contains(m.text, "stok") &&
		!(st.CartSize > 0 && m.containsAny(cancelKeywords)) &&
		len(m.fields) <= 4
	return Classification{}, ok
}

func matchCancel(_ *Classifier, m *message, st ConversationState) (Classification, bool) {
	return Classification{}, st.CartSize > 0 && m.containsAny(cancelKeywords)
}

func matchCatalog(c *Classifier, m *message, st ConversationState) (Classification, bool) {
	if st.AwaitingConfirmation || m.hasDigit || m.containsAny(stockWords) {
		return Classification{}, false
	}
	if _, named := c.catalog.Mentioned(m.text); named {
		return Classification{}, false
	}
	has := func(w string) bool { return strings.Contains(m.text, w) }
	ok := m.containsAny(catalogPhrases) ||
		(has("produk") && (has("apa") || has("tersedia") || has("ada"))) ||
		(has("barang") && (has("apa") || has("tersedia") || has("ada"))) ||
		(has("apa") && has("saja"))
	return Classification{}, ok
}

func matchPrice(c *Classifier, m *message, _ ConversationState) (Classification, bool) {
	if !m.containsAny(priceKeywords) || m.containsAny(priceExclusions) {
		return Classification{}, false
	}
	cl := Classification{}
	if p, ok := c.catalog.Mentioned(m.text); ok {
		cl.Product = p.Name
	}
	return cl, true
}

func isStockQuery(m *message) bool {
	return m.containsAny(stockKeywords) || stockPhrase.MatchString(m.text)
}

// matchStock falls through when neither the whole catalog nor an item is asked for
func matchStock(c *Classifier, m *message, _ ConversationState) (Classification, bool) {
	if !isStockQuery(m) {
		return Classification{}, false
	}
	if _, named := c.catalog.Mentioned(m.text); !named && m.containsAny(allStockKeywords) {
		return Classification{AllStock: true}, true
	}
	if item := extractStockItem(m.tokens); item != "" {
		return Classification{StockItem: item}, true
	}
	return Classification{}, false
}

func matchAvailability(c *Classifier, m *message, _ ConversationState) (Classification, bool) {
	if m.hasDigit || !m.containsAny(inquiryKeywords) {
		return Classification{}, false
	}
	p, ok := c.catalog.Mentioned(m.text)
	if !ok {
		return Classification{}, false
	}
	return Classification{Product: p.Name}, true
}

func isOrderQuery(m *message) bool {
	return m.containsAny(orderKeywords) || desire.MatchString(m.text)
}

func matchOrder(c *Classifier, m *message, _ ConversationState) (Classification, bool) {
	if !isOrderQuery(m) {
		return Classification{}, false
	}
	if lines := parseOrderLines(m.tokens, c.catalog); len(lines) > 0 {
		return Classification{Lines: lines}, true
	}
	single, ok := parseSingleOrder(m.tokens)
	if !ok {
		return Classification{Single: &OrderLine{}}, true
	}
	return Classification{Single: &single}, true
}

// hasGreeting matches two letter greetings ("hi") as whole words only, so
// "terima kasih" is not a greeting
func (m *message) hasGreeting() bool {
	for _, kw := range greetingKeywords {
		if len(kw) <= 2 {
			if m.hasPhrase(kw) {
				return true
			}
			continue
		}
		if strings.Contains(m.text, kw) {
			return true
		}
	}
	return false
}

func matchGreeting(_ *Classifier, m *message, _ ConversationState) (Classification, bool) {
	ok := m.hasGreeting() &&
		len(m.fields) <= 5 &&
		!isStockQuery(m) &&
		!isOrderQuery(m)
	return Classification{}, ok
}
