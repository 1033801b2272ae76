package services

import (
	"strconv"
	"strings"
	"unicode"
)

// token is one alphanumeric word of a normalized message
type token struct {
	text     string
	number   int
	isNumber bool
}

// OrderLine is a requested (product, quantity) pair
type OrderLine struct {
	Product  string
	Quantity int
}

// tokenize splits on every rune that is neither a letter nor a digit.
// "2", "2x" and "x2" style tokens become numbers.
func tokenize(msg string) []token {
	words := strings.FieldsFunc(msg, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	tokens := make([]token, 0, len(words))
	for _, w := range words {
		t := token{text: w}
		digits := strings.TrimSuffix(strings.TrimPrefix(w, "x"), "x")
		if n, err := strconv.Atoi(digits); err == nil && digits != "" && n >= 0 {
			t.number = n
			t.isNumber = true
		}
		tokens = append(tokens, t)
	}
	return tokens
}

var unitWords = wordSet("unit", "buah", "pcs", "pack", "dus", "box", "biji", "x")

// orderFillers may precede the product in a single-item order
var orderFillers = wordSet(
	"saya", "aku", "gue", "gw", "kami", "kita",
	"mau", "ingin", "pengen", "pengin", "mohon", "minta", "butuh", "perlu", "tolong",
	"tambah", "memesan", "membeli", "order", "pesan", "beli", "dong", "lagi",
)

// stockFillers sit between a stock trigger and the item name
var stockFillers = wordSet(
	"stok", "jumlah", "sisa", "ada", "berapa", "tersedia",
	"dari", "untuk", "barang", "produk", "yang", "apa", "yg", "itu",
	"cek", "lihat", "tampilkan", "info", "apakah", "masih", "saat", "ini", "sekarang", "kah",
)

var stockLeadTriggers = wordSet("stok", "jumlah", "sisa", "ada", "berapa")
var stockTrailTriggers = wordSet("stok", "tersedia", "ada", "jumlah")

// productAt matches a (possibly multi-word) catalog product starting at i and
// returns its name and token length
func productAt(tokens []token, i int, catalog *Catalog) (string, int) {
	for _, p := range catalog.Products {
		parts := strings.Fields(p.Name)
		if i+len(parts) > len(tokens) {
			continue
		}
		match := true
		for k, part := range parts {
			if tokens[i+k].text != part {
				match = false
				break
			}
		}
		if match {
			return p.Name, len(parts)
		}
	}
	return "", 0
}

// parseOrderLines implements the grammar
//
//	line := quantity unit* product | product quantity
//
// scanning left to right. A quantity directly before a product binds to it;
// otherwise a quantity directly after it does. Any other word breaks adjacency.
// Products are reported in the order they are found, first occurrence only.
func parseOrderLines(tokens []token, catalog *Catalog) []OrderLine {
	var lines []OrderLine
	seen := make(map[string]bool)
	pending, hasPending := 0, false

	for i := 0; i < len(tokens); i++ {
		t := tokens[i]
		if t.isNumber {
			pending, hasPending = t.number, true
			continue
		}
		if name, n := productAt(tokens, i, catalog); n > 0 {
			j := i + n
			qty, found := 0, false
			if hasPending {
				qty, found = pending, true
				hasPending = false
			} else if j < len(tokens) && tokens[j].isNumber {
				qty, found = tokens[j].number, true
				j++
			}
			if found && !seen[name] {
				lines = append(lines, OrderLine{Product: name, Quantity: qty})
				seen[name] = true
			}
			i = j - 1
			continue
		}
		if unitWords[t.text] {
			continue
		}
		hasPending = false
	}
	return lines
}

// parseSingleOrder is the loose fallback: optional fillers, then either
// "quantity unit* product" or "product unit* quantity". Quantity defaults to 1.
func parseSingleOrder(tokens []token) (OrderLine, bool) {
	i := 0
	for i < len(tokens) && !tokens[i].isNumber && orderFillers[tokens[i].text] {
		i++
	}
	if i >= len(tokens) {
		return OrderLine{}, false
	}

	line := OrderLine{Quantity: 1}
	if tokens[i].isNumber {
		line.Quantity = tokens[i].number
		i = skipUnits(tokens, i+1)
		if i >= len(tokens) {
			return OrderLine{}, false
		}
		line.Product = tokens[i].text
		return line, true
	}

	line.Product = tokens[i].text
	if j := skipUnits(tokens, i+1); j < len(tokens) && tokens[j].isNumber {
		line.Quantity = tokens[j].number
	}
	return line, true
}

func skipUnits(tokens []token, i int) int {
	for i < len(tokens) && unitWords[tokens[i].text] {
		i++
	}
	return i
}

// extractStockItem finds the item of a stock question, e.g. "cek stok buku"
// or "apakah buku masih ada". Returns "" when nothing names an item.
func extractStockItem(tokens []token) string {
	for i, t := range tokens {
		if !stockLeadTriggers[t.text] {
			continue
		}
		for j := i + 1; j < len(tokens); j++ {
			if !stockFillers[tokens[j].text] {
				return tokens[j].text
			}
		}
		break
	}
	for i, t := range tokens {
		if !stockTrailTriggers[t.text] {
			continue
		}
		for j := i - 1; j >= 0; j-- {
			if !stockFillers[tokens[j].text] {
				return tokens[j].text
			}
		}
	}
	return ""
}

func wordSet(words ...string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}
