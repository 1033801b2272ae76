package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tokens := tokenize("pesan 2x buku, x3 pensil & 10 laptop!")

	texts := make([]string, len(tokens))
	for i, tok := range tokens {
		texts[i] = tok.text
	}
	assert.Equal(t, []string{"pesan", "2x", "buku", "x3", "pensil", "10", "laptop"}, texts)

	assert.True(t, tokens[1].isNumber)
	assert.Equal(t, 2, tokens[1].number)
	assert.Equal(t, 3, tokens[3].number)
	assert.Equal(t, 10, tokens[5].number)
	assert.False(t, tokens[0].isNumber)
	assert.False(t, tokenize("x")[0].isNumber)
}

func TestParseOrderLines(t *testing.T) {
	catalog := DefaultCatalog()
	tests := []struct {
		msg  string
		want []OrderLine
	}{
		{"pesan 2 buku", []OrderLine{{"buku", 2}}},
		{"pesan buku 10 pensil 2", []OrderLine{{"buku", 10}, {"pensil", 2}}},
		{"pesan 2 buku dan 3 pensil", []OrderLine{{"buku", 2}, {"pensil", 3}}},
		{"pesan 2 buku 3 pensil", []OrderLine{{"buku", 2}, {"pensil", 3}}},
		{"beli 2 unit buku", []OrderLine{{"buku", 2}}},
		{"beli 2x laptop", []OrderLine{{"laptop", 2}}},
		{"pesan 2 buku lalu 5 buku", []OrderLine{{"buku", 2}}},
		{"pesan buku 2 pensil", []OrderLine{{"buku", 2}}},
		{"pesan 2 dong buku", nil},
		{"pesan buku", nil},
	}
	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			assert.Equal(t, tt.want, parseOrderLines(tokenize(tt.msg), catalog))
		})
	}
}

func TestParseOrderLinesMultiWordProduct(t *testing.T) {
	catalog := &Catalog{Products: []CatalogProduct{{Name: "buku tulis", Price: 5000}, {Name: "buku", Price: 30000}}}

	assert.Equal(t, []OrderLine{{"buku tulis", 3}, {"buku", 1}},
		parseOrderLines(tokenize("pesan 3 buku tulis dan 1 buku"), catalog))
}

func TestParseSingleOrder(t *testing.T) {
	tests := []struct {
		msg  string
		want OrderLine
		ok   bool
	}{
		{"pesan bku 2", OrderLine{"bku", 2}, true},
		{"saya mau 3 pnsel", OrderLine{"pnsel", 3}, true},
		{"beli 2 buah lptop", OrderLine{"lptop", 2}, true},
		{"mau penghapus", OrderLine{"penghapus", 1}, true},
		{"pesan 0 buku", OrderLine{"buku", 0}, true},
		{"pesan", OrderLine{}, false},
		{"pesan 3", OrderLine{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			got, ok := parseSingleOrder(tokenize(tt.msg))
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractStockItem(t *testing.T) {
	tests := map[string]string{
		"cek stok buku":          "buku",
		"berapa stok pensil":     "pensil",
		"stok dari laptop":       "laptop",
		"sisa pensil berapa":     "pensil",
		"apakah buku masih ada":  "buku",
		"penghapus tersedia":     "penghapus",
		"berapa jumlah yang ada": "",
		"stok":                   "",
	}
	for msg, want := range tests {
		t.Run(msg, func(t *testing.T) {
			assert.Equal(t, want, extractStockItem(tokenize(msg)))
		})
	}
}
