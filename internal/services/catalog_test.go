package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ananth-NQI/tokopesan-backend/internal/storage"
)

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefaultCatalog(t *testing.T) {
	c := DefaultCatalog()
	assert.Equal(t, []string{"buku", "pensil", "laptop"}, c.Names())

	p, ok := c.Find("laptop")
	require.True(t, ok)
	assert.Equal(t, int64(7500000), p.Price)
	assert.Equal(t, "Laptop", p.Title())
	assert.Equal(t, "📦", c.Emoji("penghapus"))
}

func TestLoadCatalog(t *testing.T) {
	path := writeCatalog(t, `
products:
  - name: " Kopi "
    emoji: "☕"
    price: 25000
    stock: 40
  - name: gula
    price: 15000
    stock: 10
`)
	c, err := LoadCatalog(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"kopi", "gula"}, c.Names())
	assert.Equal(t, "☕", c.Emoji("kopi"))
	assert.Equal(t, "📦", c.Emoji("gula"))
}

func TestLoadCatalogRejectsBadFiles(t *testing.T) {
	tests := map[string]string{
		"empty":     "products: []\n",
		"no name":   "products:\n  - price: 100\n",
		"duplicate": "products:\n  - name: buku\n  - name: BUKU\n",
		"not yaml":  "products: [\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadCatalog(writeCatalog(t, content))
			assert.Error(t, err)
		})
	}

	_, err := LoadCatalog(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestCatalogMentionedUsesCatalogOrder(t *testing.T) {
	c := DefaultCatalog()
	p, ok := c.Mentioned("ada laptop dan buku?")
	require.True(t, ok)
	assert.Equal(t, "buku", p.Name)

	_, ok = c.Mentioned("ada penghapus?")
	assert.False(t, ok)
}

func TestCatalogResolve(t *testing.T) {
	c := DefaultCatalog()
	assert.Equal(t, "buku", c.Resolve("buku"))
	assert.Equal(t, "buku", c.Resolve("BUKU"))
	assert.Equal(t, "pensil", c.Resolve("pnsel"))
	assert.Equal(t, "laptop", c.Resolve("laptp"))
	assert.Equal(t, "penghapus", c.Resolve("penghapus"))
	assert.Equal(t, "bk", c.Resolve("bk"), "short tokens are never fuzzy matched")
}

func TestCatalogSeed(t *testing.T) {
	store := storage.NewMemoryStore()
	require.NoError(t, DefaultCatalog().Seed(store))

	products, err := store.ListProducts()
	require.NoError(t, err)
	require.Len(t, products, 3)
	assert.Equal(t, "buku", products[0].Name)
	assert.Equal(t, 20, products[0].Stock)
	assert.Equal(t, int64(30000), products[0].Price)
}
