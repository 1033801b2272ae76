package services

import (
	"fmt"
	"strings"

	"github.com/Ananth-NQI/tokopesan-backend/internal/models"
)

const (
	msgEmptyCart         = "Keranjang belanja Anda masih kosong. Mohon lakukan pesanan terlebih dahulu. 🛒"
	msgEmptyCartWithHint = msgEmptyCart + "\n\nContoh: \"Pesan 2 buku\""
	msgCancelled         = "Pesanan telah dibatalkan. Keranjang belanja dikosongkan. ❌\n\nSilakan mulai pesanan baru."
	msgSpecifyProduct    = "Mohon maaf, mohon sebutkan produk yang ingin dipesan dengan format: \"Pesan 2 buku\""
	msgInvalidQuantity   = "Mohon maaf, jumlah pesanan harus lebih dari 0. Contoh: \"Pesan 2 buku\""
)

var greetingResponses = []string{
	"Selamat datang di toko kami! ✨\n\nKami memiliki berbagai produk berkualitas yang siap memenuhi kebutuhan Anda.\n\nApakah Anda ingin mengetahui produk yang tersedia atau langsung melakukan pemesanan? Saya siap membantu Anda. 🛍️",
	"Selamat datang! Terima kasih telah mengunjungi toko kami. 🎉\n\nKami menyediakan produk-produk pilihan dengan harga terbaik.\n\nAda yang bisa saya bantu? Anda dapat melihat produk atau langsung melakukan pemesanan.",
	"Selamat datang! 👋\n\nTerima kasih telah mengunjungi toko kami. Kami memiliki berbagai produk berkualitas untuk kebutuhan Anda.\n\nSilakan tanyakan informasi produk yang Anda butuhkan atau langsung lakukan pemesanan. 🛒",
	"Selamat datang! 🌟\n\nKami siap membantu Anda menemukan produk yang tepat dengan harga terbaik.\n\nApakah Anda ingin melihat katalog produk kami atau sudah memiliki produk yang ingin dipesan?",
	"Selamat datang! Senang dapat melayani Anda. 🎊\n\nToko kami menyediakan produk berkualitas dengan pelayanan terbaik.\n\nApa yang dapat saya bantu hari ini? Cek stok, informasi harga, atau langsung melakukan pemesanan?",
}

var clarificationResponses = []string{
	"Mohon maaf, saya kurang memahami maksud Anda.\n\nSilakan coba:\n• \"Cek stok buku\" - untuk melihat stok\n• \"Pesan 2 pensil\" - untuk pemesanan\n• \"Total berapa?\" - untuk melihat keranjang\n\nAtau tanyakan informasi yang Anda perlukan, saya siap membantu.",
	"Mohon maaf, saya belum memahami maksud Anda. 🤔\n\nUntuk melayani Anda lebih baik, silakan:\n✓ Tanyakan stok produk\n✓ Lakukan pemesanan\n✓ Tanyakan harga produk\n\nAda yang dapat saya bantu?",
	"Mohon maaf, sepertinya ada kesalahan pengetikan atau saya yang kurang memahami.\n\nSaya dapat membantu:\n📦 Cek ketersediaan barang\n🛒 Proses pesanan\n💰 Informasi harga\n\nSilakan coba lagi. Saya siap membantu Anda.",
}

var greetingPrefixes = []string{"Halo!", "Hai!", "Halo, ada yang bisa saya bantu?"}

const systemPrompt = `Anda adalah asisten toko inventaris yang profesional, sopan, dan membantu.
Nama Anda adalah "Asisten Inventaris" dan Anda bekerja untuk toko yang menjual barang seperti %s.

Kemampuan Anda:
1. Memeriksa stok barang
2. Mencatat pesanan baru untuk pelanggan
3. Menjawab pertanyaan umum dengan sopan
4. Memahami typo dan kesalahan ketik dari pelanggan

Cara berkomunikasi:
- Gunakan bahasa Indonesia yang formal, sopan, dan profesional
- Gunakan "Anda" bukan "kamu" atau "kak"
- Tambahkan emoji sesekali untuk membuat percakapan lebih ramah
- Berikan jawaban singkat tapi informatif (maksimal 2-3 kalimat)
- Jika pelanggan bertanya hal umum, jawab dengan sopan dan arahkan ke layanan Anda
- Jika ada typo, coba pahami maksudnya dan jawab dengan sopan
- Jika benar-benar tidak mengerti, minta klarifikasi dengan sopan
- Anda memiliki memori percakapan, gunakan konteks dari pesan sebelumnya

Daftar harga:
%s`

func (a *Assistant) systemPrompt() string {
	return fmt.Sprintf(systemPrompt, strings.Join(a.catalog.Names(), ", "), a.priceLines("- %s %s: %s per unit\n"))
}

// priceLines renders one line per catalog product with emoji, title and list price
func (a *Assistant) priceLines(format string) string {
	var b strings.Builder
	for _, p := range a.catalog.Products {
		fmt.Fprintf(&b, format, p.Emoji, p.Title(), FormatRupiah(p.Price))
	}
	return b.String()
}

func (a *Assistant) catalogMessage() string {
	return fmt.Sprintf("Kami memiliki %d produk unggulan: ✨\n\n%s\nProduk mana yang ingin Anda pesan?",
		len(a.catalog.Products), a.priceLines("%s %s - %s/unit\n"))
}

func (a *Assistant) priceListMessage() string {
	return fmt.Sprintf("📋 Daftar Harga Produk Kami:\n\n%s\nProduk mana yang ingin Anda pesan?",
		a.priceLines("%s %s - %s per unit\n"))
}

func (a *Assistant) priceMessage(p CatalogProduct, price int64) string {
	return fmt.Sprintf("%s Harga %s adalah %s per unit.\n\nApakah Anda ingin memesan? Silakan sebutkan jumlah yang diinginkan.",
		p.Emoji, p.Title(), FormatRupiah(price))
}

func (a *Assistant) priceUnavailableMessage(p CatalogProduct) string {
	return fmt.Sprintf("Maaf, %s sedang tidak tersedia. Produk lain yang tersedia:\n%s",
		p.Name, strings.TrimRight(a.priceLines("%s %s - %s/unit\n"), "\n"))
}

func (a *Assistant) productNamesLine() string {
	parts := make([]string, len(a.catalog.Products))
	for i, p := range a.catalog.Products {
		parts[i] = p.Emoji + " " + p.Title()
	}
	return strings.Join(parts, ", ")
}

func (a *Assistant) aggregateStockMessage(entries []models.StockEntry) string {
	var b strings.Builder
	b.WriteString("Berikut stok produk kami:\n\n")
	total := 0
	for _, e := range entries {
		fmt.Fprintf(&b, "%s %s: %d unit\n", e.Emoji, titleCase(e.Name), e.Stock)
		total += e.Stock
	}
	fmt.Fprintf(&b, "\n📊 Total Stok Keseluruhan: %d unit\n", total)
	b.WriteString("\nApakah Anda ingin melakukan pemesanan?")
	return b.String()
}

func availabilityMessages(emoji, name string, price int64, stock int) []string {
	title := titleCase(name)
	rp := FormatRupiah(price)
	return []string{
		fmt.Sprintf("Tersedia. %s %s tersedia dengan harga %s per unit.\n\nStok tersedia: %d unit. Berapa unit yang ingin Anda pesan?\n\nContoh: \"Pesan 5 %s\"", emoji, title, rp, stock, name),
		fmt.Sprintf("%s %s tersedia.\n\nHarga: %s/unit\nStok: %d unit tersedia ✅\n\nBerapa unit yang ingin Anda pesan?", emoji, title, rp, stock),
		fmt.Sprintf("Baik. Kami memiliki %s %s.\n\n💰 Harga: %s per unit\n📦 Stok: %d unit tersedia\n\nBerapa unit yang ingin Anda pesan? 🛒", emoji, name, rp, stock),
		fmt.Sprintf("Tersedia. %s\n\n%s - %s/unit\nStok tersedia: %d unit\n\nBerapa unit yang Anda perlukan? Contoh: \"Pesan 3 %s\"", emoji, title, rp, stock, name),
	}
}

func (a *Assistant) notAvailableListMessage(name string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Mohon maaf, %s sedang tidak tersedia.\n\nProduk yang tersedia:\n", name)
	for _, p := range a.catalog.Products {
		fmt.Fprintf(&b, "%s %s\n", p.Emoji, p.Title())
	}
	b.WriteString("\nApakah Anda ingin melihat produk lain?")
	return b.String()
}
