package services

import (
	"golang.org/x/text/language"
	xmessage "golang.org/x/text/message"
)

var rupiahPrinter = xmessage.NewPrinter(language.Indonesian)

// FormatRupiah renders an amount the way Indonesian receipts do: "Rp 30.000"
func FormatRupiah(amount int64) string {
	return rupiahPrinter.Sprintf("Rp %d", amount)
}
