package menu

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/net/html"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const currencySymbol = "₫"

// FormatCurrency renders a VND amount with the locale's digit grouping.
func FormatCurrency(tag language.Tag, amount decimal.Decimal) string {
	p := message.NewPrinter(tag)
	return p.Sprintf("%d", amount.Round(0).IntPart()) + " " + currencySymbol
}

// PlainText strips markup from an HTML fragment and collapses whitespace.
func PlainText(fragment string) string {
	z := html.NewTokenizer(strings.NewReader(fragment))
	var b strings.Builder
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.Join(strings.Fields(b.String()), " ")
		case html.TextToken:
			b.Write(z.Text())
			b.WriteByte(' ')
		}
	}
}
