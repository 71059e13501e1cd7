package fuel

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Decoration found around prices on the Danish sites.
const (
	vatPrefix      = "Pris inkl. moms: "
	currencySuffix = " kr."
	namePrefix     = "Beskrivelse: "
)

// CleanPrice normalizes a scraped price string into a 2-decimal price.
// It strips the VAT prefix and currency suffix, replaces the Danish decimal
// comma with a point and rounds half away from zero, so "10,995" becomes
// 11.00 and "10,994" becomes 10.99. A non-numeric residue is a *ParseError.
func CleanPrice(raw string) (float64, error) {
	s := raw
	s = strings.ReplaceAll(s, vatPrefix, "")
	s = strings.ReplaceAll(s, currencySuffix, "")
	s = strings.ReplaceAll(s, ",", ".")
	s = strings.TrimSpace(s)

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, &ParseError{Raw: raw, Err: err}
	}
	price, _ := d.Round(2).Float64()
	return price, nil
}

// CleanProductName normalizes a scraped product label before it is compared
// against a catalog entry's native name.
func CleanProductName(name string) string {
	name = strings.ReplaceAll(name, namePrefix, "")
	return strings.TrimSpace(name)
}

// RoundPrice rounds an already numeric price to two decimals with the same
// half-away-from-zero rule as CleanPrice.
func RoundPrice(price float64) float64 {
	rounded, _ := decimal.NewFromFloat(price).Round(2).Float64()
	return rounded
}

// FormatPrice renders a price with exactly two decimals.
func FormatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', 2, 64)
}
