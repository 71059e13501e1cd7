package fuel

import "time"

// PriceType tells consumers whether prices are live pump prices or posted
// list prices (the Go' on fallback when OCR is unavailable).
type PriceType string

const (
	PriceTypePump PriceType = "pump"
	PriceTypeList PriceType = "list"
)

// Canonical cross-operator product keys.
const (
	Octane95     = "oktan 95"
	Octane95Plus = "oktan 95+"
	Octane100    = "oktan 100"
	Diesel       = "diesel"
	DieselPlus   = "diesel+"
	Electric     = "electric"
)

// LastUpdateLayout is the human-readable timestamp format exposed to
// consumers, in the local time zone.
const LastUpdateLayout = "02/01/2006, 15:04:05"

// CropRegion is a pixel rectangle inside the downloaded price-list image,
// used by OCR-based operators.
type CropRegion struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Product is one fuel grade offered by one operator. NativeName is the
// operator's own label and is the matching key against scraped text.
// ProductCode and OCRCrop are optional lookup hints. Price and LastUpdate
// stay unset until the first successful refresh.
type Product struct {
	Key         string
	NativeName  string
	ProductCode int
	OCRCrop     *CropRegion

	price      *float64
	lastUpdate time.Time
}

// HasPrice reports whether the product has been refreshed successfully at
// least once.
func (p *Product) HasPrice() bool { return p.price != nil }

// Price returns the last successfully fetched price. The boolean is false
// when no refresh has succeeded yet.
func (p *Product) Price() (float64, bool) {
	if p.price == nil {
		return 0, false
	}
	return *p.price, true
}

// LastUpdate returns the time of the last successful price update.
func (p *Product) LastUpdate() time.Time { return p.lastUpdate }

// LastUpdateDisplay returns the last update formatted for consumers, or an
// empty string when the product never got a price.
func (p *Product) LastUpdateDisplay() string {
	if p.lastUpdate.IsZero() {
		return ""
	}
	return p.lastUpdate.Local().Format(LastUpdateLayout)
}

func (p *Product) clone() *Product {
	cp := *p
	if p.price != nil {
		v := *p.price
		cp.price = &v
	}
	if p.OCRCrop != nil {
		crop := *p.OCRCrop
		cp.OCRCrop = &crop
	}
	return &cp
}
