package fuel

import "sort"

// productSpec is the immutable template for one product of one operator.
type productSpec struct {
	nativeName  string
	productCode int
	ocrCrop     *CropRegion
}

// companySpec is the immutable template for one operator.
type companySpec struct {
	name     string
	url      string
	products map[string]productSpec
}

// catalog is the static registry of the eight known Danish fuel operators.
// It is never mutated; LoadCompanies deep-copies the entries it needs.
var catalog = map[string]companySpec{
	"circlek": {
		name: "Circle K",
		url:  "https://www.circlek.dk/priser",
		products: map[string]productSpec{
			Octane95:     {nativeName: "miles95."},
			Octane95Plus: {nativeName: "miles+95."},
			Diesel:       {nativeName: "miles Diesel."},
			DieselPlus:   {nativeName: "miles+ Diesel."},
			Electric:     {nativeName: "El Lynlader."},
		},
	},
	"f24": {
		name: "F24",
		url:  "https://www.f24.dk/-/api/PriceViewProduct/GetPriceViewProducts",
		products: map[string]productSpec{
			Octane95:     {nativeName: "GoEasy 95 E10", productCode: 22253},
			Octane95Plus: {nativeName: "GoEasy 95 Extra E5", productCode: 22603},
			Diesel:       {nativeName: "GoEasy Diesel", productCode: 24453},
			DieselPlus:   {nativeName: "GoEasy Diesel Extra", productCode: 24338},
		},
	},
	"goon": {
		name: "Go' on",
		url:  "https://goon.nu/priser/#Aktuellelistepriser",
		products: map[string]productSpec{
			Octane95: {nativeName: "Blyfri 95", ocrCrop: &CropRegion{X: 58, Y: 232, Width: 134, Height: 46}},
			Diesel:   {nativeName: "Transportdiesel", ocrCrop: &CropRegion{X: 58, Y: 289, Width: 134, Height: 46}},
		},
	},
	"ingo": {
		name: "ingo",
		url:  "https://www.ingo.dk/br%C3%A6ndstofpriser/aktuelle-br%C3%A6ndstofpriser",
		products: map[string]productSpec{
			Octane95:     {nativeName: "Benzin 95"},
			Octane95Plus: {nativeName: "UPGRADE 95"},
			Diesel:       {nativeName: "Diesel"},
		},
	},
	"oil": {
		name: "OIL! tank & go",
		url:  "https://www.oil-tankstationer.dk/de-gaeldende-braendstofpriser/",
		products: map[string]productSpec{
			Octane95:     {nativeName: "95 E10"},
			Octane95Plus: {nativeName: "PREMIUM 98"},
			Diesel:       {nativeName: "Diesel"},
		},
	},
	"ok": {
		name: "OK",
		url:  "https://www.ok.dk/offentlig/produkter/braendstof/priser/vejledende-standerpriser",
		products: map[string]productSpec{
			Octane95:  {nativeName: "Blyfri 95"},
			Octane100: {nativeName: "Oktan 100"},
			Diesel:    {nativeName: "Diesel"},
		},
	},
	"q8": {
		name: "Q8",
		url:  "https://www.q8.dk/-/api/PriceViewProduct/GetPriceViewProducts",
		products: map[string]productSpec{
			Octane95:     {nativeName: "GoEasy 95 E10", productCode: 22251},
			Octane95Plus: {nativeName: "GoEasy 95 Extra E5", productCode: 22601},
			Diesel:       {nativeName: "GoEasy Diesel", productCode: 24451},
			DieselPlus:   {nativeName: "GoEasy Diesel Extra", productCode: 24337},
		},
	},
	"shell": {
		name: "Shell",
		url:  "https://shellservice.dk/wp-json/shell-wp/v2/daily-prices",
		products: map[string]productSpec{
			Octane95:   {nativeName: "Shell FuelSave 95 oktan"},
			Octane100:  {nativeName: "Shell V-Power 100 oktan"},
			Diesel:     {nativeName: "Shell FuelSave Diesel"},
			DieselPlus: {nativeName: "Shell V-Power Diesel"},
		},
	},
}

// CatalogCompanyKeys returns the sorted keys of all known operators.
func CatalogCompanyKeys() []string {
	keys := make([]string, 0, len(catalog))
	for k := range catalog {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// CatalogProductKeys returns the sorted set of all product keys offered by
// any operator in the catalog.
func CatalogProductKeys() []string {
	seen := make(map[string]struct{})
	for _, spec := range catalog {
		for key := range spec.products {
			seen[key] = struct{}{}
		}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// newProducts deep-copies the operator's product templates, filtered down to
// the subscribed product keys.
func newProducts(spec companySpec, productKeys []string) map[string]*Product {
	subscribed := make(map[string]struct{}, len(productKeys))
	for _, k := range productKeys {
		subscribed[k] = struct{}{}
	}

	products := make(map[string]*Product)
	for key, ps := range spec.products {
		if _, ok := subscribed[key]; !ok {
			continue
		}
		p := &Product{
			Key:         key,
			NativeName:  ps.nativeName,
			ProductCode: ps.productCode,
		}
		if ps.ocrCrop != nil {
			crop := *ps.ocrCrop
			p.OCRCrop = &crop
		}
		products[key] = p
	}
	return products
}
