package fuel

import (
	"sort"
	"testing"
)

func TestCatalogCompanyKeys(t *testing.T) {
	keys := CatalogCompanyKeys()
	want := []string{"circlek", "f24", "goon", "ingo", "oil", "ok", "q8", "shell"}
	if len(keys) != len(want) {
		t.Fatalf("got %d company keys, want %d: %v", len(keys), len(want), keys)
	}
	for i, k := range want {
		if keys[i] != k {
			t.Errorf("keys[%d] = %q, want %q", i, keys[i], k)
		}
	}
}

func TestCatalogProductKeys(t *testing.T) {
	keys := CatalogProductKeys()
	if !sort.StringsAreSorted(keys) {
		t.Errorf("product keys not sorted: %v", keys)
	}
	want := map[string]bool{
		Octane95: true, Octane95Plus: true, Octane100: true,
		Diesel: true, DieselPlus: true, Electric: true,
	}
	if len(keys) != len(want) {
		t.Fatalf("got %d product keys, want %d: %v", len(keys), len(want), keys)
	}
	for _, k := range keys {
		if !want[k] {
			t.Errorf("unexpected product key %q", k)
		}
	}
}

func TestEveryCompanyHasStrategy(t *testing.T) {
	for _, key := range CatalogCompanyKeys() {
		if _, ok := newStrategy(key, Options{}); !ok {
			t.Errorf("no strategy for catalog company %q", key)
		}
	}
}

func TestNewProductsFiltersSubscription(t *testing.T) {
	spec := catalog["ok"]
	products := newProducts(spec, []string{Diesel})
	if len(products) != 1 {
		t.Fatalf("got %d products, want 1", len(products))
	}
	if _, ok := products[Diesel]; !ok {
		t.Fatalf("diesel missing from filtered products")
	}
}

func TestNewProductsDeepCopiesCrops(t *testing.T) {
	spec := catalog["goon"]
	a := newProducts(spec, []string{Octane95})
	b := newProducts(spec, []string{Octane95})

	a[Octane95].OCRCrop.X = 999
	if b[Octane95].OCRCrop.X == 999 {
		t.Fatalf("crop region shared between product copies")
	}
	if spec.products[Octane95].ocrCrop.X == 999 {
		t.Fatalf("crop region shared with catalog template")
	}
}
