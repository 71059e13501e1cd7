package fuel

import (
	"context"
	"errors"
	"testing"
)

func TestCompanyProductNotFound(t *testing.T) {
	c := testCompany(t, "ok", "http://unused", nil, &stubStrategy{})
	if _, err := c.Product("jet fuel"); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("got %v, want ErrProductNotFound", err)
	}
}

func TestSetPriceWritesAtomicPair(t *testing.T) {
	c := testCompany(t, "ok", "http://unused", nil, &stubStrategy{})

	p, err := c.Product(Diesel)
	if err != nil {
		t.Fatal(err)
	}
	if p.HasPrice() || !p.LastUpdate().IsZero() || p.LastUpdateDisplay() != "" {
		t.Fatalf("fresh product should have neither price nor timestamp")
	}

	c.setPrice(Diesel, 12.34)

	p, err = c.Product(Diesel)
	if err != nil {
		t.Fatal(err)
	}
	price, ok := p.Price()
	if !ok || price != 12.34 {
		t.Fatalf("price = %v, %v; want 12.34, true", price, ok)
	}
	if p.LastUpdate().IsZero() || p.LastUpdateDisplay() == "" {
		t.Fatalf("timestamp not set alongside price")
	}
}

func TestSetPriceUnknownKeyIgnored(t *testing.T) {
	c := testCompany(t, "ok", "http://unused", []string{Diesel}, &stubStrategy{})
	c.setPrice(Octane95, 10.0)
	if _, err := c.Product(Octane95); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("unsubscribed product appeared after setPrice")
	}
}

func TestProductReturnsClone(t *testing.T) {
	c := testCompany(t, "ok", "http://unused", nil, &stubStrategy{})
	c.setPrice(Diesel, 12.34)

	p, _ := c.Product(Diesel)
	*p.price = 99.99
	p.NativeName = "changed"

	fresh, _ := c.Product(Diesel)
	if price, _ := fresh.Price(); price != 12.34 {
		t.Fatalf("mutating a returned product leaked into company state")
	}
	if fresh.NativeName == "changed" {
		t.Fatalf("mutating a returned product leaked into company state")
	}
}

func TestRefreshPricesIdempotentOnRepeat(t *testing.T) {
	stub := &stubStrategy{fn: func(c *Company) { c.setPrice(Diesel, 11.11) }}
	c := testCompany(t, "ok", "http://unused", nil, stub)

	for i := 0; i < 3; i++ {
		if err := c.RefreshPrices(context.Background()); err != nil {
			t.Fatal(err)
		}
	}
	if stub.called != 3 {
		t.Fatalf("strategy called %d times, want 3", stub.called)
	}
	if got := mustPrice(t, c, Diesel); got != 11.11 {
		t.Fatalf("price = %v after repeated refresh, want 11.11", got)
	}
}

func TestRecordsStripCompanyName(t *testing.T) {
	c := testCompany(t, "shell", "http://unused", []string{Diesel}, &stubStrategy{})
	c.setPrice(Diesel, 13.07)

	records := c.Records()
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	rec := records[0]
	if rec.ProductName != "FuelSave Diesel" {
		t.Errorf("product name = %q, want company name stripped", rec.ProductName)
	}
	if rec.CompanyName != "Shell" {
		t.Errorf("company name = %q, want Shell", rec.CompanyName)
	}
	if rec.Price == nil || *rec.Price != 13.07 {
		t.Errorf("record price = %v, want 13.07", rec.Price)
	}
	if rec.LastUpdate == "" {
		t.Errorf("record missing last update")
	}
	if rec.PriceType != string(PriceTypePump) {
		t.Errorf("price type = %q, want pump", rec.PriceType)
	}
}

func TestRecordsOmitPriceBeforeFirstRefresh(t *testing.T) {
	c := testCompany(t, "ok", "http://unused", []string{Diesel}, &stubStrategy{})
	rec := c.Records()[0]
	if rec.Price != nil {
		t.Errorf("price = %v before any refresh, want nil", *rec.Price)
	}
	if rec.LastUpdate != "" {
		t.Errorf("last update = %q before any refresh, want empty", rec.LastUpdate)
	}
}

func TestProductKeysSortedAndStable(t *testing.T) {
	c := testCompany(t, "f24", "http://unused", nil, &stubStrategy{})
	want := []string{Diesel, DieselPlus, Octane95, Octane95Plus}
	got := c.ProductKeys()
	if len(got) != len(want) {
		t.Fatalf("keys = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("keys = %v, want %v", got, want)
		}
	}

	got[0] = "mutated"
	if c.ProductKeys()[0] != Diesel {
		t.Fatalf("ProductKeys returned internal slice")
	}
}
