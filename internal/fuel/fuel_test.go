package fuel

import (
	"context"
	"testing"
)

// testCompany builds a company from its catalog template with the source URL
// redirected to a test server. A nil productKeys subscribes everything the
// operator offers.
func testCompany(t *testing.T, key, url string, productKeys []string, strategy Strategy) *Company {
	t.Helper()
	spec, ok := catalog[key]
	if !ok {
		t.Fatalf("unknown catalog key %q", key)
	}
	spec.url = url
	if productKeys == nil {
		productKeys = CatalogProductKeys()
	}
	return newCompany(key, spec, newProducts(spec, productKeys), strategy)
}

// stubStrategy records calls and fails on demand.
type stubStrategy struct {
	err    error
	called int
	fn     func(c *Company)
}

func (s *stubStrategy) Refresh(ctx context.Context, c *Company) error {
	s.called++
	if s.fn != nil {
		s.fn(c)
	}
	return s.err
}

func mustPrice(t *testing.T, c *Company, key string) float64 {
	t.Helper()
	p, err := c.Product(key)
	if err != nil {
		t.Fatalf("product %s: %v", key, err)
	}
	price, ok := p.Price()
	if !ok {
		t.Fatalf("product %s has no price", key)
	}
	return price
}
