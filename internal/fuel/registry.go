package fuel

import (
	"context"
	"fmt"
	"log"
)

// Registry is the process-wide holder of the configured fuel companies.
// It is loaded once at startup from the subscription lists and refreshed in
// place; companies are never destroyed during the process lifetime.
type Registry struct {
	opts      Options
	companies map[string]*Company
	order     []string
}

// NewRegistry creates an empty registry. Call LoadCompanies before use.
func NewRegistry(opts Options) *Registry {
	return &Registry{
		opts:      opts,
		companies: make(map[string]*Company),
	}
}

// LoadCompanies resolves the subscription lists against the static catalog
// and constructs one Company per resolved operator, bound to the correct
// strategy variant. Empty lists mean "all". Unknown company keys are skipped
// with a warning, never fatal; a product key missing from an operator's
// catalog simply does not appear for that operator.
func (r *Registry) LoadCompanies(companyKeys, productKeys []string) {
	if len(companyKeys) == 0 {
		companyKeys = CatalogCompanyKeys()
	}
	if len(productKeys) == 0 {
		productKeys = CatalogProductKeys()
	}

	r.companies = make(map[string]*Company)
	r.order = nil

	for _, key := range companyKeys {
		spec, ok := catalog[key]
		if !ok {
			log.Printf("fuel: unknown company key %q, skipping", key)
			continue
		}
		strategy, ok := newStrategy(key, r.opts)
		if !ok {
			log.Printf("fuel: no strategy for company key %q, skipping", key)
			continue
		}

		products := newProducts(spec, productKeys)
		r.companies[key] = newCompany(key, spec, products, strategy)
		r.order = append(r.order, key)
	}
}

// RefreshResult reports the outcome of one company's refresh.
type RefreshResult struct {
	CompanyKey string
	Err        error
}

// Refresh refreshes every loaded company, strictly sequentially. One
// operator's failure is logged and never blocks the others; previous prices
// stay in place until the next cycle. Pacing and concurrency are the
// caller's responsibility.
func (r *Registry) Refresh(ctx context.Context) []RefreshResult {
	results := make([]RefreshResult, 0, len(r.order))
	for _, key := range r.order {
		c := r.companies[key]
		log.Printf("fuel: refreshing prices from %s", c.Name())
		err := c.RefreshPrices(ctx)
		if err != nil {
			log.Printf("fuel: refresh %s failed: %v", c.Name(), err)
		}
		results = append(results, RefreshResult{CompanyKey: key, Err: err})
	}
	return results
}

// Company returns the loaded company for the given key.
func (r *Registry) Company(key string) (*Company, error) {
	c, ok := r.companies[key]
	if !ok {
		return nil, fmt.Errorf("company %q: %w", key, ErrCompanyNotFound)
	}
	return c, nil
}

// CompanyKeys returns the loaded company keys in load order.
func (r *Registry) CompanyKeys() []string {
	keys := make([]string, len(r.order))
	copy(keys, r.order)
	return keys
}

// Companies returns the loaded companies in load order.
func (r *Registry) Companies() []*Company {
	out := make([]*Company, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, r.companies[key])
	}
	return out
}

// CompanyProductKeys returns the subscribed product keys for a company.
func (r *Registry) CompanyProductKeys(key string) ([]string, error) {
	c, err := r.Company(key)
	if err != nil {
		return nil, err
	}
	return c.ProductKeys(), nil
}

// Records returns the flat per-(company, product) view across all loaded
// companies, in load order.
func (r *Registry) Records() []PriceRecord {
	var records []PriceRecord
	for _, c := range r.Companies() {
		records = append(records, c.Records()...)
	}
	return records
}
