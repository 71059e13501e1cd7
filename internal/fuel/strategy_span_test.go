package fuel

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

const oilPage = `<html><body><table>
<tr>
  <td>95 E10</td>
  <td>liter</td>
  <td><span style="text-align:right;">13</span><span style="text-align:left;">49</span></td>
</tr>
<tr>
  <td>Diesel</td>
  <td>liter</td>
  <td><span style="text-align:right;">12</span><span style="text-align:left;">85</span></td>
</tr>
<tr>
  <td>PREMIUM 98</td>
  <td>liter</td>
  <td><span style="text-align:right;">16</span></td>
</tr>
</table></body></html>`

func TestSpanTableStrategy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(oilPage))
	}))
	defer srv.Close()

	c := testCompany(t, "oil", srv.URL, nil, newSpanTableStrategy(srv.Client()))

	if err := c.RefreshPrices(context.Background()); err != nil {
		t.Fatal(err)
	}

	// Integer and fractional spans joined with a decimal point.
	if got := mustPrice(t, c, Octane95); got != 13.49 {
		t.Errorf("oktan 95 = %v, want 13.49", got)
	}
	if got := mustPrice(t, c, Diesel); got != 12.85 {
		t.Errorf("diesel = %v, want 12.85", got)
	}

	// A row with a missing fractional span is skipped.
	p, err := c.Product(Octane95Plus)
	if err != nil {
		t.Fatal(err)
	}
	if p.HasPrice() {
		t.Errorf("oktan 95+ got a price from a single span")
	}
}
