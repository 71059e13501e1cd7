package fuel

import (
	"context"
	"net/http"
)

// tableScanStrategy extracts prices from a plain HTML table. The name and
// price column indexes are per-operator configuration, not a different
// algorithm: Circle K reads the second cell for the name and the last cell
// for the price, ingo the second and third, the Go' on list-price fallback
// the first and eighth.
type tableScanStrategy struct {
	client   *http.Client
	nameCol  int
	priceCol int
}

func newTableScanStrategy(client *http.Client, nameCol, priceCol int) *tableScanStrategy {
	return &tableScanStrategy{client: client, nameCol: nameCol, priceCol: priceCol}
}

func (s *tableScanStrategy) Refresh(ctx context.Context, c *Company) error {
	doc, err := fetchDocument(ctx, s.client, c.URL())
	if err != nil {
		return err
	}
	scanRows(c, doc.Find("tr"), "td", s.nameCol, s.priceCol)
	return nil
}
