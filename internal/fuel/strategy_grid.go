package fuel

import (
	"context"
	"net/http"
)

// gridScanStrategy is the OK variant: the same matching algorithm as the
// table scan, but against ARIA grid-role markup instead of table elements.
type gridScanStrategy struct {
	client *http.Client
}

func newGridScanStrategy(client *http.Client) *gridScanStrategy {
	return &gridScanStrategy{client: client}
}

func (s *gridScanStrategy) Refresh(ctx context.Context, c *Company) error {
	doc, err := fetchDocument(ctx, s.client, c.URL())
	if err != nil {
		return err
	}
	scanRows(c, doc.Find(`[role="row"]`), `[role="gridcell"]`, 0, 1)
	return nil
}
