package upstream

import (
	"context"
	"net/http"

	"github.com/pkg/errors"

	"github.com/trezcool/mahafali/core/table"
)

var _ table.Fetcher = (*Client)(nil) // interface compliance check

// BulkFetch reads several flat tables in one round trip
// (`POST /bulk-fetch/ {"requests": [{table, fields}...]}`).
// All-or-nothing: any transport or decode failure aborts the whole cycle
// with a *table.FetchFailure. Requested tables the response omits come back
// as empty slices so consumers never special-case a missing key.
func (c *Client) BulkFetch(ctx context.Context, requests []table.Request) (*table.RowSet, error) {
	for _, req := range requests {
		if _, ok := table.Registry[req.Table]; !ok {
			return nil, errors.Errorf("unknown table %q", req.Table)
		}
	}

	var resp map[table.Name][]table.Row
	payload := map[string]interface{}{"requests": requests}
	if err := c.do(ctx, http.MethodPost, "/bulk-fetch/", payload, &resp); err != nil {
		return nil, table.NewFetchFailure(requests, err)
	}

	tables := make(map[table.Name][]table.Row, len(requests))
	for _, req := range requests {
		if rows := resp[req.Table]; rows != nil {
			tables[req.Table] = rows
		} else {
			tables[req.Table] = []table.Row{}
		}
	}
	return table.NewRowSet(tables), nil
}
