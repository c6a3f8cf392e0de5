package table

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Fetcher is any collaborator able to read several flat tables in one round
// trip. The fetch is all-or-nothing: either every requested table is present
// in the RowSet (possibly empty) or a *FetchFailure is returned.
type Fetcher interface {
	BulkFetch(ctx context.Context, requests []Request) (*RowSet, error)
}

// FetchFailure reports that a bulk fetch did not complete.
// It carries the attempted request list for diagnostics; there is no
// table-level retry, the whole materialization cycle is aborted.
type FetchFailure struct {
	Requests []Request
	Err      error
}

func NewFetchFailure(requests []Request, err error) *FetchFailure {
	return &FetchFailure{Requests: requests, Err: err}
}

func (f *FetchFailure) Error() string {
	names := make([]string, 0, len(f.Requests))
	for _, req := range f.Requests {
		names = append(names, string(req.Table))
	}
	return fmt.Sprintf("bulk fetch of [%s] failed: %v", strings.Join(names, ", "), f.Err)
}

func (f *FetchFailure) Unwrap() error { return f.Err }

func IsFetchFailure(err error) bool {
	_, ok := errors.Cause(err).(*FetchFailure)
	return ok
}
