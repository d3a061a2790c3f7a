package mock

import (
	"context"

	"github.com/fwojciec/linkid"
)

var _ linkid.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of linkid.Extractor.
type Extractor struct {
	ExtractFn func(ctx context.Context, req linkid.Request) (*linkid.Result, error)
}

func (e *Extractor) Extract(ctx context.Context, req linkid.Request) (*linkid.Result, error) {
	return e.ExtractFn(ctx, req)
}
