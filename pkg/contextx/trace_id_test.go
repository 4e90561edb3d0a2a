package contextx_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"tooldeals/pkg/contextx"
)

func TestTraceID(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	traceID, err := contextx.TraceIDFromContext(ctx)
	rq.Empty(traceID)
	rq.ErrorIs(err, contextx.ErrNoValue)
	rq.ErrorContains(err, "trace id: no value in context")

	ctx = contextx.WithTraceID(ctx, contextx.TraceID("cu8jc2h5a4vs"))

	traceID, err = contextx.TraceIDFromContext(ctx)
	rq.NoError(err)
	rq.Equal("cu8jc2h5a4vs", traceID.String())
}
