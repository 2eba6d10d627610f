package querycache

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_SecondClientSharesRegisteredCounters(t *testing.T) {
	reg := prometheus.NewRegistry()

	first := New(Options{Registerer: reg, Retry: -1})
	t.Cleanup(first.Close)
	second := New(Options{Registerer: reg, Retry: -1})
	t.Cleanup(second.Close)

	d := desc(NewKey("persons"), &counter{})
	_, err := Fetch(context.Background(), second, d)
	require.NoError(t, err)
	_, err = Fetch(context.Background(), second, d)
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(first.metrics.misses))
	assert.Equal(t, 1.0, testutil.ToFloat64(first.metrics.hits))
	assert.Equal(t, 1.0, testutil.ToFloat64(first.metrics.fetches))
}
