package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestGateway_Observe(t *testing.T) {
	reg := prometheus.NewRegistry()
	g := NewGateway(reg)

	require.NoError(t, g.Observe("login", func() error { return nil }))
	boom := errors.New("boom")
	require.ErrorIs(t, g.Observe("login", func() error { return boom }), boom)
	require.NoError(t, g.Observe("getMe", func() error { return nil }))

	require.Equal(t, 1.0, testutil.ToFloat64(g.requests.WithLabelValues("login", OutcomeOK)))
	require.Equal(t, 1.0, testutil.ToFloat64(g.requests.WithLabelValues("login", OutcomeError)))
	require.Equal(t, 1.0, testutil.ToFloat64(g.requests.WithLabelValues("getMe", OutcomeOK)))
	require.Equal(t, 0.0, testutil.ToFloat64(g.inflight.WithLabelValues("login")))
	require.Equal(t, 2, testutil.CollectAndCount(g.duration))
}

func TestGateway_InflightDuringCall(t *testing.T) {
	g := NewGateway(prometheus.NewRegistry())

	_ = g.Observe("removeBook", func() error {
		require.Equal(t, 1.0, testutil.ToFloat64(g.inflight.WithLabelValues("removeBook")))
		return nil
	})
}

func TestGateway_NilIsNoop(t *testing.T) {
	var g *Gateway
	called := false
	require.NoError(t, g.Observe("login", func() error { called = true; return nil }))
	require.True(t, called)
}
