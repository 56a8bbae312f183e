package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mauv0809/player-auction/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService(t *testing.T) {
	reg := prometheus.NewRegistry()
	svc := metrics.NewService(reg)

	svc.IncSales()
	svc.IncSales()
	svc.ObserveSalePrice(120)
	svc.IncRejections("quota_violation")
	svc.IncRejections("quota_violation")
	svc.IncRejections("squad_full")
	svc.SetPlayerCounts(12, 30)

	assert.Equal(t, 2.0, testutil.ToFloat64(svc.Sales))
	assert.Equal(t, 2.0, testutil.ToFloat64(svc.Rejections.WithLabelValues("quota_violation")))
	assert.Equal(t, 1.0, testutil.ToFloat64(svc.Rejections.WithLabelValues("squad_full")))
	assert.Equal(t, 30.0, testutil.ToFloat64(svc.PlayersUnsold))

	rec := httptest.NewRecorder()
	metrics.NewMetricsHandler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "auction_sales_total 2"))
}
