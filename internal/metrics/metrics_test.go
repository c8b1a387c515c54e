package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordBooking(t *testing.T) {
	before := testutil.ToFloat64(bookingOutcomes.WithLabelValues("create", "ok"))
	RecordBooking("create", "ok")
	assert.Equal(t, before+1, testutil.ToFloat64(bookingOutcomes.WithLabelValues("create", "ok")))
}

func TestHandlerExposesCollectors(t *testing.T) {
	RecordHTTPRequest(http.MethodGet, "/appointments", http.StatusOK, 20*time.Millisecond)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "appointments_http_requests_total"))
	assert.True(t, strings.Contains(body, `route="/appointments"`))
}
