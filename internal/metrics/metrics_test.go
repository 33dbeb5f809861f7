package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCollector_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordSignup()
	c.RecordSignup()
	c.RecordDraftCreated()
	c.RecordPostPublished()
	c.RecordViewIncrement()
	c.RecordPostDeleted()

	if got := testutil.ToFloat64(c.signups); got != 2 {
		t.Errorf("signups = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.draftsCreated); got != 1 {
		t.Errorf("draftsCreated = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.postsPublished); got != 1 {
		t.Errorf("postsPublished = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.viewIncrements); got != 1 {
		t.Errorf("viewIncrements = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.postsDeleted); got != 1 {
		t.Errorf("postsDeleted = %v, want 1", got)
	}
}

func TestCollector_HTTPStatus(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordHTTPStatus(200)
	c.RecordHTTPStatus(200)
	c.RecordHTTPStatus(404)

	if got := testutil.ToFloat64(c.httpStatus.WithLabelValues("200")); got != 2 {
		t.Errorf("status 200 = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.httpStatus.WithLabelValues("404")); got != 1 {
		t.Errorf("status 404 = %v, want 1", got)
	}
}

func TestHandler_ExposesRegisteredMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordSignup()
	c.RecordRequestLatency(25 * time.Millisecond)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()

	Handler(reg).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "blogd_signups_total 1") {
		t.Errorf("body should contain the signup counter:\n%s", body)
	}
	if !strings.Contains(body, "blogd_request_latency_seconds") {
		t.Errorf("body should contain the latency histogram:\n%s", body)
	}
}
