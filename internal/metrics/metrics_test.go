package metrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talentGraph/internal/entity"
	"talentGraph/internal/model"
	"talentGraph/internal/projection"
)

func TestRecorderCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := NewRecorder(reg)
	var _ projection.Recorder = rec

	rec.EventApplied(model.EventServiceCreated)
	rec.EventApplied(model.EventServiceCreated)
	rec.EventSkipped(model.EventProposalCreated, "missing_dependency")
	rec.EntityCreated(model.KindUser)

	assert.Equal(t, 2.0, testutil.ToFloat64(rec.EventsApplied.WithLabelValues(model.EventServiceCreated)))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.EventsSkipped.WithLabelValues(model.EventProposalCreated, "missing_dependency")))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.EntitiesCreated.WithLabelValues(string(model.KindUser))))
}

func get(t *testing.T, h http.Handler, path string) (int, string) {
	t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	body, err := io.ReadAll(rr.Body)
	require.NoError(t, err)
	return rr.Code, string(body)
}

func TestRouter(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := NewRecorder(reg)
	rec.EventApplied(model.EventReviewMinted)

	store := entity.NewMemoryStore()
	require.NoError(t, store.SaveEntities(context.Background(), []entity.Record{
		{Kind: model.KindUser, ID: "1", Data: []byte(`{"id":"1"}`)},
	}))
	router := NewRouter(reg, store, nil)

	code, body := get(t, router, "/health")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "OK", body)

	code, body = get(t, router, "/metrics")
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, strings.Contains(body, `projection_events_applied_total{event="ReviewMinted"} 1`))

	code, body = get(t, router, "/entities/user/1")
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"id":"1"}`, body)

	code, _ = get(t, router, "/entities/user/2")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestRouterWithoutStore(t *testing.T) {
	router := NewRouter(prometheus.NewRegistry(), nil, nil)
	code, _ := get(t, router, "/entities/user/1")
	assert.Equal(t, http.StatusNotFound, code)
}
