// AngelaMos | 2026
// metrics_test.go

package metrics

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/templates/project-records/internal/core"
)

func TestOutcome(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, "ok"},
		{core.ValidationError("name", "is required"), "invalid"},
		{core.AlreadyExistsError("project", "name", "Alpha"), "conflict"},
		{fmt.Errorf("find: %w", core.NotFoundError("project", "x")), "not_found"},
		{core.AuthorizationError("nope"), "forbidden"},
		{errors.New("boom"), "error"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Outcome(tt.err))
		})
	}
}

func TestObserveOperation(t *testing.T) {
	m := New()

	m.ObserveOperation("project", "create", time.Now(), nil)
	m.ObserveOperation("project", "create", time.Now(), nil)
	m.ObserveOperation("project", "create", time.Now(), core.ValidationError("name", "bad"))

	assert.InDelta(t, 2, testutil.ToFloat64(m.DomainOps.WithLabelValues("project", "create", "ok")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.DomainOps.WithLabelValues("project", "create", "invalid")), 0)
}

func TestHandlerExposesRegistry(t *testing.T) {
	m := New()
	m.ObserveHTTPRequest(http.MethodGet, "/v1/projects", "200", 10*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "project_records_http_requests_total")
}

func TestNewIsolatedRegistries(t *testing.T) {
	a := New()
	b := New()

	a.RateLimited.Inc()

	assert.InDelta(t, 1, testutil.ToFloat64(a.RateLimited), 0)
	assert.InDelta(t, 0, testutil.ToFloat64(b.RateLimited), 0)
}

func TestRegisterRedis(t *testing.T) {
	m := New()

	stats := &redis.PoolStats{Hits: 7, Misses: 2, TotalConns: 4, IdleConns: 3}
	require.NoError(t, m.RegisterRedis(func() *redis.PoolStats { return stats }))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body := rec.Body.String()
	assert.Contains(t, body, "project_records_redis_pool_hits_total 7")
	assert.Contains(t, body, "project_records_redis_pool_idle_connections 3")

	assert.Error(t, m.RegisterRedis(func() *redis.PoolStats { return stats }), "duplicate registration")
}
