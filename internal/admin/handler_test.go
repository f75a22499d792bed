// AngelaMos | 2026
// handler_test.go

package admin

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rossoverde/supporters/internal/order"
)

type counter struct {
	n   int
	err error
}

func (c counter) Count(context.Context) (int, error)       { return c.n, c.err }
func (c counter) CountActive(context.Context) (int, error) { return c.n, c.err }

type summarizer struct {
	window time.Duration
}

func (s *summarizer) Summary(_ context.Context, window time.Duration) (order.Summary, error) {
	s.window = window
	return order.Summary{Orders: 7, Revenue: 1234.5}, nil
}

func newRouter(h *Handler) chi.Router {
	r := chi.NewRouter()
	h.RegisterAdminRoutes(r)
	return r
}

func TestDashboard(t *testing.T) {
	orders := &summarizer{}
	h := NewHandler(HandlerConfig{
		Members:     counter{n: 120},
		Memberships: counter{n: 80},
		Orders:      orders,
	})

	rec := httptest.NewRecorder()
	newRouter(h).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data Dashboard `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, Dashboard{
		TotalMembers:      120,
		ActiveMemberships: 80,
		RecentOrders:      7,
		RecentRevenue:     1234.5,
		WindowDays:        30,
	}, body.Data)
	assert.Equal(t, DashboardWindow, orders.window)
}

func TestDashboardError(t *testing.T) {
	h := NewHandler(HandlerConfig{
		Members:     counter{err: errors.New("db down")},
		Memberships: counter{},
		Orders:      &summarizer{},
	})

	rec := httptest.NewRecorder()
	newRouter(h).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestSystemStats(t *testing.T) {
	h := NewHandler(HandlerConfig{
		DBStats:   func() sql.DBStats { return sql.DBStats{OpenConnections: 3, InUse: 1} },
		DBPing:    func(context.Context) error { return nil },
		RedisPing: func(context.Context) error { return errors.New("refused") },
	})

	rec := httptest.NewRecorder()
	newRouter(h).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stats", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data SystemStats `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Data.Database.Healthy)
	require.NotNil(t, body.Data.Database.Stats)
	assert.Equal(t, 3, body.Data.Database.Stats.OpenConnections)
	assert.False(t, body.Data.Redis.Healthy)
	assert.Nil(t, body.Data.Redis.Stats)
	assert.NotEmpty(t, body.Data.Runtime.GoVersion)
}
