// AngelaMos | 2026
// handler.go

package admin

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"github.com/rossoverde/supporters/internal/core"
	"github.com/rossoverde/supporters/internal/order"
)

// DashboardWindow is how far back order counts and revenue reach.
const DashboardWindow = 30 * 24 * time.Hour

type MemberCounter interface {
	Count(ctx context.Context) (int, error)
}

type MembershipCounter interface {
	CountActive(ctx context.Context) (int, error)
}

type OrderSummarizer interface {
	Summary(ctx context.Context, window time.Duration) (order.Summary, error)
}

type Handler struct {
	members     MemberCounter
	memberships MembershipCounter
	orders      OrderSummarizer
	dbStats     func() sql.DBStats
	redisStats  func() *redis.PoolStats
	redisPing   func(ctx context.Context) error
	dbPing      func(ctx context.Context) error
}

type HandlerConfig struct {
	Members     MemberCounter
	Memberships MembershipCounter
	Orders      OrderSummarizer
	DBStats     func() sql.DBStats
	RedisStats  func() *redis.PoolStats
	RedisPing   func(ctx context.Context) error
	DBPing      func(ctx context.Context) error
}

func NewHandler(cfg HandlerConfig) *Handler {
	return &Handler{
		members:     cfg.Members,
		memberships: cfg.Memberships,
		orders:      cfg.Orders,
		dbStats:     cfg.DBStats,
		redisStats:  cfg.RedisStats,
		redisPing:   cfg.RedisPing,
		dbPing:      cfg.DBPing,
	}
}

// RegisterAdminRoutes mounts the dashboard and system stats. r must already
// require the admin role.
func (h *Handler) RegisterAdminRoutes(r chi.Router) {
	r.Get("/dashboard", h.GetDashboard)

	r.Route("/stats", func(r chi.Router) {
		r.Get("/", h.GetSystemStats)
		r.Get("/db", h.GetDatabaseStats)
		r.Get("/redis", h.GetRedisStats)
		r.Get("/runtime", h.GetRuntimeStats)
	})
}

func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.Dashboard(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}
	core.OK(w, d)
}

// Dashboard gathers the back-office headline numbers.
func (h *Handler) Dashboard(ctx context.Context) (*Dashboard, error) {
	members, err := h.members.Count(ctx)
	if err != nil {
		return nil, err
	}

	active, err := h.memberships.CountActive(ctx)
	if err != nil {
		return nil, err
	}

	summary, err := h.orders.Summary(ctx, DashboardWindow)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		TotalMembers:      members,
		ActiveMemberships: active,
		RecentOrders:      summary.Orders,
		RecentRevenue:     summary.Revenue,
		WindowDays:        int(DashboardWindow / (24 * time.Hour)),
	}, nil
}
