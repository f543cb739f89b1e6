package handler

import (
	"context"
	"net/http"
	"time"

	"notemark/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Pinger is a dependency the health check probes.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingerFunc adapts a function to Pinger.
type PingerFunc func(ctx context.Context) error

func (f PingerFunc) Ping(ctx context.Context) error { return f(ctx) }

type HealthHandler struct {
	Database Pinger
	// Cache is nil when Redis is not configured.
	Cache   Pinger
	Started time.Time
	Logger  *zap.Logger
}

type healthReport struct {
	Status   string             `json:"status"`
	Database string             `json:"database"`
	Cache    string             `json:"cache"`
	Uptime   string             `json:"uptime"`
	System   *utils.SystemStats `json:"system,omitempty"`
}

func probe(ctx context.Context, p Pinger) string {
	if p == nil {
		return "disabled"
	}
	if err := p.Ping(ctx); err != nil {
		return "down"
	}
	return "up"
}

// Health reports dependency status. It answers 503 when the database is unreachable.
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	report := healthReport{
		Status:   "ok",
		Database: probe(ctx, h.Database),
		Cache:    probe(ctx, h.Cache),
		Uptime:   time.Since(h.Started).Round(time.Second).String(),
	}

	if stats, err := utils.GetSystemStats(ctx); err == nil {
		report.System = &stats
	} else {
		h.Logger.Debug("System stats unavailable", zap.Error(err))
	}

	if report.Database != "up" {
		report.Status = "degraded"
		c.JSON(http.StatusServiceUnavailable, &utils.Response{Success: false, Error: "Database unavailable", Data: report})
		return
	}

	utils.Success(c, report)
}

// Root handles GET / for load balancers and humans.
func Root(c *gin.Context) {
	utils.SuccessMessage(c, "Server running", nil)
}
