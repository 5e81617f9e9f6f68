package http

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
)

// readinessTimeout bounds every /ready request.
const readinessTimeout = 2 * time.Second

var errNoDatabase = errors.New("database is not configured")

// ReadinessCheck reports whether a dependency is reachable.
type ReadinessCheck func(ctx context.Context) error

// DatabaseCheck pings db.
func DatabaseCheck(db *sql.DB) ReadinessCheck {
	return func(ctx context.Context) error {
		if db == nil {
			return errNoDatabase
		}
		return db.PingContext(ctx)
	}
}

// readinessChecks is a named set of checks reported by /ready.
type readinessChecks map[string]ReadinessCheck

// respond runs every check under one deadline and writes 200 when all pass, 503 otherwise.
// Failures are logged with the component name.
func (r readinessChecks) respond(c *gin.Context, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
	defer cancel()

	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)

	ready := true
	components := make(map[string]string, len(r))
	for _, name := range names {
		if err := r[name](ctx); err != nil {
			logger.Warn("readiness check failed", slog.String("component", name), slog.Any("error", err))
			ready = false
			components[name] = "error"
			continue
		}
		components[name] = "ok"
	}

	if !ready {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "components": components})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready", "components": components})
}
