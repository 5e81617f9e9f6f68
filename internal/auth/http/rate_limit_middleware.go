package http

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	apperrors "github.com/allisson/recommendations/internal/errors"
	"github.com/allisson/recommendations/internal/httputil"
)

const (
	limiterIdleTTL       = time.Hour
	limiterSweepInterval = 5 * time.Minute
)

// userLimiters keeps one token bucket per user id. Idle buckets are swept on the request
// path, so the store needs no background goroutine.
type userLimiters struct {
	mu        sync.Mutex
	limiters  map[int64]*userLimiter
	rps       rate.Limit
	burst     int
	lastSweep time.Time
	now       func() time.Time
}

type userLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newUserLimiters(rps float64, burst int) *userLimiters {
	return &userLimiters{
		limiters:  make(map[int64]*userLimiter),
		rps:       rate.Limit(rps),
		burst:     burst,
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

func (s *userLimiters) get(userID int64) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if now.Sub(s.lastSweep) >= limiterSweepInterval {
		for id, entry := range s.limiters {
			if now.Sub(entry.lastSeen) >= limiterIdleTTL {
				delete(s.limiters, id)
			}
		}
		s.lastSweep = now
	}

	entry, ok := s.limiters[userID]
	if !ok {
		entry = &userLimiter{limiter: rate.NewLimiter(s.rps, s.burst)}
		s.limiters[userID] = entry
	}
	entry.lastSeen = now
	return entry.limiter
}

// RateLimitMiddleware limits each authenticated user to rps requests per second with the
// given burst. It must run after AuthenticationMiddleware. Rejected requests get 429 with
// a Retry-After of at least one second.
func RateLimitMiddleware(rps float64, burst int, logger *slog.Logger) gin.HandlerFunc {
	store := newUserLimiters(rps, burst)

	return func(c *gin.Context) {
		user, ok := GetUser(c.Request.Context())
		if !ok {
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		limiter := store.get(user.ID)
		if limiter.Allow() {
			c.Next()
			return
		}

		reservation := limiter.Reserve()
		retryAfter := int(math.Max(1, math.Ceil(reservation.Delay().Seconds())))
		reservation.Cancel()

		logger.Debug("rate limit exceeded",
			slog.Int64("user_id", user.ID),
			slog.Int64("company_id", user.CompanyID),
			slog.Int("retry_after", retryAfter))

		c.Header("Retry-After", strconv.Itoa(retryAfter))
		c.AbortWithStatusJSON(http.StatusTooManyRequests, httputil.ErrorResponse{
			Error:   "rate_limit_exceeded",
			Message: "Too many requests, retry later",
		})
	}
}
