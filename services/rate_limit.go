package services

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	appContext "github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	"github.com/salon-lingo/admin_api/shared"
)

// RateLimitService throttles the expensive editor operations. Counters live in
// Redis as fixed windows keyed by client IP, so limits hold across replicas.
type RateLimitService struct {
	appContext.DefaultService

	configs map[string]*RateLimitConfig
	mutex   sync.RWMutex

	redisSvc *RedisService
	disabled bool
}

type RateLimitConfig struct {
	EndpointType string
	MaxRequests  int
	WindowSize   time.Duration
	Description  string
	IsActive     bool
}

const RATE_LIMIT_SVC = "rate_limit_svc"

func (svc RateLimitService) Id() string {
	return RATE_LIMIT_SVC
}

func (svc *RateLimitService) Configure(ctx *appContext.Context) error {
	svc.disabled = os.Getenv("RATE_LIMIT_DISABLED") == "true"
	svc.initDefaultConfigs()
	return svc.DefaultService.Configure(ctx)
}

func (svc *RateLimitService) Start() error {
	svc.redisSvc = svc.Service(REDIS_SVC).(*RedisService)
	return nil
}

func (svc *RateLimitService) initDefaultConfigs() {
	svc.mutex.Lock()
	defer svc.mutex.Unlock()

	svc.configs = map[string]*RateLimitConfig{
		"api_general": {
			EndpointType: "api_general",
			MaxRequests:  1000,
			WindowSize:   time.Hour,
			Description:  "General API rate limit per IP",
			IsActive:     true,
		},
		"generate_lesson": {
			EndpointType: "generate_lesson",
			MaxRequests:  30,
			WindowSize:   10 * time.Minute,
			Description:  "Template lesson generation rate limit",
			IsActive:     true,
		},
		"structure_report": {
			EndpointType: "structure_report",
			MaxRequests:  60,
			WindowSize:   10 * time.Minute,
			Description:  "Curriculum structure analysis rate limit",
			IsActive:     true,
		},
		"lesson_import": {
			EndpointType: "lesson_import",
			MaxRequests:  60,
			WindowSize:   time.Hour,
			Description:  "Lesson JSON import rate limit",
			IsActive:     true,
		},
		"bulk_update": {
			EndpointType: "bulk_update",
			MaxRequests:  30,
			WindowSize:   time.Hour,
			Description:  "Bulk lesson update rate limit",
			IsActive:     true,
		},
		"cover_upload": {
			EndpointType: "cover_upload",
			MaxRequests:  30,
			WindowSize:   time.Hour,
			Description:  "Cover image upload rate limit",
			IsActive:     true,
		},
	}
}

// IsAllowed increments the fixed-window counter for the identifier and reports
// whether the request fits the configured budget. Unknown endpoint types pass.
func (svc *RateLimitService) IsAllowed(ctx context.Context, identifier, endpointType string) (bool, int, time.Duration, error) {
	svc.mutex.RLock()
	config, exists := svc.configs[endpointType]
	svc.mutex.RUnlock()

	if !exists || !config.IsActive || svc.disabled {
		return true, -1, 0, nil
	}

	client := svc.redisSvc.GetClient()
	key := fmt.Sprintf("rate_limit:%s:%s", endpointType, identifier)

	count, err := client.Incr(ctx, key).Result()
	if err != nil {
		return false, 0, 0, err
	}
	if count == 1 {
		client.Expire(ctx, key, config.WindowSize)
	}

	ttl, err := client.TTL(ctx, key).Result()
	if err != nil || ttl < 0 {
		ttl = config.WindowSize
	}

	remaining := config.MaxRequests - int(count)
	if remaining < 0 {
		remaining = 0
	}

	return int(count) <= config.MaxRequests, remaining, ttl, nil
}

// Limit builds a fiber middleware for one endpoint type.
func (svc *RateLimitService) Limit(endpointType string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identifier := getClientIP(c)

		allowed, remaining, resetIn, err := svc.IsAllowed(c.Context(), identifier, endpointType)
		if err != nil {
			// A broken counter must not take the dashboard down with it.
			log.WithError(err).Warnf("Rate limit check failed for %s (%s)", endpointType, identifier)
			return c.Next()
		}

		svc.addRateLimitHeaders(c, endpointType, remaining, resetIn)

		if !allowed {
			return shared.ResponseJSON(c, fiber.StatusTooManyRequests, "Too Many Requests",
				fmt.Sprintf("Rate limit exceeded for %s. Retry after %d seconds.", endpointType, int(resetIn.Seconds())))
		}

		return c.Next()
	}
}

// IPRateLimit applies the general per-IP budget to the whole API surface.
func (svc *RateLimitService) IPRateLimit() fiber.Handler {
	return svc.Limit("api_general")
}

func (svc *RateLimitService) addRateLimitHeaders(c *fiber.Ctx, endpointType string, remaining int, resetIn time.Duration) {
	svc.mutex.RLock()
	config, exists := svc.configs[endpointType]
	svc.mutex.RUnlock()
	if !exists {
		return
	}

	c.Set("X-RateLimit-Limit", strconv.Itoa(config.MaxRequests))
	c.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
	c.Set("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(resetIn).Unix(), 10))
}

func getClientIP(c *fiber.Ctx) string {
	forwarded := c.Get("X-Forwarded-For")
	if forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}

	if realIP := c.Get("X-Real-IP"); realIP != "" {
		return realIP
	}

	return c.IP()
}
