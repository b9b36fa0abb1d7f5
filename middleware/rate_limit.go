package middleware

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"

	"github.com/coursekit-labs/session_api/services"
	"github.com/coursekit-labs/session_api/shared"
)

type RateLimitConfig struct {
	EndpointType string
	MaxRequests  int64
	WindowSize   time.Duration
	Description  string
}

type RateLimitInfo struct {
	Allowed   bool
	Remaining int64
	ResetTime time.Time
}

// RateLimitMiddleware enforces fixed-window limits backed by Redis, so the
// counters survive restarts and are shared across instances.
type RateLimitMiddleware struct {
	context.DefaultService

	configs  map[string]*RateLimitConfig
	mutex    sync.RWMutex
	redisSvc *services.RedisService
}

const RATE_LIMIT_MIDDLEWARE_SVC = "rate_limit"

func (svc *RateLimitMiddleware) Id() string {
	return RATE_LIMIT_MIDDLEWARE_SVC
}

func (svc *RateLimitMiddleware) Configure(ctx *context.Context) error {
	svc.redisSvc = ctx.Service(services.REDIS_SVC).(*services.RedisService)

	svc.configs = make(map[string]*RateLimitConfig)
	return svc.DefaultService.Configure(ctx)
}

func (svc *RateLimitMiddleware) Start() error {
	svc.initDefaultConfigs()
	return nil
}

func (svc *RateLimitMiddleware) initDefaultConfigs() {
	svc.configs = map[string]*RateLimitConfig{
		// Registration and login - slow down credential stuffing
		"auth": {
			EndpointType: "auth",
			MaxRequests:  10,
			WindowSize:   time.Minute * 15,
			Description:  "Authentication rate limit",
		},

		// General API calls per IP
		"api_general": {
			EndpointType: "api_general",
			MaxRequests:  1000,
			WindowSize:   time.Hour,
			Description:  "General API rate limit per IP",
		},

		// Playback commands - heartbeats arrive every few seconds
		"playback": {
			EndpointType: "playback",
			MaxRequests:  600,
			WindowSize:   time.Minute,
			Description:  "Playback command rate limit per user",
		},
	}
}

func (svc *RateLimitMiddleware) IsAllowed(c *fiber.Ctx, identifier, endpointType string) (bool, *RateLimitInfo, error) {
	svc.mutex.RLock()
	config, exists := svc.configs[endpointType]
	svc.mutex.RUnlock()

	if !exists {
		// If no config exists, allow the request
		return true, &RateLimitInfo{Allowed: true, Remaining: -1}, nil
	}

	now := time.Now()
	window := now.Unix() / int64(config.WindowSize.Seconds())
	key := fmt.Sprintf("ratelimit:%s:%s:%d", endpointType, identifier, window)

	count, err := svc.redisSvc.Increment(c.Context(), key)
	if err != nil {
		return false, nil, err
	}
	if count == 1 {
		if err := svc.redisSvc.Expire(c.Context(), key, config.WindowSize); err != nil {
			log.Printf("Failed to set rate limit TTL for %s: %v", key, err)
		}
	}

	resetTime := time.Unix((window+1)*int64(config.WindowSize.Seconds()), 0)
	remaining := config.MaxRequests - count
	if remaining < 0 {
		remaining = 0
	}

	return count <= config.MaxRequests, &RateLimitInfo{
		Allowed:   count <= config.MaxRequests,
		Remaining: remaining,
		ResetTime: resetTime,
	}, nil
}

// IPRateLimit applies the general per-IP limit.
func (svc *RateLimitMiddleware) IPRateLimit() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ip := getClientIP(c)

		allowed, info, err := svc.IsAllowed(c, ip, "api_general")
		if err != nil {
			log.Printf("Rate limit check error for IP %s: %v", ip, err)
			// Continue with request on error to avoid blocking users due to system issues
			return c.Next()
		}

		c.Set("X-RateLimit-Remaining", strconv.FormatInt(info.Remaining, 10))
		c.Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))

		if !allowed {
			c.Set("Retry-After", strconv.FormatInt(info.ResetTime.Unix(), 10))
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error":   "Rate limit exceeded",
				"message": "Too many requests from this IP address",
			})
		}

		return c.Next()
	}
}

// AuthRateLimit guards registration and login.
func (svc *RateLimitMiddleware) AuthRateLimit() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ip := getClientIP(c)

		allowed, info, err := svc.IsAllowed(c, ip, "auth")
		if err != nil {
			log.Printf("Auth rate limit check error for IP %s: %v", ip, err)
			// For auth endpoints, block on error for security
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error":   "Rate limit service unavailable",
				"message": "Please try again later",
			})
		}

		if !allowed {
			c.Set("Retry-After", strconv.FormatInt(info.ResetTime.Unix(), 10))
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error":   "Rate limit exceeded",
				"message": "Too many authentication attempts. Please try again later.",
			})
		}

		return c.Next()
	}
}

// PlaybackRateLimit limits playback commands per authenticated user, falling
// back to the client IP when unauthenticated.
func (svc *RateLimitMiddleware) PlaybackRateLimit() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identifier, _ := c.Locals(shared.UserID).(string)
		if identifier == "" {
			identifier = getClientIP(c)
		}

		allowed, info, err := svc.IsAllowed(c, identifier, "playback")
		if err != nil {
			log.Printf("Playback rate limit error: %v", err)
			return c.Next()
		}

		if !allowed {
			c.Set("Retry-After", strconv.FormatInt(info.ResetTime.Unix(), 10))
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error":   "Rate limit exceeded",
				"message": "Too many playback commands",
			})
		}

		return c.Next()
	}
}

func getClientIP(c *fiber.Ctx) string {
	// Check for forwarded IP first
	forwarded := c.Get("X-Forwarded-For")
	if forwarded != "" {
		ips := strings.Split(forwarded, ",")
		if len(ips) > 0 {
			return strings.TrimSpace(ips[0])
		}
	}

	realIP := c.Get("X-Real-IP")
	if realIP != "" {
		return realIP
	}

	return c.IP()
}
