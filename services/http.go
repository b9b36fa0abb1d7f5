package services

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/rs/zerolog/log"

	_ "github.com/coursekit-labs/session_api/docs"
	"github.com/coursekit-labs/session_api/services/handlers"
	"github.com/coursekit-labs/session_api/shared"
)

type HttpService struct {
	context.DefaultService

	authSvc       *AuthService
	sessionSvc    *SessionService
	contentSvc    *ContentService
	mediaSvc      *MediaService
	monitoringSvc *MonitoringService

	authMw    AuthMiddlewareProvider
	rateLimit RateLimitProvider
	port      int
	app       *fiber.App
}

// AuthMiddlewareProvider and RateLimitProvider decouple the route table from
// the middleware services, which live in their own package.
type AuthMiddlewareProvider interface {
	RequiredAuth() fiber.Handler
	RequireRole(role string) fiber.Handler
}

type RateLimitProvider interface {
	IPRateLimit() fiber.Handler
	AuthRateLimit() fiber.Handler
	PlaybackRateLimit() fiber.Handler
}

const HTTP_SVC = "http_svc"

func (svc HttpService) Id() string {
	return HTTP_SVC
}

func (svc *HttpService) Configure(ctx *context.Context) error {
	if port := os.Getenv("HTTP_PORT"); port != "" {
		var err error
		if svc.port, err = strconv.Atoi(port); err != nil {
			return err
		}
	} else {
		svc.port = 8000
	}

	return svc.DefaultService.Configure(ctx)
}

// SetMiddleware wires the middleware services in before Start. Called from
// the runtime after the context is built.
func (svc *HttpService) SetMiddleware(auth AuthMiddlewareProvider, rl RateLimitProvider) {
	svc.authMw = auth
	svc.rateLimit = rl
}

func (svc *HttpService) Start() error {
	svc.authSvc = svc.Service(AUTH_SVC).(*AuthService)
	svc.sessionSvc = svc.Service(SESSION_SVC).(*SessionService)
	svc.contentSvc = svc.Service(CONTENT_SVC).(*ContentService)
	svc.mediaSvc = svc.Service(MEDIA_SVC).(*MediaService)
	svc.monitoringSvc = svc.Service(MONITORING_SVC).(*MonitoringService)

	svc.app = fiber.New(fiber.Config{
		ErrorHandler: svc.handleError,
		BodyLimit:    512 * 1024 * 1024, // media uploads
	})

	svc.app.Use(recover.New())
	svc.app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	svc.app.Use(MonitoringMiddleware(svc.monitoringSvc))

	svc.registerRoutes()

	log.Info().Int("port", svc.port).Msg("HTTP server started")
	return svc.app.Listen(fmt.Sprintf(":%v", svc.port))
}

func (svc *HttpService) Shutdown() {
	if svc.app != nil {
		_ = svc.app.Shutdown()
	}
}

func (svc *HttpService) registerRoutes() {
	authHandler := handlers.NewAuthHandler(svc.authSvc)
	sessionHandler := handlers.NewSessionHandler(svc.sessionSvc)
	playbackHandler := handlers.NewPlaybackHandler(svc.sessionSvc)
	contentHandler := handlers.NewContentHandler(svc.contentSvc, svc.mediaSvc)

	svc.app.Get("/ping", svc.ping)
	svc.app.Get("/swagger/*", swagger.HandlerDefault)

	v1 := svc.app.Group("/api/v1")
	v1.Use(svc.rateLimit.IPRateLimit())

	v1.Get("/ping", svc.ping)
	v1.Get("/content/types", contentHandler.ContentTypes)

	v1.Post("/register", svc.rateLimit.AuthRateLimit(), authHandler.Register)
	v1.Post("/login", svc.rateLimit.AuthRateLimit(), authHandler.Login)

	authed := v1.Group("", svc.authMw.RequiredAuth())
	authed.Get("/me", authHandler.Me)

	sessions := authed.Group("/sessions")
	sessions.Get("", sessionHandler.ListSessions)
	sessions.Get("/:sessionId", sessionHandler.GetSession)
	sessions.Post("/:sessionId/start", sessionHandler.StartSession)
	sessions.Post("/:sessionId/close", sessionHandler.CloseSession)
	sessions.Get("/:sessionId/state", sessionHandler.GetState)
	sessions.Post("/:sessionId/select", sessionHandler.SelectContent)
	sessions.Post("/:sessionId/next", sessionHandler.NextContent)
	sessions.Post("/:sessionId/previous", sessionHandler.PreviousContent)
	sessions.Post("/:sessionId/restart", sessionHandler.RestartSession)
	sessions.Post("/:sessionId/complete", sessionHandler.CompleteContent)
	sessions.Get("/:sessionId/progress", sessionHandler.GetProgress)

	playbackGroup := sessions.Group("/:sessionId/playback", svc.rateLimit.PlaybackRateLimit())
	playbackGroup.Post("/load", playbackHandler.Load)
	playbackGroup.Post("/play", playbackHandler.Play)
	playbackGroup.Post("/pause", playbackHandler.Pause)
	playbackGroup.Post("/seek", playbackHandler.Seek)
	playbackGroup.Post("/volume", playbackHandler.SetVolume)
	playbackGroup.Post("/mute", playbackHandler.ToggleMute)
	playbackGroup.Post("/speed", playbackHandler.SetSpeed)
	playbackGroup.Post("/loop", playbackHandler.ToggleLoop)
	playbackGroup.Post("/chapter", playbackHandler.SkipChapter)
	playbackGroup.Post("/heartbeat", playbackHandler.Heartbeat)

	admin := authed.Group("/admin", svc.authMw.RequireRole(shared.RoleAdmin))
	admin.Post("/sessions", contentHandler.CreateSession)
	admin.Post("/sessions/:sessionId/contents", contentHandler.AddContent)
	admin.Post("/contents/:contentId/media", contentHandler.UploadMedia)
}

// @Summary Ping
// @Description This endpoint checks the health of the service
// @Tags health
// @Accept  json
// @Produce json
// @Success 200 {object} shared.Response{data=string}
// @Router /ping [get]
func (svc *HttpService) ping(c *fiber.Ctx) error {
	c.Set("Cache-Control", "max-age=10")

	return shared.ResponseOK(c, "pong")
}

func (svc *HttpService) handleError(c *fiber.Ctx, err error) error {
	if appErr, ok := shared.GetAppError(err); ok {
		return shared.ResponseJSON(c, appErr.StatusCode, appErr.Message, appErr.Data)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return shared.ResponseJSON(c, fiberErr.Code, fiberErr.Message, nil)
	}

	log.Error().Err(err).Str("path", c.Path()).Msg("Unhandled error")
	return shared.ResponseInternalError(c, err)
}
