package main

import (
	"github.com/alphabatem/common/context"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/coursekit-labs/session_api/middleware"
	"github.com/coursekit-labs/session_api/services"
)

// @title CourseKit Session API
// @version 1.0
// @description Session playback and progress engine for audio-first learning.
// @BasePath /
func main() {
	err := godotenv.Load()
	if err != nil {
		log.Warn().Err(err).Msg("No .env file loaded")
	}

	authMw := &middleware.AuthMiddleware{}
	rateLimitMw := &middleware.RateLimitMiddleware{}
	httpSvc := &services.HttpService{}
	httpSvc.SetMiddleware(authMw, rateLimitMw)

	ctx, err := context.NewCtx(
		&services.JWTService{},
		&services.PostgresService{},
		&services.RedisService{},
		&services.MinIOService{},
		&services.MediaService{},
		&services.AuthService{},
		&services.ContentService{},
		&services.SessionService{},
		&services.MonitoringService{},

		authMw,
		rateLimitMw,

		httpSvc,
	)
	if err != nil {
		log.Fatal().Err(err)
		return
	}

	err = ctx.Run()
	if err != nil {
		log.Fatal().Err(err)
		return
	}
}
