package main

import (
	"github.com/salon-lingo/admin_api/services"

	"github.com/alphabatem/common/context"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Warn().Err(err).Msg("No .env file found, using system environment")
	}

	ctx, err := context.NewCtx(
		&services.PostgresService{},
		&services.RedisService{},
		&services.MinIOService{},

		&services.JWTService{},
		&services.AuthService{},
		&services.RateLimitService{},

		&services.StructureService{},
		&services.GeneratorService{},
		&services.LessonService{},
		&services.CurriculumService{},
		&services.PromptService{},

		&services.MonitoringService{},
		&services.HttpService{},
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
