// services/http.go
package services

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	appContext "github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	_ "github.com/salon-lingo/admin_api/docs"
	"github.com/salon-lingo/admin_api/services/handlers"
	"github.com/salon-lingo/admin_api/shared"
)

type HttpService struct {
	appContext.DefaultService

	authSvc       *AuthService
	lessonSvc     *LessonService
	curriculumSvc *CurriculumService
	structureSvc  *StructureService
	generatorSvc  *GeneratorService
	promptSvc     *PromptService
	monitoringSvc *MonitoringService
	rateLimitSvc  *RateLimitService

	port   int
	server *fiber.App
}

const HTTP_SVC = "http_svc"

func (svc HttpService) Id() string {
	return HTTP_SVC
}

func (svc *HttpService) Configure(ctx *appContext.Context) error {
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

func (svc *HttpService) Start() error {
	svc.authSvc = svc.Service(AUTH_SVC).(*AuthService)
	svc.lessonSvc = svc.Service(LESSON_SVC).(*LessonService)
	svc.curriculumSvc = svc.Service(CURRICULUM_SVC).(*CurriculumService)
	svc.structureSvc = svc.Service(STRUCTURE_SVC).(*StructureService)
	svc.generatorSvc = svc.Service(GENERATOR_SVC).(*GeneratorService)
	svc.promptSvc = svc.Service(PROMPT_SVC).(*PromptService)
	svc.monitoringSvc = svc.Service(MONITORING_SVC).(*MonitoringService)
	svc.rateLimitSvc = svc.Service(RATE_LIMIT_SVC).(*RateLimitService)

	app := fiber.New(fiber.Config{
		ErrorHandler: svc.handleError,
		BodyLimit:    10 * 1024 * 1024,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(MonitoringMiddleware(svc.monitoringSvc))

	if os.Getenv("LOG_LEVEL") == "TRACE" {
		app.Use(logger.New())
	}

	app.Get("/ping", svc.ping)
	app.Get("/swagger/*", swagger.HandlerDefault)

	svc.registerRoutes(app)

	app.Use(func(c *fiber.Ctx) error {
		return shared.ResponseNotFound(c)
	})

	svc.server = app
	return app.Listen(fmt.Sprintf(":%v", svc.port))
}

func (svc *HttpService) registerRoutes(app *fiber.App) {
	lessonHandler := handlers.NewLessonHandler(svc.lessonSvc, svc.monitoringSvc)
	curriculumHandler := handlers.NewCurriculumHandler(svc.curriculumSvc)
	structureHandler := handlers.NewStructureHandler(svc.structureSvc, svc.monitoringSvc)
	generatorHandler := handlers.NewGeneratorHandler(svc.generatorSvc, svc.monitoringSvc)
	promptHandler := handlers.NewPromptHandler(svc.promptSvc)

	v1 := app.Group("/api/v1", svc.rateLimitSvc.IPRateLimit(), svc.authSvc.RequiredAuth())

	curriculums := v1.Group("/curriculums")
	curriculums.Get("/", curriculumHandler.GetCurriculums)
	curriculums.Post("/", curriculumHandler.CreateCurriculum)
	curriculums.Get("/:curriculumId", curriculumHandler.GetCurriculum)
	curriculums.Put("/:curriculumId", curriculumHandler.UpdateCurriculum)
	curriculums.Delete("/:curriculumId", curriculumHandler.DeleteCurriculum)
	curriculums.Post("/:curriculumId/cover", svc.rateLimitSvc.Limit("cover_upload"), curriculumHandler.UploadCoverImage)
	curriculums.Get("/:curriculumId/lessons", lessonHandler.GetCurriculumLessons)
	curriculums.Put("/:curriculumId/lessons/reorder", lessonHandler.ReorderLessons)
	curriculums.Get("/:curriculumId/structure", svc.rateLimitSvc.Limit("structure_report"), structureHandler.AnalyzeCurriculum)

	lessons := v1.Group("/lessons")
	lessons.Get("/search", lessonHandler.SearchLessons)
	lessons.Put("/bulk", svc.rateLimitSvc.Limit("bulk_update"), lessonHandler.BulkUpdateLessons)
	lessons.Post("/import", svc.rateLimitSvc.Limit("lesson_import"), lessonHandler.ImportLesson)
	lessons.Post("/", lessonHandler.CreateLesson)
	lessons.Get("/:lessonId", lessonHandler.GetLesson)
	lessons.Put("/:lessonId", lessonHandler.UpdateLesson)
	lessons.Delete("/:lessonId", lessonHandler.DeleteLesson)
	lessons.Post("/:lessonId/duplicate", lessonHandler.DuplicateLesson)
	lessons.Get("/:lessonId/export", lessonHandler.ExportLesson)
	lessons.Get("/:lessonId/check", lessonHandler.CheckLesson)
	lessons.Get("/:lessonId/structure/validate", structureHandler.ValidateLesson)
	lessons.Get("/:lessonId/structure/diff", structureHandler.DiffLesson)
	lessons.Get("/:lessonId/structure/migration", structureHandler.SuggestMigration)
	lessons.Post("/:lessonId/structure/repair", structureHandler.RepairLesson)

	generator := v1.Group("/generator")
	generator.Post("/lessons", svc.rateLimitSvc.Limit("generate_lesson"), generatorHandler.GenerateLesson)
	generator.Get("/presets/:name", generatorHandler.GetPreset)

	courses := v1.Group("/courses")
	courses.Get("/", curriculumHandler.GetCourses)
	courses.Get("/:courseId/modules", curriculumHandler.GetCourseModules)

	ai := v1.Group("/ai", svc.authSvc.RequireSuperAdmin())
	ai.Get("/prompts", promptHandler.GetPromptConfigs)
	ai.Get("/prompts/resolve", promptHandler.ResolvePrompt)
	ai.Post("/prompts", promptHandler.CreatePromptConfig)
	ai.Get("/prompts/:promptId", promptHandler.GetPromptConfig)
	ai.Put("/prompts/:promptId", promptHandler.UpdatePromptConfig)
	ai.Delete("/prompts/:promptId", promptHandler.DeletePromptConfig)
	ai.Get("/settings/global", promptHandler.GetGlobalSettings)
	ai.Put("/settings/global", promptHandler.UpdateGlobalSettings)
	ai.Get("/settings/feedback", promptHandler.GetFeedbackSettings)
	ai.Put("/settings/feedback", promptHandler.UpdateFeedbackSettings)
}

func (svc *HttpService) Shutdown() {
	if svc.server != nil {
		_ = svc.server.Shutdown()
	}
}

// @Summary Ping
// @Description This endpoint checks the health of the service
// @Tags health
// @Accept json
// @Produce json
// @Success 200 {object} shared.Response{data=string}
// @Router /ping [get]
func (svc *HttpService) ping(c *fiber.Ctx) error {
	c.Set(fiber.HeaderCacheControl, "max-age=10")
	return shared.ResponseJSON(c, fiber.StatusOK, "Success", "pong")
}

func (svc *HttpService) handleError(c *fiber.Ctx, err error) error {
	if appErr, ok := shared.GetAppError(err); ok {
		return shared.ResponseJSON(c, appErr.StatusCode, appErr.Message, appErr.Data)
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.ResponseNotFound(c)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return shared.ResponseJSON(c, fiberErr.Code, fiberErr.Message, nil)
	}

	log.Printf("Unhandled error on %s %s: %v", c.Method(), c.Path(), err)
	return shared.ResponseInternalError(c, err)
}
