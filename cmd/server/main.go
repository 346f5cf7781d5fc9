package main

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/screenhq/resume-screener/internal/config"
	"github.com/screenhq/resume-screener/internal/domain/fiber/handler"
	"github.com/screenhq/resume-screener/internal/middleware"
	"github.com/screenhq/resume-screener/internal/repository"
	"github.com/screenhq/resume-screener/internal/service"
	"github.com/screenhq/resume-screener/internal/usecase"
	"github.com/screenhq/resume-screener/internal/util"
)

func main() {
	ctx := context.Background()
	if err := godotenv.Load(); err != nil {
		log.Println("Could not load .env file")
	}

	appConfig := config.LoadAppConfig()

	app := fiber.New(fiber.Config{
		AppName: appConfig.Name,
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError

			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}

			message := err.Error()
			if message == "" {
				message = "Internal Server Error"
			}

			return ctx.Status(code).JSON(fiber.Map{"error": message})
		},
	})
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: appConfig.Env != "production",
	}))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(pprof.New(pprof.Config{
		Next: func(c *fiber.Ctx) bool {
			return appConfig.Env == "production"
		},
	}))
	app.Use(healthcheck.New())
	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))
	app.Use(middleware.RateLimiter(50, 1*time.Minute))

	// Missing scoring credentials are fatal; everything else degrades.
	scorer, err := newScorer(ctx, appConfig.ScoringProvider)
	if err != nil {
		log.Fatal(err)
	}

	mailer := service.NewMailService()
	if !mailer.Enabled() {
		log.Println("EMAIL_USER/EMAIL_PASS not set, notifications disabled")
	}

	sessionRepo := repository.NewSessionRepository()
	uc := usecase.NewScreeningUsecase(sessionRepo, util.PDFExtractor{}, scorer, mailer)
	h := handler.NewScreeningHandler(uc)
	h.RegisterRoutes(app)

	log.Println("Server running on ", appConfig.Port)
	if err := app.Listen(appConfig.Port); err != nil {
		log.Fatal(err)
	}
}

func newScorer(ctx context.Context, provider string) (service.ScoringProvider, error) {
	switch provider {
	case "openrouter":
		return service.NewOpenRouterService()
	default:
		return service.NewGeminiService(ctx)
	}
}
