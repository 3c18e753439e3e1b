package main

import (
	"context"
	"strings"
	"time"

	"resume-forge/cmd/server/handlers"
	authHandlers "resume-forge/cmd/server/handlers/auth"
	"resume-forge/cmd/server/handlers/httperr"
	resumesHandlers "resume-forge/cmd/server/handlers/resumes"
	"resume-forge/cmd/server/middlewares"
	"resume-forge/internal/clients/mongo"
	"resume-forge/internal/clients/smtp"
	"resume-forge/internal/config"
	"resume-forge/internal/export"
	"resume-forge/internal/logger"
	"resume-forge/internal/render"
	authServices "resume-forge/internal/services/auth"
	resumesServices "resume-forge/internal/services/resumes"
	"resume-forge/internal/utils/crypto"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

const (
	RateLimitExpiration = 1 * time.Minute
)

// setupRouter configures and returns a Fiber app with all routes
func setupRouter(ctx context.Context, cfg config.Config) *fiber.App {

	// Initialize validator and register password validation
	v := validator.New()
	if err := crypto.RegisterPasswordValidator(v); err != nil {
		logger.L().Error("failed to register password validator", "err", err)
		panic(err)
	}

	// Validate JWT algorithm at boot
	alg := strings.ToUpper(cfg.JWTAlgorithm)
	switch alg {
	case "HS256":
		// Valid algorithm
	default:
		logger.L().Error(authServices.ErrUnsupportedJWTAlg.Error(), "algorithm", cfg.JWTAlgorithm)
		panic(authServices.ErrUnsupportedJWTAlg.Error() + ": " + cfg.JWTAlgorithm)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: httperr.Handler,
		Immutable:    true, // make Fiber copy all request-derived strings
		BodyLimit:    16 * 1024 * 1024,
	})

	// Global middlewares
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Content-Type, Authorization",
	}))

	if cfg.RouteMetricsEnabled {
		middlewares.AttachMetrics(app)
	}

	// Health check endpoint, outside versioned API to appease scanners and to avoid logging
	app.Get("/healthz", handlers.Healthz)

	var v1 fiber.Router
	if cfg.RequestLogging {
		v1 = app.Group("/api/v1", fiberlogger.New())
		logger.L().Info("request logging enabled")
	} else {
		v1 = app.Group("/api/v1")
		logger.L().Info("request logging disabled")
	}

	jwtMiddleware := middlewares.JWT(cfg)
	limiterMW := middlewares.BuildRateLimiter(cfg.AuthRatePerMin, RateLimitExpiration)

	// Auth routes
	usersRepo := mongo.NewUsersRepo(mongo.DB())
	mailer, err := smtp.New(cfg)
	if err != nil {
		logger.L().Error("failed to create mailer", "error", err)
		panic(err)
	}
	authSvc := authServices.NewService(usersRepo, mailer, cfg, logger.L())
	authH := authHandlers.NewHandlers(authSvc, v)

	authGrp := v1.Group("/auth", limiterMW)
	authGrp.Post("/signup", authH.SignUp)
	authGrp.Post("/login", authH.Login)
	authGrp.Post("/verify-email", authH.VerifyEmail)
	authGrp.Post("/resend-verification", authH.ResendVerification)
	authGrp.Get("/profile", jwtMiddleware, authH.Profile)
	authGrp.Put("/profile", jwtMiddleware, authH.UpdateProfile)

	// Resume routes
	resumesRepo, err := mongo.NewResumesRepo(ctx, mongo.DB())
	if err != nil {
		logger.L().Error(resumesServices.ErrCreateResumesRepo.Error(), "error", err)
		panic(err)
	}
	resumesSvc := resumesServices.NewService(resumesRepo, logger.L())

	renderer, err := render.New()
	if err != nil {
		logger.L().Error("failed to parse resume templates", "error", err)
		panic(err)
	}
	exporter := export.New(
		export.NewChromeRenderer(cfg.ChromePath),
		time.Duration(cfg.ExportTimeoutSec)*time.Second,
	)
	resumesH := resumesHandlers.NewHandlers(resumesSvc, renderer, exporter, v)

	resumesGrp := v1.Group("/resumes", jwtMiddleware)
	resumesGrp.Post("/save", resumesH.Save)
	resumesGrp.Get("/", resumesH.List)
	resumesGrp.Delete("/cleanup", resumesH.Cleanup)
	resumesGrp.Get("/:id/inspect", resumesH.Inspect)
	resumesGrp.Post("/:id/export", resumesH.Export)
	resumesGrp.Delete("/:id", resumesH.Delete)

	// User profile endpoint (for testing JWT middleware and for future use)
	v1.Get("/me", jwtMiddleware, handlers.Me)

	return app
}
