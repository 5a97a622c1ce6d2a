package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mkrivosheev/resume-scorer/api/http/handlers"
)

// Register wires all HTTP routes onto given Fiber app.
func Register(
	app *fiber.App,
	auth *handlers.AuthHandler,
	health *handlers.HealthHandler,
	resumes *handlers.ResumesHandler,
	score *handlers.ScoreHandler,
	advice *handlers.AdviceHandler,
	authMW fiber.Handler,
) {
	api := app.Group("/api")
	v1 := api.Group("/v1")

	// Health and readiness endpoints for probes/monitoring
	v1.Get("/health", health.Health)
	v1.Get("/ready", health.Ready)

	a := v1.Group("/auth")
	a.Post("/register", auth.Register)
	a.Post("/login", auth.Login)

	// Scoring: ad-hoc texts and uploaded files
	sg := v1.Group("/score", authMW)
	sg.Post("/", score.Score)
	sg.Post("/file", score.ScoreFile)

	// Stored resumes and per-resume operations
	rg := v1.Group("/resumes", authMW)
	rg.Post("/", resumes.Upload)
	rg.Get("/", resumes.List)
	rg.Get("/:id", resumes.Get)
	rg.Get("/:id/file", resumes.Download)
	rg.Delete("/:id", resumes.Delete)
	rg.Post("/:id/score", score.ScoreStored)
	rg.Get("/:id/ats", advice.Ats)
	rg.Post("/:id/roadmap", advice.Roadmap)
	rg.Get("/:id/roles", advice.Roles)
}
