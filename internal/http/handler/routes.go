package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"studybuddy/internal/service"
)

const (
	serviceName    = "Smart Study Buddy API"
	serviceVersion = "1.0.0"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, svc service.StudyService, log *zap.Logger) {
	h := NewStudyHandler(svc, log)

	app.Get("/", Root)
	app.Get("/health", HealthCheck)
	// Plain liveness probe for orchestrators
	app.Get("/healthz", LivenessProbe)

	app.Post("/upload", h.Upload)
	app.Post("/explain", h.Explain)
	app.Post("/generate-quiz", h.GenerateQuiz)
	app.Post("/study-plan", h.StudyPlan)
}

type rootResponse struct {
	Message   string   `json:"message"`
	Version   string   `json:"version"`
	Endpoints []string `json:"endpoints"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// Root godoc
// @Summary      Service banner
// @Tags         meta
// @Produce      json
// @Success      200  {object}  rootResponse
// @Router       / [get]
func Root(c *fiber.Ctx) error {
	return c.JSON(rootResponse{
		Message:   serviceName,
		Version:   serviceVersion,
		Endpoints: []string{"/upload", "/explain", "/generate-quiz", "/study-plan"},
	})
}

// HealthCheck godoc
// @Summary      Health status
// @Tags         meta
// @Produce      json
// @Success      200  {object}  healthResponse
// @Router       /health [get]
func HealthCheck(c *fiber.Ctx) error {
	return c.JSON(healthResponse{Status: "healthy", Service: serviceName})
}

// LivenessProbe godoc
// @Summary      Liveness probe
// @Tags         meta
// @Success      200
// @Router       /healthz [get]
func LivenessProbe(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusOK)
}
