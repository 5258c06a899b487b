package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Pinger reports whether a backing service is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	services map[string]bool
	database Pinger
}

// NewHealthHandler reports services as configured flags; database may be nil
func NewHealthHandler(services map[string]bool, database Pinger) *HealthHandler {
	return &HealthHandler{services: services, database: database}
}

// Root handles GET /
func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"timestamp": time.Now().UnixMilli()})
}

// Health handles GET /health
//
//	@Summary	Health check
//	@Tags		health
//	@Produce	json
//	@Success	200	{object}	map[string]interface{}
//	@Failure	503	{object}	map[string]interface{}
//	@Router		/health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	status := "ok"
	code := fiber.StatusOK

	services := fiber.Map{}
	for name, configured := range h.services {
		services[name] = configured
	}

	if h.database != nil {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := h.database.Ping(ctx); err != nil {
			status = "degraded"
			code = fiber.StatusServiceUnavailable
			services["database"] = false
		} else {
			services["database"] = true
		}
	}

	return c.Status(code).JSON(fiber.Map{
		"status":   status,
		"services": services,
	})
}
