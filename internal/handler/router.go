package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/mafgems/api/internal/config"
	"github.com/mafgems/api/internal/metrics"
	"github.com/mafgems/api/internal/middleware"
	"github.com/mafgems/api/pkg/response"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Router mounts every route of the API on a Fiber app
type Router struct {
	Health       *HealthHandler
	Presentation *PresentationHandler
	Gallery      *GalleryHandler
	Video        *VideoHandler
	Upload       *UploadHandler

	Auth        *middleware.AuthMiddleware
	RateLimiter *middleware.RateLimiter
	Limits      config.RateLimitConfig
	Metrics     *metrics.Metrics
}

func (r *Router) Register(app *fiber.App) {
	app.Get("/", r.Health.Root)
	app.Get("/health", r.Health.Health)
	app.Get("/swagger/*", swagger.HandlerDefault)

	if r.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(r.Metrics.Registry, promhttp.HandlerOpts{})))
	}

	api := app.Group("/api")

	api.Post("/generate-presentation", r.Auth.OptionalAuth(), r.Presentation.Generate)

	presentations := api.Group("/presentations", r.Auth.Authenticate())
	presentations.Get("/", r.Gallery.ListPresentations)
	presentations.Delete("/:id", r.Gallery.DeletePresentation)

	video := api.Group("/generate-jewelry-video")
	video.Post("/", r.Auth.OptionalAuth(), r.RateLimiter.VideoLimit(r.Limits.VideoPerHour), r.Video.Start)
	video.Get("/", r.Gallery.ListJewelryVideos)
	video.Get("/status/:jobId", r.Video.Status)

	uploads := api.Group("/uploads", r.Auth.Authenticate())
	uploads.Post("/reference-image", r.RateLimiter.UploadLimit(r.Limits.UploadPerHour), r.Upload.ReferenceImage)
	uploads.Delete("/reference-image", r.Upload.DeleteReferenceImage)

	app.Use("/ws", r.Video.RequireUpgrade)
	app.Get("/ws/videos/:jobId", r.Video.Stream())
}

// ErrorHandler renders errors that escaped a handler in the flat error envelope
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	errCode := response.CodeServiceError
	if code == fiber.StatusNotFound {
		errCode = response.CodeNotFound
	}
	return response.Error(c, code, errCode, message, nil)
}
