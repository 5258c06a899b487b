package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/mafgems/api/internal/model"
	"github.com/mafgems/api/internal/service"
	ws "github.com/mafgems/api/internal/websocket"
	"github.com/mafgems/api/pkg/response"
	"github.com/rs/zerolog"
)

type VideoHandler struct {
	service   *service.JewelryVideoService
	hub       *ws.Hub
	validator *validator.Validate
	log       zerolog.Logger
}

func NewVideoHandler(svc *service.JewelryVideoService, hub *ws.Hub, v *validator.Validate, log zerolog.Logger) *VideoHandler {
	return &VideoHandler{
		service:   svc,
		hub:       hub,
		validator: v,
		log:       log,
	}
}

// Start handles POST /api/generate-jewelry-video
//
//	@Summary	Queue a jewelry model video
//	@Tags		videos
//	@Accept		json
//	@Produce	json
//	@Param		request	body		model.JewelryVideoRequest	true	"Video request"
//	@Success	202		{object}	model.JewelryVideoStartResponse
//	@Failure	400		{object}	response.ErrorResponse
//	@Failure	429		{object}	response.ErrorResponse
//	@Router		/api/generate-jewelry-video [post]
func (h *VideoHandler) Start(c *fiber.Ctx) error {
	var req model.JewelryVideoRequest
	if err := c.BodyParser(&req); err != nil {
		return response.ValidationError(c, "Invalid request body", nil)
	}

	if err := h.validator.Struct(&req); err != nil {
		return response.ValidationError(c, "Missing required fields", formatValidationErrors(err))
	}

	result, err := h.service.StartVideo(c.UserContext(), &req)
	if err != nil {
		h.log.Error().Err(err).Msg("[Video] failed to queue jewelry video")
		return response.ServiceError(c, "Failed to generate video")
	}

	return response.Accepted(c, result)
}

// Status handles GET /api/generate-jewelry-video/status/:jobId
//
//	@Summary	Jewelry video job status
//	@Tags		videos
//	@Produce	json
//	@Param		jobId	path		string	true	"Job id"
//	@Success	200		{object}	model.JewelryVideoStatusResponse
//	@Failure	404		{object}	response.ErrorResponse
//	@Router		/api/generate-jewelry-video/status/{jobId} [get]
func (h *VideoHandler) Status(c *fiber.Ctx) error {
	jobID := c.Params("jobId")
	if jobID == "" {
		return response.ValidationError(c, "Job ID is required", nil)
	}

	result, err := h.service.GetStatus(c.UserContext(), jobID)
	if errors.Is(err, service.ErrJobNotFound) {
		return response.NotFound(c, "Job not found")
	}
	if err != nil {
		h.log.Error().Err(err).Str("job_id", jobID).Msg("[Video] failed to check video status")
		return response.ServiceError(c, "Failed to check video status")
	}

	return response.OK(c, result)
}

// RequireUpgrade rejects plain HTTP requests on websocket routes
func (h *VideoHandler) RequireUpgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// Stream handles GET /ws/videos/:jobId
func (h *VideoHandler) Stream() fiber.Handler {
	return websocket.New(func(c *websocket.Conn) {
		h.hub.HandleConnection(c, c.Params("jobId"))
	})
}
