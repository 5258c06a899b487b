package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/mafgems/api/internal/generation"
	"github.com/mafgems/api/internal/middleware"
	"github.com/mafgems/api/internal/model"
	"github.com/mafgems/api/internal/service"
	"github.com/mafgems/api/pkg/response"
	"github.com/rs/zerolog"
)

type PresentationHandler struct {
	service *service.PresentationService
	log     zerolog.Logger
}

func NewPresentationHandler(svc *service.PresentationService, log zerolog.Logger) *PresentationHandler {
	return &PresentationHandler{service: svc, log: log}
}

// Generate handles POST /api/generate-presentation
//
//	@Summary	Generate a jewelry presentation
//	@Tags		presentations
//	@Accept		json
//	@Produce	json
//	@Param		request	body		model.GenerationRequest	true	"Generation request"
//	@Success	200		{object}	model.GenerationResponse
//	@Success	202		{object}	model.GenerationResponse	"ai-video still processing"
//	@Failure	400		{object}	response.ErrorResponse
//	@Failure	502		{object}	response.ErrorResponse
//	@Failure	503		{object}	response.ErrorResponse
//	@Failure	504		{object}	response.ErrorResponse
//	@Router		/api/generate-presentation [post]
func (h *PresentationHandler) Generate(c *fiber.Ctx) error {
	var req model.GenerationRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, fiber.StatusBadRequest, generation.CodeInvalidJSON, "Invalid JSON in request body", nil)
	}

	if strings.TrimSpace(req.UserID) == "" {
		req.UserID = middleware.GetUserID(c)
	}

	result, err := h.service.Generate(c.UserContext(), &req)
	if err != nil {
		if ge, ok := generation.AsError(err); ok {
			var details interface{}
			if ge.Details != "" {
				details = ge.Details
			}
			return response.Error(c, ge.StatusCode, ge.Code, ge.Message, details)
		}
		h.log.Error().Err(err).Msg("[Presentation] unexpected generation failure")
		return response.ServiceError(c, "Internal server error")
	}

	return c.Status(result.HTTPStatus()).JSON(result.Response())
}
