package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/mafgems/api/internal/middleware"
	"github.com/mafgems/api/internal/model"
	"github.com/mafgems/api/internal/repository"
	"github.com/mafgems/api/internal/service"
	"github.com/mafgems/api/pkg/response"
	"github.com/rs/zerolog"
)

type GalleryHandler struct {
	service *service.GalleryService
	log     zerolog.Logger
}

func NewGalleryHandler(svc *service.GalleryService, log zerolog.Logger) *GalleryHandler {
	return &GalleryHandler{service: svc, log: log}
}

// ListPresentations handles GET /api/presentations
//
//	@Summary	List the caller's presentations
//	@Tags		presentations
//	@Produce	json
//	@Security	BearerAuth
//	@Param		limit	query		int	false	"Maximum rows (default 50)"
//	@Success	200		{object}	model.PresentationListResponse
//	@Failure	401		{object}	response.ErrorResponse
//	@Router		/api/presentations [get]
func (h *GalleryHandler) ListPresentations(c *fiber.Ctx) error {
	rows, err := h.service.ListPresentations(c.UserContext(), middleware.GetUserID(c), c.QueryInt("limit"))
	if err != nil {
		h.log.Error().Err(err).Msg("[Gallery] failed to list presentations")
		return response.ServiceError(c, "Failed to load presentations")
	}
	if rows == nil {
		rows = []model.PersistedGeneration{}
	}
	return response.OK(c, model.PresentationListResponse{Presentations: rows})
}

// DeletePresentation handles DELETE /api/presentations/:id
//
//	@Summary	Delete one of the caller's presentations
//	@Tags		presentations
//	@Security	BearerAuth
//	@Param		id	path	string	true	"Presentation id"
//	@Success	204
//	@Failure	401	{object}	response.ErrorResponse
//	@Failure	404	{object}	response.ErrorResponse
//	@Router		/api/presentations/{id} [delete]
func (h *GalleryHandler) DeletePresentation(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return response.ValidationError(c, "Presentation ID is required", nil)
	}

	err := h.service.DeletePresentation(c.UserContext(), middleware.GetUserID(c), id)
	if errors.Is(err, repository.ErrNotFound) {
		return response.NotFound(c, "Presentation not found")
	}
	if err != nil {
		h.log.Error().Err(err).Str("id", id).Msg("[Gallery] failed to delete presentation")
		return response.ServiceError(c, "Failed to delete presentation")
	}

	return response.NoContent(c)
}

// ListJewelryVideos handles GET /api/generate-jewelry-video?userId=
//
//	@Summary	List a user's jewelry videos
//	@Tags		videos
//	@Produce	json
//	@Param		userId	query		string	true	"User id"
//	@Param		limit	query		int		false	"Maximum rows (default 50)"
//	@Success	200		{array}		model.JewelryVideo
//	@Failure	400		{object}	response.ErrorResponse
//	@Router		/api/generate-jewelry-video [get]
func (h *GalleryHandler) ListJewelryVideos(c *fiber.Ctx) error {
	userID := strings.TrimSpace(c.Query("userId"))
	if userID == "" {
		return response.ValidationError(c, "User ID is required", nil)
	}

	rows, err := h.service.ListJewelryVideos(c.UserContext(), userID, c.QueryInt("limit"))
	if err != nil {
		h.log.Error().Err(err).Msg("[Gallery] failed to list jewelry videos")
		return response.ServiceError(c, "Failed to fetch videos")
	}
	if rows == nil {
		rows = []model.JewelryVideo{}
	}
	return response.OK(c, rows)
}
