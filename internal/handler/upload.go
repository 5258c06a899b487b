package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/mafgems/api/internal/middleware"
	"github.com/mafgems/api/internal/service"
	"github.com/mafgems/api/pkg/response"
	"github.com/rs/zerolog"
)

type UploadHandler struct {
	service *service.UploadService
	log     zerolog.Logger
}

func NewUploadHandler(svc *service.UploadService, log zerolog.Logger) *UploadHandler {
	return &UploadHandler{service: svc, log: log}
}

// ReferenceImage handles POST /api/uploads/reference-image
//
//	@Summary	Upload a reference image
//	@Tags		uploads
//	@Accept		multipart/form-data
//	@Produce	json
//	@Security	BearerAuth
//	@Param		file	formData	file	true	"PNG, JPEG or WebP image up to 10MB"
//	@Success	201		{object}	model.UploadReferenceResponse
//	@Failure	400		{object}	response.ErrorResponse
//	@Failure	401		{object}	response.ErrorResponse
//	@Failure	429		{object}	response.ErrorResponse
//	@Router		/api/uploads/reference-image [post]
func (h *UploadHandler) ReferenceImage(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return response.ValidationError(c, "File is required", nil)
	}

	if file.Size > service.MaxReferenceImageSize {
		return response.ValidationError(c, "File size exceeds 10MB limit", map[string]interface{}{
			"maxSize":  service.MaxReferenceImageSize,
			"fileSize": file.Size,
		})
	}

	contentType := file.Header.Get(fiber.HeaderContentType)

	f, err := file.Open()
	if err != nil {
		return response.ServiceError(c, "Failed to open file")
	}
	defer f.Close()

	result, err := h.service.UploadReferenceImage(c.UserContext(), middleware.GetUserID(c), contentType, f, file.Size)
	switch {
	case errors.Is(err, service.ErrUnsupportedImageType):
		return response.ValidationError(c, "Invalid file type. Supported: PNG, JPEG, WebP", map[string]interface{}{
			"contentType": contentType,
		})
	case errors.Is(err, service.ErrImageTooLarge):
		return response.ValidationError(c, "File size exceeds 10MB limit", nil)
	case err != nil:
		h.log.Error().Err(err).Msg("[Upload] reference image upload failed")
		return response.ServiceError(c, "Failed to upload image")
	}

	return response.Created(c, result)
}

// DeleteReferenceImage handles DELETE /api/uploads/reference-image?key=
//
//	@Summary	Delete a reference image
//	@Tags		uploads
//	@Security	BearerAuth
//	@Param		key	query	string	true	"Object key returned by the upload"
//	@Success	204
//	@Failure	400	{object}	response.ErrorResponse
//	@Failure	404	{object}	response.ErrorResponse
//	@Router		/api/uploads/reference-image [delete]
func (h *UploadHandler) DeleteReferenceImage(c *fiber.Ctx) error {
	key := c.Query("key")
	if key == "" {
		return response.ValidationError(c, "key is required", nil)
	}

	err := h.service.DeleteReferenceImage(c.UserContext(), middleware.GetUserID(c), key)
	if errors.Is(err, service.ErrForbiddenKey) {
		return response.NotFound(c, "Image not found")
	}
	if err != nil {
		h.log.Error().Err(err).Str("key", key).Msg("[Upload] reference image delete failed")
		return response.ServiceError(c, "Failed to delete image")
	}

	return response.NoContent(c)
}
