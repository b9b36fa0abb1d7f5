package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/coursekit-labs/session_api/dto"
	"github.com/coursekit-labs/session_api/shared"
)

type ContentHandler struct {
	contentSvc ContentServiceInterface
	mediaSvc   MediaServiceInterface
}

func NewContentHandler(contentSvc ContentServiceInterface, mediaSvc MediaServiceInterface) *ContentHandler {
	return &ContentHandler{
		contentSvc: contentSvc,
		mediaSvc:   mediaSvc,
	}
}

// @Summary List content types
// @Description Supported content types and whether each is clock-driven
// @Tags content
// @Produce json
// @Success 200 {object} shared.Response{data=[]map[string]interface{}}
// @Router /api/v1/content/types [get]
func (h *ContentHandler) ContentTypes(c *fiber.Ctx) error {
	return shared.ResponseOK(c, h.contentSvc.ContentTypes())
}

// @Summary Create session
// @Description Create an empty session (admin only)
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "Admin Bearer Token" default(Bearer <admin_token>)
// @Param createRequest body dto.CreateSessionRequest true "Session details"
// @Success 201 {object} shared.Response{data=model.Session}
// @Router /api/v1/admin/sessions [post]
func (h *ContentHandler) CreateSession(c *fiber.Ctx) error {
	var req dto.CreateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	session, err := h.contentSvc.CreateSession(req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusCreated, "Session created", session)
}

// @Summary Add content to a session
// @Description Append a content item; order must be unique within the session (admin only)
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "Admin Bearer Token" default(Bearer <admin_token>)
// @Param sessionId path string true "Session ID"
// @Param contentRequest body dto.CreateContentRequest true "Content details"
// @Success 201 {object} shared.Response{data=model.ContentItem}
// @Router /api/v1/admin/sessions/{sessionId}/contents [post]
func (h *ContentHandler) AddContent(c *fiber.Ctx) error {
	var req dto.CreateContentRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	item, err := h.contentSvc.AddContent(c.Params("sessionId"), req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusCreated, "Content added", item)
}

// @Summary Upload content media
// @Description Attach an audio or video file to a time-based content item (admin only)
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Security Bearer
// @Param Authorization header string true "Admin Bearer Token" default(Bearer <admin_token>)
// @Param contentId path string true "Content ID"
// @Param file formData file true "Media file"
// @Param duration formData string false "Media duration in seconds"
// @Success 200 {object} shared.Response{data=dto.MediaUploadResponse}
// @Router /api/v1/admin/contents/{contentId}/media [post]
func (h *ContentHandler) UploadMedia(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return shared.NewBadRequestError(err, "Media file is required")
	}

	resp, err := h.mediaSvc.UploadContentMedia(c.Params("contentId"), file, c.FormValue("duration"))
	if err != nil {
		return err
	}

	return shared.ResponseOK(c, resp)
}
