package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/coursekit-labs/session_api/dto"
	"github.com/coursekit-labs/session_api/shared"
)

type SessionHandler struct {
	sessionSvc SessionServiceInterface
}

func NewSessionHandler(sessionSvc SessionServiceInterface) *SessionHandler {
	return &SessionHandler{sessionSvc: sessionSvc}
}

func userID(c *fiber.Ctx) string {
	id, _ := c.Locals(shared.UserID).(string)
	return id
}

// @Summary List sessions
// @Description List active sessions with the caller's progress
// @Tags sessions
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Success 200 {object} shared.Response{data=dto.SessionCollectionResponse}
// @Router /api/v1/sessions [get]
func (h *SessionHandler) ListSessions(c *fiber.Ctx) error {
	resp, err := h.sessionSvc.ListSessions(userID(c))
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, resp)
}

// @Summary Get session detail
// @Description Session metadata and ordered content list with completion flags
// @Tags sessions
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param sessionId path string true "Session ID"
// @Success 200 {object} shared.Response{data=dto.SessionDetailResponse}
// @Router /api/v1/sessions/{sessionId} [get]
func (h *SessionHandler) GetSession(c *fiber.Ctx) error {
	resp, err := h.sessionSvc.GetSessionDetail(userID(c), c.Params("sessionId"))
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, resp)
}

// @Summary Start a session
// @Description Bring a session live, resuming persisted progress
// @Tags sessions
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param sessionId path string true "Session ID"
// @Param startRequest body dto.StartSessionRequest false "Playback options"
// @Success 200 {object} shared.Response{data=dto.SessionStateResponse}
// @Router /api/v1/sessions/{sessionId}/start [post]
func (h *SessionHandler) StartSession(c *fiber.Ctx) error {
	var req dto.StartSessionRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return shared.NewBadRequestError(err, "Invalid request body")
		}
	}

	resp, err := h.sessionSvc.StartSession(userID(c), c.Params("sessionId"), req)
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, resp)
}

// @Summary Close a session
// @Description Persist progress and release the live session
// @Tags sessions
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param sessionId path string true "Session ID"
// @Success 200 {object} shared.Response{data=nil}
// @Router /api/v1/sessions/{sessionId}/close [post]
func (h *SessionHandler) CloseSession(c *fiber.Ctx) error {
	if err := h.sessionSvc.CloseSession(userID(c), c.Params("sessionId")); err != nil {
		return err
	}
	return shared.ResponseJSON(c, http.StatusOK, "Session closed", nil)
}

// @Summary Get live session state
// @Description Current item, navigation flags and playback snapshot
// @Tags sessions
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param sessionId path string true "Session ID"
// @Success 200 {object} shared.Response{data=dto.SessionStateResponse}
// @Router /api/v1/sessions/{sessionId}/state [get]
func (h *SessionHandler) GetState(c *fiber.Ctx) error {
	resp, err := h.sessionSvc.GetSessionState(userID(c), c.Params("sessionId"))
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, resp)
}

// @Summary Select content
// @Description Jump to an arbitrary content item in the session
// @Tags sessions
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param sessionId path string true "Session ID"
// @Param selectRequest body dto.SelectContentRequest true "Content to select"
// @Success 200 {object} shared.Response{data=dto.SessionStateResponse}
// @Router /api/v1/sessions/{sessionId}/select [post]
func (h *SessionHandler) SelectContent(c *fiber.Ctx) error {
	var req dto.SelectContentRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.sessionSvc.SelectContent(userID(c), c.Params("sessionId"), req.ContentID)
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, resp)
}

// @Summary Go to next content
// @Tags sessions
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param sessionId path string true "Session ID"
// @Success 200 {object} shared.Response{data=dto.SessionStateResponse}
// @Router /api/v1/sessions/{sessionId}/next [post]
func (h *SessionHandler) NextContent(c *fiber.Ctx) error {
	resp, err := h.sessionSvc.NextContent(userID(c), c.Params("sessionId"))
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, resp)
}

// @Summary Go to previous content
// @Tags sessions
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param sessionId path string true "Session ID"
// @Success 200 {object} shared.Response{data=dto.SessionStateResponse}
// @Router /api/v1/sessions/{sessionId}/previous [post]
func (h *SessionHandler) PreviousContent(c *fiber.Ctx) error {
	resp, err := h.sessionSvc.PreviousContent(userID(c), c.Params("sessionId"))
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, resp)
}

// @Summary Restart session
// @Description Return to the first content item; progress is kept
// @Tags sessions
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param sessionId path string true "Session ID"
// @Success 200 {object} shared.Response{data=dto.SessionStateResponse}
// @Router /api/v1/sessions/{sessionId}/restart [post]
func (h *SessionHandler) RestartSession(c *fiber.Ctx) error {
	resp, err := h.sessionSvc.RestartSession(userID(c), c.Params("sessionId"))
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, resp)
}

// @Summary Complete current content
// @Description Explicit completion action for non time-based content
// @Tags sessions
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param sessionId path string true "Session ID"
// @Success 200 {object} shared.Response{data=dto.SessionStateResponse}
// @Router /api/v1/sessions/{sessionId}/complete [post]
func (h *SessionHandler) CompleteContent(c *fiber.Ctx) error {
	resp, err := h.sessionSvc.CompleteCurrentContent(userID(c), c.Params("sessionId"))
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, resp)
}

// @Summary Get session progress
// @Description Completion percentage, completed items and accumulated listen time
// @Tags sessions
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param sessionId path string true "Session ID"
// @Success 200 {object} shared.Response{data=dto.ProgressResponse}
// @Router /api/v1/sessions/{sessionId}/progress [get]
func (h *SessionHandler) GetProgress(c *fiber.Ctx) error {
	resp, err := h.sessionSvc.GetProgress(userID(c), c.Params("sessionId"))
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, resp)
}
