package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/coursekit-labs/session_api/dto"
	"github.com/coursekit-labs/session_api/shared"
)

type PlaybackHandler struct {
	sessionSvc SessionServiceInterface
}

func NewPlaybackHandler(sessionSvc SessionServiceInterface) *PlaybackHandler {
	return &PlaybackHandler{sessionSvc: sessionSvc}
}

// @Summary Load media
// @Description Resolve the media source for the current item; also the retry path after a failed load
// @Tags playback
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param sessionId path string true "Session ID"
// @Success 200 {object} shared.Response{data=dto.PlaybackStateResponse}
// @Router /api/v1/sessions/{sessionId}/playback/load [post]
func (h *PlaybackHandler) Load(c *fiber.Ctx) error {
	resp, err := h.sessionSvc.LoadMedia(userID(c), c.Params("sessionId"))
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, resp)
}

// @Summary Play
// @Tags playback
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param sessionId path string true "Session ID"
// @Success 200 {object} shared.Response{data=dto.PlaybackStateResponse}
// @Router /api/v1/sessions/{sessionId}/playback/play [post]
func (h *PlaybackHandler) Play(c *fiber.Ctx) error {
	resp, err := h.sessionSvc.Play(userID(c), c.Params("sessionId"))
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, resp)
}

// @Summary Pause
// @Tags playback
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param sessionId path string true "Session ID"
// @Success 200 {object} shared.Response{data=dto.PlaybackStateResponse}
// @Router /api/v1/sessions/{sessionId}/playback/pause [post]
func (h *PlaybackHandler) Pause(c *fiber.Ctx) error {
	resp, err := h.sessionSvc.Pause(userID(c), c.Params("sessionId"))
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, resp)
}

// @Summary Seek
// @Description Seek to a position in seconds; out-of-range values are clamped
// @Tags playback
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param sessionId path string true "Session ID"
// @Param seekRequest body dto.SeekRequest true "Target position"
// @Success 200 {object} shared.Response{data=dto.PlaybackStateResponse}
// @Router /api/v1/sessions/{sessionId}/playback/seek [post]
func (h *PlaybackHandler) Seek(c *fiber.Ctx) error {
	var req dto.SeekRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.sessionSvc.Seek(userID(c), c.Params("sessionId"), req.Position)
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, resp)
}

// @Summary Set volume
// @Tags playback
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param sessionId path string true "Session ID"
// @Param volumeRequest body dto.VolumeRequest true "Volume in [0, 1]"
// @Success 200 {object} shared.Response{data=dto.PlaybackStateResponse}
// @Router /api/v1/sessions/{sessionId}/playback/volume [post]
func (h *PlaybackHandler) SetVolume(c *fiber.Ctx) error {
	var req dto.VolumeRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.sessionSvc.SetVolume(userID(c), c.Params("sessionId"), req.Volume)
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, resp)
}

// @Summary Toggle mute
// @Tags playback
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param sessionId path string true "Session ID"
// @Success 200 {object} shared.Response{data=dto.PlaybackStateResponse}
// @Router /api/v1/sessions/{sessionId}/playback/mute [post]
func (h *PlaybackHandler) ToggleMute(c *fiber.Ctx) error {
	resp, err := h.sessionSvc.ToggleMute(userID(c), c.Params("sessionId"))
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, resp)
}

// @Summary Set playback speed
// @Tags playback
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param sessionId path string true "Session ID"
// @Param speedRequest body dto.SpeedRequest true "Playback rate"
// @Success 200 {object} shared.Response{data=dto.PlaybackStateResponse}
// @Router /api/v1/sessions/{sessionId}/playback/speed [post]
func (h *PlaybackHandler) SetSpeed(c *fiber.Ctx) error {
	var req dto.SpeedRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.sessionSvc.SetSpeed(userID(c), c.Params("sessionId"), req.Rate)
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, resp)
}

// @Summary Toggle loop
// @Tags playback
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param sessionId path string true "Session ID"
// @Success 200 {object} shared.Response{data=dto.PlaybackStateResponse}
// @Router /api/v1/sessions/{sessionId}/playback/loop [post]
func (h *PlaybackHandler) ToggleLoop(c *fiber.Ctx) error {
	resp, err := h.sessionSvc.ToggleLoop(userID(c), c.Params("sessionId"))
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, resp)
}

// @Summary Skip chapter
// @Description Move to the previous or next chapter start, clamped at the edges
// @Tags playback
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param sessionId path string true "Session ID"
// @Param chapterRequest body dto.ChapterSkipRequest true "Direction: -1 or 1"
// @Success 200 {object} shared.Response{data=dto.PlaybackStateResponse}
// @Router /api/v1/sessions/{sessionId}/playback/chapter [post]
func (h *PlaybackHandler) SkipChapter(c *fiber.Ctx) error {
	var req dto.ChapterSkipRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.sessionSvc.SkipChapter(userID(c), c.Params("sessionId"), req.Direction)
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, resp)
}

// @Summary Playback heartbeat
// @Description Advance the playback clock by the reported elapsed wall seconds
// @Tags playback
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param sessionId path string true "Session ID"
// @Param heartbeatRequest body dto.HeartbeatRequest true "Elapsed seconds since last heartbeat"
// @Success 200 {object} shared.Response{data=dto.PlaybackStateResponse}
// @Router /api/v1/sessions/{sessionId}/playback/heartbeat [post]
func (h *PlaybackHandler) Heartbeat(c *fiber.Ctx) error {
	var req dto.HeartbeatRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.sessionSvc.Heartbeat(userID(c), c.Params("sessionId"), req.Elapsed)
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, resp)
}
