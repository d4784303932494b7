package handlers

import (
	"context"

	"qsite/internal/status/domain"

	"github.com/gofiber/fiber/v2"
)

// StatusService status use case
type StatusService interface {
	ToggleStar(ctx context.Context, statusID, userID string) (*domain.StarResult, error)
	SetShare(ctx context.Context, statusID, userID string, share bool) (bool, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Status, error)
}

// StatusHandler 按星、分享、個人頁 status
type StatusHandler struct {
	status StatusService
}

// NewStatusHandler create StatusHandler
func NewStatusHandler(status StatusService) *StatusHandler {
	return &StatusHandler{status: status}
}

// ShareRequest body; share 未給或不是 false 都視為 true
type ShareRequest struct {
	Share interface{} `json:"share" swaggertype:"boolean"`
}

// ShareResponse {success, sharedToProfile}
type ShareResponse struct {
	Success         bool `json:"success"`
	SharedToProfile bool `json:"sharedToProfile"`
}

// StatusesResponse {statuses}
type StatusesResponse struct {
	Statuses []domain.Status `json:"statuses"`
}

// ToggleStar 按星 / 取消
// @Summary Toggle star on a status
// @Tags Status
// @Produce json
// @Param id path string true "Status id"
// @Success 200 {object} domain.StarResult
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /status/{id}/star [post]
func (h *StatusHandler) ToggleStar(c *fiber.Ctx) error {
	memberID, err := requireMember(c)
	if err != nil {
		return respondError(c, err)
	}
	result, err := h.status.ToggleStar(c.UserContext(), c.Params("id"), memberID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

// SetShare 分享到個人頁 / 取消分享
// @Summary Share or unshare a status on the profile
// @Tags Status
// @Accept json
// @Produce json
// @Param id path string true "Status id"
// @Param request body ShareRequest false "Share flag, defaults to true"
// @Success 200 {object} ShareResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /status/{id}/share [patch]
func (h *StatusHandler) SetShare(c *fiber.Ctx) error {
	memberID, err := requireMember(c)
	if err != nil {
		return respondError(c, err)
	}
	var req ShareRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}
	v, isBool := req.Share.(bool)
	share := !(isBool && !v)

	shared, err := h.status.SetShare(c.UserContext(), c.Params("id"), memberID, share)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(ShareResponse{Success: true, SharedToProfile: shared})
}

// ListByUser 個人頁 status
// @Summary List a user's statuses, shared first
// @Tags Status
// @Produce json
// @Param id path string true "User id"
// @Success 200 {object} StatusesResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /users/{id}/statuses [get]
func (h *StatusHandler) ListByUser(c *fiber.Ctx) error {
	statuses, err := h.status.ListByUser(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(StatusesResponse{Statuses: statuses})
}
