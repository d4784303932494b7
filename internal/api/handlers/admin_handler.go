package handlers

import (
	"context"

	"qsite/internal/admin/domain"

	"github.com/gofiber/fiber/v2"
)

// AdminService admin use case
type AdminService interface {
	Permissions(ctx context.Context, userID string) (domain.Payload, error)
	ApplyPenalty(ctx context.Context, adminID, userID string, in domain.PenaltyInput) (domain.Payload, error)
	RevokeRole(ctx context.Context, adminID, userID, role string) (domain.Payload, error)
	Suspend(ctx context.Context, adminID, userID string, in domain.SuspendInput) (domain.Payload, error)
	Dashboard(ctx context.Context, adminID string) (domain.Payload, error)
	CheckMilestones(ctx context.Context, userID string) (domain.Payload, error)
}

// AdminHandler 預存程序代理
type AdminHandler struct {
	admin AdminService
}

// NewAdminHandler create AdminHandler
func NewAdminHandler(admin AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

// sendPayload 預存程序回傳的 JSON 原樣送出
func sendPayload(c *fiber.Ctx, payload domain.Payload) error {
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if len(payload) == 0 {
		return c.SendString("null")
	}
	return c.Send(payload)
}

// ApplyPenalty 懲罰使用者
// @Summary Apply a penalty
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "User id"
// @Param request body domain.PenaltyInput true "Penalty"
// @Success 200 {object} object
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /admin/users/{id}/penalties [post]
func (h *AdminHandler) ApplyPenalty(c *fiber.Ctx) error {
	adminID, err := requireMember(c)
	if err != nil {
		return respondError(c, err)
	}
	var req domain.PenaltyInput
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}
	payload, err := h.admin.ApplyPenalty(c.UserContext(), adminID, c.Params("id"), req)
	if err != nil {
		return respondError(c, err)
	}
	return sendPayload(c, payload)
}

// RevokeRole 移除角色
// @Summary Revoke a role
// @Tags Admin
// @Produce json
// @Param id path string true "User id"
// @Param role path string true "Role"
// @Success 200 {object} object
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /admin/users/{id}/roles/{role} [delete]
func (h *AdminHandler) RevokeRole(c *fiber.Ctx) error {
	adminID, err := requireMember(c)
	if err != nil {
		return respondError(c, err)
	}
	payload, err := h.admin.RevokeRole(c.UserContext(), adminID, c.Params("id"), c.Params("role"))
	if err != nil {
		return respondError(c, err)
	}
	return sendPayload(c, payload)
}

// Suspend 停權
// @Summary Suspend a user
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "User id"
// @Param request body domain.SuspendInput true "Suspension"
// @Success 200 {object} object
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /admin/users/{id}/suspend [post]
func (h *AdminHandler) Suspend(c *fiber.Ctx) error {
	adminID, err := requireMember(c)
	if err != nil {
		return respondError(c, err)
	}
	var req domain.SuspendInput
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}
	payload, err := h.admin.Suspend(c.UserContext(), adminID, c.Params("id"), req)
	if err != nil {
		return respondError(c, err)
	}
	return sendPayload(c, payload)
}

// Dashboard 後台統計
// @Summary Admin dashboard statistics
// @Tags Admin
// @Produce json
// @Success 200 {object} object
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /admin/dashboard [get]
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	adminID, err := requireMember(c)
	if err != nil {
		return respondError(c, err)
	}
	payload, err := h.admin.Dashboard(c.UserContext(), adminID)
	if err != nil {
		return respondError(c, err)
	}
	return sendPayload(c, payload)
}

// MyPermissions caller 權限
// @Summary Caller permissions
// @Tags Admin
// @Produce json
// @Success 200 {object} domain.Permissions
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /users/me/permissions [get]
func (h *AdminHandler) MyPermissions(c *fiber.Ctx) error {
	memberID, err := requireMember(c)
	if err != nil {
		return respondError(c, err)
	}
	payload, err := h.admin.Permissions(c.UserContext(), memberID)
	if err != nil {
		return respondError(c, err)
	}
	return sendPayload(c, payload)
}

// CheckMilestones 檢查里程碑
// @Summary Check and award the caller's milestones
// @Tags Admin
// @Produce json
// @Success 200 {object} object
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /users/me/milestones/check [post]
func (h *AdminHandler) CheckMilestones(c *fiber.Ctx) error {
	memberID, err := requireMember(c)
	if err != nil {
		return respondError(c, err)
	}
	payload, err := h.admin.CheckMilestones(c.UserContext(), memberID)
	if err != nil {
		return respondError(c, err)
	}
	return sendPayload(c, payload)
}
