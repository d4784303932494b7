package handlers

import (
	"context"
	"time"

	"qsite/internal/member/domain"
	"qsite/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
)

// MemberService member use case
type MemberService interface {
	Login(ctx context.Context, email, password string) (string, *domain.Member, error)
	Logout(ctx context.Context, memberID string) error
}

// MemberHandler 登入 / 登出
type MemberHandler struct {
	member     MemberService
	sessionTTL time.Duration
	secure     bool
}

// NewMemberHandler create MemberHandler; secure 控制 cookie Secure flag
func NewMemberHandler(member MemberService, sessionTTL time.Duration, secure bool) *MemberHandler {
	return &MemberHandler{member: member, sessionTTL: sessionTTL, secure: secure}
}

// LoginRequest login body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse login result
type LoginResponse struct {
	Token    string `json:"token"`
	MemberID string `json:"memberId"`
	Role     string `json:"role"`
}

// MeResponse authenticated identity
type MeResponse struct {
	MemberID string `json:"memberId"`
	Role     string `json:"role"`
}

// Login 登入
// @Summary Login
// @Description Sets the auth_token cookie and returns the token for bearer use
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /auth/login [post]
func (h *MemberHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	token, member, err := h.member.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     middlewares.CookieToken,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.sessionTTL),
		HTTPOnly: true,
		Secure:   h.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.JSON(LoginResponse{Token: token, MemberID: member.ID, Role: member.Role})
}

// Logout 登出
// @Summary Logout
// @Tags Auth
// @Produce json
// @Success 200 {object} SuccessResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/logout [post]
func (h *MemberHandler) Logout(c *fiber.Ctx) error {
	memberID, err := requireMember(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.member.Logout(c.UserContext(), memberID); err != nil {
		return respondError(c, err)
	}
	c.ClearCookie(middlewares.CookieToken)
	return c.JSON(SuccessResponse{Success: true})
}

// Me 目前登入者
// @Summary Current identity
// @Tags Auth
// @Produce json
// @Success 200 {object} MeResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/me [get]
func (h *MemberHandler) Me(c *fiber.Ctx) error {
	memberID, err := requireMember(c)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(MeResponse{MemberID: memberID, Role: middlewares.Role(c)})
}
