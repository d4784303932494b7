package middlewares

import (
	"context"

	"qsite/pkg/i18n"
	"qsite/pkg/logger"
	t_token "qsite/pkg/token"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

const (
	//QueryToken token in query name (websocket 握手時用)
	QueryToken = "auth"

	//CookieToken token in cookie name
	CookieToken = "auth_token"

	//TokenMemberID get member form token, set c.locals name
	TokenMemberID = "MemberID"
	//TokenRole get role form token, set c.locals name
	TokenRole = "role"
	//LocalLang resolved language, set c.locals name
	LocalLang = "lang"
)

// SessionChecker 檢查 member 的 session 是否仍有效
type SessionChecker interface {
	IsSessionActive(ctx context.Context, memberID string) (bool, error)
}

// LanguageMiddleware 解析 ?lang= / cookie / Accept-Language
func LanguageMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(LocalLang, i18n.ResolveTag(
			c.Query(i18n.LangParam),
			c.Cookies(i18n.LangCookieName),
			c.Get(fiber.HeaderAcceptLanguage),
		))
		return c.Next()
	}
}

// Lang get request language
func Lang(c *fiber.Ctx) language.Tag {
	if tag, ok := c.Locals(LocalLang).(language.Tag); ok {
		return tag
	}
	return i18n.Default()
}

// MemberID get authenticated member id
func MemberID(c *fiber.Ctx) (string, bool) {
	id, ok := c.Locals(TokenMemberID).(string)
	return id, ok && id != ""
}

// Role get authenticated member role
func Role(c *fiber.Ctx) string {
	role, _ := c.Locals(TokenRole).(string)
	return role
}

// JWTMiddleware validates JWT from Authorization header / cookie / query
func JWTMiddleware(sessions SessionChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !authenticate(c, sessions) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": i18n.T(Lang(c), "error.unauthenticated"),
			})
		}
		return c.Next()
	}
}

// OptionalJWTMiddleware 有合法 token 就設定 locals，沒有也放行
func OptionalJWTMiddleware(sessions SessionChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authenticate(c, sessions)
		return c.Next()
	}
}

func authenticate(c *fiber.Ctx, sessions SessionChecker) bool {
	tokenStr := credential(c)
	if tokenStr == "" {
		return false
	}

	claims, err := t_token.ParseJWTWrapper(tokenStr)
	if err != nil {
		logger.Log.Debug("invalid token", zap.Error(err))
		return false
	}

	if sessions != nil {
		active, err := sessions.IsSessionActive(c.UserContext(), claims.MemberID)
		if err != nil {
			logger.Log.Error("session check failed", zap.String("member_id", claims.MemberID), zap.Error(err))
			return false
		}
		if !active {
			return false
		}
	}

	c.Locals(TokenMemberID, claims.MemberID)
	c.Locals(TokenRole, claims.Role)
	return true
}

func credential(c *fiber.Ctx) string {
	if tokenStr, ok := t_token.ExtractBearer(c.Get(fiber.HeaderAuthorization)); ok {
		return tokenStr
	}
	if tokenStr := c.Cookies(CookieToken); tokenStr != "" {
		return tokenStr
	}
	return c.Query(QueryToken)
}
