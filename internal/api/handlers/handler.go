package handlers

import (
	"errors"

	errprocess "qsite/pkg/err"
	"qsite/pkg/i18n"
	"qsite/pkg/logger"
	"qsite/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ErrorResponse error body
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse {success: true}
type SuccessResponse struct {
	Success bool `json:"success"`
}

// respondError errprocess.Kind → http status，訊息依語系翻譯
func respondError(c *fiber.Ctx, err error) error {
	e := errprocess.As(err)
	status := e.Kind.Status()

	fields := []zap.Field{
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.String("kind", string(e.Kind)),
		zap.Error(err),
	}
	if status >= fiber.StatusInternalServerError {
		logger.Log.Error("request failed", fields...)
	} else {
		logger.Log.Debug("request rejected", fields...)
	}

	return c.Status(status).JSON(ErrorResponse{Error: i18n.T(middlewares.Lang(c), e.Key, e.Args...)})
}

// ErrorHandler fiber 未處理的錯誤 / panic 一律轉成 localized JSON
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		switch fe.Code {
		case fiber.StatusNotFound:
			return c.Status(fe.Code).JSON(ErrorResponse{Error: i18n.T(middlewares.Lang(c), "error.not_found")})
		case fiber.StatusBadRequest, fiber.StatusUnprocessableEntity:
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: i18n.T(middlewares.Lang(c), "error.invalid_body")})
		}
	}
	return respondError(c, errprocess.Internal(err))
}

// requireMember 取出已驗證的 member id
func requireMember(c *fiber.Ctx) (string, error) {
	id, ok := middlewares.MemberID(c)
	if !ok {
		return "", errprocess.New(errprocess.KindAuthentication, "error.unauthenticated", nil)
	}
	return id, nil
}

// parseBody 空 body 視為空物件
func parseBody(c *fiber.Ctx, out interface{}) error {
	if len(c.Body()) == 0 {
		return nil
	}
	if err := c.BodyParser(out); err != nil {
		return errprocess.New(errprocess.KindValidation, "error.invalid_body", err)
	}
	return nil
}
