package handlers

import (
	"context"
	"time"

	"qsite/internal/messaging/domain"
	"qsite/pkg/logger"
	"qsite/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// UnreadService unread use case
type UnreadService interface {
	CountUnread(ctx context.Context, userID string) (int, error)
	ListUnread(ctx context.Context, userID string) ([]string, error)
	MarkRead(ctx context.Context, conversationID, userID string) (time.Time, error)
}

// SafetyService block / report use case
type SafetyService interface {
	ListBlocks(ctx context.Context, userID string) ([]domain.Block, error)
	Block(ctx context.Context, userID, blockedID string) error
	Unblock(ctx context.Context, userID, blockedID string) error
	SubmitReport(ctx context.Context, in domain.ReportInput) (string, error)
}

// MessagingHandler 對話未讀、封鎖、檢舉
type MessagingHandler struct {
	unread UnreadService
	safety SafetyService
}

// NewMessagingHandler create MessagingHandler
func NewMessagingHandler(unread UnreadService, safety SafetyService) *MessagingHandler {
	return &MessagingHandler{unread: unread, safety: safety}
}

// UnreadCountResponse {count}
type UnreadCountResponse struct {
	Count int `json:"count"`
}

// UnreadListResponse unread conversation ids
type UnreadListResponse struct {
	ConversationIDs []string `json:"conversationIds"`
}

// BlockView one blocked user
type BlockView struct {
	BlockedID string    `json:"blockedId"`
	CreatedAt time.Time `json:"createdAt"`
}

// BlocksResponse {blocks}
type BlocksResponse struct {
	Blocks []BlockView `json:"blocks"`
}

// BlockRequest block body
type BlockRequest struct {
	UserID string `json:"userId"`
}

// ReportRequest report body
type ReportRequest struct {
	ReportedUserID string  `json:"reportedUserId"`
	ConversationID *string `json:"conversationId"`
	MessageID      *string `json:"messageId"`
	Reason         string  `json:"reason"`
	Details        string  `json:"details"`
}

// ReportResponse {success, reportId}
type ReportResponse struct {
	Success  bool   `json:"success"`
	ReportID string `json:"reportId"`
}

// UnreadCount 未讀對話數
// @Summary Count unread conversations
// @Description Anonymous callers and store failures both answer 0
// @Tags Messaging
// @Produce json
// @Success 200 {object} UnreadCountResponse
// @Router /unread-count [get]
func (h *MessagingHandler) UnreadCount(c *fiber.Ctx) error {
	memberID, ok := middlewares.MemberID(c)
	if !ok {
		return c.JSON(UnreadCountResponse{Count: 0})
	}

	count, err := h.unread.CountUnread(c.UserContext(), memberID)
	if err != nil {
		logger.Log.Error("count unread failed", zap.String("member_id", memberID), zap.Error(err))
		return c.JSON(UnreadCountResponse{Count: 0})
	}
	return c.JSON(UnreadCountResponse{Count: count})
}

// ListUnread 未讀對話 id
// @Summary List unread conversations
// @Tags Messaging
// @Produce json
// @Success 200 {object} UnreadListResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /conversations/unread [get]
func (h *MessagingHandler) ListUnread(c *fiber.Ctx) error {
	memberID, err := requireMember(c)
	if err != nil {
		return respondError(c, err)
	}
	ids, err := h.unread.ListUnread(c.UserContext(), memberID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(UnreadListResponse{ConversationIDs: ids})
}

// MarkRead 標記對話已讀
// @Summary Mark conversation read
// @Tags Messaging
// @Produce json
// @Param id path string true "Conversation id"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /conversations/{id}/read [post]
func (h *MessagingHandler) MarkRead(c *fiber.Ctx) error {
	memberID, err := requireMember(c)
	if err != nil {
		return respondError(c, err)
	}
	if _, err := h.unread.MarkRead(c.UserContext(), c.Params("id"), memberID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(SuccessResponse{Success: true})
}

// ListBlocks 封鎖名單
// @Summary List blocked users
// @Tags Messaging
// @Produce json
// @Success 200 {object} BlocksResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /blocks [get]
func (h *MessagingHandler) ListBlocks(c *fiber.Ctx) error {
	memberID, err := requireMember(c)
	if err != nil {
		return respondError(c, err)
	}
	blocks, err := h.safety.ListBlocks(c.UserContext(), memberID)
	if err != nil {
		return respondError(c, err)
	}

	resp := BlocksResponse{Blocks: make([]BlockView, 0, len(blocks))}
	for _, b := range blocks {
		resp.Blocks = append(resp.Blocks, BlockView{BlockedID: b.BlockedID, CreatedAt: b.CreatedAt})
	}
	return c.JSON(resp)
}

// BlockUser 封鎖使用者
// @Summary Block a user
// @Tags Messaging
// @Accept json
// @Produce json
// @Param request body BlockRequest true "User to block"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /blocks [post]
func (h *MessagingHandler) BlockUser(c *fiber.Ctx) error {
	memberID, err := requireMember(c)
	if err != nil {
		return respondError(c, err)
	}
	var req BlockRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}
	if err := h.safety.Block(c.UserContext(), memberID, req.UserID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(SuccessResponse{Success: true})
}

// UnblockUser 解除封鎖
// @Summary Unblock a user
// @Tags Messaging
// @Produce json
// @Param userId path string true "Blocked user id"
// @Success 200 {object} SuccessResponse
// @Failure 401 {object} ErrorResponse
// @Router /blocks/{userId} [delete]
func (h *MessagingHandler) UnblockUser(c *fiber.Ctx) error {
	memberID, err := requireMember(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.safety.Unblock(c.UserContext(), memberID, c.Params("userId")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(SuccessResponse{Success: true})
}

// SubmitReport 檢舉
// @Summary Report a user or message
// @Tags Messaging
// @Accept json
// @Produce json
// @Param request body ReportRequest true "Report"
// @Success 200 {object} ReportResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /reports [post]
func (h *MessagingHandler) SubmitReport(c *fiber.Ctx) error {
	memberID, err := requireMember(c)
	if err != nil {
		return respondError(c, err)
	}
	var req ReportRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	reportID, err := h.safety.SubmitReport(c.UserContext(), domain.ReportInput{
		ReporterID:     memberID,
		ReportedUserID: req.ReportedUserID,
		ConversationID: req.ConversationID,
		MessageID:      req.MessageID,
		Reason:         req.Reason,
		Details:        req.Details,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(ReportResponse{Success: true, ReportID: reportID})
}
