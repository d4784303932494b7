package app

import (
	"context"
	"encoding/json"
	"time"

	"qsite/internal/messaging/domain"
	errprocess "qsite/pkg/err"
	"qsite/pkg/i18n"
	"qsite/pkg/logger"
	"qsite/pkg/middlewares"

	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

// PingInterval server ping 週期
var PingInterval = time.Minute

// UnreadWebsocketHandler 未讀數的 request/response 通道
type UnreadWebsocketHandler struct {
	unreadUC *UnreadUseCase
}

// NewUnreadWebsocketHandler create UnreadWebsocketHandler
func NewUnreadWebsocketHandler(unreadUC *UnreadUseCase) *UnreadWebsocketHandler {
	return &UnreadWebsocketHandler{unreadUC: unreadUC}
}

// HandleConnection 是 WebSocket 連線的進入點
func (h *UnreadWebsocketHandler) HandleConnection(ctx context.Context, conn *websocket.Conn) {
	memberID, _ := conn.Locals(middlewares.TokenMemberID).(string)
	lang, ok := conn.Locals(middlewares.LocalLang).(language.Tag)
	if !ok {
		lang = i18n.Default()
	}
	logger.Log.Info("websocket connected", zap.String("member_id", memberID))

	ticker := time.NewTicker(PingInterval)
	ctxClose, cancel := context.WithCancel(ctx)

	defer func() {
		ticker.Stop()
		cancel()
		logger.Log.Info("websocket close", zap.String("member_id", memberID))
		conn.Close()
	}()

	//server發出ping之後client連線正常會回pong
	conn.SetPongHandler(func(appData string) error {
		logger.Log.Debug("received pong", zap.String("member_id", memberID))
		return nil
	})

	// 定期發送 Ping
	go func() {
		for {
			select {
			case <-ticker.C:
				if err := conn.WriteControl(websocket.PingMessage, []byte("ping"), time.Now().Add(5*time.Second)); err != nil {
					logger.Log.Warn("ping error", zap.String("member_id", memberID), zap.Error(err))
					return
				}
			case <-ctxClose.Done():
				return
			}
		}
	}()

	for {
		mt, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err,
				websocket.CloseNormalClosure,
				websocket.CloseGoingAway,
				websocket.CloseNoStatusReceived,
			) {
				logger.Log.Debug("connection closed", zap.String("member_id", memberID))
			} else {
				//直接斷線 1006
				logger.Log.Warn("websocket read error", zap.String("member_id", memberID), zap.Error(err))
			}
			return
		}
		if mt != websocket.TextMessage {
			h.send(conn, domain.WSResponse{Error: i18n.T(lang, "error.invalid_body")})
			continue
		}
		h.send(conn, h.Dispatch(ctxClose, lang, memberID, message))
	}
}

// Dispatch 處理一則 text message
func (h *UnreadWebsocketHandler) Dispatch(ctx context.Context, lang language.Tag, memberID string, msg []byte) domain.WSResponse {
	var req domain.WSRequest
	if err := json.Unmarshal(msg, &req); err != nil {
		return domain.WSResponse{Error: i18n.T(lang, "error.invalid_body")}
	}

	resp := domain.WSResponse{Action: req.Action, Payload: map[string]interface{}{}}
	switch domain.Action(req.Action) {
	case domain.GetUnread:
		ids, err := h.unreadUC.ListUnread(ctx, memberID)
		if err != nil {
			return failed(resp, lang, err)
		}
		resp.Success = true
		resp.Payload["count"] = len(ids)
		resp.Payload["conversation_ids"] = ids

	case domain.MarkRead:
		readAt, err := h.unreadUC.MarkRead(ctx, req.ConversationID, memberID)
		if err != nil {
			return failed(resp, lang, err)
		}
		resp.Success = true
		resp.Payload["conversation_id"] = req.ConversationID
		resp.Payload["last_read_at"] = readAt

	default:
		resp.Error = i18n.T(lang, "error.invalid_body")
	}
	return resp
}

func failed(resp domain.WSResponse, lang language.Tag, err error) domain.WSResponse {
	e := errprocess.As(err)
	if e.Kind == errprocess.KindUpstream || e.Kind == errprocess.KindInternal {
		logger.Log.Error("websocket action failed", zap.String("action", resp.Action), zap.Error(err))
	}
	resp.Success = false
	resp.Payload = nil
	resp.Error = i18n.T(lang, e.Key, e.Args...)
	return resp
}

func (h *UnreadWebsocketHandler) send(conn *websocket.Conn, resp domain.WSResponse) {
	if err := conn.WriteJSON(resp); err != nil {
		logger.Log.Warn("websocket write error", zap.Error(err))
	}
}
