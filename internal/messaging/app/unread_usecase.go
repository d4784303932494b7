package app

import (
	"context"
	"errors"
	"time"

	"qsite/internal/messaging/repository"
	errprocess "qsite/pkg/err"
)

// UnreadUseCase 未讀對話計算與標記已讀
type UnreadUseCase struct {
	convRepo repository.ConversationRepository
	now      func() time.Time
}

// NewUnreadUseCase init unread use case
func NewUnreadUseCase(r repository.ConversationRepository) *UnreadUseCase {
	return &UnreadUseCase{
		convRepo: r,
		now:      time.Now,
	}
}

// CountUnread 未讀對話數
func (uc *UnreadUseCase) CountUnread(ctx context.Context, userID string) (int, error) {
	ids, err := uc.ListUnread(ctx, userID)
	if err != nil {
		return 0, err
	}
	return len(ids), nil
}

// ListUnread 未讀對話 id
func (uc *UnreadUseCase) ListUnread(ctx context.Context, userID string) ([]string, error) {
	ids := []string{}
	if userID == "" {
		return ids, nil
	}

	views, err := uc.convRepo.ListViews(ctx, userID)
	if err != nil {
		return ids, errprocess.Upstream(err)
	}
	for _, v := range views {
		if v.IsUnreadFor(userID) {
			ids = append(ids, v.ConversationID)
		}
	}
	return ids, nil
}

// MarkRead 將對話標記為已讀，回傳寫入的已讀時間
func (uc *UnreadUseCase) MarkRead(ctx context.Context, conversationID, userID string) (time.Time, error) {
	if conversationID == "" {
		return time.Time{}, errprocess.Validation("error.conversation_id_required")
	}
	if userID == "" {
		return time.Time{}, errprocess.New(errprocess.KindAuthentication, "error.unauthenticated", nil)
	}

	conv, err := uc.convRepo.FindByID(ctx, conversationID)
	if err != nil {
		// 不存在與非成員回同樣的錯誤
		if errors.Is(err, repository.ErrNotFound) {
			return time.Time{}, errprocess.New(errprocess.KindAuthorization, "error.not_participant", err)
		}
		return time.Time{}, errprocess.Upstream(err)
	}
	if !conv.HasParticipant(userID) {
		return time.Time{}, errprocess.New(errprocess.KindAuthorization, "error.not_participant", nil)
	}

	// postgres timestamptz 只到微秒，回傳值要跟存進去的一致
	readAt := uc.now().UTC().Truncate(time.Microsecond)
	if err := uc.convRepo.UpsertReadState(ctx, userID, conversationID, readAt); err != nil {
		return time.Time{}, errprocess.Upstream(err)
	}
	return readAt, nil
}
