package repository

import (
	"context"
	"errors"
	"time"

	"qsite/internal/messaging/domain"
	"qsite/pkg/database"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound record not found
var ErrNotFound = errors.New("record not found")

// ConversationRepository definition conversation / read-state access
type ConversationRepository interface {
	FindByID(ctx context.Context, conversationID string) (*domain.Conversation, error)
	ListViews(ctx context.Context, userID string) ([]domain.ConversationView, error)
	UpsertReadState(ctx context.Context, userID, conversationID string, readAt time.Time) error
}

type conversationRepository struct {
	db *gorm.DB
}

// NewConversationRepository create a ConversationRepository
func NewConversationRepository(db *gorm.DB) ConversationRepository {
	return &conversationRepository{db: db}
}

// 一次取出 caller 參與的所有對話: 最新訊息 (LATERAL) + 自己的已讀時間
const listViewsSQL = `
SELECT c.id            AS conversation_id,
       lm.sender_id    AS last_sender_id,
       lm.created_at   AS last_message_at,
       rs.last_read_at AS last_read_at
FROM conversations c
LEFT JOIN LATERAL (
    SELECT m.sender_id, m.created_at
    FROM messages m
    WHERE m.conversation_id = c.id
    ORDER BY m.created_at DESC
    LIMIT 1
) lm ON TRUE
LEFT JOIN conversation_read_states rs
       ON rs.conversation_id = c.id AND rs.user_id = @user
WHERE c.participant1_id = @user OR c.participant2_id = @user`

func (r *conversationRepository) FindByID(ctx context.Context, conversationID string) (*domain.Conversation, error) {
	var conv domain.Conversation
	err := r.db.WithContext(ctx).Where("id = ?", conversationID).Take(&conv).Error
	if err != nil {
		// 不是 uuid 的 id 不可能對應到任何對話
		if errors.Is(err, gorm.ErrRecordNotFound) || database.IsInvalidInput(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &conv, nil
}

func (r *conversationRepository) ListViews(ctx context.Context, userID string) ([]domain.ConversationView, error) {
	var views []domain.ConversationView
	err := r.db.WithContext(ctx).
		Raw(listViewsSQL, map[string]interface{}{"user": userID}).
		Scan(&views).Error
	return views, err
}

func (r *conversationRepository) UpsertReadState(ctx context.Context, userID, conversationID string, readAt time.Time) error {
	state := domain.ReadState{UserID: userID, ConversationID: conversationID, LastReadAt: readAt}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "conversation_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"last_read_at"}),
		}).
		Create(&state).Error
}
