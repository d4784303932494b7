package domain

import "time"

// Conversation 1對1 對話，participant 順序不固定
type Conversation struct {
	ID             string    `gorm:"type:uuid;primaryKey" json:"id"`
	Participant1ID string    `gorm:"type:uuid;not null;index" json:"participant1_id"`
	Participant2ID string    `gorm:"type:uuid;not null;index" json:"participant2_id"`
	CreatedAt      time.Time `gorm:"not null;default:now()" json:"created_at"`
}

// TableName gorm table name
func (Conversation) TableName() string { return "conversations" }

// HasParticipant caller 是否在任一 participant 欄位
func (c *Conversation) HasParticipant(userID string) bool {
	return userID != "" && (c.Participant1ID == userID || c.Participant2ID == userID)
}

// Message 對話中的訊息，本服務只讀
type Message struct {
	ID             string    `gorm:"type:uuid;primaryKey" json:"id"`
	ConversationID string    `gorm:"type:uuid;not null;index:idx_messages_conversation_created,priority:1" json:"conversation_id"`
	SenderID       string    `gorm:"type:uuid;not null" json:"sender_id"`
	Content        string    `gorm:"type:text;not null" json:"content"`
	CreatedAt      time.Time `gorm:"not null;default:now();index:idx_messages_conversation_created,priority:2" json:"created_at"`
}

// TableName gorm table name
func (Message) TableName() string { return "messages" }

// ReadState 使用者在某對話的已讀時間; 沒有這筆 = 從未讀過
type ReadState struct {
	UserID         string    `gorm:"type:uuid;primaryKey" json:"user_id"`
	ConversationID string    `gorm:"type:uuid;primaryKey" json:"conversation_id"`
	LastReadAt     time.Time `gorm:"not null" json:"last_read_at"`
}

// TableName gorm table name
func (ReadState) TableName() string { return "conversation_read_states" }

// ConversationView 計算未讀所需的對話快照
type ConversationView struct {
	ConversationID string
	LastSenderID   *string
	LastMessageAt  *time.Time
	LastReadAt     *time.Time
}

// IsUnreadFor 最新一則訊息不是自己送的，且晚於已讀時間(相等視為已讀)
func (v ConversationView) IsUnreadFor(userID string) bool {
	if v.LastMessageAt == nil || v.LastSenderID == nil {
		return false
	}
	if *v.LastSenderID == userID {
		return false
	}
	if v.LastReadAt == nil {
		return true
	}
	return v.LastMessageAt.After(*v.LastReadAt)
}
