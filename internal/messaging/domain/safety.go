package domain

import "time"

// ReportStatus 檢舉處理狀態
type ReportStatus string

const (
	// ReportPending 新送出的檢舉
	ReportPending ReportStatus = "pending"
	// ReportReviewed moderator 已處理
	ReportReviewed ReportStatus = "reviewed"
)

// Block blocker 封鎖 blocked
type Block struct {
	BlockerID string    `gorm:"type:uuid;primaryKey" json:"blockerId"`
	BlockedID string    `gorm:"type:uuid;primaryKey" json:"blockedId"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"createdAt"`
}

// TableName gorm table name
func (Block) TableName() string { return "user_blocks" }

// Report 使用者檢舉
type Report struct {
	ID             string       `gorm:"type:uuid;primaryKey" json:"id"`
	ReporterID     string       `gorm:"type:uuid;not null;index" json:"reporter_id"`
	ReportedUserID string       `gorm:"type:uuid;not null;index" json:"reported_user_id"`
	ConversationID *string      `gorm:"type:uuid" json:"conversation_id,omitempty"`
	MessageID      *string      `gorm:"type:uuid" json:"message_id,omitempty"`
	Reason         string       `gorm:"not null" json:"reason"`
	Details        string       `gorm:"type:text" json:"details,omitempty"`
	Status         ReportStatus `gorm:"not null;default:'pending'" json:"status"`
	CreatedAt      time.Time    `gorm:"not null;default:now()" json:"created_at"`
}

// TableName gorm table name
func (Report) TableName() string { return "message_reports" }

// ReportInput submit report request
type ReportInput struct {
	ReporterID     string
	ReportedUserID string
	ConversationID *string
	MessageID      *string
	Reason         string
	Details        string
}
