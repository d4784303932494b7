package domain

import (
	"time"

	"qsite/pkg/encrypt"
)

// Member 用來表示使用者
type Member struct {
	ID           string    `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string    `gorm:"not null;uniqueIndex" json:"email"`
	Phone        *string   `json:"phone,omitempty"`
	PasswordHash string    `gorm:"not null" json:"-"`
	DisplayName  string    `gorm:"not null;default:''" json:"displayName"`
	Role         string    `gorm:"not null;default:'user'" json:"role"`
	CreatedAt    time.Time `gorm:"not null;default:now()" json:"createdAt"`
}

// TableName gorm table name
func (Member) TableName() string { return "members" }

// MemberSession 用來表示使用者的 Session
type MemberSession struct {
	Token        string    `json:"Token"`
	MemberID     string    `json:"MemberID"`
	Role         string    `json:"Role"`
	CreatedAt    time.Time `json:"CreatedAt"`
	LastActivity time.Time `json:"LastActivity"`
	ExpiredAt    time.Time `json:"ExpiredAt"`
}

// IsPasswordMatch 密碼驗證
func (m *Member) IsPasswordMatch(inputPwd string) error {
	return encrypt.CheckPassword(m.PasswordHash, inputPwd)
}

// IsExpired 檢查 Session 是否已過期
func (s *MemberSession) IsExpired() bool {
	return time.Now().After(s.ExpiredAt)
}

// MemberQuery join conditions are used to query members
type MemberQuery struct {
	ID    *string
	Email *string
}
