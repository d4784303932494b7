package domain

import "time"

// Status 使用者發的狀態貼文
type Status struct {
	ID              string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          string    `gorm:"type:uuid;not null;index" json:"userId"`
	Content         string    `gorm:"type:text;not null" json:"content"`
	StarsCount      int       `gorm:"not null;default:0" json:"starsCount"`
	SharedToProfile bool      `gorm:"not null;default:false" json:"sharedToProfile"`
	IsLegendary     bool      `gorm:"not null;default:false" json:"isLegendary"`
	CreatedAt       time.Time `gorm:"not null;default:now()" json:"createdAt"`
}

// TableName gorm table name
func (Status) TableName() string { return "statuses" }

// Star user 對 status 按星
type Star struct {
	ID        string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	StatusID  string    `gorm:"type:uuid;not null;uniqueIndex:idx_status_stars_status_user,priority:1" json:"statusId"`
	UserID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_status_stars_status_user,priority:2" json:"userId"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"createdAt"`
}

// TableName gorm table name
func (Star) TableName() string { return "status_stars" }

// StarResult toggle star 結果
type StarResult struct {
	Starred    bool `json:"starred"`
	StarsCount int  `json:"starsCount"`
}

// MaxStars owner 所有 status 中最高的星數
func MaxStars(owned []Status) int {
	max := 0
	for _, s := range owned {
		if s.StarsCount > max {
			max = s.StarsCount
		}
	}
	return max
}

// ShouldPromote 取消分享時，星數不低於 owner 最高星數 (且最高 > 0) 即升為 legendary
func ShouldPromote(target Status, owned []Status) bool {
	max := MaxStars(owned)
	return max > 0 && target.StarsCount >= max
}
