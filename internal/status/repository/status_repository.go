package repository

import (
	"context"
	"errors"

	"qsite/internal/status/domain"
	"qsite/pkg/database"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound status not found
var ErrNotFound = errors.New("status not found")

// StatusStore 交易內可用的操作
type StatusStore interface {
	LockByID(statusID string) (*domain.Status, error)
	LockByOwner(userID string) ([]domain.Status, error)
	DeleteStar(statusID, userID string) (bool, error)
	InsertStar(statusID, userID string) error
	RecountStars(statusID string) (int, error)
	ClearShared(userID string) error
	SetShared(statusID string, shared bool) error
	MarkLegendary(statusID string) error
}

// StatusRepository definition status access
type StatusRepository interface {
	Transaction(ctx context.Context, fn func(store StatusStore) error) error
	ListByUser(ctx context.Context, userID string) ([]domain.Status, error)
	Create(ctx context.Context, status *domain.Status) error
}

type statusRepository struct {
	db *gorm.DB
}

// NewStatusRepository create a StatusRepository
func NewStatusRepository(db *gorm.DB) StatusRepository {
	return &statusRepository{db: db}
}

func (r *statusRepository) Transaction(ctx context.Context, fn func(store StatusStore) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&statusStore{tx: tx})
	})
}

// ListByUser 分享中的排最前，其餘依時間新到舊
func (r *statusRepository) ListByUser(ctx context.Context, userID string) ([]domain.Status, error) {
	statuses := []domain.Status{}
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("shared_to_profile DESC").
		Order("created_at DESC").
		Find(&statuses).Error
	if database.IsInvalidInput(err) {
		return []domain.Status{}, nil
	}
	return statuses, err
}

func (r *statusRepository) Create(ctx context.Context, status *domain.Status) error {
	if status.ID == "" {
		status.ID = uuid.New().String()
	}
	return r.db.WithContext(ctx).Create(status).Error
}

type statusStore struct {
	tx *gorm.DB
}

// LockByID SELECT ... FOR UPDATE 單筆 status
// 之後的 statement 在拿到鎖之後才開始，count 子查詢會看到先提交的星
func (s *statusStore) LockByID(statusID string) (*domain.Status, error) {
	var status domain.Status
	err := s.tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", statusID).
		Take(&status).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) || database.IsInvalidInput(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &status, nil
}

// LockByOwner SELECT ... FOR UPDATE owner 所有 status
func (s *statusStore) LockByOwner(userID string) ([]domain.Status, error) {
	var statuses []domain.Status
	err := s.tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		Order("id").
		Find(&statuses).Error
	return statuses, err
}

// DeleteStar 回傳是否真的刪掉一筆
func (s *statusStore) DeleteStar(statusID, userID string) (bool, error) {
	res := s.tx.Where("status_id = ? AND user_id = ?", statusID, userID).Delete(&domain.Star{})
	return res.RowsAffected > 0, res.Error
}

// InsertStar 併發下已存在則忽略
func (s *statusStore) InsertStar(statusID, userID string) error {
	star := domain.Star{ID: uuid.New().String(), StatusID: statusID, UserID: userID}
	return s.tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "status_id"}, {Name: "user_id"}},
		DoNothing: true,
	}).Create(&star).Error
}

func (s *statusStore) RecountStars(statusID string) (int, error) {
	var count int
	err := s.tx.Raw(`
		UPDATE statuses
		SET stars_count = (SELECT count(*) FROM status_stars WHERE status_id = @id)
		WHERE id = @id
		RETURNING stars_count`, map[string]interface{}{"id": statusID}).
		Scan(&count).Error
	return count, err
}

func (s *statusStore) ClearShared(userID string) error {
	return s.tx.Model(&domain.Status{}).
		Where("user_id = ? AND shared_to_profile", userID).
		Update("shared_to_profile", false).Error
}

func (s *statusStore) SetShared(statusID string, shared bool) error {
	return s.tx.Model(&domain.Status{}).
		Where("id = ?", statusID).
		Update("shared_to_profile", shared).Error
}

func (s *statusStore) MarkLegendary(statusID string) error {
	return s.tx.Model(&domain.Status{}).
		Where("id = ?", statusID).
		Update("is_legendary", true).Error
}
