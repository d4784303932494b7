package repository

import (
	"context"
	"errors"
	"strings"

	"qsite/internal/member/domain"

	"gorm.io/gorm"
)

// ErrMemberNotFound no member found with given criteria
var ErrMemberNotFound = errors.New("no member found with given criteria")

// MemberRepository definition get Member info
type MemberRepository interface {
	CreateUser(ctx context.Context, member *domain.Member) error
	FindByMember(ctx context.Context, memberQuery *domain.MemberQuery) (*domain.Member, error)
}

type memberRepository struct {
	db *gorm.DB
}

// NewMemberRepository create a MemberRepository
func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &memberRepository{db: db}
}

// Migrate create members table
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&domain.Member{})
}

func (r *memberRepository) CreateUser(ctx context.Context, member *domain.Member) error {
	return r.db.WithContext(ctx).Create(member).Error
}

func (r *memberRepository) FindByMember(ctx context.Context, memberQuery *domain.MemberQuery) (*domain.Member, error) {
	query := r.db.WithContext(ctx).Model(&domain.Member{})
	conditions := 0

	if memberQuery.Email != nil {
		query = query.Where("lower(email) = ?", strings.ToLower(*memberQuery.Email))
		conditions++
	}
	if memberQuery.ID != nil {
		query = query.Where("id = ?", *memberQuery.ID)
		conditions++
	}
	if conditions == 0 {
		return nil, ErrMemberNotFound
	}

	var member domain.Member
	if err := query.Take(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return &member, nil
}
