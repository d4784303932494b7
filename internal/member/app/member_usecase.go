package app

import (
	"context"
	"errors"
	"strings"
	"time"

	admindomain "qsite/internal/admin/domain"
	"qsite/internal/member/domain"
	"qsite/internal/member/repository"
	"qsite/pkg/database"
	"qsite/pkg/encrypt"
	errprocess "qsite/pkg/err"
	"qsite/pkg/logger"
	"qsite/pkg/token"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LoginGate check_login_eligibility
type LoginGate interface {
	CheckLoginEligibility(ctx context.Context, userID string) (*admindomain.Eligibility, error)
}

// MemberUseCase 這裡封裝了對外提供的應用服務
type MemberUseCase interface {
	CreateMember(ctx context.Context, in CreateMemberInput) (*domain.Member, error)
	FindMember(ctx context.Context, param *domain.MemberQuery) (*domain.Member, error)
	Login(ctx context.Context, email, password string) (string, *domain.Member, error)
	Logout(ctx context.Context, memberID string) error
	RevokeSession(ctx context.Context, memberID string) error
	IsSessionActive(ctx context.Context, memberID string) (bool, error)
}

// CreateMemberInput create member params
type CreateMemberInput struct {
	Email       string
	Password    string
	DisplayName string
	Role        string
	Phone       string
}

type memberUseCase struct {
	memberRepo repository.MemberRepository
	gate       LoginGate
	sessionTTL time.Duration
	redisRepo  database.RedisRepository[domain.MemberSession]
}

// NewMemberUseCase 建立一個新的 MemberUseCase
func NewMemberUseCase(memberRepo repository.MemberRepository,
	gate LoginGate,
	sessionTTL time.Duration,
	redisRepo database.RedisRepository[domain.MemberSession],
) MemberUseCase {
	return &memberUseCase{
		memberRepo: memberRepo,
		gate:       gate,
		sessionTTL: sessionTTL,
		redisRepo:  redisRepo,
	}
}

// CreateMember 建立帳號，密碼需通過強度檢查
func (m *memberUseCase) CreateMember(ctx context.Context, in CreateMemberInput) (*domain.Member, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		return nil, errprocess.Validation("error.email_password_required")
	}
	if _, err := m.memberRepo.FindByMember(ctx, &domain.MemberQuery{Email: &email}); err == nil {
		return nil, errors.New("email already exists")
	}

	role := in.Role
	switch token.RoleType(role) {
	case token.RoleAdmin, token.RoleModerator, token.RoleUser:
	case "":
		role = string(token.RoleUser)
	default:
		return nil, errors.New("unknown role: " + role)
	}

	pw, err := encrypt.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	member := &domain.Member{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: pw,
		DisplayName:  in.DisplayName,
		Role:         role,
	}
	if phone := strings.TrimSpace(in.Phone); phone != "" {
		member.Phone = &phone
	}

	if err := m.memberRepo.CreateUser(ctx, member); err != nil {
		return nil, err
	}
	logger.Log.Info("member created", zap.String("member_id", member.ID), zap.String("role", role))
	return member, nil
}

// FindMember 尋找使用者
func (m *memberUseCase) FindMember(ctx context.Context, param *domain.MemberQuery) (*domain.Member, error) {
	return m.memberRepo.FindByMember(ctx, param)
}

// Login 驗證密碼與登入資格，建立 session
func (m *memberUseCase) Login(ctx context.Context, email, password string) (string, *domain.Member, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", nil, errprocess.Validation("error.email_password_required")
	}

	member, err := m.memberRepo.FindByMember(ctx, &domain.MemberQuery{Email: &email})
	if err != nil {
		if errors.Is(err, repository.ErrMemberNotFound) {
			return "", nil, errprocess.New(errprocess.KindAuthentication, "error.invalid_credentials", err)
		}
		return "", nil, errprocess.Upstream(err)
	}

	if err = member.IsPasswordMatch(password); err != nil {
		logger.Log.Debug("password can't match", zap.String("member_id", member.ID))
		return "", nil, errprocess.New(errprocess.KindAuthentication, "error.invalid_credentials", err)
	}

	if m.gate != nil {
		el, err := m.gate.CheckLoginEligibility(ctx, member.ID)
		if err != nil {
			return "", nil, errprocess.Upstream(err)
		}
		if !el.Allowed {
			return "", nil, errprocess.New(errprocess.KindAuthorization, "error.login_not_allowed", nil).WithArgs(el.Reason)
		}
	}

	jwtToken, err := token.GenerateJWTWrapper(member.ID, member.Role)
	if err != nil {
		return "", nil, errprocess.Internal(err)
	}

	now := time.Now()
	session := domain.MemberSession{
		Token:        jwtToken,
		MemberID:     member.ID,
		Role:         member.Role,
		CreatedAt:    now,
		LastActivity: now,
		ExpiredAt:    now.Add(m.sessionTTL),
	}
	if err := m.redisRepo.Set(ctx, member.ID, session, m.sessionTTL); err != nil {
		return "", nil, errprocess.Upstream(err)
	}

	return jwtToken, member, nil
}

// Logout 清除 session
func (m *memberUseCase) Logout(ctx context.Context, memberID string) error {
	logger.Log.Debug("logout", zap.String("member_id", memberID))
	return m.RevokeSession(ctx, memberID)
}

// RevokeSession 強制登出
func (m *memberUseCase) RevokeSession(ctx context.Context, memberID string) error {
	if err := m.redisRepo.Del(ctx, memberID); err != nil {
		return errprocess.Upstream(err)
	}
	return nil
}

// IsSessionActive session 存在且未過期
func (m *memberUseCase) IsSessionActive(ctx context.Context, memberID string) (bool, error) {
	session, err := m.redisRepo.Get(ctx, memberID)
	if err != nil {
		if errors.Is(err, database.ErrRedisNil) {
			return false, nil
		}
		return false, err
	}
	return !session.IsExpired(), nil
}
