package app

import (
	"context"
	"errors"
	"testing"
	"time"

	admindomain "qsite/internal/admin/domain"
	"qsite/internal/member/domain"
	"qsite/internal/member/repository"
	"qsite/pkg/database"
	"qsite/pkg/encrypt"
	errprocess "qsite/pkg/err"
	"qsite/pkg/logger"
	"qsite/pkg/token"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockMemberRepo Mock MemberRepo
type MockMemberRepo struct {
	mock.Mock
}

func (m *MockMemberRepo) CreateUser(ctx context.Context, member *domain.Member) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockMemberRepo) FindByMember(ctx context.Context, memberQuery *domain.MemberQuery) (*domain.Member, error) {
	args := m.Called(ctx, memberQuery)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Member), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockLoginGate Mock LoginGate
type MockLoginGate struct {
	mock.Mock
}

func (m *MockLoginGate) CheckLoginEligibility(ctx context.Context, userID string) (*admindomain.Eligibility, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) != nil {
		return args.Get(0).(*admindomain.Eligibility), args.Error(1)
	}
	return nil, args.Error(1)
}

func newSessionRepo(t *testing.T) (database.RedisRepository[domain.MemberSession], *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return database.NewRedisRepository[domain.MemberSession](client, "session:"), mr
}

func newMember(t *testing.T) *domain.Member {
	hash, err := encrypt.HashPassword("!Password123")
	require.NoError(t, err)
	return &domain.Member{ID: "m-1", Email: "a@qsite.io", PasswordHash: hash, Role: "admin"}
}

func TestMemberUseCase_Login(t *testing.T) {
	logger.SetNewNop()
	ctx := context.Background()
	member := newMember(t)

	repo := new(MockMemberRepo)
	gate := new(MockLoginGate)
	sessions, mr := newSessionRepo(t)

	repo.On("FindByMember", ctx, mock.MatchedBy(func(q *domain.MemberQuery) bool {
		return q.Email != nil && *q.Email == "a@qsite.io"
	})).Return(member, nil)
	gate.On("CheckLoginEligibility", ctx, "m-1").Return(&admindomain.Eligibility{Allowed: true}, nil)

	uc := NewMemberUseCase(repo, gate, time.Hour, sessions)
	jwtToken, got, err := uc.Login(ctx, "a@qsite.io", "!Password123")
	require.NoError(t, err)
	assert.Equal(t, "m-1", got.ID)

	claims, err := token.ParseJWT(jwtToken)
	require.NoError(t, err)
	assert.Equal(t, "m-1", claims.MemberID)
	assert.Equal(t, "admin", claims.Role)

	assert.True(t, mr.Exists("session:m-1"))
	assert.Equal(t, time.Hour, mr.TTL("session:m-1"))

	active, err := uc.IsSessionActive(ctx, "m-1")
	require.NoError(t, err)
	assert.True(t, active)

	require.NoError(t, uc.Logout(ctx, "m-1"))
	active, err = uc.IsSessionActive(ctx, "m-1")
	require.NoError(t, err)
	assert.False(t, active)
}

func TestMemberUseCase_LoginFailures(t *testing.T) {
	logger.SetNewNop()
	ctx := context.Background()
	member := newMember(t)
	sessions, mr := newSessionRepo(t)

	t.Run("unknown email", func(t *testing.T) {
		repo := new(MockMemberRepo)
		repo.On("FindByMember", ctx, mock.Anything).Return(nil, repository.ErrMemberNotFound)

		_, _, err := NewMemberUseCase(repo, nil, time.Hour, sessions).Login(ctx, "x@qsite.io", "!Password123")
		assert.Equal(t, "error.invalid_credentials", errprocess.As(err).Key)
	})

	t.Run("wrong password", func(t *testing.T) {
		repo := new(MockMemberRepo)
		repo.On("FindByMember", ctx, mock.Anything).Return(member, nil)

		_, _, err := NewMemberUseCase(repo, nil, time.Hour, sessions).Login(ctx, "a@qsite.io", "!Password124")
		assert.True(t, errprocess.IsKind(err, errprocess.KindAuthentication))
	})

	t.Run("not eligible", func(t *testing.T) {
		repo := new(MockMemberRepo)
		gate := new(MockLoginGate)
		repo.On("FindByMember", ctx, mock.Anything).Return(member, nil)
		gate.On("CheckLoginEligibility", ctx, "m-1").Return(&admindomain.Eligibility{Allowed: false, Reason: "suspended"}, nil)

		_, _, err := NewMemberUseCase(repo, gate, time.Hour, sessions).Login(ctx, "a@qsite.io", "!Password123")
		e := errprocess.As(err)
		assert.Equal(t, errprocess.KindAuthorization, e.Kind)
		assert.Equal(t, []interface{}{"suspended"}, e.Args)
		assert.False(t, mr.Exists("session:m-1"))
	})

	t.Run("eligibility error", func(t *testing.T) {
		repo := new(MockMemberRepo)
		gate := new(MockLoginGate)
		repo.On("FindByMember", ctx, mock.Anything).Return(member, nil)
		gate.On("CheckLoginEligibility", ctx, "m-1").Return(nil, errors.New("procedure missing"))

		_, _, err := NewMemberUseCase(repo, gate, time.Hour, sessions).Login(ctx, "a@qsite.io", "!Password123")
		assert.True(t, errprocess.IsKind(err, errprocess.KindUpstream))
	})

	t.Run("missing fields", func(t *testing.T) {
		_, _, err := NewMemberUseCase(new(MockMemberRepo), nil, time.Hour, sessions).Login(ctx, "", "")
		assert.True(t, errprocess.IsKind(err, errprocess.KindValidation))
	})
}

func TestMemberUseCase_SessionExpiry(t *testing.T) {
	ctx := context.Background()
	sessions, mr := newSessionRepo(t)
	uc := NewMemberUseCase(new(MockMemberRepo), nil, time.Minute, sessions)

	now := time.Now()
	require.NoError(t, sessions.Set(ctx, "m-1", domain.MemberSession{MemberID: "m-1", ExpiredAt: now.Add(time.Minute)}, time.Minute))
	active, err := uc.IsSessionActive(ctx, "m-1")
	require.NoError(t, err)
	assert.True(t, active)

	mr.FastForward(2 * time.Minute)
	active, err = uc.IsSessionActive(ctx, "m-1")
	require.NoError(t, err)
	assert.False(t, active)

	// redis 還在但 session 記錄已過期
	require.NoError(t, sessions.Set(ctx, "m-2", domain.MemberSession{MemberID: "m-2", ExpiredAt: now.Add(-time.Second)}, time.Minute))
	active, err = uc.IsSessionActive(ctx, "m-2")
	require.NoError(t, err)
	assert.False(t, active)
}

func TestMemberUseCase_CreateMember(t *testing.T) {
	logger.SetNewNop()
	ctx := context.Background()

	repo := new(MockMemberRepo)
	repo.On("FindByMember", ctx, mock.Anything).Return(nil, repository.ErrMemberNotFound)
	var saved *domain.Member
	repo.On("CreateUser", ctx, mock.AnythingOfType("*domain.Member")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*domain.Member) }).
		Return(nil).Once()

	uc := NewMemberUseCase(repo, nil, time.Hour, nil)
	member, err := uc.CreateMember(ctx, CreateMemberInput{
		Email:       " Admin@Qsite.io ",
		Password:    "!Password123",
		DisplayName: "Admin",
		Role:        "admin",
		Phone:       "+972500000000",
	})
	require.NoError(t, err)
	assert.Equal(t, saved, member)
	assert.Equal(t, "admin@qsite.io", member.Email)
	assert.NotEqual(t, "!Password123", member.PasswordHash)
	require.NotNil(t, member.Phone)
	assert.Equal(t, "+972500000000", *member.Phone)

	_, err = uc.CreateMember(ctx, CreateMemberInput{Email: "b@qsite.io", Password: "weak"})
	assert.ErrorIs(t, err, encrypt.ErrWeakPassword)

	_, err = uc.CreateMember(ctx, CreateMemberInput{Email: "c@qsite.io", Password: "!Password123", Role: "root"})
	assert.Error(t, err)
}

func TestMemberUseCase_CreateMemberDuplicate(t *testing.T) {
	ctx := context.Background()
	repo := new(MockMemberRepo)
	repo.On("FindByMember", ctx, mock.Anything).Return(&domain.Member{ID: "m-1"}, nil)

	_, err := NewMemberUseCase(repo, nil, time.Hour, nil).CreateMember(ctx, CreateMemberInput{Email: "a@qsite.io", Password: "!Password123"})
	assert.EqualError(t, err, "email already exists")
	repo.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
}
