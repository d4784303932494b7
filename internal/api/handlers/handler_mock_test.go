package handlers

import (
	"context"
	"time"

	admindomain "qsite/internal/admin/domain"
	memberdomain "qsite/internal/member/domain"
	messagingdomain "qsite/internal/messaging/domain"
	statusdomain "qsite/internal/status/domain"

	"github.com/stretchr/testify/mock"
)

type MockUnreadService struct {
	mock.Mock
}

func (m *MockUnreadService) CountUnread(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockUnreadService) ListUnread(ctx context.Context, userID string) ([]string, error) {
	args := m.Called(ctx, userID)
	if v := args.Get(0); v != nil {
		return v.([]string), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUnreadService) MarkRead(ctx context.Context, conversationID, userID string) (time.Time, error) {
	args := m.Called(ctx, conversationID, userID)
	return args.Get(0).(time.Time), args.Error(1)
}

type MockSafetyService struct {
	mock.Mock
}

func (m *MockSafetyService) ListBlocks(ctx context.Context, userID string) ([]messagingdomain.Block, error) {
	args := m.Called(ctx, userID)
	if v := args.Get(0); v != nil {
		return v.([]messagingdomain.Block), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSafetyService) Block(ctx context.Context, userID, blockedID string) error {
	return m.Called(ctx, userID, blockedID).Error(0)
}

func (m *MockSafetyService) Unblock(ctx context.Context, userID, blockedID string) error {
	return m.Called(ctx, userID, blockedID).Error(0)
}

func (m *MockSafetyService) SubmitReport(ctx context.Context, in messagingdomain.ReportInput) (string, error) {
	args := m.Called(ctx, in)
	return args.String(0), args.Error(1)
}

type MockStatusService struct {
	mock.Mock
}

func (m *MockStatusService) ToggleStar(ctx context.Context, statusID, userID string) (*statusdomain.StarResult, error) {
	args := m.Called(ctx, statusID, userID)
	if v := args.Get(0); v != nil {
		return v.(*statusdomain.StarResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStatusService) SetShare(ctx context.Context, statusID, userID string, share bool) (bool, error) {
	args := m.Called(ctx, statusID, userID, share)
	return args.Bool(0), args.Error(1)
}

func (m *MockStatusService) ListByUser(ctx context.Context, userID string) ([]statusdomain.Status, error) {
	args := m.Called(ctx, userID)
	if v := args.Get(0); v != nil {
		return v.([]statusdomain.Status), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockAdminService struct {
	mock.Mock
}

func payload(args mock.Arguments) admindomain.Payload {
	if v := args.Get(0); v != nil {
		return v.(admindomain.Payload)
	}
	return nil
}

func (m *MockAdminService) Permissions(ctx context.Context, userID string) (admindomain.Payload, error) {
	args := m.Called(ctx, userID)
	return payload(args), args.Error(1)
}

func (m *MockAdminService) ApplyPenalty(ctx context.Context, adminID, userID string, in admindomain.PenaltyInput) (admindomain.Payload, error) {
	args := m.Called(ctx, adminID, userID, in)
	return payload(args), args.Error(1)
}

func (m *MockAdminService) RevokeRole(ctx context.Context, adminID, userID, role string) (admindomain.Payload, error) {
	args := m.Called(ctx, adminID, userID, role)
	return payload(args), args.Error(1)
}

func (m *MockAdminService) Suspend(ctx context.Context, adminID, userID string, in admindomain.SuspendInput) (admindomain.Payload, error) {
	args := m.Called(ctx, adminID, userID, in)
	return payload(args), args.Error(1)
}

func (m *MockAdminService) Dashboard(ctx context.Context, adminID string) (admindomain.Payload, error) {
	args := m.Called(ctx, adminID)
	return payload(args), args.Error(1)
}

func (m *MockAdminService) CheckMilestones(ctx context.Context, userID string) (admindomain.Payload, error) {
	args := m.Called(ctx, userID)
	return payload(args), args.Error(1)
}

type MockMemberService struct {
	mock.Mock
}

func (m *MockMemberService) Login(ctx context.Context, email, password string) (string, *memberdomain.Member, error) {
	args := m.Called(ctx, email, password)
	var member *memberdomain.Member
	if v := args.Get(1); v != nil {
		member = v.(*memberdomain.Member)
	}
	return args.String(0), member, args.Error(2)
}

func (m *MockMemberService) Logout(ctx context.Context, memberID string) error {
	return m.Called(ctx, memberID).Error(0)
}
