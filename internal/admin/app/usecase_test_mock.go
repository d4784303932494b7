package app

import (
	"context"

	"qsite/internal/admin/domain"
	"qsite/pkg/notify"

	"github.com/stretchr/testify/mock"
)

// MockRPCRepository Mock RPCRepository
type MockRPCRepository struct {
	mock.Mock
}

func payloadArg(args mock.Arguments, i int) domain.Payload {
	if v := args.Get(i); v != nil {
		return v.(domain.Payload)
	}
	return nil
}

// GetUserPermissions mock
func (m *MockRPCRepository) GetUserPermissions(ctx context.Context, userID string) (*domain.Permissions, domain.Payload, error) {
	args := m.Called(ctx, userID)
	var perms *domain.Permissions
	if v := args.Get(0); v != nil {
		perms = v.(*domain.Permissions)
	}
	return perms, payloadArg(args, 1), args.Error(2)
}

// ApplyUserPenalty mock
func (m *MockRPCRepository) ApplyUserPenalty(ctx context.Context, adminID, userID string, in domain.PenaltyInput) (domain.Payload, error) {
	args := m.Called(ctx, adminID, userID, in)
	return payloadArg(args, 0), args.Error(1)
}

// RevokeUserRole mock
func (m *MockRPCRepository) RevokeUserRole(ctx context.Context, adminID, userID, role string) (domain.Payload, error) {
	args := m.Called(ctx, adminID, userID, role)
	return payloadArg(args, 0), args.Error(1)
}

// SuspendUser mock
func (m *MockRPCRepository) SuspendUser(ctx context.Context, adminID, userID string, in domain.SuspendInput) (domain.Payload, error) {
	args := m.Called(ctx, adminID, userID, in)
	return payloadArg(args, 0), args.Error(1)
}

// GetAdminDashboardStats mock
func (m *MockRPCRepository) GetAdminDashboardStats(ctx context.Context) (domain.Payload, error) {
	args := m.Called(ctx)
	return payloadArg(args, 0), args.Error(1)
}

// CheckAndAwardMilestones mock
func (m *MockRPCRepository) CheckAndAwardMilestones(ctx context.Context, userID string) (domain.Payload, error) {
	args := m.Called(ctx, userID)
	return payloadArg(args, 0), args.Error(1)
}

// CheckLoginEligibility mock
func (m *MockRPCRepository) CheckLoginEligibility(ctx context.Context, userID string) (*domain.Eligibility, error) {
	args := m.Called(ctx, userID)
	if v := args.Get(0); v != nil {
		return v.(*domain.Eligibility), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockSessionRevoker Mock SessionRevoker
type MockSessionRevoker struct {
	mock.Mock
}

// RevokeSession mock
func (m *MockSessionRevoker) RevokeSession(ctx context.Context, memberID string) error {
	return m.Called(ctx, memberID).Error(0)
}

// MockSMSPublisher Mock notify.SMSPublisher
type MockSMSPublisher struct {
	mock.Mock
}

// PublishSMS mock
func (m *MockSMSPublisher) PublishSMS(job notify.SMSJob) error {
	return m.Called(job).Error(0)
}
