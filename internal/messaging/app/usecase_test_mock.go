package app

import (
	"context"
	"time"

	"qsite/internal/messaging/domain"

	"github.com/stretchr/testify/mock"
)

// MockConversationRepository Mock ConversationRepository
type MockConversationRepository struct {
	mock.Mock
}

// FindByID mock find conversation
func (m *MockConversationRepository) FindByID(ctx context.Context, conversationID string) (*domain.Conversation, error) {
	args := m.Called(ctx, conversationID)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Conversation), args.Error(1)
	}
	return nil, args.Error(1)
}

// ListViews mock list conversation views
func (m *MockConversationRepository) ListViews(ctx context.Context, userID string) ([]domain.ConversationView, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.ConversationView), args.Error(1)
	}
	return nil, args.Error(1)
}

// UpsertReadState mock upsert read state
func (m *MockConversationRepository) UpsertReadState(ctx context.Context, userID, conversationID string, readAt time.Time) error {
	args := m.Called(ctx, userID, conversationID, readAt)
	return args.Error(0)
}

// MockSafetyRepository Mock SafetyRepository
type MockSafetyRepository struct {
	mock.Mock
}

// ListBlocks mock list blocks
func (m *MockSafetyRepository) ListBlocks(ctx context.Context, blockerID string) ([]domain.Block, error) {
	args := m.Called(ctx, blockerID)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.Block), args.Error(1)
	}
	return nil, args.Error(1)
}

// CreateBlock mock create block
func (m *MockSafetyRepository) CreateBlock(ctx context.Context, block *domain.Block) error {
	args := m.Called(ctx, block)
	return args.Error(0)
}

// DeleteBlock mock delete block
func (m *MockSafetyRepository) DeleteBlock(ctx context.Context, blockerID, blockedID string) error {
	args := m.Called(ctx, blockerID, blockedID)
	return args.Error(0)
}

// CreateReport mock create report
func (m *MockSafetyRepository) CreateReport(ctx context.Context, report *domain.Report) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}
