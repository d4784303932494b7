//go:build integration

package repository

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"qsite/internal/messaging/domain"
	"qsite/pkg/database"
	"qsite/pkg/logger"
	"qsite/pkg/testtool"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	logger.SetNewNop()
	ctx := context.Background()

	container, cfg, err := testtool.SetupPostgres(ctx)
	if err != nil {
		log.Fatalf("Failed to start PostgreSQL container: %v", err)
	}

	testDB, err = database.NewPGConnection(database.Connection{
		ConnectStr:    database.PostgresDSN(cfg),
		RetryCount:    cfg.RetryCount,
		RetryInterval: time.Duration(cfg.RetryInterval),
	})
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	if err := Migrate(testDB); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func newID() string { return uuid.New().String() }

func seedConversation(t *testing.T, a, b string) string {
	conv := domain.Conversation{ID: newID(), Participant1ID: a, Participant2ID: b}
	require.NoError(t, testDB.Create(&conv).Error)
	return conv.ID
}

func seedMessage(t *testing.T, convID, sender string, at time.Time) {
	msg := domain.Message{ID: newID(), ConversationID: convID, SenderID: sender, Content: "hi", CreatedAt: at}
	require.NoError(t, testDB.Create(&msg).Error)
}

func viewsByID(views []domain.ConversationView) map[string]domain.ConversationView {
	out := make(map[string]domain.ConversationView, len(views))
	for _, v := range views {
		out[v.ConversationID] = v
	}
	return out
}

func TestConversationRepository_ListViews(t *testing.T) {
	ctx := context.Background()
	repo := NewConversationRepository(testDB)
	me, other, third := newID(), newID(), newID()
	base := time.Now().UTC().Truncate(time.Microsecond)

	empty := seedConversation(t, me, other)
	fromOther := seedConversation(t, other, me)
	fromMe := seedConversation(t, me, third)
	_ = seedConversation(t, other, third)

	seedMessage(t, fromOther, me, base)
	seedMessage(t, fromOther, other, base.Add(time.Second))
	seedMessage(t, fromMe, third, base)
	seedMessage(t, fromMe, me, base.Add(time.Second))

	views, err := repo.ListViews(ctx, me)
	require.NoError(t, err)
	require.Len(t, views, 3)

	byID := viewsByID(views)
	assert.Nil(t, byID[empty].LastMessageAt)
	assert.False(t, byID[empty].IsUnreadFor(me))

	require.NotNil(t, byID[fromOther].LastSenderID)
	assert.Equal(t, other, *byID[fromOther].LastSenderID)
	assert.True(t, byID[fromOther].LastMessageAt.Equal(base.Add(time.Second)))
	assert.Nil(t, byID[fromOther].LastReadAt)
	assert.True(t, byID[fromOther].IsUnreadFor(me))

	assert.False(t, byID[fromMe].IsUnreadFor(me))
}

func TestConversationRepository_UpsertReadState(t *testing.T) {
	ctx := context.Background()
	repo := NewConversationRepository(testDB)
	me, other := newID(), newID()
	base := time.Now().UTC().Truncate(time.Microsecond)

	convID := seedConversation(t, me, other)
	seedMessage(t, convID, other, base)

	require.NoError(t, repo.UpsertReadState(ctx, me, convID, base))
	views, err := repo.ListViews(ctx, me)
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.NotNil(t, views[0].LastReadAt)
	// 時間相等視為已讀
	assert.False(t, views[0].IsUnreadFor(me))

	// 第二次覆寫同一筆
	later := base.Add(time.Minute)
	require.NoError(t, repo.UpsertReadState(ctx, me, convID, later))
	var states []domain.ReadState
	require.NoError(t, testDB.Where("user_id = ? AND conversation_id = ?", me, convID).Find(&states).Error)
	require.Len(t, states, 1)
	assert.True(t, states[0].LastReadAt.Equal(later))

	seedMessage(t, convID, other, later.Add(time.Second))
	views, err = repo.ListViews(ctx, me)
	require.NoError(t, err)
	assert.True(t, views[0].IsUnreadFor(me))
}

func TestConversationRepository_FindByID(t *testing.T) {
	ctx := context.Background()
	repo := NewConversationRepository(testDB)

	convID := seedConversation(t, newID(), newID())
	conv, err := repo.FindByID(ctx, convID)
	require.NoError(t, err)
	assert.Equal(t, convID, conv.ID)

	_, err = repo.FindByID(ctx, newID())
	assert.ErrorIs(t, err, ErrNotFound)

	// 非 uuid 的 id 也當作不存在
	_, err = repo.FindByID(ctx, "abc")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSafetyRepository_Blocks(t *testing.T) {
	ctx := context.Background()
	repo := NewSafetyRepository(testDB)
	me, a, b := newID(), newID(), newID()

	require.NoError(t, repo.CreateBlock(ctx, &domain.Block{BlockerID: me, BlockedID: a}))
	require.NoError(t, repo.CreateBlock(ctx, &domain.Block{BlockerID: me, BlockedID: b}))
	// 重複封鎖不報錯
	require.NoError(t, repo.CreateBlock(ctx, &domain.Block{BlockerID: me, BlockedID: a}))

	blocks, err := repo.ListBlocks(ctx, me)
	require.NoError(t, err)
	assert.Len(t, blocks, 2)

	require.NoError(t, repo.DeleteBlock(ctx, me, a))
	require.NoError(t, repo.DeleteBlock(ctx, me, a))
	blocks, err = repo.ListBlocks(ctx, me)
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	assert.Equal(t, b, blocks[0].BlockedID)
}

func TestSafetyRepository_CreateReport(t *testing.T) {
	ctx := context.Background()
	repo := NewSafetyRepository(testDB)

	report := &domain.Report{
		ID:             newID(),
		ReporterID:     newID(),
		ReportedUserID: newID(),
		Reason:         "spam",
		Status:         domain.ReportPending,
	}
	require.NoError(t, repo.CreateReport(ctx, report))

	var saved domain.Report
	require.NoError(t, testDB.Where("id = ?", report.ID).Take(&saved).Error)
	assert.Equal(t, domain.ReportPending, saved.Status)
	assert.Nil(t, saved.ConversationID)
}
