package app

import (
	"context"
	"errors"
	"strings"

	"qsite/internal/messaging/domain"
	"qsite/internal/messaging/repository"
	errprocess "qsite/pkg/err"

	"github.com/google/uuid"
)

// SafetyUseCase 封鎖與檢舉
type SafetyUseCase struct {
	safetyRepo repository.SafetyRepository
	convRepo   repository.ConversationRepository
}

// NewSafetyUseCase init safety use case
func NewSafetyUseCase(s repository.SafetyRepository, c repository.ConversationRepository) *SafetyUseCase {
	return &SafetyUseCase{
		safetyRepo: s,
		convRepo:   c,
	}
}

// ListBlocks caller 封鎖的使用者
func (uc *SafetyUseCase) ListBlocks(ctx context.Context, userID string) ([]domain.Block, error) {
	blocks, err := uc.safetyRepo.ListBlocks(ctx, userID)
	if err != nil {
		return nil, errprocess.Upstream(err)
	}
	return blocks, nil
}

// Block 封鎖使用者，重複封鎖不報錯
func (uc *SafetyUseCase) Block(ctx context.Context, userID, blockedID string) error {
	blockedID = strings.TrimSpace(blockedID)
	if blockedID == "" {
		return errprocess.Validation("error.user_id_required")
	}
	if blockedID == userID {
		return errprocess.Validation("error.cannot_block_self")
	}
	if !isUUID(blockedID) {
		return errprocess.Validation("error.invalid_user_id")
	}

	if err := uc.safetyRepo.CreateBlock(ctx, &domain.Block{BlockerID: userID, BlockedID: blockedID}); err != nil {
		return errprocess.Upstream(err)
	}
	return nil
}

// Unblock 解除封鎖
func (uc *SafetyUseCase) Unblock(ctx context.Context, userID, blockedID string) error {
	blockedID = strings.TrimSpace(blockedID)
	if blockedID == "" {
		return errprocess.Validation("error.user_id_required")
	}
	if !isUUID(blockedID) {
		return errprocess.Validation("error.invalid_user_id")
	}
	if err := uc.safetyRepo.DeleteBlock(ctx, userID, blockedID); err != nil {
		return errprocess.Upstream(err)
	}
	return nil
}

// SubmitReport 送出檢舉，回傳 report id
func (uc *SafetyUseCase) SubmitReport(ctx context.Context, in domain.ReportInput) (string, error) {
	in.ReportedUserID = strings.TrimSpace(in.ReportedUserID)
	in.Reason = strings.TrimSpace(in.Reason)

	switch {
	case in.ReportedUserID == "":
		return "", errprocess.Validation("error.reported_user_required")
	case in.Reason == "":
		return "", errprocess.Validation("error.report_reason_required")
	case in.ReportedUserID == in.ReporterID:
		return "", errprocess.Validation("error.cannot_report_self")
	case !isUUID(in.ReportedUserID):
		return "", errprocess.Validation("error.invalid_user_id")
	case in.MessageID != nil && *in.MessageID != "" && !isUUID(*in.MessageID):
		return "", errprocess.Validation("error.invalid_message_id")
	}

	if in.ConversationID != nil && *in.ConversationID != "" {
		conv, err := uc.convRepo.FindByID(ctx, *in.ConversationID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return "", errprocess.Upstream(err)
		}
		if conv == nil || !conv.HasParticipant(in.ReporterID) {
			return "", errprocess.New(errprocess.KindAuthorization, "error.not_participant", nil)
		}
	} else {
		in.ConversationID = nil
	}
	if in.MessageID != nil && *in.MessageID == "" {
		in.MessageID = nil
	}

	report := &domain.Report{
		ID:             uuid.New().String(),
		ReporterID:     in.ReporterID,
		ReportedUserID: in.ReportedUserID,
		ConversationID: in.ConversationID,
		MessageID:      in.MessageID,
		Reason:         in.Reason,
		Details:        in.Details,
		Status:         domain.ReportPending,
	}
	if err := uc.safetyRepo.CreateReport(ctx, report); err != nil {
		return "", errprocess.Upstream(err)
	}
	return report.ID, nil
}

func isUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
