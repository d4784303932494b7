package app

import (
	"context"
	"errors"
	"strings"

	"qsite/internal/admin/domain"
	"qsite/internal/admin/repository"
	errprocess "qsite/pkg/err"
	"qsite/pkg/logger"
	"qsite/pkg/notify"

	"go.uber.org/zap"
)

// SessionRevoker 強制登出
type SessionRevoker interface {
	RevokeSession(ctx context.Context, memberID string) error
}

// AdminUseCase 管理功能，權限與商業規則在預存程序
type AdminUseCase struct {
	rpc      repository.RPCRepository
	sessions SessionRevoker
	sms      notify.SMSPublisher
}

// NewAdminUseCase init admin use case
func NewAdminUseCase(rpc repository.RPCRepository, sessions SessionRevoker, sms notify.SMSPublisher) *AdminUseCase {
	return &AdminUseCase{
		rpc:      rpc,
		sessions: sessions,
		sms:      sms,
	}
}

// rpcErr 預存程序錯誤 → UPSTREAM_FAILURE
func rpcErr(err error) error {
	var procErr *repository.ProcedureError
	if errors.As(err, &procErr) {
		logger.Log.Warn("procedure failed",
			zap.String("procedure", procErr.Procedure),
			zap.String("message", procErr.Message))
	}
	return errprocess.Upstream(err)
}

func (uc *AdminUseCase) require(ctx context.Context, adminID string, perm domain.Permission) error {
	perms, _, err := uc.rpc.GetUserPermissions(ctx, adminID)
	if err != nil {
		return rpcErr(err)
	}
	if !perms.Has(perm) {
		return errprocess.New(errprocess.KindAuthorization, "error.missing_permission", nil)
	}
	return nil
}

// Permissions caller 的權限
func (uc *AdminUseCase) Permissions(ctx context.Context, userID string) (domain.Payload, error) {
	_, payload, err := uc.rpc.GetUserPermissions(ctx, userID)
	if err != nil {
		return nil, rpcErr(err)
	}
	return payload, nil
}

// ApplyPenalty 對使用者處以懲罰
func (uc *AdminUseCase) ApplyPenalty(ctx context.Context, adminID, userID string, in domain.PenaltyInput) (domain.Payload, error) {
	in.PenaltyType = strings.TrimSpace(in.PenaltyType)
	in.Reason = strings.TrimSpace(in.Reason)
	if userID == "" {
		return nil, errprocess.Validation("error.user_id_required")
	}
	if in.PenaltyType == "" || in.Reason == "" || in.Points < 0 {
		return nil, errprocess.Validation("error.invalid_penalty")
	}
	if err := uc.require(ctx, adminID, domain.PermManagePenalties); err != nil {
		return nil, err
	}

	payload, err := uc.rpc.ApplyUserPenalty(ctx, adminID, userID, in)
	if err != nil {
		return nil, rpcErr(err)
	}
	uc.notify(notify.SMSJob{
		MemberID: userID,
		Template: notify.TemplatePenalty,
		Params:   []interface{}{in.PenaltyType, in.Reason},
	})
	return payload, nil
}

// RevokeRole 移除角色
func (uc *AdminUseCase) RevokeRole(ctx context.Context, adminID, userID, role string) (domain.Payload, error) {
	role = strings.TrimSpace(role)
	if userID == "" {
		return nil, errprocess.Validation("error.user_id_required")
	}
	if role == "" {
		return nil, errprocess.Validation("error.role_required")
	}
	if err := uc.require(ctx, adminID, domain.PermManageRoles); err != nil {
		return nil, err
	}

	payload, err := uc.rpc.RevokeUserRole(ctx, adminID, userID, role)
	if err != nil {
		return nil, rpcErr(err)
	}
	return payload, nil
}

// Suspend 停權，之後強制登出並發簡訊
func (uc *AdminUseCase) Suspend(ctx context.Context, adminID, userID string, in domain.SuspendInput) (domain.Payload, error) {
	in.Reason = strings.TrimSpace(in.Reason)
	if userID == "" {
		return nil, errprocess.Validation("error.user_id_required")
	}
	if in.Reason == "" || in.Days <= 0 {
		return nil, errprocess.Validation("error.invalid_suspension")
	}
	if err := uc.require(ctx, adminID, domain.PermSuspendUsers); err != nil {
		return nil, err
	}

	payload, err := uc.rpc.SuspendUser(ctx, adminID, userID, in)
	if err != nil {
		return nil, rpcErr(err)
	}

	if uc.sessions != nil {
		if err := uc.sessions.RevokeSession(ctx, userID); err != nil {
			logger.Log.Error("revoke session after suspension", zap.String("member_id", userID), zap.Error(err))
		}
	}
	uc.notify(notify.SMSJob{
		MemberID: userID,
		Template: notify.TemplateSuspended,
		Params:   []interface{}{in.Days, in.Reason},
	})
	return payload, nil
}

// Dashboard 後台統計
func (uc *AdminUseCase) Dashboard(ctx context.Context, adminID string) (domain.Payload, error) {
	if err := uc.require(ctx, adminID, domain.PermViewDashboard); err != nil {
		return nil, err
	}
	payload, err := uc.rpc.GetAdminDashboardStats(ctx)
	if err != nil {
		return nil, rpcErr(err)
	}
	return payload, nil
}

// CheckMilestones 檢查並發放 caller 的里程碑
func (uc *AdminUseCase) CheckMilestones(ctx context.Context, userID string) (domain.Payload, error) {
	payload, err := uc.rpc.CheckAndAwardMilestones(ctx, userID)
	if err != nil {
		return nil, rpcErr(err)
	}
	return payload, nil
}

// notify 簡訊失敗不影響主流程
func (uc *AdminUseCase) notify(job notify.SMSJob) {
	if uc.sms == nil {
		return
	}
	if err := uc.sms.PublishSMS(job); err != nil {
		logger.Log.Error("publish sms job", zap.String("member_id", job.MemberID), zap.Error(err))
	}
}
