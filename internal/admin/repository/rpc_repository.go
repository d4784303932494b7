package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"qsite/internal/admin/domain"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// ProcedureError 預存程序 RAISE 出來的錯誤
type ProcedureError struct {
	Procedure string
	Message   string
	Err       error
}

func (e *ProcedureError) Error() string {
	return fmt.Sprintf("%s: %s", e.Procedure, e.Message)
}

func (e *ProcedureError) Unwrap() error {
	return e.Err
}

// RPCRepository definition remote procedure calls
type RPCRepository interface {
	GetUserPermissions(ctx context.Context, userID string) (*domain.Permissions, domain.Payload, error)
	ApplyUserPenalty(ctx context.Context, adminID, userID string, in domain.PenaltyInput) (domain.Payload, error)
	RevokeUserRole(ctx context.Context, adminID, userID, role string) (domain.Payload, error)
	SuspendUser(ctx context.Context, adminID, userID string, in domain.SuspendInput) (domain.Payload, error)
	GetAdminDashboardStats(ctx context.Context) (domain.Payload, error)
	CheckAndAwardMilestones(ctx context.Context, userID string) (domain.Payload, error)
	CheckLoginEligibility(ctx context.Context, userID string) (*domain.Eligibility, error)
}

type rpcRepository struct {
	db *pgxpool.Pool
}

// NewRPCRepository create a RPCRepository
func NewRPCRepository(db *pgxpool.Pool) RPCRepository {
	return &rpcRepository{db: db}
}

// call SELECT proc(...)::text, 回傳 JSON
func (r *rpcRepository) call(ctx context.Context, procedure, query string, args ...interface{}) (domain.Payload, error) {
	var raw *string
	err := r.db.QueryRow(ctx, query, args...).Scan(&raw)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			return nil, &ProcedureError{Procedure: procedure, Message: pgErr.Message, Err: err}
		}
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Payload("null"), nil
		}
		return nil, err
	}
	if raw == nil {
		return domain.Payload("null"), nil
	}
	return domain.Payload(*raw), nil
}

func (r *rpcRepository) GetUserPermissions(ctx context.Context, userID string) (*domain.Permissions, domain.Payload, error) {
	payload, err := r.call(ctx, "get_user_permissions",
		"SELECT get_user_permissions(p_user_id => $1)::text", userID)
	if err != nil {
		return nil, nil, err
	}
	perms := &domain.Permissions{}
	if err := json.Unmarshal(payload, perms); err != nil {
		return nil, nil, fmt.Errorf("decode permissions: %w", err)
	}
	return perms, payload, nil
}

func (r *rpcRepository) ApplyUserPenalty(ctx context.Context, adminID, userID string, in domain.PenaltyInput) (domain.Payload, error) {
	return r.call(ctx, "apply_user_penalty",
		`SELECT apply_user_penalty(
			p_admin_id => $1, p_user_id => $2, p_penalty_type => $3, p_points => $4, p_reason => $5)::text`,
		adminID, userID, in.PenaltyType, in.Points, in.Reason)
}

func (r *rpcRepository) RevokeUserRole(ctx context.Context, adminID, userID, role string) (domain.Payload, error) {
	return r.call(ctx, "revoke_user_role",
		"SELECT revoke_user_role(p_admin_id => $1, p_user_id => $2, p_role => $3)::text",
		adminID, userID, role)
}

func (r *rpcRepository) SuspendUser(ctx context.Context, adminID, userID string, in domain.SuspendInput) (domain.Payload, error) {
	return r.call(ctx, "suspend_user",
		"SELECT suspend_user(p_admin_id => $1, p_user_id => $2, p_reason => $3, p_days => $4)::text",
		adminID, userID, in.Reason, in.Days)
}

func (r *rpcRepository) GetAdminDashboardStats(ctx context.Context) (domain.Payload, error) {
	return r.call(ctx, "get_admin_dashboard_stats", "SELECT get_admin_dashboard_stats()::text")
}

func (r *rpcRepository) CheckAndAwardMilestones(ctx context.Context, userID string) (domain.Payload, error) {
	return r.call(ctx, "check_and_award_milestones",
		"SELECT check_and_award_milestones(p_user_id => $1)::text", userID)
}

func (r *rpcRepository) CheckLoginEligibility(ctx context.Context, userID string) (*domain.Eligibility, error) {
	payload, err := r.call(ctx, "check_login_eligibility",
		"SELECT check_login_eligibility(p_user_id => $1)::text", userID)
	if err != nil {
		return nil, err
	}
	el := &domain.Eligibility{}
	if err := json.Unmarshal(payload, el); err != nil {
		return nil, fmt.Errorf("decode eligibility: %w", err)
	}
	return el, nil
}
