package app

import (
	"context"
	"errors"

	"qsite/internal/status/domain"
	"qsite/internal/status/repository"
	errprocess "qsite/pkg/err"
)

// StatusUseCase 按星與分享到個人頁
type StatusUseCase struct {
	repo repository.StatusRepository
}

// NewStatusUseCase init status use case
func NewStatusUseCase(r repository.StatusRepository) *StatusUseCase {
	return &StatusUseCase{repo: r}
}

func notFound(err error) *errprocess.Error {
	return errprocess.New(errprocess.KindNotFound, "error.status_not_found", err)
}

// storeErr 已分類的錯誤原樣回傳，其餘視為 store 錯誤
func storeErr(err error) error {
	var e *errprocess.Error
	if errors.As(err, &e) {
		return e
	}
	return errprocess.Upstream(err)
}

// ToggleStar 已按星則取消，否則按星
func (uc *StatusUseCase) ToggleStar(ctx context.Context, statusID, userID string) (*domain.StarResult, error) {
	if statusID == "" {
		return nil, errprocess.Validation("error.status_id_required")
	}

	result := &domain.StarResult{}
	err := uc.repo.Transaction(ctx, func(store repository.StatusStore) error {
		// 先鎖 status row，併發按星依序重算
		if _, err := store.LockByID(statusID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return notFound(err)
			}
			return err
		}

		removed, err := store.DeleteStar(statusID, userID)
		if err != nil {
			return err
		}
		if !removed {
			if err := store.InsertStar(statusID, userID); err != nil {
				return err
			}
		}
		result.Starred = !removed

		count, err := store.RecountStars(statusID)
		if err != nil {
			return err
		}
		result.StarsCount = count
		return nil
	})
	if err != nil {
		return nil, storeErr(err)
	}
	return result, nil
}

// SetShare 設定分享狀態，回傳設定後的 shared_to_profile
func (uc *StatusUseCase) SetShare(ctx context.Context, statusID, userID string, share bool) (bool, error) {
	if statusID == "" {
		return false, errprocess.Validation("error.status_id_required")
	}

	err := uc.repo.Transaction(ctx, func(store repository.StatusStore) error {
		owned, err := store.LockByOwner(userID)
		if err != nil {
			return err
		}

		var target *domain.Status
		for i := range owned {
			if owned[i].ID == statusID {
				target = &owned[i]
				break
			}
		}
		// 不存在或不是自己的，一律 404
		if target == nil {
			return notFound(nil)
		}

		if share {
			if err := store.ClearShared(userID); err != nil {
				return err
			}
			return store.SetShared(statusID, true)
		}

		// 先判斷 legendary 再清除分享
		if !target.IsLegendary && domain.ShouldPromote(*target, owned) {
			if err := store.MarkLegendary(statusID); err != nil {
				return err
			}
		}
		return store.SetShared(statusID, false)
	})
	if err != nil {
		return false, storeErr(err)
	}
	return share, nil
}

// ListByUser 個人頁的 status
func (uc *StatusUseCase) ListByUser(ctx context.Context, userID string) ([]domain.Status, error) {
	if userID == "" {
		return nil, errprocess.Validation("error.user_id_required")
	}
	statuses, err := uc.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, errprocess.Upstream(err)
	}
	return statuses, nil
}
