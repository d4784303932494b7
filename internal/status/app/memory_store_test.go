package app

import (
	"context"
	"sort"

	"qsite/internal/status/domain"
	"qsite/internal/status/repository"
)

// memoryRepo 記憶體版 StatusRepository，交易失敗時還原
type memoryRepo struct {
	statuses map[string]domain.Status
	stars    map[string]map[string]bool // status -> user
	failOn   string
	calls    []string
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		statuses: map[string]domain.Status{},
		stars:    map[string]map[string]bool{},
	}
}

func (m *memoryRepo) add(s domain.Status) {
	m.statuses[s.ID] = s
}

func (m *memoryRepo) get(id string) domain.Status {
	return m.statuses[id]
}

func (m *memoryRepo) Transaction(ctx context.Context, fn func(store repository.StatusStore) error) error {
	snapshot := map[string]domain.Status{}
	for k, v := range m.statuses {
		snapshot[k] = v
	}
	starSnapshot := map[string]map[string]bool{}
	for k, v := range m.stars {
		users := map[string]bool{}
		for u := range v {
			users[u] = true
		}
		starSnapshot[k] = users
	}

	if err := fn(&memoryStore{repo: m}); err != nil {
		m.statuses = snapshot
		m.stars = starSnapshot
		return err
	}
	return nil
}

func (m *memoryRepo) ListByUser(ctx context.Context, userID string) ([]domain.Status, error) {
	var out []domain.Status
	for _, s := range m.statuses {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SharedToProfile != out[j].SharedToProfile {
			return out[i].SharedToProfile
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (m *memoryRepo) Create(ctx context.Context, status *domain.Status) error {
	m.statuses[status.ID] = *status
	return nil
}

type memoryStore struct {
	repo *memoryRepo
}

func (s *memoryStore) LockByID(statusID string) (*domain.Status, error) {
	s.repo.calls = append(s.repo.calls, "LockByID")
	st, ok := s.repo.statuses[statusID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &st, nil
}

func (s *memoryStore) LockByOwner(userID string) ([]domain.Status, error) {
	var out []domain.Status
	for _, st := range s.repo.statuses {
		if st.UserID == userID {
			out = append(out, st)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memoryStore) DeleteStar(statusID, userID string) (bool, error) {
	s.repo.calls = append(s.repo.calls, "DeleteStar")
	if s.repo.stars[statusID][userID] {
		delete(s.repo.stars[statusID], userID)
		return true, nil
	}
	return false, nil
}

func (s *memoryStore) InsertStar(statusID, userID string) error {
	s.repo.calls = append(s.repo.calls, "InsertStar")
	if s.repo.failOn == "InsertStar" {
		return errFailing
	}
	if s.repo.stars[statusID] == nil {
		s.repo.stars[statusID] = map[string]bool{}
	}
	s.repo.stars[statusID][userID] = true
	return nil
}

func (s *memoryStore) RecountStars(statusID string) (int, error) {
	s.repo.calls = append(s.repo.calls, "RecountStars")
	st := s.repo.statuses[statusID]
	st.StarsCount = len(s.repo.stars[statusID])
	s.repo.statuses[statusID] = st
	return st.StarsCount, nil
}

func (s *memoryStore) ClearShared(userID string) error {
	for id, st := range s.repo.statuses {
		if st.UserID == userID && st.SharedToProfile {
			st.SharedToProfile = false
			s.repo.statuses[id] = st
		}
	}
	return nil
}

func (s *memoryStore) SetShared(statusID string, shared bool) error {
	if s.repo.failOn == "SetShared" {
		return errFailing
	}
	st := s.repo.statuses[statusID]
	st.SharedToProfile = shared
	s.repo.statuses[statusID] = st
	return nil
}

func (s *memoryStore) MarkLegendary(statusID string) error {
	st := s.repo.statuses[statusID]
	st.IsLegendary = true
	s.repo.statuses[statusID] = st
	return nil
}

// seedStars 直接塞入星數 (每顆星不同 user)
func (m *memoryRepo) seedStars(statusID string, n int) {
	users := map[string]bool{}
	for i := 0; i < n; i++ {
		users[string(rune('a'+i))+"-fan"] = true
	}
	m.stars[statusID] = users
	st := m.statuses[statusID]
	st.StarsCount = n
	m.statuses[statusID] = st
}
