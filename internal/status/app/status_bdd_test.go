package app

import (
	"context"
	"fmt"
	"os"
	"testing"

	"qsite/internal/status/domain"
	errprocess "qsite/pkg/err"

	"github.com/cucumber/godog"
)

func TestStatusFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: initializeStatusScenario,
		Options: &godog.Options{
			Paths:    []string{"testdata"},
			Format:   "pretty",
			Output:   os.Stdout,
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("status feature tests failed")
	}
}

type statusWorld struct {
	repo    *memoryRepo
	uc      *StatusUseCase
	result  *domain.StarResult
	lastErr error
}

func initializeStatusScenario(s *godog.ScenarioContext) {
	w := &statusWorld{}

	s.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		w.repo = newMemoryRepo()
		w.uc = NewStatusUseCase(w.repo)
		w.result = nil
		w.lastErr = nil
		return ctx, nil
	})

	s.Step(`^member "([^"]*)" owns status "([^"]*)" with (\d+) stars$`, w.memberOwnsStatus)
	s.Step(`^member "([^"]*)" toggles the star on "([^"]*)"$`, w.toggleStar)
	s.Step(`^the star result is starred with (\d+) stars$`, w.starredWith)
	s.Step(`^the star result is not starred with (\d+) stars$`, w.notStarredWith)
	s.Step(`^member "([^"]*)" shares "([^"]*)"$`, w.share)
	s.Step(`^member "([^"]*)" unshares "([^"]*)"$`, w.unshare)
	s.Step(`^status "([^"]*)" is shared$`, w.isShared(true))
	s.Step(`^status "([^"]*)" is not shared$`, w.isShared(false))
	s.Step(`^status "([^"]*)" is legendary$`, w.isLegendary(true))
	s.Step(`^status "([^"]*)" is not legendary$`, w.isLegendary(false))
	s.Step(`^the request fails with "([^"]*)"$`, w.failsWith)
}

func (w *statusWorld) memberOwnsStatus(member, id string, stars int) error {
	w.repo.add(domain.Status{ID: id, UserID: member})
	w.repo.seedStars(id, stars)
	return nil
}

func (w *statusWorld) toggleStar(member, id string) error {
	w.result, w.lastErr = w.uc.ToggleStar(context.Background(), id, member)
	return w.lastErr
}

func (w *statusWorld) starredWith(count int) error {
	return w.expectStar(true, count)
}

func (w *statusWorld) notStarredWith(count int) error {
	return w.expectStar(false, count)
}

func (w *statusWorld) expectStar(starred bool, count int) error {
	if w.result == nil {
		return fmt.Errorf("no star result")
	}
	if w.result.Starred != starred || w.result.StarsCount != count {
		return fmt.Errorf("expected starred=%v count=%d, got %+v", starred, count, *w.result)
	}
	return nil
}

func (w *statusWorld) share(member, id string) error {
	_, w.lastErr = w.uc.SetShare(context.Background(), id, member, true)
	return nil
}

func (w *statusWorld) unshare(member, id string) error {
	_, w.lastErr = w.uc.SetShare(context.Background(), id, member, false)
	return w.lastErr
}

func (w *statusWorld) isShared(want bool) func(string) error {
	return func(id string) error {
		if got := w.repo.get(id).SharedToProfile; got != want {
			return fmt.Errorf("status %s shared=%v, want %v", id, got, want)
		}
		return nil
	}
}

func (w *statusWorld) isLegendary(want bool) func(string) error {
	return func(id string) error {
		if got := w.repo.get(id).IsLegendary; got != want {
			return fmt.Errorf("status %s legendary=%v, want %v", id, got, want)
		}
		return nil
	}
}

func (w *statusWorld) failsWith(kind string) error {
	if !errprocess.IsKind(w.lastErr, errprocess.Kind(kind)) {
		return fmt.Errorf("expected %s, got %v", kind, w.lastErr)
	}
	return nil
}
