//go:build !integration

package widget

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"skyVoyage/domain"
)

type fakeDecisionRepo struct {
	mu        sync.Mutex
	responses map[string][]byte
	errs      map[string]error

	// GetWidget blocks on blockOn[page] when set, signalling entered first.
	blockOn map[string]chan struct{}
	entered chan string

	getCalls   int32
	trackCalls int32
}

func newFakeDecisionRepo() *fakeDecisionRepo {
	return &fakeDecisionRepo{
		responses: make(map[string][]byte),
		errs:      make(map[string]error),
		blockOn:   make(map[string]chan struct{}),
	}
}

func (f *fakeDecisionRepo) GetWidget(_ context.Context, page, _ string) ([]byte, error) {
	atomic.AddInt32(&f.getCalls, 1)

	f.mu.Lock()
	gate := f.blockOn[page]
	body := f.responses[page]
	err := f.errs[page]
	f.mu.Unlock()

	if gate != nil {
		if f.entered != nil {
			f.entered <- page
		}
		<-gate
	}
	return body, err
}

func (f *fakeDecisionRepo) TrackPageVisit(context.Context, string, string) error {
	atomic.AddInt32(&f.trackCalls, 1)
	return nil
}

type fakeCredentialStore struct {
	userID string
	err    error
}

func (f fakeCredentialStore) ValidateToken(context.Context, string) (string, error) {
	return f.userID, f.err
}

func TestMountPage_ValidDirectivePublished(t *testing.T) {
	repo := newFakeDecisionRepo()
	repo.responses["search"] = []byte(`{"component_type":"banner","title":"Hello","body":"b","priority":"low","cta_list":[{"label":"Go","action":"manage_existing"}]}`)
	svc := NewService(repo, fakeCredentialStore{userID: "u1"}, nil, nil)

	rendered := svc.MountPage(context.Background(), "s1", "search", "tok")

	if rendered == nil {
		t.Fatal("MountPage returned nil for a valid directive")
	}
	if rendered.Title != "Hello" || rendered.Layout != domain.LayoutStrip {
		t.Errorf("rendered = %+v", rendered)
	}
	if got := svc.Current("s1"); got != rendered {
		t.Errorf("Current = %+v, want the mounted widget", got)
	}
}

func TestMountPage_AnonymousSessionSkipsFetch(t *testing.T) {
	repo := newFakeDecisionRepo()
	svc := NewService(repo, fakeCredentialStore{userID: "u1"}, nil, nil)

	if got := svc.MountPage(context.Background(), "s1", "search", ""); got != nil {
		t.Errorf("anonymous mount returned %+v, want nil", got)
	}
	if n := atomic.LoadInt32(&repo.getCalls); n != 0 {
		t.Errorf("GetWidget called %d times for an anonymous session", n)
	}
}

func TestMountPage_RejectedCredentialSkipsFetch(t *testing.T) {
	repo := newFakeDecisionRepo()
	svc := NewService(repo, fakeCredentialStore{err: errors.New("not found")}, nil, nil)

	if got := svc.MountPage(context.Background(), "s1", "search", "expired"); got != nil {
		t.Errorf("rejected credential returned %+v, want nil", got)
	}
	if n := atomic.LoadInt32(&repo.getCalls); n != 0 {
		t.Errorf("GetWidget called %d times after credential rejection", n)
	}
}

func TestMountPage_FetchErrorDegradesToNoDirective(t *testing.T) {
	repo := newFakeDecisionRepo()
	repo.errs["search"] = errors.New("upstream 503")
	svc := NewService(repo, fakeCredentialStore{userID: "u1"}, nil, nil)

	if got := svc.MountPage(context.Background(), "s1", "search", "tok"); got != nil {
		t.Errorf("fetch error returned %+v, want nil", got)
	}
	if got := svc.Current("s1"); got != nil {
		t.Errorf("Current = %+v after failed fetch, want nil", got)
	}
}

func TestMountPage_AckStringMeansNoDirective(t *testing.T) {
	repo := newFakeDecisionRepo()
	repo.responses["payment"] = []byte(`"Tracked."`)
	svc := NewService(repo, fakeCredentialStore{userID: "u1"}, nil, nil)

	if got := svc.MountPage(context.Background(), "s1", "payment", "tok"); got != nil {
		t.Errorf("ack response produced a widget: %+v", got)
	}
}

func TestMountPage_StaleResponseDropped(t *testing.T) {
	repo := newFakeDecisionRepo()
	repo.responses["search"] = []byte(`{"component_type":"popup","title":"Old","body":"b","priority":"high","cta_list":[{"label":"Go","action":"go"}]}`)
	repo.responses["results"] = []byte(`{"component_type":"popup","title":"New","body":"b","priority":"high","cta_list":[{"label":"Go","action":"go"}]}`)
	gate := make(chan struct{})
	repo.blockOn["search"] = gate
	repo.entered = make(chan string, 1)

	svc := NewService(repo, fakeCredentialStore{userID: "u1"}, nil, nil)

	slow := make(chan *domain.RenderedWidget, 1)
	go func() {
		slow <- svc.MountPage(context.Background(), "s1", "search", "tok")
	}()

	// Wait until the first mount is inside its upstream call, then let a
	// second mount for the same session finish first.
	select {
	case <-repo.entered:
	case <-time.After(2 * time.Second):
		t.Fatal("first mount never reached the upstream call")
	}

	fresh := svc.MountPage(context.Background(), "s1", "results", "tok")
	if fresh == nil || fresh.Title != "New" {
		t.Fatalf("second mount = %+v, want the fresh directive", fresh)
	}

	close(gate)
	select {
	case got := <-slow:
		if got != nil {
			t.Errorf("superseded mount returned %+v, want nil", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("superseded mount never returned")
	}

	if cur := svc.Current("s1"); cur == nil || cur.Title != "New" {
		t.Errorf("Current = %+v, want the fresh directive to survive", cur)
	}
}

func TestDispatchAction_DropsDirectiveAfterDispatch(t *testing.T) {
	repo := newFakeDecisionRepo()
	repo.responses["addons"] = []byte(`{"component_type":"popup","title":"Bundle","body":"b","priority":"high","cta_list":[{"label":"Apply","action":"apply_bundle"}]}`)
	svc := NewService(repo, fakeCredentialStore{userID: "u1"}, nil, nil)

	svc.SeedPageState("s1", nil, []domain.Ancillary{{ID: 1}, {ID: 2}, {ID: 3}, {ID: 4}})
	if got := svc.MountPage(context.Background(), "s1", "addons", "tok"); got == nil {
		t.Fatal("mount failed")
	}

	outcome, state := svc.DispatchAction("s1", "addons", "apply_bundle")

	if !outcome.Handled {
		t.Error("apply_bundle not handled")
	}
	if len(state.SelectedAncillaries) != 3 {
		t.Errorf("SelectedAncillaries = %v", state.SelectedAncillaries)
	}
	if got := svc.Current("s1"); got != nil {
		t.Errorf("directive survived its own dispatch: %+v", got)
	}
}

func TestDispatchAction_UnknownTokenStillDismisses(t *testing.T) {
	repo := newFakeDecisionRepo()
	repo.responses["search"] = []byte(`{"component_type":"popup","title":"T","body":"b","priority":"high","cta_list":[{"label":"Go","action":"mystery"}]}`)
	svc := NewService(repo, fakeCredentialStore{userID: "u1"}, nil, nil)

	if got := svc.MountPage(context.Background(), "s1", "search", "tok"); got == nil {
		t.Fatal("mount failed")
	}

	outcome, _ := svc.DispatchAction("s1", "search", "mystery")
	if outcome.Handled {
		t.Error("unregistered token reported as handled")
	}
	if got := svc.Current("s1"); got != nil {
		t.Error("directive survived an unhandled dispatch")
	}
}

func TestDispatchAction_ReplayAfterDismissIsInert(t *testing.T) {
	repo := newFakeDecisionRepo()
	repo.responses["addons"] = []byte(`{"component_type":"popup","title":"Bundle","body":"b","priority":"high","cta_list":[{"label":"Apply","action":"apply_bundle"}]}`)
	svc := NewService(repo, fakeCredentialStore{userID: "u1"}, nil, nil)

	svc.SeedPageState("s1", nil, []domain.Ancillary{{ID: 1}, {ID: 2}, {ID: 3}})
	if got := svc.MountPage(context.Background(), "s1", "addons", "tok"); got == nil {
		t.Fatal("mount failed")
	}

	if outcome, _ := svc.DispatchAction("s1", "addons", "apply_bundle"); !outcome.Handled {
		t.Fatal("first dispatch not handled")
	}

	// New catalog after the dismiss: a replay of the same token must not
	// re-run the handler against it.
	svc.SeedPageState("s1", nil, []domain.Ancillary{{ID: 5}, {ID: 6}, {ID: 7}})

	outcome, state := svc.DispatchAction("s1", "addons", "apply_bundle")
	if outcome.Handled {
		t.Error("replayed dispatch reported as handled")
	}
	if len(state.SelectedAncillaries) != 3 || state.SelectedAncillaries[0] != 1 {
		t.Errorf("SelectedAncillaries = %v, want the first dispatch's picks untouched", state.SelectedAncillaries)
	}
}

func TestSeedPageState_NilSlicesLeaveExisting(t *testing.T) {
	svc := NewService(newFakeDecisionRepo(), fakeCredentialStore{userID: "u1"}, nil, nil)

	svc.SeedPageState("s1", []domain.Flight{{ID: 7}}, nil)
	state := svc.SeedPageState("s1", nil, []domain.Ancillary{{ID: 9}})

	if len(state.Flights) != 1 || state.Flights[0].ID != 7 {
		t.Errorf("Flights = %+v, want the earlier seed kept", state.Flights)
	}
	if len(state.Ancillaries) != 1 || state.Ancillaries[0].ID != 9 {
		t.Errorf("Ancillaries = %+v", state.Ancillaries)
	}
}
