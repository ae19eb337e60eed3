//go:build !integration

package rest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"skyVoyage/business/checkin"
	"skyVoyage/domain"

	"github.com/labstack/echo/v4"
)

type fakeCheckinService struct {
	findSessions []string
	viewSessions []string
	views        map[string]*checkin.CheckinView
}

func newFakeCheckinService() *fakeCheckinService {
	return &fakeCheckinService{views: make(map[string]*checkin.CheckinView)}
}

func (f *fakeCheckinService) Find(_ context.Context, sessionID, pnr, _, _ string) (*checkin.CheckinView, error) {
	f.findSessions = append(f.findSessions, sessionID)
	view := &checkin.CheckinView{Booking: domain.Booking{PNR: pnr}}
	f.views[sessionID] = view
	return view, nil
}

func (f *fakeCheckinService) SelectSeat(_ context.Context, sessionID, _, _ string) (*checkin.CheckinView, error) {
	if view, ok := f.views[sessionID]; ok {
		return view, nil
	}
	return nil, checkin.ErrNoActiveCheckin
}

func (f *fakeCheckinService) View(sessionID string) (*checkin.CheckinView, error) {
	f.viewSessions = append(f.viewSessions, sessionID)
	if view, ok := f.views[sessionID]; ok {
		return view, nil
	}
	return nil, checkin.ErrNoActiveCheckin
}

func checkinContext(t *testing.T, method, body, userID string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	// A hostile or confused client may send any session header; the
	// check-in handlers must never key state on it.
	req.Header.Set(HeaderSessionID, "shared-session")

	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	if userID != "" {
		c.Set("user_id", userID)
		c.Set("token", "tok-"+userID)
	}
	return c, rec
}

func TestCheckinFind_SessionKeyedByAuthenticatedUser(t *testing.T) {
	svc := newFakeCheckinService()
	h := NewCheckinHandler(svc)

	c, rec := checkinContext(t, http.MethodPost,
		`{"pnr":"abc123","email":"alice@example.com"}`, "user-a")
	if err := h.Find(c); err != nil {
		t.Fatalf("Find: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	c, rec = checkinContext(t, http.MethodPost,
		`{"pnr":"xyz789","email":"bob@example.com"}`, "user-b")
	if err := h.Find(c); err != nil {
		t.Fatalf("Find: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	if len(svc.findSessions) != 2 ||
		svc.findSessions[0] != "user-a" || svc.findSessions[1] != "user-b" {
		t.Errorf("session keys = %v, want the authenticated user ids", svc.findSessions)
	}
}

func TestCheckinView_CannotReadAnotherUsersSession(t *testing.T) {
	svc := newFakeCheckinService()
	h := NewCheckinHandler(svc)

	c, rec := checkinContext(t, http.MethodPost,
		`{"pnr":"abc123","email":"alice@example.com"}`, "user-a")
	if err := h.Find(c); err != nil {
		t.Fatalf("Find: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	// Same session header, different authenticated user: the lookup must
	// resolve to user-b's own (empty) state, not user-a's booking.
	c, rec = checkinContext(t, http.MethodGet, "", "user-b")
	if err := h.View(c); err != nil {
		t.Fatalf("View: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 for a user with no check-in, body %s",
			rec.Code, rec.Body.String())
	}
	if len(svc.viewSessions) != 1 || svc.viewSessions[0] != "user-b" {
		t.Errorf("view session keys = %v", svc.viewSessions)
	}
}

func TestCheckinHandlers_RejectMissingIdentity(t *testing.T) {
	svc := newFakeCheckinService()
	h := NewCheckinHandler(svc)

	c, rec := checkinContext(t, http.MethodPost,
		`{"pnr":"abc123","email":"alice@example.com"}`, "")
	if err := h.Find(c); err != nil {
		t.Fatalf("Find: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Find status = %d, want 401", rec.Code)
	}
	if len(svc.findSessions) != 0 {
		t.Errorf("service reached without identity: %v", svc.findSessions)
	}

	c, rec = checkinContext(t, http.MethodGet, "", "")
	if err := h.View(c); err != nil {
		t.Fatalf("View: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("View status = %d, want 401", rec.Code)
	}

	c, rec = checkinContext(t, http.MethodPost, `{"seat_id":"12A"}`, "")
	if err := h.SelectSeat(c); err != nil {
		t.Fatalf("SelectSeat: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("SelectSeat status = %d, want 401", rec.Code)
	}
}
