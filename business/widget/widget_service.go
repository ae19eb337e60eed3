package widget

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"skyVoyage/domain"
	"skyVoyage/pkg/logger"
	"skyVoyage/pkg/metrics"

	"gorm.io/datatypes"
)

// ---- Repository interfaces ----

// DecisionRepository talks to the upstream personalization backend. The raw
// widget payload is returned as-is; parsing happens in this package.
type DecisionRepository interface {
	GetWidget(ctx context.Context, page, token string) ([]byte, error)
	TrackPageVisit(ctx context.Context, page, token string) error
}

// CredentialStore is the read-only view of the auth collaborator's
// key-value token store. An unknown token is an error result, not a panic
// and not an anonymous fallthrough decided here.
type CredentialStore interface {
	ValidateToken(ctx context.Context, token string) (string, error)
}

type EngagementRepository interface {
	SaveEvent(ctx context.Context, event domain.EngagementEvent) error
}

// ---- Service ----

type Service struct {
	decisionRepo   DecisionRepository
	credentials    CredentialStore
	engagementRepo EngagementRepository
	router         *ActionRouter

	mu       sync.Mutex
	sessions map[string]*pageSession

	trackTimeout time.Duration
}

// pageSession is the state one browsing session owns: the page it is on,
// the active directive with its supersede version, and the page state the
// action tables mutate.
type pageSession struct {
	page      string
	version   uint64
	directive *domain.WidgetDirective
	rendered  *domain.RenderedWidget
	state     PageState
	lastError string
	userID    string
}

func NewService(
	decisionRepo DecisionRepository,
	credentials CredentialStore,
	engagementRepo EngagementRepository,
	router *ActionRouter,
) *Service {
	if router == nil {
		router = NewActionRouter()
	}
	return &Service{
		decisionRepo:   decisionRepo,
		credentials:    credentials,
		engagementRepo: engagementRepo,
		router:         router,
		sessions:       make(map[string]*pageSession),
		trackTimeout:   3 * time.Second,
	}
}

func (s *Service) session(id string) *pageSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		sess = &pageSession{}
		s.sessions[id] = sess
	}
	return sess
}

// MountPage runs one fetch cycle for a page mount: track the visit
// fire-and-forget, fetch the directive, parse it, and publish it into the
// session, unless a later mount superseded this one in the meantime, in
// which case the response is dropped. Personalization is only offered to
// authenticated sessions: without a valid credential this is a no-op.
//
// Every failure on this path degrades to "no directive" with a recorded
// reason; it is never surfaced as an error to the page.
func (s *Service) MountPage(ctx context.Context, sessionID, page, token string) *domain.RenderedWidget {
	sess := s.session(sessionID)

	s.mu.Lock()
	sess.page = page
	sess.version++
	version := sess.version
	sess.directive = nil
	sess.rendered = nil
	sess.lastError = ""
	s.mu.Unlock()

	if token == "" {
		return nil
	}

	userID := ""
	if s.credentials != nil {
		id, err := s.credentials.ValidateToken(ctx, token)
		if err != nil {
			logger.Debug("widget fetch skipped, credential not accepted",
				"page", page, "error", err)
			return nil
		}
		userID = id
	}

	s.mu.Lock()
	sess.userID = userID
	s.mu.Unlock()

	// Tracking is independent of the directive request: its latency and its
	// failures must not block directive retrieval.
	go s.trackVisit(page, token)

	start := time.Now()
	raw, err := s.decisionRepo.GetWidget(ctx, page, token)
	metrics.WidgetFetchLatency.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.WidgetFetchFailures.WithLabelValues(page, "fetch").Inc()
		s.recordFailure(sess, version, fmt.Sprintf("widget fetch: %v", err))
		return nil
	}

	directive := ParseDirective(raw)
	if directive == nil && len(raw) > 0 {
		metrics.WidgetFetchFailures.WithLabelValues(page, "no_directive").Inc()
	}
	rendered := RenderDirective(directive)

	s.mu.Lock()
	if sess.version != version {
		s.mu.Unlock()
		// A newer mount owns the session now; this response must never
		// become its directive.
		metrics.WidgetStaleDrops.Inc()
		logger.Debug("stale widget response dropped", "page", page, "version", version)
		return nil
	}
	sess.directive = directive
	sess.rendered = rendered
	s.mu.Unlock()

	if directive != nil {
		metrics.WidgetDirectivesServed.WithLabelValues(page, string(directive.ComponentType)).Inc()
		s.logEngagement(sessionID, sess, domain.EngagementImpression, "", map[string]any{
			"shape":    string(directive.ComponentType),
			"priority": string(directive.Priority),
		})
	}

	return rendered
}

func (s *Service) trackVisit(page, token string) {
	ctx, cancel := context.WithTimeout(context.Background(), s.trackTimeout)
	defer cancel()

	if err := s.decisionRepo.TrackPageVisit(ctx, page, token); err != nil {
		logger.Debug("page visit tracking failed", "page", page, "error", err)
	}
}

func (s *Service) recordFailure(sess *pageSession, version uint64, reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess.version != version {
		return
	}
	sess.lastError = reason
	logger.Debug("widget fetch degraded to no directive", "reason", reason)
}

// DispatchAction routes an action token through the page's dispatch table
// and then drops the directive. An action is a one-shot interaction: the
// handler only runs while the session still holds a directive, so a
// replayed or duplicated call after the dismiss degrades to the
// acknowledgement with no state change.
func (s *Service) DispatchAction(sessionID, page, token string) (ActionOutcome, PageState) {
	sess := s.session(sessionID)

	s.mu.Lock()
	var outcome ActionOutcome
	if sess.directive != nil {
		outcome = s.router.Dispatch(page, token, &sess.state)
	} else {
		outcome = ActionOutcome{Acknowledgement: fmt.Sprintf("Processing: %s", token)}
	}
	sess.directive = nil
	sess.rendered = nil
	state := sess.state
	s.mu.Unlock()

	metrics.WidgetActionDispatches.WithLabelValues(page, strconv.FormatBool(outcome.Handled)).Inc()
	s.logEngagement(sessionID, sess, domain.EngagementAction, token, map[string]any{
		"handled": outcome.Handled,
	})

	return outcome, state
}

// Dismiss drops the session's directive without running any handler.
func (s *Service) Dismiss(sessionID string) {
	sess := s.session(sessionID)

	s.mu.Lock()
	had := sess.directive != nil
	page := sess.page
	sess.directive = nil
	sess.rendered = nil
	s.mu.Unlock()

	if had {
		s.logEngagement(sessionID, sess, domain.EngagementDismiss, "", map[string]any{
			"page": page,
		})
	}
}

// Current returns the directive view the session holds, if any.
func (s *Service) Current(sessionID string) *domain.RenderedWidget {
	sess := s.session(sessionID)

	s.mu.Lock()
	defer s.mu.Unlock()
	return sess.rendered
}

// SeedPageState stores the list data a page is showing so action handlers
// have something to operate on. Nil slices leave the existing values alone.
func (s *Service) SeedPageState(sessionID string, flights []domain.Flight, ancillaries []domain.Ancillary) PageState {
	sess := s.session(sessionID)

	s.mu.Lock()
	defer s.mu.Unlock()

	if flights != nil {
		sess.state.Flights = flights
	}
	if ancillaries != nil {
		sess.state.Ancillaries = ancillaries
	}
	return sess.state
}

func (s *Service) logEngagement(sessionID string, sess *pageSession, eventType, token string, extra map[string]any) {
	if s.engagementRepo == nil {
		return
	}

	s.mu.Lock()
	page := sess.page
	userID := sess.userID
	s.mu.Unlock()

	event := domain.EngagementEvent{
		UserID:    userID,
		SessionID: sessionID,
		Page:      page,
		EventType: eventType,
		Token:     token,
		Context:   datatypes.JSONMap(extra),
	}

	// Best effort: the analysis log must never block or fail the page.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.trackTimeout)
		defer cancel()

		if err := s.engagementRepo.SaveEvent(ctx, event); err != nil {
			logger.Debug("engagement event not saved", "event_type", eventType, "error", err)
		}
	}()
}
