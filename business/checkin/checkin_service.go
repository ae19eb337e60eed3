package checkin

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"skyVoyage/domain"
	"skyVoyage/pkg/logger"
	"skyVoyage/pkg/metrics"
)

var ErrNoActiveCheckin = errors.New("no booking has been looked up in this session")

// BookingCoreRepository is the outbound contract to the booking backend.
type BookingCoreRepository interface {
	FindBooking(ctx context.Context, pnr, email, token string) (*domain.CheckinRecord, error)
	AssignSeat(ctx context.Context, pnr string, flightID int, seatID, token string) (*domain.SeatAssignment, error)
}

// SeatView is one seat of the map annotated with its client-side state.
type SeatView struct {
	domain.Seat
	State domain.SeatState `json:"state"`
}

// CheckinView is what the check-in page receives: the booking, the seat map
// with states, the locally derived upgrade recommendation, and, when the
// decision service supplied one, the one-shot modal recommendation.
type CheckinView struct {
	Booking        domain.Booking               `json:"booking"`
	PassengerInfo  domain.PassengerInfo         `json:"passenger_info"`
	Seats          []SeatView                   `json:"seats"`
	Recommendation *domain.RecommendationResult `json:"recommendation,omitempty"`
	ModalSeat      *domain.RecommendedSeat      `json:"modal_recommendation,omitempty"`
	Message        string                       `json:"message,omitempty"`
}

type checkinSession struct {
	pnr       string
	email     string
	record    *domain.CheckinRecord
	inventory *Inventory
	inFlight  bool
}

// Service drives the check-in flow: booking lookup, the seat selection
// state machine, and the mandatory re-read after every assignment.
type Service struct {
	bookingRepo BookingCoreRepository

	mu       sync.Mutex
	sessions map[string]*checkinSession
}

func NewService(bookingRepo BookingCoreRepository) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		sessions:    make(map[string]*checkinSession),
	}
}

func (s *Service) session(id string) *checkinSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		sess = &checkinSession{}
		s.sessions[id] = sess
	}
	return sess
}

// Find looks up a booking by PNR and email. A lookup failure is the one path
// where the error is the user's own input error, so it is surfaced directly
// rather than degraded.
func (s *Service) Find(ctx context.Context, sessionID, pnr, email, token string) (*CheckinView, error) {
	record, err := s.bookingRepo.FindBooking(ctx, pnr, email, token)
	if err != nil {
		return nil, fmt.Errorf("find booking: %w", err)
	}

	sess := s.session(sessionID)

	s.mu.Lock()
	sess.pnr = pnr
	sess.email = email
	sess.record = record
	sess.inventory = NewInventory(record.SeatMap, record.Booking.SelectedSeats)
	s.mu.Unlock()

	return s.view(sess, ""), nil
}

// SelectSeat runs one assignment attempt through the seat state machine:
// optimistic pending marker, assignment request, then a full snapshot
// refresh on success or a rollback plus best-effort refresh on failure.
// Attempts are serialized per session; a second click while one is pending
// is rejected, never queued.
func (s *Service) SelectSeat(ctx context.Context, sessionID, seatID, token string) (*CheckinView, error) {
	sess := s.session(sessionID)

	s.mu.Lock()
	if sess.record == nil {
		s.mu.Unlock()
		return nil, ErrNoActiveCheckin
	}
	if sess.inFlight {
		s.mu.Unlock()
		metrics.SeatAssignments.WithLabelValues("rejected_pending").Inc()
		return nil, ErrSelectionPending
	}
	if err := sess.inventory.BeginSelection(seatID); err != nil {
		s.mu.Unlock()
		metrics.SeatAssignments.WithLabelValues("rejected_state").Inc()
		return nil, err
	}
	sess.inFlight = true
	pnr := sess.pnr
	email := sess.email
	flightID := sess.record.Booking.FlightID
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		sess.inFlight = false
		s.mu.Unlock()
	}()

	result, err := s.bookingRepo.AssignSeat(ctx, pnr, flightID, seatID, token)
	if err != nil || !result.Success {
		reason := "assignment request failed"
		if err == nil {
			reason = result.Message
		}
		metrics.SeatAssignments.WithLabelValues("conflict").Inc()
		logger.Info("seat assignment rejected",
			"pnr", pnr, "seat_id", seatID, "reason", reason)

		s.mu.Lock()
		sess.inventory.RollbackSelection()
		s.mu.Unlock()

		// Best effort: show current truth after a conflict. A failed
		// refresh keeps the rolled-back snapshot, which is still consistent.
		s.refresh(ctx, sess, pnr, email, token)

		if err != nil {
			return nil, fmt.Errorf("assign seat: %w", err)
		}
		return nil, fmt.Errorf("assign seat: %s", result.Message)
	}

	metrics.SeatAssignments.WithLabelValues("success").Inc()

	// The snapshot after a successful assignment is always a fresh server
	// read, never a local patch of the single seat.
	if err := s.refresh(ctx, sess, pnr, email, token); err != nil {
		// The assignment stood; only the re-read failed. Clear the pending
		// marker so later attempts are not rejected, and let the stale
		// snapshot stand until the next lookup.
		s.mu.Lock()
		sess.inventory.RollbackSelection()
		s.mu.Unlock()
		return nil, fmt.Errorf("refresh after assignment: %w", err)
	}

	return s.view(sess, result.Message), nil
}

func (s *Service) refresh(ctx context.Context, sess *checkinSession, pnr, email, token string) error {
	record, err := s.bookingRepo.FindBooking(ctx, pnr, email, token)
	if err != nil {
		logger.Warn("seat map refresh failed", "pnr", pnr, "error", err)
		return err
	}

	s.mu.Lock()
	sess.record = record
	sess.inventory.Refresh(record.SeatMap, record.Booking.SelectedSeats)
	s.mu.Unlock()

	return nil
}

// View returns the current check-in state for a session.
func (s *Service) View(sessionID string) (*CheckinView, error) {
	sess := s.session(sessionID)

	s.mu.Lock()
	none := sess.record == nil
	s.mu.Unlock()
	if none {
		return nil, ErrNoActiveCheckin
	}
	return s.view(sess, ""), nil
}

func (s *Service) view(sess *checkinSession, message string) *CheckinView {
	s.mu.Lock()
	defer s.mu.Unlock()

	record := sess.record
	inv := sess.inventory

	seats := make([]SeatView, 0, len(record.SeatMap))
	for _, seat := range inv.Seats() {
		seats = append(seats, SeatView{Seat: seat, State: inv.StateOf(seat.SeatID)})
	}

	var signal domain.PreferenceSignal
	if len(record.Booking.AnalyticsBookingDetails) > 0 {
		signal = record.Booking.AnalyticsBookingDetails[0]
	}

	view := &CheckinView{
		Booking:        record.Booking,
		PassengerInfo:  record.PassengerInfo,
		Seats:          seats,
		Recommendation: Recommend(signal, inv.Available()),
		Message:        message,
	}

	// Only the nested response.recommended_seat contract is honored; the
	// old flat field path is superseded.
	if record.AgentResponse.Response != nil {
		view.ModalSeat = record.AgentResponse.Response.RecommendedSeat
	}

	if view.Recommendation != nil && view.ModalSeat != nil {
		view.Recommendation.DisplayPrice = DisplayPrice(view.ModalSeat.PriceUpgrade, signal)
		view.Recommendation.Features = view.ModalSeat.Features
	}

	return view
}
