package checkin

import (
	"errors"

	"skyVoyage/domain"
)

var (
	ErrSeatUnknown      = errors.New("seat is not on this flight's seat map")
	ErrSeatOccupied     = errors.New("seat is already taken")
	ErrSelectionPending = errors.New("another seat selection is still in progress")
	ErrSeatAlreadyOwned = errors.New("seat is already assigned to this booking")
)

// Inventory is the client-side view of one flight's seat map: the snapshot
// last read from the booking core plus at most one locally pending
// selection. The booking core stays the system of record: after a
// successful assignment the whole snapshot is replaced by a fresh read, not
// patched, because remote occupancy may have changed concurrently.
type Inventory struct {
	seats    []domain.Seat
	assigned map[string]bool
	pending  string
}

// NewInventory builds the view from a seat map snapshot and the seats the
// booking already holds.
func NewInventory(seats []domain.Seat, assignedSeats []string) *Inventory {
	inv := &Inventory{
		seats:    append([]domain.Seat(nil), seats...),
		assigned: make(map[string]bool, len(assignedSeats)),
	}
	for _, id := range assignedSeats {
		inv.assigned[id] = true
	}
	return inv
}

// Seats returns the snapshot in the order the booking core returned it.
func (inv *Inventory) Seats() []domain.Seat {
	return append([]domain.Seat(nil), inv.seats...)
}

// Available returns the seats open for selection, snapshot order preserved.
func (inv *Inventory) Available() []domain.Seat {
	out := make([]domain.Seat, 0, len(inv.seats))
	for _, seat := range inv.seats {
		if inv.StateOf(seat.SeatID) == domain.SeatAvailable {
			out = append(out, seat)
		}
	}
	return out
}

func (inv *Inventory) seat(seatID string) *domain.Seat {
	for i := range inv.seats {
		if inv.seats[i].SeatID == seatID {
			return &inv.seats[i]
		}
	}
	return nil
}

// StateOf reports the client-side state of one seat.
func (inv *Inventory) StateOf(seatID string) domain.SeatState {
	seat := inv.seat(seatID)
	if seat == nil {
		return ""
	}
	switch {
	case inv.assigned[seatID]:
		return domain.SeatAssigned
	case seat.Booked:
		return domain.SeatOccupied
	case inv.pending == seatID:
		return domain.SeatPending
	default:
		return domain.SeatAvailable
	}
}

// BeginSelection places the optimistic pending marker on a seat. The
// transition is only accepted from Available, and only while no other
// selection is pending.
func (inv *Inventory) BeginSelection(seatID string) error {
	if inv.pending != "" {
		return ErrSelectionPending
	}

	switch inv.StateOf(seatID) {
	case domain.SeatAvailable:
		inv.pending = seatID
		return nil
	case domain.SeatAssigned:
		return ErrSeatAlreadyOwned
	case domain.SeatOccupied:
		return ErrSeatOccupied
	default:
		return ErrSeatUnknown
	}
}

// RollbackSelection reverts the pending seat to available after a failed
// assignment. The rest of the snapshot is untouched.
func (inv *Inventory) RollbackSelection() {
	inv.pending = ""
}

// Refresh replaces the entire snapshot with a fresh server read and clears
// the pending marker. Called after every successful assignment and after a
// conflict, so the user always sees current truth.
func (inv *Inventory) Refresh(seats []domain.Seat, assignedSeats []string) {
	inv.seats = append([]domain.Seat(nil), seats...)
	inv.assigned = make(map[string]bool, len(assignedSeats))
	for _, id := range assignedSeats {
		inv.assigned[id] = true
	}
	inv.pending = ""
}
