package checkin

import (
	"math"

	"skyVoyage/domain"
)

// Display price used when no spend history exists. Presentation only; the
// authoritative price is whatever the assignment confirmation returns.
const fallbackDisplayPrice = 3200

// Divisor turning historical spend into a display upgrade price.
const spendPriceDivisor = 20

// PreferredSeatKind derives the passenger's seat-kind preference from
// historical choices. Ties favor window.
func PreferredSeatKind(sig domain.PreferenceSignal) string {
	if sig.AisleCount > sig.WindowCount {
		return domain.SeatKindAisle
	}
	return domain.SeatKindWindow
}

// MatchSeat picks the first available seat of the preferred kind, falling
// back to the first available seat of any kind. The inventory's order is
// preserved as returned. Order stability is the inventory's concern, not
// the matcher's. Returns nil when nothing is available.
func MatchSeat(sig domain.PreferenceSignal, available []domain.Seat) *domain.Seat {
	preferred := PreferredSeatKind(sig)
	for i := range available {
		if available[i].SeatType == preferred {
			return &available[i]
		}
	}
	if len(available) > 0 {
		return &available[0]
	}
	return nil
}

// DisplayPrice derives the upgrade price shown next to a recommendation. A
// server-supplied price wins verbatim; otherwise the price comes from the
// spend history, with a fixed fallback when no signal exists.
func DisplayPrice(serverPrice float64, sig domain.PreferenceSignal) float64 {
	if serverPrice > 0 {
		return serverPrice
	}
	if sig.TotalSpend > 0 {
		return math.Round(sig.TotalSpend / spendPriceDivisor)
	}
	return fallbackDisplayPrice
}

// Recommend derives the inline upgrade recommendation from the preference
// signal and the current available-seat set. Recomputed on every inventory
// refresh; nil when no seat is available at all.
func Recommend(sig domain.PreferenceSignal, available []domain.Seat) *domain.RecommendationResult {
	seat := MatchSeat(sig, available)
	if seat == nil {
		return nil
	}

	preferred := PreferredSeatKind(sig)
	remaining := 0
	for _, s := range available {
		if s.SeatType == preferred {
			remaining++
		}
	}

	return &domain.RecommendationResult{
		SeatID:             seat.SeatID,
		SeatType:           seat.SeatType,
		Rationale:          "Matched to your preference based on previous trips",
		DisplayPrice:       DisplayPrice(0, sig),
		PreferredKind:      preferred,
		PreferredRemaining: remaining,
	}
}
