package widget

import (
	"fmt"
	"sort"

	"skyVoyage/domain"
)

// Page contexts the gateway knows dispatch tables for. The context string is
// opaque: the same action token may mean different things on different
// pages, so handlers are keyed by (page, token).
const (
	PageSearch  = "search"
	PageResults = "results"
	PageAddons  = "addons"
	PagePayment = "payment"
)

// Number of add-ons pre-selected by the bundle action.
const bundleSize = 3

// PageState is the per-session state a page has handed the gateway: the
// flight list being shown, the add-on catalog with the user's picks, and the
// active payment method. Action handlers mutate it in place.
type PageState struct {
	Flights             []domain.Flight    `json:"flights,omitempty"`
	Ancillaries         []domain.Ancillary `json:"ancillaries,omitempty"`
	SelectedAncillaries []int              `json:"selected_ancillaries,omitempty"`
	PaymentMethod       string             `json:"payment_method,omitempty"`
}

// ActionOutcome is what a dispatch produced. Acknowledgement is always set;
// NavigateTo is a hint for the page shell. Handled is false when the token
// fell through to the acknowledgement-only path.
type ActionOutcome struct {
	Acknowledgement string `json:"acknowledgement"`
	NavigateTo      string `json:"navigate_to,omitempty"`
	Handled         bool   `json:"handled"`
}

type ActionHandler func(state *PageState, outcome *ActionOutcome)

// ActionRouter holds the per-page token dispatch tables. An unknown
// (page, token) pair is never an error: it resolves to the acknowledgement
// with no state change. The caller dismisses the directive after every
// dispatch, known or not, so a token fires at most once.
type ActionRouter struct {
	tables map[string]map[string]ActionHandler
}

// NewActionRouter builds the router with the default page tables.
func NewActionRouter() *ActionRouter {
	r := &ActionRouter{tables: make(map[string]map[string]ActionHandler)}

	r.Register(PageSearch, "manage_existing", func(_ *PageState, out *ActionOutcome) {
		out.NavigateTo = "/bookings"
	})
	r.Register(PageSearch, "continue_search", func(_ *PageState, _ *ActionOutcome) {
		// dismiss-only; the caller drops the directive after every dispatch
	})

	r.Register(PageResults, "show_cheapest", func(state *PageState, _ *ActionOutcome) {
		sort.SliceStable(state.Flights, func(i, j int) bool {
			return state.Flights[i].Price < state.Flights[j].Price
		})
	})

	r.Register(PageAddons, "apply_bundle", func(state *PageState, out *ActionOutcome) {
		n := bundleSize
		if n > len(state.Ancillaries) {
			n = len(state.Ancillaries)
		}
		picked := make([]int, 0, n)
		for _, a := range state.Ancillaries[:n] {
			picked = append(picked, a.ID)
		}
		state.SelectedAncillaries = picked
		out.Acknowledgement = "Recommended add-ons have been selected for you"
	})
	r.Register(PageAddons, "skip_addons", func(_ *PageState, out *ActionOutcome) {
		out.NavigateTo = "/payment"
	})

	r.Register(PagePayment, "upi_offer", switchPaymentMethod(domain.PaymentMethodWallet))
	r.Register(PagePayment, "wallet_offer", switchPaymentMethod(domain.PaymentMethodWallet))
	r.Register(PagePayment, "card_offer", switchPaymentMethod(domain.PaymentMethodCreditCard))

	return r
}

func switchPaymentMethod(method string) ActionHandler {
	return func(state *PageState, _ *ActionOutcome) {
		state.PaymentMethod = method
	}
}

func (r *ActionRouter) Register(page, token string, h ActionHandler) {
	table, ok := r.tables[page]
	if !ok {
		table = make(map[string]ActionHandler)
		r.tables[page] = table
	}
	table[token] = h
}

// Dispatch runs the handler registered for (page, token) against the page
// state. Unknown tokens resolve to the acknowledgement-only outcome.
func (r *ActionRouter) Dispatch(page, token string, state *PageState) ActionOutcome {
	outcome := ActionOutcome{
		Acknowledgement: fmt.Sprintf("Processing: %s", token),
	}

	if table, ok := r.tables[page]; ok {
		if h, ok := table[token]; ok {
			h(state, &outcome)
			outcome.Handled = true
		}
	}

	return outcome
}
