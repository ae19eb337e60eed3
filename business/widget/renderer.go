package widget

import "skyVoyage/domain"

// RenderDirective maps a directive to its presentation shape. Pure: same
// directive in, same view model out.
//
//   - popup: blocking centered modal, interaction with the page is held
//     until dismissed or acted on.
//   - banner: non-blocking strip pinned to the top or bottom edge.
//   - sidepanel: non-blocking panel pinned left or right, upper-middle
//     region of the viewport.
//   - anything else: inert non-blocking card, so a malformed-but-present
//     directive is still shown in the simplest safe form.
//
// Priority maps to an emphasis tier only; it never changes the layout and
// never affects dismissal.
func RenderDirective(d *domain.WidgetDirective) *domain.RenderedWidget {
	if d == nil {
		return nil
	}

	w := &domain.RenderedWidget{
		Emphasis:    emphasisTier(d.Priority),
		Icon:        d.Icon,
		Title:       d.Title,
		Body:        d.Body,
		Controls:    renderControls(d.CTAList),
		Dismissible: true,
	}

	switch d.ComponentType {
	case domain.ShapePopup:
		w.Layout = domain.LayoutModal
		w.Blocking = true
	case domain.ShapeBanner:
		w.Layout = domain.LayoutStrip
		w.Position = clampEdge(d.Position, domain.PositionTop, domain.PositionBottom)
	case domain.ShapeSidePanel:
		w.Layout = domain.LayoutPanel
		w.Position = clampEdge(d.Position, domain.PositionLeft, domain.PositionRight)
	default:
		w.Layout = domain.LayoutCard
	}

	return w
}

func renderControls(ctas []domain.WidgetCTA) []domain.WidgetControl {
	controls := make([]domain.WidgetControl, 0, len(ctas))
	for i, cta := range ctas {
		controls = append(controls, domain.WidgetControl{
			Label:   cta.Label,
			Token:   cta.Action,
			Primary: i == 0,
		})
	}
	return controls
}

func emphasisTier(p domain.WidgetPriority) domain.WidgetPriority {
	switch p {
	case domain.PriorityHigh, domain.PriorityMedium, domain.PriorityLow:
		return p
	default:
		return domain.PriorityMedium
	}
}

// clampEdge keeps the position on the axis the layout supports; anything
// else falls back to the layout's default edge.
func clampEdge(pos, def, alt domain.WidgetPosition) domain.WidgetPosition {
	if pos == alt {
		return alt
	}
	return def
}
