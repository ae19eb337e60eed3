package domain

// WidgetShape is the presentation family a directive asks for. The decision
// service sends these as free-form strings; anything outside the known set
// is rendered through the fallback card.
type WidgetShape string

const (
	ShapePopup     WidgetShape = "popup"
	ShapeBanner    WidgetShape = "banner"
	ShapeSidePanel WidgetShape = "sidepanel"
)

type WidgetPriority string

const (
	PriorityHigh   WidgetPriority = "high"
	PriorityMedium WidgetPriority = "medium"
	PriorityLow    WidgetPriority = "low"
)

// WidgetPosition pins a banner (top/bottom) or side panel (left/right).
type WidgetPosition string

const (
	PositionTop    WidgetPosition = "top"
	PositionBottom WidgetPosition = "bottom"
	PositionLeft   WidgetPosition = "left"
	PositionRight  WidgetPosition = "right"
)

// WidgetCTA is one call-to-action entry. Action is an opaque token whose
// meaning is owned by the page that dispatches it.
type WidgetCTA struct {
	Label  string `json:"label"`
	Action string `json:"action"`
}

// WidgetDirective is the validated form of a decision-service widget
// payload. It lives only for the page mount that fetched it: it is dropped
// on dismiss, after any action, or when the session moves to another page.
type WidgetDirective struct {
	ComponentType WidgetShape    `json:"component_type"`
	Title         string         `json:"title"`
	Body          string         `json:"body"`
	CTAList       []WidgetCTA    `json:"cta_list"`
	Priority      WidgetPriority `json:"priority"`
	Position      WidgetPosition `json:"position,omitempty"`
	Icon          string         `json:"icon,omitempty"`
}

// WidgetLayout is the concrete presentation a directive renders to.
type WidgetLayout string

const (
	LayoutModal WidgetLayout = "modal"
	LayoutStrip WidgetLayout = "strip"
	LayoutPanel WidgetLayout = "panel"
	LayoutCard  WidgetLayout = "card"
)

// WidgetControl is one activation control of a rendered widget.
type WidgetControl struct {
	Label   string `json:"label"`
	Token   string `json:"token"`
	Primary bool   `json:"primary"`
}

// RenderedWidget is the view model handed to the page shell. Blocking means
// the widget must block interaction with the page until dismissed or acted
// on; Emphasis is a visual tier only and never changes layout or dismissal.
type RenderedWidget struct {
	Layout      WidgetLayout    `json:"layout"`
	Blocking    bool            `json:"blocking"`
	Position    WidgetPosition  `json:"position,omitempty"`
	Emphasis    WidgetPriority  `json:"emphasis"`
	Icon        string          `json:"icon"`
	Title       string          `json:"title"`
	Body        string          `json:"body"`
	Controls    []WidgetControl `json:"controls"`
	Dismissible bool            `json:"dismissible"`
}
