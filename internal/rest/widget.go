package rest

import (
	"context"
	"net/http"

	"skyVoyage/business/widget"
	"skyVoyage/domain"
	"skyVoyage/internal/middleware"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// HeaderSessionID carries the browsing session across requests. A mount
// without one starts a new session.
const HeaderSessionID = "X-Session-ID"

// ResponseError represent the response error struct
type ResponseError struct {
	Message string `json:"message"`
}

type (
	WidgetHandler struct {
		validate      *validator.Validate
		widgetService WidgetService
	}

	WidgetService interface {
		MountPage(ctx context.Context, sessionID, page, token string) *domain.RenderedWidget
		DispatchAction(sessionID, page, token string) (widget.ActionOutcome, widget.PageState)
		Dismiss(sessionID string)
		Current(sessionID string) *domain.RenderedWidget
		SeedPageState(sessionID string, flights []domain.Flight, ancillaries []domain.Ancillary) widget.PageState
	}

	MountRequest struct {
		Page string `json:"page" validate:"required"`
	}

	ActionRequest struct {
		Page  string `json:"page" validate:"required"`
		Token string `json:"token" validate:"required"`
	}

	PageDataRequest struct {
		Flights     []domain.Flight    `json:"flights,omitempty"`
		Ancillaries []domain.Ancillary `json:"ancillaries,omitempty"`
	}

	MountResponse struct {
		SessionID string                 `json:"session_id"`
		Widget    *domain.RenderedWidget `json:"widget"`
	}

	ActionResponse struct {
		SessionID string               `json:"session_id"`
		Outcome   widget.ActionOutcome `json:"outcome"`
		PageState widget.PageState     `json:"page_state"`
	}
)

func NewWidgetHandler(svc WidgetService) *WidgetHandler {
	return &WidgetHandler{
		validate:      validator.New(),
		widgetService: svc,
	}
}

func (h *WidgetHandler) sessionID(c echo.Context) string {
	if id := c.Request().Header.Get(HeaderSessionID); id != "" {
		return id
	}
	return uuid.NewString()
}

// Mount is called on every page mount. The bearer token is optional here:
// anonymous sessions simply get no widget, never a 401.
func (h *WidgetHandler) Mount(c echo.Context) error {
	var req MountRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	sessionID := h.sessionID(c)
	token, _ := middleware.BearerToken(c)

	rendered := h.widgetService.MountPage(c.Request().Context(), sessionID, req.Page, token)

	return c.JSON(http.StatusOK, fres.Response.StatusOK(MountResponse{
		SessionID: sessionID,
		Widget:    rendered,
	}))
}

func (h *WidgetHandler) Action(c echo.Context) error {
	var req ActionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	sessionID := h.sessionID(c)
	outcome, state := h.widgetService.DispatchAction(sessionID, req.Page, req.Token)

	return c.JSON(http.StatusOK, fres.Response.StatusOK(ActionResponse{
		SessionID: sessionID,
		Outcome:   outcome,
		PageState: state,
	}))
}

func (h *WidgetHandler) Dismiss(c echo.Context) error {
	sessionID := h.sessionID(c)
	h.widgetService.Dismiss(sessionID)

	return c.JSON(http.StatusOK, fres.Response.StatusOK("dismissed"))
}

func (h *WidgetHandler) Current(c echo.Context) error {
	sessionID := h.sessionID(c)

	return c.JSON(http.StatusOK, fres.Response.StatusOK(MountResponse{
		SessionID: sessionID,
		Widget:    h.widgetService.Current(sessionID),
	}))
}

// PageData lets a page hand the gateway the lists it is showing, so action
// tokens like a results re-sort have real state to mutate.
func (h *WidgetHandler) PageData(c echo.Context) error {
	var req PageDataRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	sessionID := h.sessionID(c)
	state := h.widgetService.SeedPageState(sessionID, req.Flights, req.Ancillaries)

	return c.JSON(http.StatusOK, fres.Response.StatusOK(ActionResponse{
		SessionID: sessionID,
		PageState: state,
	}))
}
