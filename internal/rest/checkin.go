package rest

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"skyVoyage/business/checkin"
	"skyVoyage/internal/repository/bookingcore"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	CheckinHandler struct {
		validate       *validator.Validate
		checkinService CheckinService
		timeout        time.Duration
	}

	CheckinService interface {
		Find(ctx context.Context, sessionID, pnr, email, token string) (*checkin.CheckinView, error)
		SelectSeat(ctx context.Context, sessionID, seatID, token string) (*checkin.CheckinView, error)
		View(sessionID string) (*checkin.CheckinView, error)
	}

	CheckinFindRequest struct {
		PNR   string `json:"pnr" validate:"required"`
		Email string `json:"email" validate:"required,email"`
	}

	SelectSeatRequest struct {
		SeatID string `json:"seat_id" validate:"required"`
	}
)

func NewCheckinHandler(svc CheckinService) *CheckinHandler {
	return &CheckinHandler{
		validate:       validator.New(),
		checkinService: svc,
		timeout:        20 * time.Second,
	}
}

// sessionKey scopes check-in state to the authenticated user. The state
// holds booking and passenger data, so it must never be keyed on anything
// the client can choose, like the widget session header.
func sessionKey(c echo.Context) (string, bool) {
	userID, _ := c.Get("user_id").(string)
	return userID, userID != ""
}

func (h *CheckinHandler) Find(c echo.Context) error {
	var req CheckinFindRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	sessionID, ok := sessionKey(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "missing user identity"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	token, _ := c.Get("token").(string)

	view, err := h.checkinService.Find(ctx, sessionID, strings.ToUpper(req.PNR), req.Email, token)
	if err != nil {
		if errors.Is(err, bookingcore.ErrBookingNotFound) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusBadGateway, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(view))
}

func (h *CheckinHandler) SelectSeat(c echo.Context) error {
	var req SelectSeatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	sessionID, ok := sessionKey(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "missing user identity"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	token, _ := c.Get("token").(string)

	view, err := h.checkinService.SelectSeat(ctx, sessionID, req.SeatID, token)
	if err != nil {
		switch {
		case errors.Is(err, checkin.ErrNoActiveCheckin):
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		case errors.Is(err, checkin.ErrSelectionPending),
			errors.Is(err, checkin.ErrSeatOccupied),
			errors.Is(err, checkin.ErrSeatAlreadyOwned):
			return c.JSON(http.StatusConflict, ResponseError{Message: err.Error()})
		case errors.Is(err, checkin.ErrSeatUnknown):
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		default:
			// Assignment conflicts reported by the booking core land here:
			// recoverable, user-visible, inventory already refreshed.
			return c.JSON(http.StatusConflict, ResponseError{Message: err.Error()})
		}
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(view))
}

func (h *CheckinHandler) View(c echo.Context) error {
	sessionID, ok := sessionKey(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "missing user identity"})
	}

	view, err := h.checkinService.View(sessionID)
	if err != nil {
		return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(view))
}
