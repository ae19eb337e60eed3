package rest

import (
	"context"
	"net/http"
	"strconv"

	"skyVoyage/domain"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"
)

type (
	EngagementHandler struct {
		engagementStore EngagementStore
	}

	EngagementStore interface {
		RecentByUser(ctx context.Context, userID string, limit int) ([]domain.EngagementEvent, error)
	}
)

func NewEngagementHandler(store EngagementStore) *EngagementHandler {
	return &EngagementHandler{
		engagementStore: store,
	}
}

// Recent returns the caller's newest engagement events: what was shown,
// what was clicked, what was dismissed.
func (h *EngagementHandler) Recent(c echo.Context) error {
	userID, _ := c.Get("user_id").(string)
	if userID == "" {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "missing user identity"})
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	events, err := h.engagementStore.RecentByUser(c.Request().Context(), userID, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(events))
}
