package router

import (
	"skyVoyage/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupWidgetRoutes(api *echo.Group, handler *rest.WidgetHandler) {
	wg := api.Group("/widget")

	wg.POST("/mount", handler.Mount)
	wg.POST("/action", handler.Action)
	wg.POST("/dismiss", handler.Dismiss)
	wg.GET("/current", handler.Current)
	wg.POST("/page-data", handler.PageData)
}

func SetupCheckinRoutes(api *echo.Group, handler *rest.CheckinHandler, authRequired echo.MiddlewareFunc) {
	ci := api.Group("/checkin", authRequired)

	ci.POST("/find", handler.Find)
	ci.POST("/select-seat", handler.SelectSeat)
	ci.GET("", handler.View)
}

func SetupEngagementRoutes(api *echo.Group, handler *rest.EngagementHandler, authRequired echo.MiddlewareFunc) {
	eng := api.Group("/engagement", authRequired)

	eng.GET("/recent", handler.Recent)
}
