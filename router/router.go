package router

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Nano867/prediction-crop/pkg/recommend/controller"
)

func New(
	e *echo.Echo,
	recCtrl controller.RecommendController,
	healthCtrl interface{ Health(echo.Context) error },
) *echo.Echo {
	e.GET("/health", healthCtrl.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("")
	api.GET("/regions", recCtrl.Regions)
	api.GET("/crops", recCtrl.Crops)
	api.GET("/zones", recCtrl.Zones)
	api.GET("/rules", recCtrl.Rules)

	api.GET("/recommend", recCtrl.Recommend)
	api.POST("/recommend", recCtrl.RecommendJSON)
	return e
}
